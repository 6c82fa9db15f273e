package pgpmime

import (
	"crypto"
	"fmt"

	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// DigestAlgo identifies a message digest algorithm. Values follow the
// OpenPGP hash algorithm registry (RFC 4880 section 9.4).
type DigestAlgo int

const (
	// DigestDefault selects the context's preferred digest.
	DigestDefault DigestAlgo = 0
	// DigestMD5 is the MD5 digest. Kept for verifying historic signatures.
	DigestMD5 DigestAlgo = 1
	// DigestSHA1 is the SHA-1 digest.
	DigestSHA1 DigestAlgo = 2
	// DigestRIPEMD160 is the RIPEMD-160 digest.
	DigestRIPEMD160 DigestAlgo = 3
	// DigestMD2 is the MD2 digest. Excluded from use.
	DigestMD2 DigestAlgo = 5
	// DigestTIGER192 is the TIGER/192 digest. Excluded from use.
	DigestTIGER192 DigestAlgo = 6
	// DigestHAVAL5160 is the HAVAL-5-160 digest. Excluded from use.
	DigestHAVAL5160 DigestAlgo = 7
	// DigestSHA256 is the SHA-256 digest.
	DigestSHA256 DigestAlgo = 8
	// DigestSHA384 is the SHA-384 digest.
	DigestSHA384 DigestAlgo = 9
	// DigestSHA512 is the SHA-512 digest.
	DigestSHA512 DigestAlgo = 10
	// DigestSHA224 is the SHA-224 digest.
	DigestSHA224 DigestAlgo = 11
)

// CipherAlgo identifies a symmetric encryption algorithm. Values 1-13
// follow the OpenPGP symmetric algorithm registry; the RC2 family sits
// outside it and exists only so that it can be rejected explicitly.
type CipherAlgo int

const (
	// CipherDefault selects the context's default cipher.
	CipherDefault CipherAlgo = 0
	// CipherIDEA is the IDEA cipher.
	CipherIDEA CipherAlgo = 1
	// Cipher3DES is triple-DES in EDE mode.
	Cipher3DES CipherAlgo = 2
	// CipherCAST5 is the CAST5 (CAST-128) cipher.
	CipherCAST5 CipherAlgo = 3
	// CipherBlowfish is the Blowfish cipher.
	CipherBlowfish CipherAlgo = 4
	// CipherAES128 is AES with a 128-bit key.
	CipherAES128 CipherAlgo = 7
	// CipherAES192 is AES with a 192-bit key.
	CipherAES192 CipherAlgo = 8
	// CipherAES256 is AES with a 256-bit key.
	CipherAES256 CipherAlgo = 9
	// CipherTwofish is the Twofish cipher.
	CipherTwofish CipherAlgo = 10
	// CipherCamellia128 is Camellia with a 128-bit key.
	CipherCamellia128 CipherAlgo = 11
	// CipherCamellia192 is Camellia with a 192-bit key.
	CipherCamellia192 CipherAlgo = 12
	// CipherCamellia256 is Camellia with a 256-bit key.
	CipherCamellia256 CipherAlgo = 13
	// CipherRC240 is RC2 with a 40-bit key. Excluded from use.
	CipherRC240 CipherAlgo = 14
	// CipherRC264 is RC2 with a 64-bit key. Excluded from use.
	CipherRC264 CipherAlgo = 15
	// CipherRC2128 is RC2 with a 128-bit key. Excluded from use.
	CipherRC2128 CipherAlgo = 16
)

// PubKeyAlgo identifies a public key algorithm. Values follow the OpenPGP
// public key algorithm registry (RFC 4880 section 9.1).
type PubKeyAlgo int

const (
	// PubKeyRSA is RSA (encrypt or sign).
	PubKeyRSA PubKeyAlgo = 1
	// PubKeyRSAEncryptOnly is the legacy encrypt-only RSA variant.
	PubKeyRSAEncryptOnly PubKeyAlgo = 2
	// PubKeyRSASignOnly is the legacy sign-only RSA variant.
	PubKeyRSASignOnly PubKeyAlgo = 3
	// PubKeyElGamal is ElGamal (encrypt only).
	PubKeyElGamal PubKeyAlgo = 16
	// PubKeyDSA is DSA.
	PubKeyDSA PubKeyAlgo = 17
	// PubKeyECDH is elliptic-curve Diffie-Hellman.
	PubKeyECDH PubKeyAlgo = 18
	// PubKeyECDSA is elliptic-curve DSA.
	PubKeyECDSA PubKeyAlgo = 19
	// PubKeyEdDSA is EdDSA.
	PubKeyEdDSA PubKeyAlgo = 22
)

var digestNames = map[DigestAlgo]string{
	DigestMD5:       "md5",
	DigestSHA1:      "sha1",
	DigestRIPEMD160: "ripemd160",
	DigestMD2:       "md2",
	DigestTIGER192:  "tiger192",
	DigestHAVAL5160: "haval-5-160",
	DigestSHA256:    "sha256",
	DigestSHA384:    "sha384",
	DigestSHA512:    "sha512",
	DigestSHA224:    "sha224",
}

var digestsByName = func() map[string]DigestAlgo {
	m := make(map[string]DigestAlgo, len(digestNames))
	for d, name := range digestNames {
		m[name] = d
	}
	return m
}()

// digestHashes maps digests to their Go crypto.Hash equivalents. Digests
// absent from this map have no usable engine implementation.
var digestHashes = map[DigestAlgo]crypto.Hash{
	DigestMD5:       crypto.MD5,
	DigestSHA1:      crypto.SHA1,
	DigestRIPEMD160: crypto.RIPEMD160,
	DigestSHA256:    crypto.SHA256,
	DigestSHA384:    crypto.SHA384,
	DigestSHA512:    crypto.SHA512,
	DigestSHA224:    crypto.SHA224,
}

var digestsByHash = func() map[crypto.Hash]DigestAlgo {
	m := make(map[crypto.Hash]DigestAlgo, len(digestHashes))
	for d, h := range digestHashes {
		m[h] = d
	}
	return m
}()

// DigestName returns the canonical lowercase name of a digest, or the
// empty string for DigestDefault and unknown values.
func DigestName(d DigestAlgo) string {
	return digestNames[d]
}

// DigestByName maps a canonical digest name back to its identifier.
func DigestByName(name string) (DigestAlgo, error) {
	d, ok := digestsByName[name]
	if !ok {
		return DigestDefault, &ArgumentError{Name: "name", Reason: fmt.Sprintf("unrecognized digest %q", name)}
	}
	return d, nil
}

// Micalg returns the RFC 3156 micalg parameter value for a digest, in the
// lowercase pgp-<name> form.
func Micalg(d DigestAlgo) string {
	name := digestNames[d]
	if name == "" {
		return ""
	}
	return "pgp-" + name
}

// DigestByMicalg maps a micalg parameter value back to its digest.
func DigestByMicalg(micalg string) (DigestAlgo, error) {
	if len(micalg) < 5 || micalg[:4] != "pgp-" {
		return DigestDefault, &ArgumentError{Name: "micalg", Reason: fmt.Sprintf("unrecognized micalg %q", micalg)}
	}
	return DigestByName(micalg[4:])
}

// NativeDigest maps a digest to the engine's native hash identifier. It
// returns ErrNotSupported for digests excluded from use and
// ErrUnknownAlgorithm for values outside the registry.
func NativeDigest(d DigestAlgo) (crypto.Hash, error) {
	if h, ok := digestHashes[d]; ok {
		return h, nil
	}
	if name, ok := digestNames[d]; ok {
		return 0, &NotSupportedError{Algorithm: "digest " + name}
	}
	return 0, fmt.Errorf("%w: digest %d", ErrUnknownAlgorithm, int(d))
}

// DigestFromNative maps an engine-native hash identifier back to a digest.
func DigestFromNative(h crypto.Hash) (DigestAlgo, error) {
	if d, ok := digestsByHash[h]; ok {
		return d, nil
	}
	return DigestDefault, fmt.Errorf("%w: native hash %d", ErrUnknownAlgorithm, int(h))
}

var cipherNames = map[CipherAlgo]string{
	CipherIDEA:        "idea",
	Cipher3DES:        "3des",
	CipherCAST5:       "cast5",
	CipherBlowfish:    "blowfish",
	CipherAES128:      "aes128",
	CipherAES192:      "aes192",
	CipherAES256:      "aes256",
	CipherTwofish:     "twofish",
	CipherCamellia128: "camellia128",
	CipherCamellia192: "camellia192",
	CipherCamellia256: "camellia256",
	CipherRC240:       "rc2-40",
	CipherRC264:       "rc2-64",
	CipherRC2128:      "rc2-128",
}

// cipherFunctions maps ciphers to engine cipher functions. Only ciphers
// the engine actually implements appear here.
var cipherFunctions = map[CipherAlgo]packet.CipherFunction{
	Cipher3DES:   packet.Cipher3DES,
	CipherCAST5:  packet.CipherCAST5,
	CipherAES128: packet.CipherAES128,
	CipherAES192: packet.CipherAES192,
	CipherAES256: packet.CipherAES256,
}

// weakCiphers are rejected by both SetDefaultCipher and Encrypt.
var weakCiphers = map[CipherAlgo]bool{
	CipherRC240:  true,
	CipherRC264:  true,
	CipherRC2128: true,
}

// CipherName returns the canonical lowercase name of a cipher, or the
// empty string for CipherDefault and unknown values.
func CipherName(c CipherAlgo) string {
	return cipherNames[c]
}

// NativeCipher maps a cipher to the engine's native cipher function. It
// returns ErrNotSupported for the excluded RC2 family and for ciphers the
// engine does not implement, and ErrUnknownAlgorithm for values outside
// the registry.
func NativeCipher(c CipherAlgo) (packet.CipherFunction, error) {
	if fn, ok := cipherFunctions[c]; ok {
		return fn, nil
	}
	if name, ok := cipherNames[c]; ok {
		return 0, &NotSupportedError{Algorithm: "cipher " + name}
	}
	return 0, fmt.Errorf("%w: cipher %d", ErrUnknownAlgorithm, int(c))
}

// CipherFromNative maps an engine-native cipher function back to a cipher.
func CipherFromNative(fn packet.CipherFunction) (CipherAlgo, error) {
	c := CipherAlgo(fn)
	if _, ok := cipherNames[c]; !ok || weakCiphers[c] {
		return CipherDefault, fmt.Errorf("%w: native cipher %d", ErrUnknownAlgorithm, int(fn))
	}
	return c, nil
}

var pubKeyAlgos = map[PubKeyAlgo]packet.PublicKeyAlgorithm{
	PubKeyRSA:            packet.PubKeyAlgoRSA,
	PubKeyRSAEncryptOnly: packet.PubKeyAlgoRSAEncryptOnly,
	PubKeyRSASignOnly:    packet.PubKeyAlgoRSASignOnly,
	PubKeyElGamal:        packet.PubKeyAlgoElGamal,
	PubKeyDSA:            packet.PubKeyAlgoDSA,
	PubKeyECDH:           packet.PubKeyAlgoECDH,
	PubKeyECDSA:          packet.PubKeyAlgoECDSA,
	PubKeyEdDSA:          packet.PubKeyAlgoEdDSA,
}

// NativePubKey maps a public key algorithm to the engine's native tag.
func NativePubKey(a PubKeyAlgo) (packet.PublicKeyAlgorithm, error) {
	if tag, ok := pubKeyAlgos[a]; ok {
		return tag, nil
	}
	return 0, fmt.Errorf("%w: public key algorithm %d", ErrUnknownAlgorithm, int(a))
}

// PubKeyFromNative maps an engine-native tag back to a public key
// algorithm.
func PubKeyFromNative(tag packet.PublicKeyAlgorithm) (PubKeyAlgo, error) {
	for a, t := range pubKeyAlgos {
		if t == tag {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: native public key algorithm %d", ErrUnknownAlgorithm, int(tag))
}

// defaultCipherPrefs is the fixed negotiation order for encryption.
var defaultCipherPrefs = []CipherAlgo{
	CipherAES256,
	CipherAES192,
	CipherAES128,
	CipherCAST5,
	Cipher3DES,
}

// defaultDigestPrefs is the fixed negotiation order for signing.
var defaultDigestPrefs = []DigestAlgo{
	DigestSHA256,
	DigestSHA512,
	DigestSHA384,
	DigestSHA224,
	DigestSHA1,
	DigestRIPEMD160,
}
