package pgpmime

import (
	"crypto"
	"errors"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

func TestDigestNames(t *testing.T) {
	tests := []struct {
		digest DigestAlgo
		name   string
		micalg string
	}{
		{DigestMD5, "md5", "pgp-md5"},
		{DigestSHA1, "sha1", "pgp-sha1"},
		{DigestRIPEMD160, "ripemd160", "pgp-ripemd160"},
		{DigestMD2, "md2", "pgp-md2"},
		{DigestTIGER192, "tiger192", "pgp-tiger192"},
		{DigestHAVAL5160, "haval-5-160", "pgp-haval-5-160"},
		{DigestSHA256, "sha256", "pgp-sha256"},
		{DigestSHA384, "sha384", "pgp-sha384"},
		{DigestSHA512, "sha512", "pgp-sha512"},
		{DigestSHA224, "sha224", "pgp-sha224"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DigestName(tt.digest); got != tt.name {
				t.Errorf("DigestName() = %q, want %q", got, tt.name)
			}
			if got := Micalg(tt.digest); got != tt.micalg {
				t.Errorf("Micalg() = %q, want %q", got, tt.micalg)
			}
			back, err := DigestByName(tt.name)
			if err != nil {
				t.Fatalf("DigestByName() error = %v", err)
			}
			if back != tt.digest {
				t.Errorf("DigestByName() = %v, want %v", back, tt.digest)
			}
			back, err = DigestByMicalg(tt.micalg)
			if err != nil {
				t.Fatalf("DigestByMicalg() error = %v", err)
			}
			if back != tt.digest {
				t.Errorf("DigestByMicalg() = %v, want %v", back, tt.digest)
			}
		})
	}
}

func TestDigestName_Unknown(t *testing.T) {
	if got := DigestName(DigestDefault); got != "" {
		t.Errorf("DigestName(DigestDefault) = %q, want empty", got)
	}
	if got := Micalg(DigestAlgo(99)); got != "" {
		t.Errorf("Micalg(99) = %q, want empty", got)
	}
	if _, err := DigestByName("whirlpool"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("DigestByName() error = %v, want ErrInvalidArgument", err)
	}
	if _, err := DigestByMicalg("sha256"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("DigestByMicalg() without prefix error = %v, want ErrInvalidArgument", err)
	}
}

func TestNativeDigest(t *testing.T) {
	hash, err := NativeDigest(DigestSHA256)
	if err != nil {
		t.Fatalf("NativeDigest(DigestSHA256) error = %v", err)
	}
	if hash != crypto.SHA256 {
		t.Errorf("NativeDigest(DigestSHA256) = %v, want crypto.SHA256", hash)
	}

	// Named but deliberately unmapped digests report not-supported.
	for _, d := range []DigestAlgo{DigestMD2, DigestTIGER192, DigestHAVAL5160} {
		if _, err := NativeDigest(d); !errors.Is(err, ErrNotSupported) {
			t.Errorf("NativeDigest(%s) error = %v, want ErrNotSupported", DigestName(d), err)
		}
	}

	if _, err := NativeDigest(DigestAlgo(99)); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("NativeDigest(99) error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestDigestFromNative(t *testing.T) {
	d, err := DigestFromNative(crypto.SHA512)
	if err != nil {
		t.Fatalf("DigestFromNative(crypto.SHA512) error = %v", err)
	}
	if d != DigestSHA512 {
		t.Errorf("DigestFromNative(crypto.SHA512) = %v, want DigestSHA512", d)
	}
	if _, err := DigestFromNative(crypto.BLAKE2b_256); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("DigestFromNative(BLAKE2b_256) error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestNativeCipher(t *testing.T) {
	implemented := []struct {
		cipher CipherAlgo
		fn     packet.CipherFunction
	}{
		{Cipher3DES, packet.Cipher3DES},
		{CipherCAST5, packet.CipherCAST5},
		{CipherAES128, packet.CipherAES128},
		{CipherAES192, packet.CipherAES192},
		{CipherAES256, packet.CipherAES256},
	}
	for _, tt := range implemented {
		fn, err := NativeCipher(tt.cipher)
		if err != nil {
			t.Errorf("NativeCipher(%s) error = %v", CipherName(tt.cipher), err)
			continue
		}
		if fn != tt.fn {
			t.Errorf("NativeCipher(%s) = %v, want %v", CipherName(tt.cipher), fn, tt.fn)
		}
	}

	// The RC2 family and engine-unimplemented ciphers are rejected, never
	// silently replaced.
	rejected := []CipherAlgo{
		CipherRC240, CipherRC264, CipherRC2128,
		CipherIDEA, CipherBlowfish, CipherTwofish,
		CipherCamellia128, CipherCamellia192, CipherCamellia256,
	}
	for _, c := range rejected {
		if _, err := NativeCipher(c); !errors.Is(err, ErrNotSupported) {
			t.Errorf("NativeCipher(%s) error = %v, want ErrNotSupported", CipherName(c), err)
		}
	}

	if _, err := NativeCipher(CipherAlgo(99)); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("NativeCipher(99) error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestCipherFromNative(t *testing.T) {
	c, err := CipherFromNative(packet.CipherAES256)
	if err != nil {
		t.Fatalf("CipherFromNative(AES256) error = %v", err)
	}
	if c != CipherAES256 {
		t.Errorf("CipherFromNative(AES256) = %v, want CipherAES256", c)
	}

	// The engine never reports RC2; a tag landing in that range is not a
	// valid registry value.
	if _, err := CipherFromNative(packet.CipherFunction(14)); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("CipherFromNative(14) error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestPubKeyMapping(t *testing.T) {
	tests := []struct {
		algo PubKeyAlgo
		tag  packet.PublicKeyAlgorithm
	}{
		{PubKeyRSA, packet.PubKeyAlgoRSA},
		{PubKeyDSA, packet.PubKeyAlgoDSA},
		{PubKeyElGamal, packet.PubKeyAlgoElGamal},
		{PubKeyECDH, packet.PubKeyAlgoECDH},
		{PubKeyECDSA, packet.PubKeyAlgoECDSA},
		{PubKeyEdDSA, packet.PubKeyAlgoEdDSA},
	}
	for _, tt := range tests {
		tag, err := NativePubKey(tt.algo)
		if err != nil {
			t.Errorf("NativePubKey(%d) error = %v", tt.algo, err)
			continue
		}
		if tag != tt.tag {
			t.Errorf("NativePubKey(%d) = %v, want %v", tt.algo, tag, tt.tag)
		}
		back, err := PubKeyFromNative(tt.tag)
		if err != nil {
			t.Errorf("PubKeyFromNative(%v) error = %v", tt.tag, err)
			continue
		}
		if back != tt.algo {
			t.Errorf("PubKeyFromNative(%v) = %v, want %v", tt.tag, back, tt.algo)
		}
	}

	if _, err := NativePubKey(PubKeyAlgo(99)); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("NativePubKey(99) error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestDefaultPreferences(t *testing.T) {
	if defaultCipherPrefs[0] != CipherAES256 {
		t.Errorf("first cipher preference = %v, want CipherAES256", defaultCipherPrefs[0])
	}
	if defaultDigestPrefs[0] != DigestSHA256 {
		t.Errorf("first digest preference = %v, want DigestSHA256", defaultDigestPrefs[0])
	}
	for _, c := range defaultCipherPrefs {
		if _, err := NativeCipher(c); err != nil {
			t.Errorf("preference %s has no engine mapping: %v", CipherName(c), err)
		}
	}
	for _, d := range defaultDigestPrefs {
		if _, err := NativeDigest(d); err != nil {
			t.Errorf("preference %s has no engine mapping: %v", DigestName(d), err)
		}
	}
}
