package pgpmime

import "io"

// OpenPGP-related content types, canonical and legacy x- prefixed forms.
const (
	// ContentTypePGPSignature tags a detached signature part and is the
	// multipart/signed protocol parameter value.
	ContentTypePGPSignature = "application/pgp-signature"
	// ContentTypePGPEncrypted tags the multipart/encrypted control part.
	ContentTypePGPEncrypted = "application/pgp-encrypted"
	// ContentTypePGPKeys tags exported key material.
	ContentTypePGPKeys = "application/pgp-keys"

	// ContentTypeXPGPSignature is the legacy form of ContentTypePGPSignature.
	ContentTypeXPGPSignature = "application/x-pgp-signature"
	// ContentTypeXPGPEncrypted is the legacy form of ContentTypePGPEncrypted.
	ContentTypeXPGPEncrypted = "application/x-pgp-encrypted"
	// ContentTypeXPGPKeys is the legacy form of ContentTypePGPKeys.
	ContentTypeXPGPKeys = "application/x-pgp-keys"
)

// supportedTypes is the static capability table for Supports.
var supportedTypes = map[string]bool{
	ContentTypePGPSignature:  true,
	ContentTypePGPEncrypted:  true,
	ContentTypePGPKeys:       true,
	ContentTypeXPGPSignature: true,
	ContentTypeXPGPEncrypted: true,
	ContentTypeXPGPKeys:      true,
}

// Supports reports whether mimeType is one of the six OpenPGP-related
// content types. Unknown types report false.
func Supports(mimeType string) bool {
	return supportedTypes[mimeType]
}

// Cryptor is the operation set of a crypto context. Context is the
// OpenPGP implementation; alternate engine families implement the same
// interface and callers program against it.
type Cryptor interface {
	// Sign produces a detached signature over the exact bytes read from
	// data. Canonicalization is the caller's responsibility.
	Sign(signer *Key, digest DigestAlgo, data io.Reader) ([]byte, error)
	// Encrypt produces ciphertext for the recipient set. CipherDefault
	// selects the context's default cipher.
	Encrypt(cipher CipherAlgo, recipients []*Key, data io.Reader) ([]byte, error)
	// Decrypt recovers plaintext, verifying an embedded signed structure
	// inline when one is present.
	Decrypt(data io.Reader) ([]byte, SignatureList, error)
	// Verify checks a detached signature against the canonical data,
	// reporting per-signer outcomes.
	Verify(data, signature io.Reader) (SignatureList, error)
	// SignAndEncrypt signs first, then encrypts the combined sequence.
	SignAndEncrypt(signer *Key, digest DigestAlgo, cipher CipherAlgo, recipients []*Key, data io.Reader) ([]byte, error)
	// Supports reports whether the context handles the given content type.
	Supports(mimeType string) bool
}
