package pgpmime

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/emersion/go-message"

	"github.com/sealpost/pgpmime-go/internal/pgp"
)

// Context is the OpenPGP crypto context for one logical session: it owns
// a KeyStore, the digest and cipher preference order, and the default
// encryption cipher. It implements Cryptor.
//
// A Context is not safe for concurrent use without external
// synchronization.
type Context struct {
	store         *KeyStore
	digestPrefs   []DigestAlgo
	cipherPrefs   []CipherAlgo
	defaultCipher CipherAlgo
}

// NewContext creates a Context with an empty key store, the default
// preference order, and AES-256 as the default cipher.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		store:         NewKeyStore(),
		digestPrefs:   append([]DigestAlgo(nil), defaultDigestPrefs...),
		cipherPrefs:   append([]CipherAlgo(nil), defaultCipherPrefs...),
		defaultCipher: CipherAES256,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Keys returns the context's key store.
func (c *Context) Keys() *KeyStore {
	return c.store
}

// DigestPreferences returns the digest negotiation order. The returned
// slice is a copy; the context's own order is fixed at construction.
func (c *Context) DigestPreferences() []DigestAlgo {
	return append([]DigestAlgo(nil), c.digestPrefs...)
}

// CipherPreferences returns the cipher negotiation order as a copy.
func (c *Context) CipherPreferences() []CipherAlgo {
	return append([]CipherAlgo(nil), c.cipherPrefs...)
}

// DefaultCipher returns the cipher used when Encrypt is called with
// CipherDefault.
func (c *Context) DefaultCipher() CipherAlgo {
	return c.defaultCipher
}

// SetDefaultCipher changes the default cipher. The RC2 family and ciphers
// the engine does not implement are rejected with ErrNotSupported.
func (c *Context) SetDefaultCipher(cipher CipherAlgo) error {
	if _, err := NativeCipher(cipher); err != nil {
		return err
	}
	c.defaultCipher = cipher
	return nil
}

// preferredDigest is the digest used for DigestDefault.
func (c *Context) preferredDigest() DigestAlgo {
	return c.digestPrefs[0]
}

// Sign produces an armored detached signature over the exact bytes read
// from data. The caller canonicalizes before calling; see SignPart.
func (c *Context) Sign(signer *Key, digest DigestAlgo, data io.Reader) ([]byte, error) {
	if signer == nil {
		return nil, nilArgument("signer")
	}
	if data == nil {
		return nil, nilArgument("data")
	}
	if !signer.HasPrivate || !signer.CanSign {
		return nil, &ArgumentError{Name: "signer", Reason: "key cannot sign"}
	}
	if digest == DigestDefault {
		digest = c.preferredDigest()
	}
	hash, err := NativeDigest(digest)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pgp.DetachSign(&buf, signer.entity, data, hash, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encrypt produces an armored encrypted message for the recipient set.
// CipherDefault selects the context's default cipher; the RC2 family is
// rejected with ErrNotSupported.
func (c *Context) Encrypt(cipher CipherAlgo, recipients []*Key, data io.Reader) ([]byte, error) {
	if recipients == nil {
		return nil, nilArgument("recipients")
	}
	if len(recipients) == 0 {
		return nil, emptyArgument("recipients")
	}
	if data == nil {
		return nil, nilArgument("data")
	}
	if cipher == CipherDefault {
		cipher = c.defaultCipher
	}
	fn, err := NativeCipher(cipher)
	if err != nil {
		return nil, err
	}

	entities := make(openpgp.EntityList, 0, len(recipients))
	for _, k := range recipients {
		if k == nil {
			return nil, nilArgument("recipients")
		}
		if !k.CanEncrypt {
			return nil, &KeyNotFoundError{Address: k.Fingerprint}
		}
		entities = append(entities, k.entity)
	}

	var buf bytes.Buffer
	if err := pgp.Encrypt(&buf, entities, fn, data, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decrypt recovers the plaintext of an encrypted message. When the
// decrypted payload is itself a multipart/signed structure, the embedded
// signatures are verified inline and the plain body part's bytes are
// returned together with the per-signer results; otherwise the signature
// list is empty.
func (c *Context) Decrypt(data io.Reader) ([]byte, SignatureList, error) {
	if data == nil {
		return nil, nil, nilArgument("data")
	}

	plaintext, err := pgp.Decrypt(data, c.store.entityRing())
	if err != nil {
		return nil, nil, &FormatError{Reason: "cannot decrypt message", Err: err}
	}

	entity, err := message.Read(bytes.NewReader(plaintext))
	if err != nil || !isMultipartSigned(entity) {
		return plaintext, nil, nil
	}

	sigs, body, err := VerifyPart(c, entity)
	if err != nil {
		return nil, nil, err
	}
	bodyBytes, err := serializeEntity(body)
	if err != nil {
		return nil, nil, err
	}
	return bodyBytes, sigs, nil
}

// Verify checks a detached signature against the canonical data and
// returns one record per signer. A bad or unknown signer is captured in
// its record; the call itself fails only for unreadable inputs or
// unparseable signature bytes.
func (c *Context) Verify(data, signature io.Reader) (SignatureList, error) {
	if data == nil {
		return nil, nilArgument("data")
	}
	if signature == nil {
		return nil, nilArgument("signature")
	}

	signed, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read signed data: %w", err)
	}
	sigBytes, err := io.ReadAll(signature)
	if err != nil {
		return nil, fmt.Errorf("read signature: %w", err)
	}

	reports, err := pgp.VerifyDetached(c.store.entityRing(), signed, sigBytes)
	if err != nil {
		return nil, &FormatError{Reason: "cannot parse signature", Err: err}
	}
	return signaturesFromReports(reports), nil
}

// SignAndEncrypt signs data first, wrapping it in an inner
// multipart/signed structure, then encrypts that structure for the
// recipient set. Decrypt recovers both the plaintext and the signature
// records in one call. The content is never encrypted before signing.
func (c *Context) SignAndEncrypt(signer *Key, digest DigestAlgo, cipher CipherAlgo, recipients []*Key, data io.Reader) ([]byte, error) {
	if signer == nil {
		return nil, nilArgument("signer")
	}
	if data == nil {
		return nil, nilArgument("data")
	}

	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	body, err := newOpaquePart(raw)
	if err != nil {
		return nil, err
	}

	signed, err := SignPart(c, signer, digest, body)
	if err != nil {
		return nil, err
	}
	signedBytes, err := serializeEntity(signed)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(cipher, recipients, bytes.NewReader(signedBytes))
}

// Supports reports whether mimeType is one of the OpenPGP content types
// this context handles.
func (c *Context) Supports(mimeType string) bool {
	return Supports(mimeType)
}
