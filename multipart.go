package pgpmime

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
)

// multipartSigned and multipartEncrypted are the two container types of
// RFC 1847.
const (
	multipartSigned    = "multipart/signed"
	multipartEncrypted = "multipart/encrypted"
)

// encryptedVersion is the fixed control part body of RFC 3156 section 4.
const encryptedVersion = "Version: 1"

// SignPart canonicalizes body, produces a detached signature over the
// canonical bytes with c, and assembles the two-child multipart/signed
// structure. The protocol parameter is application/pgp-signature and
// micalg names the digest actually used.
func SignPart(c Cryptor, signer *Key, digest DigestAlgo, body *message.Entity) (*message.Entity, error) {
	if c == nil {
		return nil, nilArgument("c")
	}
	if body == nil {
		return nil, nilArgument("body")
	}
	if digest == DigestDefault {
		if ctx, ok := c.(*Context); ok {
			digest = ctx.preferredDigest()
		} else {
			digest = DigestSHA256
		}
	}

	bodyBytes, err := serializeEntity(body)
	if err != nil {
		return nil, err
	}
	canonical := canonicalizeCRLF(bodyBytes)

	sig, err := c.Sign(signer, digest, bytes.NewReader(canonical))
	if err != nil {
		return nil, err
	}

	var h message.Header
	h.SetContentType(multipartSigned, map[string]string{
		"boundary": randomBoundary(),
		"protocol": ContentTypePGPSignature,
		"micalg":   Micalg(digest),
	})

	var buf bytes.Buffer
	mw, err := message.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create multipart writer: %w", err)
	}

	child, err := message.Read(bytes.NewReader(canonical))
	if err != nil {
		return nil, &FormatError{Reason: "cannot reparse canonical body", Err: err}
	}
	pw, err := mw.CreatePart(child.Header)
	if err != nil {
		return nil, fmt.Errorf("create body part: %w", err)
	}
	if _, err := io.Copy(pw, child.Body); err != nil {
		return nil, fmt.Errorf("write body part: %w", err)
	}
	pw.Close()

	var sh message.Header
	sh.SetContentType(ContentTypePGPSignature, map[string]string{"name": "signature.asc"})
	sh.Set("Content-Description", "OpenPGP digital signature")
	sw, err := mw.CreatePart(sh)
	if err != nil {
		return nil, fmt.Errorf("create signature part: %w", err)
	}
	if _, err := sw.Write(sig); err != nil {
		return nil, fmt.Errorf("write signature part: %w", err)
	}
	sw.Close()
	mw.Close()

	return message.Read(bytes.NewReader(buf.Bytes()))
}

// VerifyPart checks a multipart/signed structure: child 0 is
// re-canonicalized exactly as the signer did and verified against child
// 1's raw signature bytes. It returns the per-signer results and the
// body part. Exactly one signature part at index 1 is supported; any
// other shape is a format error.
func VerifyPart(c Cryptor, e *message.Entity) (SignatureList, *message.Entity, error) {
	if c == nil {
		return nil, nil, nilArgument("c")
	}
	if e == nil {
		return nil, nil, nilArgument("e")
	}

	mimeType, params, err := e.Header.ContentType()
	if err != nil {
		return nil, nil, &FormatError{Reason: "cannot parse content type", Err: err}
	}
	if mimeType != multipartSigned {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("expected %s, got %s", multipartSigned, mimeType)}
	}
	proto := params["protocol"]
	if proto == "" {
		return nil, nil, &FormatError{Reason: "missing protocol parameter"}
	}
	if proto != ContentTypePGPSignature && proto != ContentTypeXPGPSignature {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("unexpected protocol %q", proto)}
	}
	micalg := params["micalg"]
	if micalg == "" {
		return nil, nil, &FormatError{Reason: "missing micalg parameter"}
	}
	if _, err := DigestByMicalg(micalg); err != nil {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("unrecognized micalg %q", micalg)}
	}

	children, err := readChildren(e)
	if err != nil {
		return nil, nil, err
	}
	if len(children) != 2 {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("expected 2 children, got %d", len(children))}
	}

	sigType, _, err := children[1].Header.ContentType()
	if err != nil || (sigType != ContentTypePGPSignature && sigType != ContentTypeXPGPSignature) {
		return nil, nil, &FormatError{Reason: "second child is not a pgp-signature part"}
	}

	bodyBytes, err := serializeEntity(children[0])
	if err != nil {
		return nil, nil, err
	}
	canonical := canonicalizeCRLF(bodyBytes)

	sigBytes, err := io.ReadAll(children[1].Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read signature part: %w", err)
	}

	sigs, err := c.Verify(bytes.NewReader(canonical), bytes.NewReader(sigBytes))
	if err != nil {
		return nil, nil, err
	}

	body, err := message.Read(bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, nil, &FormatError{Reason: "cannot reparse body part", Err: err}
	}
	return sigs, body, nil
}

// EncryptPart serializes body, encrypts it for the recipient set, and
// assembles the two-child multipart/encrypted structure: the fixed
// control part followed by the ciphertext part.
func EncryptPart(c Cryptor, cipher CipherAlgo, recipients []*Key, body *message.Entity) (*message.Entity, error) {
	if c == nil {
		return nil, nilArgument("c")
	}
	if body == nil {
		return nil, nilArgument("body")
	}

	bodyBytes, err := serializeEntity(body)
	if err != nil {
		return nil, err
	}
	ciphertext, err := c.Encrypt(cipher, recipients, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}

	var h message.Header
	h.SetContentType(multipartEncrypted, map[string]string{
		"boundary": randomBoundary(),
		"protocol": ContentTypePGPEncrypted,
	})

	var buf bytes.Buffer
	mw, err := message.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create multipart writer: %w", err)
	}

	var ch message.Header
	ch.SetContentType(ContentTypePGPEncrypted, nil)
	ch.Set("Content-Description", "PGP/MIME version identification")
	cw, err := mw.CreatePart(ch)
	if err != nil {
		return nil, fmt.Errorf("create control part: %w", err)
	}
	if _, err := io.WriteString(cw, encryptedVersion+"\r\n"); err != nil {
		return nil, fmt.Errorf("write control part: %w", err)
	}
	cw.Close()

	var eh message.Header
	eh.SetContentType("application/octet-stream", map[string]string{"name": "encrypted.asc"})
	eh.Set("Content-Description", "OpenPGP encrypted message")
	ew, err := mw.CreatePart(eh)
	if err != nil {
		return nil, fmt.Errorf("create ciphertext part: %w", err)
	}
	if _, err := ew.Write(ciphertext); err != nil {
		return nil, fmt.Errorf("write ciphertext part: %w", err)
	}
	ew.Close()
	mw.Close()

	return message.Read(bytes.NewReader(buf.Bytes()))
}

// SignAndEncryptPart signs body into a multipart/signed structure and
// encrypts that structure, so that DecryptPart recovers both the body and
// the signature records.
func SignAndEncryptPart(c Cryptor, signer *Key, digest DigestAlgo, cipher CipherAlgo, recipients []*Key, body *message.Entity) (*message.Entity, error) {
	signed, err := SignPart(c, signer, digest, body)
	if err != nil {
		return nil, err
	}
	return EncryptPart(c, cipher, recipients, signed)
}

// DecryptPart decomposes a multipart/encrypted structure and decrypts the
// ciphertext part with c, or with the registered default context when c
// is nil. When the decrypted payload was a signed structure, the embedded
// signatures are returned alongside the body.
func DecryptPart(c Cryptor, e *message.Entity) (*message.Entity, SignatureList, error) {
	if c == nil {
		var err error
		c, err = Default()
		if err != nil {
			return nil, nil, err
		}
	}
	if e == nil {
		return nil, nil, nilArgument("e")
	}

	mimeType, params, err := e.Header.ContentType()
	if err != nil {
		return nil, nil, &FormatError{Reason: "cannot parse content type", Err: err}
	}
	if mimeType != multipartEncrypted {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("expected %s, got %s", multipartEncrypted, mimeType)}
	}
	proto := params["protocol"]
	if proto == "" {
		return nil, nil, &FormatError{Reason: "missing protocol parameter"}
	}
	if proto != ContentTypePGPEncrypted && proto != ContentTypeXPGPEncrypted {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("unexpected protocol %q", proto)}
	}

	children, err := readChildren(e)
	if err != nil {
		return nil, nil, err
	}
	if len(children) != 2 {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("expected 2 children, got %d", len(children))}
	}

	controlType, _, err := children[0].Header.ContentType()
	if err != nil || (controlType != ContentTypePGPEncrypted && controlType != ContentTypeXPGPEncrypted) {
		return nil, nil, &FormatError{Reason: "first child is not a pgp-encrypted control part"}
	}
	control, err := io.ReadAll(children[0].Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read control part: %w", err)
	}
	if !strings.Contains(string(control), encryptedVersion) {
		return nil, nil, &FormatError{Reason: "control part does not declare Version: 1"}
	}

	ciphertext, err := io.ReadAll(children[1].Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read ciphertext part: %w", err)
	}

	plaintext, sigs, err := c.Decrypt(bytes.NewReader(ciphertext))
	if err != nil {
		return nil, nil, err
	}

	body, err := message.Read(bytes.NewReader(plaintext))
	if err != nil {
		return nil, nil, &FormatError{Reason: "decrypted payload is not a MIME part", Err: err}
	}
	return body, sigs, nil
}

// serializeEntity renders an entity, headers included, to bytes. The
// entity's body is consumed.
func serializeEntity(e *message.Entity) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize entity: %w", err)
	}
	return buf.Bytes(), nil
}

// canonicalizeCRLF forces CRLF line termination, the transport-canonical
// form both the signer and the verifier hash.
func canonicalizeCRLF(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(b)/32)
	for i := 0; i < len(b); i++ {
		if b[i] == '\n' && (i == 0 || b[i-1] != '\r') {
			out = append(out, '\r')
		}
		out = append(out, b[i])
	}
	return out
}

// readChildren buffers every child of a multipart entity so each child
// can be re-read.
func readChildren(e *message.Entity) ([]*message.Entity, error) {
	mr := e.MultipartReader()
	if mr == nil {
		return nil, &FormatError{Reason: "entity is not multipart"}
	}
	var children []*message.Entity
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FormatError{Reason: "cannot read child part", Err: err}
		}
		raw, err := serializeEntity(part)
		if err != nil {
			return nil, err
		}
		child, err := message.Read(bytes.NewReader(raw))
		if err != nil {
			return nil, &FormatError{Reason: "cannot reparse child part", Err: err}
		}
		children = append(children, child)
	}
	return children, nil
}

// isMultipartSigned reports whether e is a multipart/signed container.
func isMultipartSigned(e *message.Entity) bool {
	mimeType, _, err := e.Header.ContentType()
	return err == nil && mimeType == multipartSigned
}

// newOpaquePart wraps raw bytes in a base64-encoded octet-stream part so
// arbitrary data can travel through the signed structure unharmed by
// line-ending canonicalization.
func newOpaquePart(raw []byte) (*message.Entity, error) {
	var h message.Header
	h.SetContentType("application/octet-stream", nil)
	h.Set("Content-Transfer-Encoding", "base64")

	var buf bytes.Buffer
	w, err := message.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create part writer: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("write part: %w", err)
	}
	w.Close()

	return message.Read(bytes.NewReader(buf.Bytes()))
}

// randomBoundary generates a MIME boundary.
func randomBoundary() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
