package pgpmime

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/emersion/go-message"
)

// parseMessage parses a full mail message.
func parseMessage(t *testing.T, raw string) *message.Entity {
	t.Helper()
	e, err := message.Read(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return e
}

const plainMessage = "From: Alice <alice@example.com>\r\n" +
	"To: Bob <bob@example.com>\r\n" +
	"Subject: Greetings\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"hello bob\r\n"

func TestSignMessage(t *testing.T) {
	alice := newTestEntity(t, "Alice", "alice@example.com")
	ctx := newTestContext(t, alice)

	signed, err := SignMessage(ctx, DigestDefault, parseMessage(t, plainMessage))
	if err != nil {
		t.Fatalf("SignMessage() error = %v", err)
	}

	if got := signed.Header.Get("Subject"); got != "Greetings" {
		t.Errorf("Subject = %q, want Greetings", got)
	}
	if got := signed.Header.Get("From"); !strings.Contains(got, "alice@example.com") {
		t.Errorf("From = %q, want alice@example.com", got)
	}

	mimeType, params, err := signed.Header.ContentType()
	if err != nil {
		t.Fatalf("ContentType() error = %v", err)
	}
	if mimeType != "multipart/signed" {
		t.Errorf("content type = %q, want multipart/signed", mimeType)
	}
	if params["protocol"] != ContentTypePGPSignature {
		t.Errorf("protocol = %q, want %q", params["protocol"], ContentTypePGPSignature)
	}

	// The signed message verifies as a part.
	raw, err := serializeEntity(signed)
	if err != nil {
		t.Fatalf("serializeEntity() error = %v", err)
	}
	sigs, body, err := VerifyPart(ctx, reparse(t, raw))
	if err != nil {
		t.Fatalf("VerifyPart() error = %v", err)
	}
	if !sigs.AllValid() {
		t.Fatalf("signatures = %+v, want all valid", sigs)
	}
	content, _ := io.ReadAll(body.Body)
	if !strings.Contains(string(content), "hello bob") {
		t.Errorf("body = %q, want the original text", content)
	}
}

func TestSignMessage_NoSender(t *testing.T) {
	ctx := newTestContext(t, newTestEntity(t, "Alice", "alice@example.com"))

	raw := "To: Bob <bob@example.com>\r\nContent-Type: text/plain\r\n\r\nhi\r\n"
	if _, err := SignMessage(ctx, DigestDefault, parseMessage(t, raw)); !errors.Is(err, ErrMissingSender) {
		t.Errorf("SignMessage() error = %v, want ErrMissingSender", err)
	}
}

func TestSignMessage_NoKeyForSender(t *testing.T) {
	ctx := newTestContext(t, newTestEntity(t, "Alice", "alice@example.com"))

	raw := "From: Mallory <mallory@example.com>\r\nContent-Type: text/plain\r\n\r\nhi\r\n"
	if _, err := SignMessage(ctx, DigestDefault, parseMessage(t, raw)); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("SignMessage() error = %v, want ErrKeyNotFound", err)
	}
}

func TestEncryptDecryptMessage_RoundTrip(t *testing.T) {
	alice := newTestEntity(t, "Alice", "alice@example.com")
	bob := newTestEntity(t, "Bob", "bob@example.com")
	ctx := newTestContext(t, alice, bob)

	encrypted, err := EncryptMessage(ctx, CipherDefault, parseMessage(t, plainMessage))
	if err != nil {
		t.Fatalf("EncryptMessage() error = %v", err)
	}

	if got := encrypted.Header.Get("Subject"); got != "Greetings" {
		t.Errorf("Subject = %q, want Greetings", got)
	}
	mimeType, _, err := encrypted.Header.ContentType()
	if err != nil {
		t.Fatalf("ContentType() error = %v", err)
	}
	if mimeType != "multipart/encrypted" {
		t.Errorf("content type = %q, want multipart/encrypted", mimeType)
	}

	raw, err := serializeEntity(encrypted)
	if err != nil {
		t.Fatalf("serializeEntity() error = %v", err)
	}
	if bytes.Contains(raw, []byte("hello bob")) {
		t.Fatal("encrypted message leaks the plaintext")
	}

	decrypted, sigs, err := DecryptMessage(ctx, reparse(t, raw))
	if err != nil {
		t.Fatalf("DecryptMessage() error = %v", err)
	}
	if len(sigs) != 0 {
		t.Errorf("signature count = %d for unsigned message, want 0", len(sigs))
	}
	if got := decrypted.Header.Get("Subject"); got != "Greetings" {
		t.Errorf("Subject = %q after decrypt, want Greetings", got)
	}
	content, err := io.ReadAll(decrypted.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !strings.Contains(string(content), "hello bob") {
		t.Errorf("body = %q, want the original text", content)
	}
}

func TestEncryptMessage_AllRecipientFields(t *testing.T) {
	alice := newTestEntity(t, "Alice", "alice@example.com")
	bob := newTestEntity(t, "Bob", "bob@example.com")
	carol := newTestEntity(t, "Carol", "carol@example.com")
	ctx := newTestContext(t, alice, bob, carol)

	raw := "From: Alice <alice@example.com>\r\n" +
		"To: Bob <bob@example.com>\r\n" +
		"Cc: Carol <carol@example.com>\r\n" +
		"Bcc: Alice <alice@example.com>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"to everyone\r\n"
	encrypted, err := EncryptMessage(ctx, CipherDefault, parseMessage(t, raw))
	if err != nil {
		t.Fatalf("EncryptMessage() error = %v", err)
	}

	enc, err := serializeEntity(encrypted)
	if err != nil {
		t.Fatalf("serializeEntity() error = %v", err)
	}

	// Each recipient can decrypt with their own key alone.
	recipients := map[string]*Context{
		"alice": newTestContext(t, alice),
		"bob":   newTestContext(t, bob),
		"carol": newTestContext(t, carol),
	}
	for name, single := range recipients {
		decrypted, _, err := DecryptMessage(single, reparse(t, enc))
		if err != nil {
			t.Fatalf("DecryptMessage() as %s error = %v", name, err)
		}
		content, _ := io.ReadAll(decrypted.Body)
		if !strings.Contains(string(content), "to everyone") {
			t.Errorf("body as %s = %q, want the original text", name, content)
		}
	}
}

func TestEncryptMessage_NoRecipients(t *testing.T) {
	ctx := newTestContext(t, newTestEntity(t, "Alice", "alice@example.com"))

	raw := "From: Alice <alice@example.com>\r\nContent-Type: text/plain\r\n\r\nhi\r\n"
	if _, err := EncryptMessage(ctx, CipherDefault, parseMessage(t, raw)); !errors.Is(err, ErrMissingRecipients) {
		t.Errorf("EncryptMessage() error = %v, want ErrMissingRecipients", err)
	}
}

func TestEncryptMessage_UnresolvableRecipient(t *testing.T) {
	ctx := newTestContext(t, newTestEntity(t, "Alice", "alice@example.com"))

	raw := "From: Alice <alice@example.com>\r\nTo: Bob <bob@example.com>\r\nContent-Type: text/plain\r\n\r\nhi\r\n"
	if _, err := EncryptMessage(ctx, CipherDefault, parseMessage(t, raw)); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("EncryptMessage() error = %v, want ErrKeyNotFound", err)
	}
}

func TestSignThenEncryptMessage(t *testing.T) {
	alice := newTestEntity(t, "Alice", "alice@example.com")
	bob := newTestEntity(t, "Bob", "bob@example.com")
	ctx := newTestContext(t, alice, bob)

	signed, err := SignMessage(ctx, DigestDefault, parseMessage(t, plainMessage))
	if err != nil {
		t.Fatalf("SignMessage() error = %v", err)
	}
	encrypted, err := EncryptMessage(ctx, CipherDefault, signed)
	if err != nil {
		t.Fatalf("EncryptMessage() error = %v", err)
	}
	raw, err := serializeEntity(encrypted)
	if err != nil {
		t.Fatalf("serializeEntity() error = %v", err)
	}

	decrypted, sigs, err := DecryptMessage(ctx, reparse(t, raw))
	if err != nil {
		t.Fatalf("DecryptMessage() error = %v", err)
	}
	if len(sigs) != 1 || sigs[0].Status != SignatureValid {
		t.Fatalf("signatures = %+v, want one valid record", sigs)
	}
	content, err := io.ReadAll(decrypted.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !strings.Contains(string(content), "hello bob") {
		t.Errorf("body = %q, want the original text", content)
	}
}
