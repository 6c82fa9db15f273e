package pgpmime

import (
	"strings"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
)

// SignMessage signs a complete mail message. The signer key is resolved
// from the From header, the message's content is wrapped in a
// multipart/signed structure, and the message headers are carried over
// onto the result.
func SignMessage(ctx *Context, digest DigestAlgo, e *message.Entity) (*message.Entity, error) {
	if ctx == nil {
		return nil, nilArgument("ctx")
	}
	if e == nil {
		return nil, nilArgument("e")
	}
	if e.Body == nil {
		return nil, ErrMissingBody
	}

	from, err := senderAddress(e.Header)
	if err != nil {
		return nil, err
	}
	signer, err := ctx.Keys().SigningKey(from)
	if err != nil {
		return nil, err
	}

	mailHeader, part := splitContent(e)
	signed, err := SignPart(ctx, signer, digest, part)
	if err != nil {
		return nil, err
	}
	return mergeContent(mailHeader, signed), nil
}

// EncryptMessage encrypts a complete mail message for every recipient
// named in the To, Cc and Bcc headers. Each recipient must resolve to an
// encryption-capable public key.
func EncryptMessage(ctx *Context, cipher CipherAlgo, e *message.Entity) (*message.Entity, error) {
	if ctx == nil {
		return nil, nilArgument("ctx")
	}
	if e == nil {
		return nil, nilArgument("e")
	}
	if e.Body == nil {
		return nil, ErrMissingBody
	}

	recipients, err := recipientAddresses(e.Header)
	if err != nil {
		return nil, err
	}
	keys, err := ctx.Keys().LookupPublicKeys(recipients...)
	if err != nil {
		return nil, err
	}

	mailHeader, part := splitContent(e)
	encrypted, err := EncryptPart(ctx, cipher, keys, part)
	if err != nil {
		return nil, err
	}
	return mergeContent(mailHeader, encrypted), nil
}

// DecryptMessage decrypts a mail message carrying a multipart/encrypted
// structure and restores the message headers onto the decrypted content.
// A nil c uses the registered default context.
func DecryptMessage(c Cryptor, e *message.Entity) (*message.Entity, SignatureList, error) {
	if e == nil {
		return nil, nil, nilArgument("e")
	}

	mailHeader, part := splitContent(e)
	body, sigs, err := DecryptPart(c, part)
	if err != nil {
		return nil, nil, err
	}
	return mergeContent(mailHeader, body), sigs, nil
}

// senderAddress extracts the single sender from the From header.
func senderAddress(h message.Header) (Address, error) {
	mh := mail.Header{Header: h}
	list, err := mh.AddressList("From")
	if err != nil || len(list) == 0 {
		return Address{}, ErrMissingSender
	}
	return Addr(list[0].Name, list[0].Address), nil
}

// recipientAddresses collects every To, Cc and Bcc address.
func recipientAddresses(h message.Header) ([]Matcher, error) {
	mh := mail.Header{Header: h}
	var out []Matcher
	for _, field := range []string{"To", "Cc", "Bcc"} {
		list, err := mh.AddressList(field)
		if err != nil {
			continue
		}
		for _, a := range list {
			out = append(out, Addr(a.Name, a.Address))
		}
	}
	if len(out) == 0 {
		return nil, ErrMissingRecipients
	}
	return out, nil
}

// splitContent separates a message into its mail headers and its content
// part: the Content-* fields move onto the part, everything else stays on
// the mail header.
func splitContent(e *message.Entity) (message.Header, *message.Entity) {
	mailHeader := message.Header{Header: e.Header.Header.Copy()}

	var partHeader message.Header
	fields := e.Header.Fields()
	for fields.Next() {
		if strings.HasPrefix(strings.ToLower(fields.Key()), "content-") {
			partHeader.Add(fields.Key(), fields.Value())
		}
	}

	fields = mailHeader.Fields()
	for fields.Next() {
		k := strings.ToLower(fields.Key())
		if strings.HasPrefix(k, "content-") || k == "mime-version" {
			fields.Del()
		}
	}

	// message.New, unlike a struct literal, records the content type on
	// the entity's unexported fields, which MultipartReader requires.
	part, _ := message.New(partHeader, e.Body)
	return mailHeader, part
}

// mergeContent re-attaches mail headers to a transformed content part.
func mergeContent(mailHeader message.Header, part *message.Entity) *message.Entity {
	h := message.Header{Header: mailHeader.Header.Copy()}
	fields := part.Header.Fields()
	for fields.Next() {
		h.Add(fields.Key(), fields.Value())
	}
	return &message.Entity{Header: h, Body: part.Body}
}
