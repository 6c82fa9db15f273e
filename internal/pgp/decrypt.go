package pgp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
)

// Decrypt reads an OpenPGP message (armored or binary) and returns the
// literal data decrypted with the private keys in keyring.
func Decrypt(data io.Reader, keyring openpgp.EntityList) ([]byte, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read ciphertext: %w", err)
	}

	body := io.Reader(bytes.NewReader(raw))
	if block, err := armor.Decode(bytes.NewReader(raw)); err == nil {
		if block.Type != MessageBlock {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedArmor, block.Type)
		}
		body = block.Body
	}

	md, err := openpgp.ReadMessage(body, keyring, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}

	plaintext, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return nil, fmt.Errorf("read literal data: %w", err)
	}
	return plaintext, nil
}
