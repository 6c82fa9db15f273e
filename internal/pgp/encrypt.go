package pgp

import (
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// Encrypt writes data encrypted to the recipient entities using the given
// symmetric cipher. Armored output is wrapped in a PGP MESSAGE block.
func Encrypt(w io.Writer, recipients openpgp.EntityList, cipher packet.CipherFunction, data io.Reader, armored bool) error {
	if len(recipients) == 0 {
		return ErrNoKeys
	}

	out := w
	var closer io.WriteCloser
	if armored {
		aw, err := armor.Encode(w, MessageBlock, nil)
		if err != nil {
			return fmt.Errorf("armor message: %w", err)
		}
		out = aw
		closer = aw
	}

	config := &packet.Config{DefaultCipher: cipher}
	plaintext, err := openpgp.Encrypt(out, recipients, nil, nil, config)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	if _, err := io.Copy(plaintext, data); err != nil {
		plaintext.Close()
		return fmt.Errorf("encrypt: write plaintext: %w", err)
	}
	if err := plaintext.Close(); err != nil {
		return fmt.Errorf("encrypt: finalize message: %w", err)
	}

	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("encrypt: close armor: %w", err)
		}
	}
	return nil
}
