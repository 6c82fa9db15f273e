package pgp

import (
	"crypto"
	"fmt"
	"io"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	// Register RIPEMD-160 with crypto.Hash for ripemd160 signatures.
	_ "golang.org/x/crypto/ripemd160"
)

// DetachSign writes a detached signature over data to w using the given
// hash. Armored output is wrapped in a PGP SIGNATURE block.
func DetachSign(w io.Writer, signer *openpgp.Entity, data io.Reader, hash crypto.Hash, armored bool) error {
	config := &packet.Config{DefaultHash: hash}
	var err error
	if armored {
		err = openpgp.ArmoredDetachSign(w, signer, data, config)
	} else {
		err = openpgp.DetachSign(w, signer, data, config)
	}
	if err != nil {
		return fmt.Errorf("detach sign: %w", err)
	}
	return nil
}
