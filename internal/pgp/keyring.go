package pgp

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// Armor block types used for key material.
const (
	PublicKeyBlock  = "PGP PUBLIC KEY BLOCK"
	PrivateKeyBlock = "PGP PRIVATE KEY BLOCK"
	SignatureBlock  = "PGP SIGNATURE"
	MessageBlock    = "PGP MESSAGE"
)

// ReadKeys parses key material from r, accepting either ASCII-armored or
// binary keyring bytes. It reports whether the input was armored.
func ReadKeys(r io.Reader) (openpgp.EntityList, bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("read key material: %w", err)
	}

	if block, err := armor.Decode(bytes.NewReader(data)); err == nil {
		switch block.Type {
		case PublicKeyBlock, PrivateKeyBlock:
			entities, err := openpgp.ReadKeyRing(block.Body)
			if err != nil {
				return nil, true, fmt.Errorf("parse armored keyring: %w", err)
			}
			return entities, true, nil
		default:
			return nil, true, fmt.Errorf("%w: %q", ErrUnsupportedArmor, block.Type)
		}
	}

	entities, err := openpgp.ReadKeyRing(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("parse keyring: %w", err)
	}
	return entities, false, nil
}

// WriteKeys serializes entities to w as a keyring bundle. Private material
// is included only when private is set; armored output wraps the bundle in
// the matching armor block.
func WriteKeys(w io.Writer, entities openpgp.EntityList, armored, private bool) error {
	if len(entities) == 0 {
		return ErrNoKeys
	}

	out := w
	var closer io.WriteCloser
	if armored {
		blockType := PublicKeyBlock
		if private {
			blockType = PrivateKeyBlock
		}
		aw, err := armor.Encode(w, blockType, nil)
		if err != nil {
			return fmt.Errorf("armor keys: %w", err)
		}
		out = aw
		closer = aw
	}

	for _, entity := range entities {
		var err error
		if private {
			if entity.PrivateKey == nil {
				return ErrNoPrivateKey
			}
			err = entity.SerializePrivate(out, nil)
		} else {
			err = entity.Serialize(out)
		}
		if err != nil {
			return fmt.Errorf("serialize key %s: %w", Fingerprint(entity.PrimaryKey), err)
		}
	}

	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close armor: %w", err)
		}
	}
	return nil
}

// Fingerprint formats a primary key fingerprint as uppercase hex.
func Fingerprint(pk *packet.PublicKey) string {
	if pk == nil {
		return ""
	}
	return strings.ToUpper(hex.EncodeToString(pk.Fingerprint))
}

// KeyID formats a 64-bit key id as uppercase hex.
func KeyID(id uint64) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("%016X", id)
}

// Emails collects the email addresses bound to an entity's user ids.
func Emails(entity *openpgp.Entity) []string {
	emails := make([]string, 0, len(entity.Identities))
	for _, ident := range entity.Identities {
		if ident.UserId == nil || ident.UserId.Email == "" {
			continue
		}
		emails = append(emails, ident.UserId.Email)
	}
	return emails
}

// CanSign reports whether the entity carries a signing-capable key.
func CanSign(entity *openpgp.Entity) bool {
	if entity.PrimaryKey != nil && entity.PrimaryKey.PubKeyAlgo.CanSign() {
		return true
	}
	for _, sub := range entity.Subkeys {
		if sub.PublicKey != nil && sub.PublicKey.PubKeyAlgo.CanSign() {
			return true
		}
	}
	return false
}

// CanEncrypt reports whether the entity carries an encryption-capable key.
func CanEncrypt(entity *openpgp.Entity) bool {
	if entity.PrimaryKey != nil && entity.PrimaryKey.PubKeyAlgo.CanEncrypt() {
		return true
	}
	for _, sub := range entity.Subkeys {
		if sub.PublicKey != nil && sub.PublicKey.PubKeyAlgo.CanEncrypt() {
			return true
		}
	}
	return false
}

// HasPrivate reports whether the entity carries any private key material.
func HasPrivate(entity *openpgp.Entity) bool {
	if entity.PrivateKey != nil && entity.PrivateKey.PrivateKey != nil {
		return true
	}
	for _, sub := range entity.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.PrivateKey != nil {
			return true
		}
	}
	return false
}
