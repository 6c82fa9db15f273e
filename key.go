package pgpmime

import (
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"

	"github.com/sealpost/pgpmime-go/internal/pgp"
)

// Key is one entry in a KeyStore: an OpenPGP entity together with the
// attributes resolution cares about. Keys are read-only once created.
type Key struct {
	// Fingerprint is the primary key fingerprint in uppercase hex.
	Fingerprint string
	// KeyID is the 64-bit key id in uppercase hex.
	KeyID string
	// Emails lists the addresses bound to the key's user ids.
	Emails []string
	// Algorithm is the primary key's public key algorithm.
	Algorithm PubKeyAlgo
	// CanSign reports signing capability.
	CanSign bool
	// CanEncrypt reports encryption capability.
	CanEncrypt bool
	// HasPrivate reports whether private key material is present.
	HasPrivate bool
	// Created is the primary key's creation time, used as the tie-break
	// when several keys resolve for the same address.
	Created time.Time

	entity *openpgp.Entity
}

func newKey(entity *openpgp.Entity) *Key {
	k := &Key{
		Fingerprint: pgp.Fingerprint(entity.PrimaryKey),
		Emails:      pgp.Emails(entity),
		CanSign:     pgp.CanSign(entity),
		CanEncrypt:  pgp.CanEncrypt(entity),
		HasPrivate:  pgp.HasPrivate(entity),
		entity:      entity,
	}
	if entity.PrimaryKey != nil {
		k.KeyID = pgp.KeyID(entity.PrimaryKey.KeyId)
		k.Created = entity.PrimaryKey.CreationTime
		if algo, err := PubKeyFromNative(entity.PrimaryKey.PubKeyAlgo); err == nil {
			k.Algorithm = algo
		}
	}
	return k
}
