package pgpmime

import (
	"bytes"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/sealpost/pgpmime-go/internal/pgp"
)

// newTestEntity generates a fresh Ed25519 identity with an encryption
// subkey.
func newTestEntity(t *testing.T, name, email string) *openpgp.Entity {
	t.Helper()
	entity, err := openpgp.NewEntity(name, "", email, &packet.Config{
		Algorithm: packet.PubKeyAlgoEdDSA,
	})
	if err != nil {
		t.Fatalf("NewEntity() error = %v", err)
	}
	return entity
}

// publicOnly strips an entity down to its public half by serializing and
// re-reading it.
func publicOnly(t *testing.T, entity *openpgp.Entity) *openpgp.Entity {
	t.Helper()
	var buf bytes.Buffer
	if err := pgp.WriteKeys(&buf, openpgp.EntityList{entity}, false, false); err != nil {
		t.Fatalf("WriteKeys() error = %v", err)
	}
	entities, _, err := pgp.ReadKeys(&buf)
	if err != nil {
		t.Fatalf("ReadKeys() error = %v", err)
	}
	if len(entities) != 1 {
		t.Fatalf("ReadKeys() returned %d entities, want 1", len(entities))
	}
	return entities[0]
}

// entityListOf wraps entities in an engine keyring list.
func entityListOf(entities ...*openpgp.Entity) openpgp.EntityList {
	return openpgp.EntityList(entities)
}

// newTestContext builds a context whose store holds the given entities
// with their secret material.
func newTestContext(t *testing.T, entities ...*openpgp.Entity) *Context {
	t.Helper()
	ctx := NewContext()
	if len(entities) > 0 {
		if _, err := ctx.Keys().ImportSecretEntities(entities); err != nil {
			t.Fatalf("ImportSecretEntities() error = %v", err)
		}
	}
	return ctx
}

// mustSigningKey resolves the signing key for email or fails the test.
func mustSigningKey(t *testing.T, ctx *Context, email string) *Key {
	t.Helper()
	key, err := ctx.Keys().SigningKey(Addr("", email))
	if err != nil {
		t.Fatalf("SigningKey(%q) error = %v", email, err)
	}
	return key
}

// mustPublicKeys resolves encryption keys for the emails or fails the
// test.
func mustPublicKeys(t *testing.T, ctx *Context, emails ...string) []*Key {
	t.Helper()
	addrs := make([]Matcher, 0, len(emails))
	for _, email := range emails {
		addrs = append(addrs, Addr("", email))
	}
	keys, err := ctx.Keys().LookupPublicKeys(addrs...)
	if err != nil {
		t.Fatalf("LookupPublicKeys(%v) error = %v", emails, err)
	}
	return keys
}
