package pgpmime

import (
	"bytes"
	"io"
	"iter"

	"github.com/ProtonMail/go-crypto/openpgp"

	"github.com/sealpost/pgpmime-go/internal/pgp"
)

// KeyData is an in-memory exported key bundle, tagged with the
// key-exchange content type.
type KeyData struct {
	ContentType string
	Data        []byte
}

// KeyStore holds the public and secret keys known to one Context. Keys
// are added by import and replaced wholesale when a newer copy of the
// same fingerprint arrives; sign, encrypt, decrypt, and verify never
// mutate the store.
//
// A KeyStore is not safe for concurrent use; see the package
// documentation.
type KeyStore struct {
	keys  []*Key
	byFpr map[string]int
}

// NewKeyStore returns an empty key store.
func NewKeyStore() *KeyStore {
	return &KeyStore{byFpr: make(map[string]int)}
}

// Len reports the number of keys in the store.
func (s *KeyStore) Len() int {
	return len(s.keys)
}

// Import merges public key material (armored or binary) into the store
// and reports how many entities were added or replaced.
func (s *KeyStore) Import(r io.Reader) (int, error) {
	if r == nil {
		return 0, nilArgument("r")
	}
	entities, _, err := pgp.ReadKeys(r)
	if err != nil {
		return 0, err
	}
	return s.ImportEntities(entities)
}

// ImportSecret merges secret key material into the store. It fails fast
// when any entity in the material lacks private components.
func (s *KeyStore) ImportSecret(r io.Reader) (int, error) {
	if r == nil {
		return 0, nilArgument("r")
	}
	entities, _, err := pgp.ReadKeys(r)
	if err != nil {
		return 0, err
	}
	return s.ImportSecretEntities(entities)
}

// ImportEntities merges engine-native entities into the store.
func (s *KeyStore) ImportEntities(entities openpgp.EntityList) (int, error) {
	if entities == nil {
		return 0, nilArgument("entities")
	}
	if len(entities) == 0 {
		return 0, pgp.ErrNoKeys
	}
	for _, entity := range entities {
		s.merge(newKey(entity))
	}
	return len(entities), nil
}

// ImportSecretEntities merges engine-native entities that must all carry
// private key material.
func (s *KeyStore) ImportSecretEntities(entities openpgp.EntityList) (int, error) {
	if entities == nil {
		return 0, nilArgument("entities")
	}
	if len(entities) == 0 {
		return 0, pgp.ErrNoKeys
	}
	for _, entity := range entities {
		if !pgp.HasPrivate(entity) {
			return 0, pgp.ErrNoPrivateKey
		}
	}
	for _, entity := range entities {
		s.merge(newKey(entity))
	}
	return len(entities), nil
}

func (s *KeyStore) merge(k *Key) {
	if i, ok := s.byFpr[k.Fingerprint]; ok {
		s.keys[i] = k
		return
	}
	s.byFpr[k.Fingerprint] = len(s.keys)
	s.keys = append(s.keys, k)
}

// PublicKeys iterates the store's keys, filtered to those matching addr
// when addr is non-nil. The sequence is restartable and bounded by the
// store size.
func (s *KeyStore) PublicKeys(addr Matcher) iter.Seq[*Key] {
	return func(yield func(*Key) bool) {
		for _, k := range s.keys {
			if addr != nil && !addr.matches(k) {
				continue
			}
			if !yield(k) {
				return
			}
		}
	}
}

// SecretKeys iterates the store's keys that carry private material,
// filtered to those matching addr when addr is non-nil.
func (s *KeyStore) SecretKeys(addr Matcher) iter.Seq[*Key] {
	return func(yield func(*Key) bool) {
		for _, k := range s.keys {
			if !k.HasPrivate {
				continue
			}
			if addr != nil && !addr.matches(k) {
				continue
			}
			if !yield(k) {
				return
			}
		}
	}
}

// Export writes the public parts of the selected keys to w as a keyring
// bundle, armored when armored is set. With no addresses, every key in
// the store is exported.
func (s *KeyStore) Export(w io.Writer, armored bool, addrs ...Matcher) error {
	if w == nil {
		return nilArgument("w")
	}
	entities, err := s.selectEntities(addrs)
	if err != nil {
		return err
	}
	return pgp.WriteKeys(w, entities, armored, false)
}

// ExportData exports the selected keys to an in-memory bundle tagged
// application/pgp-keys. The bundle bytes are binary keyring data.
func (s *KeyStore) ExportData(addrs ...Matcher) (*KeyData, error) {
	entities, err := s.selectEntities(addrs)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pgp.WriteKeys(&buf, entities, false, false); err != nil {
		return nil, err
	}
	return &KeyData{ContentType: ContentTypePGPKeys, Data: buf.Bytes()}, nil
}

func (s *KeyStore) selectEntities(addrs []Matcher) (openpgp.EntityList, error) {
	if len(addrs) == 0 {
		entities := make(openpgp.EntityList, 0, len(s.keys))
		for _, k := range s.keys {
			entities = append(entities, k.entity)
		}
		return entities, nil
	}

	keys, err := s.LookupPublicKeys(addrs...)
	if err != nil {
		return nil, err
	}
	entities := make(openpgp.EntityList, 0, len(keys))
	for _, k := range keys {
		entities = append(entities, k.entity)
	}
	return entities, nil
}

// entityRing assembles the engine keyring for decrypt operations.
func (s *KeyStore) entityRing() openpgp.EntityList {
	entities := make(openpgp.EntityList, 0, len(s.keys))
	for _, k := range s.keys {
		entities = append(entities, k.entity)
	}
	return entities
}
