package pgpmime

// CanSign reports whether at least one key resolving for addr carries
// private signing material.
func (s *KeyStore) CanSign(addr Matcher) (bool, error) {
	if addr == nil {
		return false, nilArgument("addr")
	}
	for k := range s.SecretKeys(addr) {
		if k.CanSign {
			return true, nil
		}
	}
	return false, nil
}

// CanEncrypt reports whether at least one key resolving for addr is
// encryption capable.
func (s *KeyStore) CanEncrypt(addr Matcher) (bool, error) {
	if addr == nil {
		return false, nilArgument("addr")
	}
	for k := range s.PublicKeys(addr) {
		if k.CanEncrypt {
			return true, nil
		}
	}
	return false, nil
}

// SigningKey resolves addr to the signing key that would be used for it:
// the most recently created secret key with signing capability among the
// matches.
func (s *KeyStore) SigningKey(addr Matcher) (*Key, error) {
	if addr == nil {
		return nil, nilArgument("addr")
	}
	var best *Key
	for k := range s.SecretKeys(addr) {
		if !k.CanSign {
			continue
		}
		if best == nil || k.Created.After(best.Created) {
			best = k
		}
	}
	if best == nil {
		return nil, &KeyNotFoundError{Address: addr.identity()}
	}
	return best, nil
}

// LookupPublicKeys resolves each address independently to an
// encryption-capable public key and returns the combined set. An empty
// address list is a usage error, never a vacuous success; the first
// address that resolves to nothing fails the whole call.
func (s *KeyStore) LookupPublicKeys(addrs ...Matcher) ([]*Key, error) {
	if len(addrs) == 0 {
		return nil, emptyArgument("addrs")
	}
	keys := make([]*Key, 0, len(addrs))
	seen := make(map[string]bool, len(addrs))
	for _, addr := range addrs {
		if addr == nil {
			return nil, nilArgument("addrs")
		}
		var found *Key
		for k := range s.PublicKeys(addr) {
			if !k.CanEncrypt {
				continue
			}
			if found == nil || k.Created.After(found.Created) {
				found = k
			}
		}
		if found == nil {
			return nil, &KeyNotFoundError{Address: addr.identity()}
		}
		if !seen[found.Fingerprint] {
			seen[found.Fingerprint] = true
			keys = append(keys, found)
		}
	}
	return keys, nil
}
