package pgpmime

// ContextOption configures a Context at construction.
type ContextOption func(*Context)

// WithKeyStore makes the context use an existing key store instead of an
// empty one, so several contexts can share one keyring under external
// synchronization.
func WithKeyStore(store *KeyStore) ContextOption {
	return func(c *Context) {
		if store != nil {
			c.store = store
		}
	}
}

// WithDigestPreferences replaces the digest negotiation order. Entries
// without an engine implementation are dropped; an empty result keeps the
// default order.
func WithDigestPreferences(prefs ...DigestAlgo) ContextOption {
	return func(c *Context) {
		kept := make([]DigestAlgo, 0, len(prefs))
		for _, d := range prefs {
			if _, err := NativeDigest(d); err == nil {
				kept = append(kept, d)
			}
		}
		if len(kept) > 0 {
			c.digestPrefs = kept
		}
	}
}

// WithCipherPreferences replaces the cipher negotiation order. Entries
// without an engine implementation are dropped; an empty result keeps the
// default order.
func WithCipherPreferences(prefs ...CipherAlgo) ContextOption {
	return func(c *Context) {
		kept := make([]CipherAlgo, 0, len(prefs))
		for _, cf := range prefs {
			if _, err := NativeCipher(cf); err == nil {
				kept = append(kept, cf)
			}
		}
		if len(kept) > 0 {
			c.cipherPrefs = kept
		}
	}
}
