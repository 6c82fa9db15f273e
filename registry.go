package pgpmime

import "sync"

// The default-context registry holds at most one Cryptor at a time for
// callers that decrypt without an explicit context. Registration is an
// explicit call with a single-owner lifecycle; a later SetDefault
// replaces the earlier registration.

var (
	defaultMu      sync.RWMutex
	defaultCryptor Cryptor
)

// SetDefault registers c as the process-wide default crypto context.
// Passing nil clears the registration.
func SetDefault(c Cryptor) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCryptor = c
}

// Default returns the registered default context, or ErrNoDefaultContext
// when none is registered.
func Default() (Cryptor, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultCryptor == nil {
		return nil, ErrNoDefaultContext
	}
	return defaultCryptor, nil
}
