// Package pgp wraps the ProtonMail/go-crypto OpenPGP engine with the small
// operation set the public package needs: keyring parsing, entity
// inspection, detached signing, encryption to a recipient set, message
// decryption, and per-signature verification of detached signatures.
//
// The package deals in engine types (openpgp.Entity, packet.Config) and
// raw bytes only. Address resolution, algorithm policy, and MIME structure
// all live above it.
//
// Detached signatures are verified packet by packet rather than through
// openpgp.CheckDetachedSignature, so that a structure carrying several
// signature packets yields one report per signer instead of stopping at
// the first match.
package pgp
