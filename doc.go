// Package pgpmime implements the OpenPGP security layer for MIME messages
// as described by RFC 1847 and RFC 3156: detached-signature
// (multipart/signed) and encrypted-envelope (multipart/encrypted)
// structures, backed by an OpenPGP keyring.
//
// The package is organized around a [Context], which owns an in-memory
// [KeyStore] and the algorithm preferences for one logical session:
//
//	ctx := pgpmime.NewContext()
//	if _, err := ctx.Keys().ImportSecret(keyReader); err != nil {
//	    log.Fatal(err)
//	}
//
//	signer, err := ctx.Keys().SigningKey(pgpmime.Addr("Alice", "alice@example.com"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signed, err := pgpmime.SignPart(ctx, signer, pgpmime.DigestSHA256, body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Addresses and key resolution
//
// Keys are resolved from mailbox addresses. A plain [Address] matches any
// key bound to its email; a [SecureAddress] additionally pins the match to
// an explicit fingerprint or key-id suffix, so that a compromised or
// duplicated user id cannot redirect mail to the wrong key.
//
// # Multipart structures
//
// [SignPart] and [EncryptPart] produce the two canonical two-child
// structures over emersion/go-message entities; [VerifyPart] and
// [DecryptPart] reverse them. Body parts are canonicalized to CRLF line
// endings before signing, and re-canonicalized identically before
// verification, so both sides hash the same bytes.
//
// Verification reports per-signer results: one bad or unknown signer does
// not abort the call, it is recorded in the returned [SignatureList].
//
// # Concurrency
//
// A Context is not safe for concurrent use. Use one Context per goroutine
// or serialize access externally; key import in particular must not run
// concurrently with resolution. Detector instances in the detect
// subpackage are independent of each other.
package pgpmime
