package pgpmime

import (
	"errors"
	"time"

	pgperrors "github.com/ProtonMail/go-crypto/openpgp/errors"

	"github.com/sealpost/pgpmime-go/internal/pgp"
)

// SignatureStatus is the outcome of checking one signer.
type SignatureStatus int

const (
	// SignatureValid means the signature verified against the signer's key.
	SignatureValid SignatureStatus = iota
	// SignatureInvalid means the check completed and the signature does not
	// match the signed data.
	SignatureInvalid
	// SignatureError means the check itself failed: unknown issuer key,
	// unavailable digest, or an engine error. Err carries the reason.
	SignatureError
)

// String returns the status name.
func (s SignatureStatus) String() string {
	switch s {
	case SignatureValid:
		return "valid"
	case SignatureInvalid:
		return "invalid"
	case SignatureError:
		return "error"
	}
	return "unknown"
}

// Signature is one per-signer verification record.
type Signature struct {
	// KeyID is the issuer key id in uppercase hex, when present.
	KeyID string
	// Fingerprint is the signer's fingerprint, when the signer is known.
	Fingerprint string
	// Emails lists the known signer's bound addresses.
	Emails []string
	// Digest is the digest algorithm the signature used, when mappable.
	Digest DigestAlgo
	// Created is the signature creation time.
	Created time.Time
	// Status is the verification outcome.
	Status SignatureStatus
	// Err carries the reason for SignatureInvalid and SignatureError.
	Err error
}

// SignatureList is the ordered per-signer result of one verify call.
type SignatureList []Signature

// AllValid reports whether the list is non-empty and every record is
// SignatureValid.
func (l SignatureList) AllValid() bool {
	if len(l) == 0 {
		return false
	}
	for _, sig := range l {
		if sig.Status != SignatureValid {
			return false
		}
	}
	return true
}

// signaturesFromReports converts engine reports to the public records.
func signaturesFromReports(reports []pgp.SigReport) SignatureList {
	list := make(SignatureList, 0, len(reports))
	for _, r := range reports {
		sig := Signature{
			KeyID:       pgp.KeyID(r.KeyID),
			Fingerprint: r.Fingerprint,
			Created:     r.CreationTime,
			Err:         r.Err,
		}
		if r.Signer != nil {
			sig.Emails = pgp.Emails(r.Signer)
		}
		if d, err := DigestFromNative(r.Hash); err == nil {
			sig.Digest = d
		}
		switch {
		case r.Err == nil:
			sig.Status = SignatureValid
		case isSignatureMismatch(r.Err):
			sig.Status = SignatureInvalid
		default:
			sig.Status = SignatureError
		}
		list = append(list, sig)
	}
	return list
}

// isSignatureMismatch distinguishes a completed-but-failed check from an
// errored one.
func isSignatureMismatch(err error) bool {
	var sigErr pgperrors.SignatureError
	return errors.As(err, &sigErr)
}
