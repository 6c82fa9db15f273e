package pgp

import (
	"bytes"
	"crypto"
	"fmt"
	"io"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// SigReport is the outcome of checking one signature packet. Err is nil
// for a valid signature; ErrUnknownSigner when the issuer is not in the
// keyring; any other error describes a failed check.
type SigReport struct {
	KeyID        uint64
	Fingerprint  string
	Signer       *openpgp.Entity
	Hash         crypto.Hash
	CreationTime time.Time
	Err          error
}

// VerifyDetached checks the detached signature bytes (armored or binary)
// against signed, one report per signature packet. The returned error is
// non-nil only when the signature bytes themselves cannot be parsed.
func VerifyDetached(keyring openpgp.EntityList, signed, signature []byte) ([]SigReport, error) {
	sigBytes := signature
	if block, err := armor.Decode(bytes.NewReader(signature)); err == nil {
		if block.Type != SignatureBlock {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedArmor, block.Type)
		}
		body, err := io.ReadAll(block.Body)
		if err != nil {
			return nil, fmt.Errorf("read armored signature: %w", err)
		}
		sigBytes = body
	}

	var reports []SigReport
	reader := packet.NewReader(bytes.NewReader(sigBytes))
	for {
		p, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse signature packet: %w", err)
		}
		sig, ok := p.(*packet.Signature)
		if !ok {
			continue
		}
		reports = append(reports, checkSignature(keyring, signed, sig))
	}

	if len(reports) == 0 {
		return nil, ErrNoSignatures
	}
	return reports, nil
}

func checkSignature(keyring openpgp.EntityList, signed []byte, sig *packet.Signature) SigReport {
	report := SigReport{
		Hash:         sig.Hash,
		CreationTime: sig.CreationTime,
	}
	if sig.IssuerKeyId != nil {
		report.KeyID = *sig.IssuerKeyId
	}

	keys := keyring.KeysById(report.KeyID)
	if len(keys) == 0 {
		report.Err = ErrUnknownSigner
		return report
	}

	if !sig.Hash.Available() {
		report.Err = fmt.Errorf("hash %v not available", sig.Hash)
		return report
	}

	// Try each candidate key; the first that validates wins.
	var lastErr error
	for _, key := range keys {
		h := sig.Hash.New()
		h.Write(signed)
		if err := key.PublicKey.VerifySignature(h, sig); err != nil {
			lastErr = err
			continue
		}
		report.Signer = key.Entity
		report.Fingerprint = Fingerprint(key.Entity.PrimaryKey)
		return report
	}

	report.Err = lastErr
	if len(keys) > 0 {
		report.Signer = keys[0].Entity
		report.Fingerprint = Fingerprint(keys[0].Entity.PrimaryKey)
	}
	return report
}
