package pgp

import "errors"

var (
	// ErrNoKeys is returned when key material contains no usable entities.
	ErrNoKeys = errors.New("no keys found")

	// ErrNoPrivateKey is returned when secret-key material lacks private
	// components.
	ErrNoPrivateKey = errors.New("key material contains no private key")

	// ErrNoSignatures is returned when signature bytes contain no
	// signature packets.
	ErrNoSignatures = errors.New("no signature packets found")

	// ErrUnknownSigner is returned for a signature whose issuer key is not
	// in the keyring.
	ErrUnknownSigner = errors.New("signature issuer key not in keyring")

	// ErrUnsupportedArmor is returned when an armored block has an
	// unexpected type.
	ErrUnsupportedArmor = errors.New("unsupported armor block type")
)
