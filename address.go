package pgpmime

import "strings"

// Address is a mailbox address: an optional display name plus an email.
// A plain Address resolves to any key bound to its email.
type Address struct {
	Name  string
	Email string
}

// Addr is shorthand for constructing an Address.
func Addr(name, email string) Address {
	return Address{Name: name, Email: email}
}

// String renders the address in "Name <email>" form.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// SecureAddress is an Address pinned to an explicit key. Resolution only
// matches keys whose fingerprint (or key id) ends with the pinned value,
// compared case-insensitively.
type SecureAddress struct {
	Address
	// Fingerprint is a fingerprint or key-id suffix in hex.
	Fingerprint string
}

// SecureAddr is shorthand for constructing a SecureAddress.
func SecureAddr(name, email, fingerprint string) SecureAddress {
	return SecureAddress{Address: Address{Name: name, Email: email}, Fingerprint: fingerprint}
}

// Matcher selects keys during resolution. Address and SecureAddress are
// the two implementations: plain email match, and email match pinned to a
// fingerprint suffix.
type Matcher interface {
	matches(k *Key) bool
	identity() string
}

func (a Address) matches(k *Key) bool {
	for _, email := range k.Emails {
		if strings.EqualFold(email, a.Email) {
			return true
		}
	}
	return false
}

func (a Address) identity() string { return a.String() }

func (a SecureAddress) matches(k *Key) bool {
	if !a.Address.matches(k) {
		return false
	}
	pin := strings.ToUpper(a.Fingerprint)
	return strings.HasSuffix(k.Fingerprint, pin) || strings.HasSuffix(k.KeyID, pin)
}

func (a SecureAddress) identity() string {
	return a.Address.String() + " [" + a.Fingerprint + "]"
}
