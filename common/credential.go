package common

import (
	"strings"
)

// CredentialRecord is one pwdump line: user:rid:lmhash:nthash:::
type CredentialRecord struct {
	Account string
	RID     string
	LMHash  string
	NTHash  string

	// Status is the value of the "(status=...)" annotation secretsdump adds
	// with -user-status. Empty when the line has none.
	Status string
}

// IsMachineAccount reports whether the record belongs to a computer account
func (c CredentialRecord) IsMachineAccount() bool {
	return strings.HasSuffix(c.Account, "$")
}

// IsDisabled reports whether the dump marked the account as disabled
func (c CredentialRecord) IsDisabled() bool {
	return strings.EqualFold(c.Status, STATUS_DISABLED)
}

// CrackedPair is one hash:plaintext line of a crack list
type CrackedPair struct {
	Hash     string
	Password string
}

func (p CrackedPair) String() string {
	return p.Hash + ":" + p.Password
}

// HashToAccounts maps a normalized NT hash to the accounts using it, in the
// order they were first seen.
type HashToAccounts map[string][]string

// Add appends account to the list of hash. With dedup set, an account already
// recorded under the same hash is not added again and false is returned.
func (m HashToAccounts) Add(hash, account string, dedup bool) bool {
	key := NormalizeHash(hash)

	if dedup {
		for _, a := range m[key] {
			if a == account {
				return false
			}
		}
	}

	m[key] = append(m[key], account)
	return true
}

// Accounts returns the number of account entries across all hashes
func (m HashToAccounts) Accounts() int {
	var count int
	for _, users := range m {
		count += len(users)
	}

	return count
}

// HashToPassword maps a normalized NT hash to its recovered plaintext
type HashToPassword map[string]string

// Set stores password for hash, replacing any earlier value. The previous
// value is returned when there was one.
func (m HashToPassword) Set(hash, password string) (previous string, replaced bool) {
	key := NormalizeHash(hash)

	previous, replaced = m[key]
	m[key] = password

	return previous, replaced
}

// Lookup returns the plaintext for hash in any letter case
func (m HashToPassword) Lookup(hash string) (string, bool) {
	pw, ok := m[NormalizeHash(hash)]
	return pw, ok
}
