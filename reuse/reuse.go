// Package reuse joins the accounts of a dump with the cracked plaintexts and
// orders the resulting password reuse groups.
package reuse

import (
	"sort"

	"github.com/jmmcatee/dupefinder/common"
)

// Group is a set of accounts sharing one cracked NT hash
type Group struct {
	Hash     string
	Password string
	Accounts []string
}

// Size is the number of accounts in the group
func (g Group) Size() int {
	return len(g.Accounts)
}

// Options controls which groups are kept
type Options struct {
	// MinSize drops groups with fewer accounts. Values below 1 keep every group.
	MinSize int
}

// Build keeps the hashes present in both mappings and returns one group per
// hash, largest groups first and ties broken by ascending hash.
func Build(accounts common.HashToAccounts, passwords common.HashToPassword, opts Options) []Group {
	groups := []Group{}

	for hash, users := range accounts {
		pw, ok := passwords[hash]
		if !ok {
			continue
		}

		if len(users) < opts.MinSize {
			continue
		}

		groups = append(groups, Group{
			Hash:     hash,
			Password: pw,
			Accounts: append([]string(nil), users...),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return less(groups[i], groups[j])
	})

	return groups
}

func less(a, b Group) bool {
	if a.Size() != b.Size() {
		return a.Size() > b.Size()
	}

	return a.Hash < b.Hash
}

// Summary totals a list of groups
type Summary struct {
	Groups   int
	Accounts int
	Largest  int
}

// Summarize counts the groups and the accounts they cover
func Summarize(groups []Group) Summary {
	var s Summary
	s.Groups = len(groups)

	for _, g := range groups {
		s.Accounts += g.Size()
		if g.Size() > s.Largest {
			s.Largest = g.Size()
		}
	}

	return s
}
