package reuse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmmcatee/dupefinder/common"
)

func hashOf(c byte) string {
	return strings.Repeat(string(c), common.NTLM_HASH_LENGTH)
}

func users(prefix string, n int) []string {
	var out []string
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s%d", prefix, i))
	}
	return out
}

func TestBuildIntersection(t *testing.T) {
	accounts := common.HashToAccounts{
		hashOf('a'): users("a", 2),
		hashOf('b'): users("b", 1),
		hashOf('c'): users("c", 4),
	}
	passwords := common.HashToPassword{
		hashOf('a'): "Winter2024!",
		hashOf('c'): "Password1",
		hashOf('d'): "orphan",
	}

	groups := Build(accounts, passwords, Options{})

	require.Len(t, groups, 2)
	for _, g := range groups {
		_, inAccounts := accounts[g.Hash]
		_, inPasswords := passwords[g.Hash]
		assert.True(t, inAccounts && inPasswords, "group %s is not in both inputs", g.Hash)
	}

	assert.Equal(t, Group{Hash: hashOf('c'), Password: "Password1", Accounts: users("c", 4)}, groups[0])
	assert.Equal(t, Group{Hash: hashOf('a'), Password: "Winter2024!", Accounts: users("a", 2)}, groups[1])
}

func TestBuildOrder(t *testing.T) {
	accounts := common.HashToAccounts{
		hashOf('f'): users("f", 1),
		hashOf('3'): users("t", 3),
		hashOf('e'): users("e", 2),
		hashOf('1'): users("o", 1),
		hashOf('b'): users("b", 2),
	}
	passwords := common.HashToPassword{}
	for h := range accounts {
		passwords[h] = "x"
	}

	want := []string{hashOf('3'), hashOf('b'), hashOf('e'), hashOf('1'), hashOf('f')}

	// Map iteration order changes between runs, the output order must not
	for i := 0; i < 20; i++ {
		groups := Build(accounts, passwords, Options{})

		var got []string
		for _, g := range groups {
			got = append(got, g.Hash)
		}
		require.Equal(t, want, got)
	}
}

func TestBuildEmpty(t *testing.T) {
	groups := Build(common.HashToAccounts{hashOf('a'): {"alice"}}, common.HashToPassword{hashOf('b'): "x"}, Options{})
	assert.NotNil(t, groups)
	assert.Empty(t, groups)

	assert.Empty(t, Build(common.HashToAccounts{}, common.HashToPassword{}, Options{}))
}

func TestBuildMinSize(t *testing.T) {
	accounts := common.HashToAccounts{
		hashOf('a'): users("a", 1),
		hashOf('b'): users("b", 2),
	}
	passwords := common.HashToPassword{hashOf('a'): "x", hashOf('b'): "y"}

	groups := Build(accounts, passwords, Options{MinSize: 2})
	require.Len(t, groups, 1)
	assert.Equal(t, hashOf('b'), groups[0].Hash)

	assert.Len(t, Build(accounts, passwords, Options{MinSize: 0}), 2)
}

func TestBuildDoesNotShareAccounts(t *testing.T) {
	accounts := common.HashToAccounts{hashOf('a'): {"alice", "bob"}}
	groups := Build(accounts, common.HashToPassword{hashOf('a'): "x"}, Options{})

	accounts[hashOf('a')][0] = "mallory"
	assert.Equal(t, []string{"alice", "bob"}, groups[0].Accounts)
}

func TestSummarize(t *testing.T) {
	groups := []Group{
		{Hash: hashOf('a'), Accounts: users("a", 5)},
		{Hash: hashOf('b'), Accounts: users("b", 2)},
	}

	assert.Equal(t, Summary{Groups: 2, Accounts: 7, Largest: 5}, Summarize(groups))
	assert.Equal(t, Summary{}, Summarize(nil))
}
