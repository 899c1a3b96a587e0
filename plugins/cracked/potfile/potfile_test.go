package potfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmmcatee/dupefinder/common"
)

const ntShared = "deadbeefdeadbeefdeadbeefdeadbeef"

func TestParseLine(t *testing.T) {
	pair, ok := ParseLine("DEADBEEFDEADBEEFDEADBEEFDEADBEEF:Summer2023")
	require.True(t, ok)
	assert.Equal(t, ntShared, pair.Hash)
	assert.Equal(t, "Summer2023", pair.Password)

	pair, ok = ParseLine(" " + ntShared + " :pass word \r")
	require.True(t, ok)
	assert.Equal(t, ntShared, pair.Hash)
	assert.Equal(t, "pass word ", pair.Password, "plaintext keeps its spaces")

	pair, ok = ParseLine(ntShared + ":")
	require.True(t, ok)
	assert.Equal(t, "", pair.Password)

	bad := []string{
		"",
		"no colon here",
		"# " + ntShared + ":comment",
		ntShared[:31] + ":short",
		ntShared + "00:long",
		"$NT$" + ntShared + ":prefixed",
	}
	for _, line := range bad {
		_, ok := ParseLine(line)
		assert.False(t, ok, "expected %q to be skipped", line)
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	lines := []string{
		ntShared + ":Summer2023",
		ntShared + ":a:b:c",
		ntShared + "::leading colon",
		ntShared + ":trailing colon:",
		ntShared + ":üñí¢ødé",
		ntShared + ":#not a comment",
	}

	for _, line := range lines {
		pair, ok := ParseLine(line)
		require.True(t, ok, line)
		assert.Equal(t, line, pair.String())
	}
}

func TestParse(t *testing.T) {
	text := strings.Join([]string{
		"# hashcat -m 1000 --show",
		"8846F7EAEE8FB117AD06BDD830B7586C:password",
		"",
		"garbage",
		ntShared + ":first",
		strings.ToUpper(ntShared) + ":second:with:colons",
		"31d6cfe0d16ae931b73c59d7e0c089c0:",
	}, "\r\n")

	cracked, stats := Parse(text, Options{})

	assert.Len(t, cracked, 3)
	assert.Equal(t, "password", cracked["8846f7eaee8fb117ad06bdd830b7586c"])
	assert.Equal(t, "second:with:colons", cracked[ntShared], "last line wins")
	assert.Equal(t, "", cracked["31d6cfe0d16ae931b73c59d7e0c089c0"])

	assert.Equal(t, 6, stats.Lines)
	assert.Equal(t, 4, stats.Pairs)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 1, stats.Replaced)
}

func TestParseDecodeHex(t *testing.T) {
	text := ntShared + ":$HEX[50617373776f72643a31]\n" +
		"8846f7eaee8fb117ad06bdd830b7586c:$HEX[zz]\n"

	cracked, _ := Parse(text, Options{})
	assert.Equal(t, "$HEX[50617373776f72643a31]", cracked[ntShared], "left alone unless asked")

	cracked, stats := Parse(text, Options{DecodeHex: true})
	assert.Equal(t, "Password:1", cracked[ntShared])
	assert.Equal(t, "$HEX[zz]", cracked["8846f7eaee8fb117ad06bdd830b7586c"])
	assert.Equal(t, 1, stats.Decoded)
}

func TestParseVerify(t *testing.T) {
	text := "8846F7EAEE8FB117AD06BDD830B7586C:password\n" +
		ntShared + ":password\n" +
		"31d6cfe0d16ae931b73c59d7e0c089c0:$HEX[]\n"

	cracked, stats := Parse(text, Options{Verify: true, DecodeHex: true})

	assert.Equal(t, common.HashToPassword{
		"8846f7eaee8fb117ad06bdd830b7586c": "password",
		"31d6cfe0d16ae931b73c59d7e0c089c0": "",
	}, cracked)
	assert.Equal(t, 1, stats.Unverified)
}
