// Package potfile reads the NTLM:password lists printed by hashcat --show
package potfile

import (
	"encoding/hex"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jmmcatee/dupefinder/common"
)

// Options controls how plaintexts are read
type Options struct {
	// DecodeHex turns $HEX[...] plaintexts into the bytes they encode
	DecodeHex bool
	// Verify drops pairs whose plaintext does not hash to the NT hash
	Verify bool
}

// Stats describes what a parse saw
type Stats struct {
	Lines      int
	Pairs      int
	Skipped    int
	Replaced   int
	Decoded    int
	Unverified int
}

// ParseLine splits a crack list line on its first colon. The plaintext is
// kept verbatim, including any further colons.
func ParseLine(line string) (common.CrackedPair, bool) {
	line = strings.TrimRight(line, "\r")

	i := strings.IndexByte(line, ':')
	if i < 0 {
		return common.CrackedPair{}, false
	}

	hash := strings.TrimSpace(line[:i])
	if !common.IsNTLMHash(hash) {
		return common.CrackedPair{}, false
	}

	return common.CrackedPair{
		Hash:     common.NormalizeHash(hash),
		Password: line[i+1:],
	}, true
}

// Parse builds the hash to password mapping from the content of a crack list.
// When a hash is listed more than once the last line wins.
func Parse(text string, opts Options) (common.HashToPassword, Stats) {
	var stats Stats
	cracked := common.HashToPassword{}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++

		pair, ok := ParseLine(line)
		if !ok {
			stats.Skipped++
			continue
		}

		if opts.DecodeHex {
			if decoded, ok := decodeHexPlaintext(pair.Password); ok {
				pair.Password = decoded
				stats.Decoded++
			}
		}

		if opts.Verify && common.NTLM(pair.Password) != pair.Hash {
			log.WithField("hash", pair.Hash).Warn("Plaintext does not match its NTLM hash, ignoring it")
			stats.Unverified++
			continue
		}

		prev, replaced := cracked.Set(pair.Hash, pair.Password)
		if replaced {
			stats.Replaced++
			if prev != pair.Password {
				log.WithField("hash", pair.Hash).Warn("Hash cracked more than once with different plaintexts, keeping the last one")
			}
		}
		stats.Pairs++
	}

	return cracked, stats
}

// decodeHexPlaintext decodes hashcat's $HEX[...] notation. Malformed content
// is left alone.
func decodeHexPlaintext(pw string) (string, bool) {
	if !strings.HasPrefix(pw, "$HEX[") || !strings.HasSuffix(pw, "]") {
		return pw, false
	}

	decoded, err := hex.DecodeString(pw[len("$HEX[") : len(pw)-1])
	if err != nil {
		log.WithField("error", err).Debug("Unable to decode $HEX[] plaintext")
		return pw, false
	}

	return string(decoded), true
}
