// Package pwdump pulls pwdump formatted credentials out of secretsdump.py
// output, or out of a file that already holds only pwdump lines.
package pwdump

import (
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jmmcatee/dupefinder/common"
)

// user:rid:lmhash:nthash::: with an optional secretsdump annotation after the
// last separator, e.g. "(status=Enabled)" or "(pwdLastSet=...)"
const pwdumpLinePattern = `(?m)^[^:\r\n]+:[0-9]+:[0-9a-fA-F]{32}:[0-9a-fA-F]{32}:::.*$`

const statusPattern = `\(status=([A-Za-z]+)\)`

// Options controls which credential records end up in the mapping
type Options struct {
	// Dedup records a given account only once per hash
	Dedup bool
	// SkipMachineAccounts drops accounts ending with $
	SkipMachineAccounts bool
	// EnabledOnly drops records annotated with (status=Disabled)
	EnabledOnly bool
}

// Stats describes what an extraction saw
type Stats struct {
	Mode       string
	Lines      int
	Records    int
	Skipped    int
	Filtered   int
	Duplicates int
	Hashes     int
}

type extractor struct {
	line   *regexp.Regexp
	status *regexp.Regexp
	opts   Options
}

func newExtractor(opts Options) *extractor {
	return &extractor{
		line:   regexp.MustCompile(pwdumpLinePattern),
		status: regexp.MustCompile(statusPattern),
		opts:   opts,
	}
}

// Extract builds the hash to accounts mapping from the content of a dump.
//
// Lines shaped like user:rid:lmhash:nthash::: are located anywhere in the
// text first. When none is found, every line of the text is parsed as a
// pwdump line instead, which also accepts lines without the trailing
// separators or with a non hex LM column. Anything else is skipped.
func Extract(text string, opts Options) (common.HashToAccounts, Stats) {
	e := newExtractor(opts)
	stats := Stats{Mode: common.MODE_STRICT}

	lines := e.line.FindAllString(text, -1)
	if len(lines) == 0 {
		log.Debug("No pwdump lines found in the dump output, parsing it as a list of pwdump lines")

		stats.Mode = common.MODE_FALLBACK
		lines = strings.Split(text, "\n")
	}

	byHash := common.HashToAccounts{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++

		rec, ok := e.parseLine(line)
		if !ok {
			log.WithField("line", strings.TrimSpace(line)).Debug("Skipping line that is not a pwdump entry")
			stats.Skipped++
			continue
		}
		stats.Records++

		if e.opts.SkipMachineAccounts && rec.IsMachineAccount() {
			stats.Filtered++
			continue
		}

		if e.opts.EnabledOnly && rec.IsDisabled() {
			stats.Filtered++
			continue
		}

		if !byHash.Add(rec.NTHash, rec.Account, e.opts.Dedup) {
			log.WithFields(log.Fields{
				"account": rec.Account,
				"hash":    rec.NTHash,
			}).Debug("Duplicate account for hash")
			stats.Duplicates++
		}
	}
	stats.Hashes = len(byHash)

	return byHash, stats
}

// parseLine turns a single pwdump line into a CredentialRecord
func (e *extractor) parseLine(line string) (common.CredentialRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return common.CredentialRecord{}, false
	}

	// user:444:lmhash:ntlmhash::: (status=Enabled)
	//   0   1     2      3     4
	parts := strings.SplitN(line, ":", 5)
	if len(parts) < 4 {
		return common.CredentialRecord{}, false
	}

	account := parts[0]
	rid := parts[1]
	nt := strings.TrimSpace(parts[3])

	if account == "" || !isDigits(rid) || !common.IsNTLMHash(nt) {
		return common.CredentialRecord{}, false
	}

	rec := common.CredentialRecord{
		Account: account,
		RID:     rid,
		LMHash:  strings.TrimSpace(parts[2]),
		NTHash:  common.NormalizeHash(nt),
	}

	if len(parts) == 5 {
		if m := e.status.FindStringSubmatch(parts[4]); m != nil {
			rec.Status = m[1]
		}
	}

	return rec, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
