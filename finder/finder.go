// Package finder runs the whole audit: it reads the credential dump and the
// crack list, joins them and writes the password reuse report.
package finder

import (
	"io"

	"github.com/pborman/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jmmcatee/dupefinder/common"
	"github.com/jmmcatee/dupefinder/plugins/cracked/potfile"
	"github.com/jmmcatee/dupefinder/plugins/dumps/pwdump"
	"github.com/jmmcatee/dupefinder/report"
	"github.com/jmmcatee/dupefinder/reuse"
)

// Options are the inputs of a single run
type Options struct {
	DumpPath    string
	CrackedPath string

	// OutputPath receives the report. Empty means the stdout writer given to Run.
	OutputPath string

	Config common.Config
}

// Run executes the pipeline. Both inputs are checked before anything is
// parsed and the report file is only created once every group is known.
func Run(opts Options, stdout io.Writer) error {
	logger := log.WithField("run", uuid.New())
	conf := opts.Config

	logger.WithFields(log.Fields{
		"dump":    opts.DumpPath,
		"cracked": opts.CrackedPath,
		"output":  opts.OutputPath,
	}).Debug("Starting run")

	if err := common.CheckInputs(opts.DumpPath, opts.CrackedPath); err != nil {
		return err
	}

	dumpText, err := common.ReadInput(opts.DumpPath)
	if err != nil {
		return err
	}

	crackedText, err := common.ReadInput(opts.CrackedPath)
	if err != nil {
		return err
	}

	accounts, dumpStats := pwdump.Extract(dumpText, pwdump.Options{
		Dedup:               conf.Dedup,
		SkipMachineAccounts: conf.SkipMachineAccounts,
		EnabledOnly:         conf.EnabledOnly,
	})
	logger.WithFields(log.Fields{
		"mode":       dumpStats.Mode,
		"records":    dumpStats.Records,
		"skipped":    dumpStats.Skipped,
		"filtered":   dumpStats.Filtered,
		"duplicates": dumpStats.Duplicates,
		"hashes":     dumpStats.Hashes,
	}).Info("Parsed credential dump")

	passwords, crackStats := potfile.Parse(crackedText, potfile.Options{
		DecodeHex: conf.DecodeHex,
		Verify:    conf.VerifyNTLM,
	})
	logger.WithFields(log.Fields{
		"pairs":      crackStats.Pairs,
		"skipped":    crackStats.Skipped,
		"replaced":   crackStats.Replaced,
		"decoded":    crackStats.Decoded,
		"unverified": crackStats.Unverified,
		"hashes":     len(passwords),
	}).Info("Parsed cracked hashes")

	groups := reuse.Build(accounts, passwords, reuse.Options{MinSize: conf.MinGroupSize})

	summary := reuse.Summarize(groups)
	logger.WithFields(log.Fields{
		"groups":   summary.Groups,
		"accounts": summary.Accounts,
		"largest":  summary.Largest,
	}).Info("Grouped accounts by cracked hash")

	renderer := report.NewRenderer(conf.Messages)

	if opts.OutputPath == "" {
		if err := renderer.Render(stdout, groups); err != nil {
			return &common.OutputError{Err: err}
		}
		return nil
	}

	out, err := common.CreateOutput(opts.OutputPath)
	if err != nil {
		return err
	}

	if err := renderer.Render(out, groups); err != nil {
		out.Close()
		return &common.OutputError{Path: opts.OutputPath, Err: err}
	}

	if err := out.Close(); err != nil {
		return &common.OutputError{Path: opts.OutputPath, Err: err}
	}

	logger.WithField("output", opts.OutputPath).Info("Report written")
	return nil
}
