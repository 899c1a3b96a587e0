package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/jmmcatee/dupefinder/common"
	"github.com/jmmcatee/dupefinder/common/log"
	"github.com/jmmcatee/dupefinder/finder"
)

const usageHeader = `dupefinder - find accounts sharing a cracked NTLM hash

Usage:
  dupefinder [options] SECRETS_DUMP CRACKED

  SECRETS_DUMP  secretsdump.py output, or a file of pwdump lines (user:rid:lmhash:nthash:::)
  CRACKED       NTLM:password lines, e.g. the output of hashcat -m 1000 --show

Only groups with a known password are printed, largest groups first.

Options:
`

const usageFooter = `
Examples:
  dupefinder DC_dump.txt passwords_from_hashcat.txt
  dupefinder DC_dump.txt passwords_from_hashcat.txt -o result.txt
  dupefinder -conf /etc/dupefinder.conf -skip-machine DC_dump.txt cracked.txt
`

type cliOptions struct {
	dumpPath    string
	crackedPath string
	outputPath  string
	confPath    string

	// set holds the flags given on the command line, they override the
	// configuration file
	set map[string]bool

	logLevel    string
	logFile     string
	dedup       bool
	skipMachine bool
	enabledOnly bool
	decodeHex   bool
	verify      bool
	minSize     int
}

// parseArgs reads the command line. Flags may come before, between or after
// the two positional arguments.
func parseArgs(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("dupefinder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
		fmt.Fprint(stderr, usageFooter)
	}

	fs.StringVar(&opts.outputPath, "o", "", "File to save the result to instead of stdout")
	fs.StringVar(&opts.confPath, "conf", "", "Configuration file to use")
	fs.StringVar(&opts.logLevel, "loglevel", "", "Log level: Debug, Info, Warn, Error")
	fs.StringVar(&opts.logFile, "logfile", "", "Also append logs to this file")
	fs.BoolVar(&opts.dedup, "dedup", false, "Record an account only once per hash")
	fs.BoolVar(&opts.skipMachine, "skip-machine", false, "Ignore machine accounts (names ending with $)")
	fs.BoolVar(&opts.enabledOnly, "enabled-only", false, "Ignore accounts secretsdump reports as disabled")
	fs.BoolVar(&opts.decodeHex, "decode-hex", false, "Decode $HEX[...] plaintexts")
	fs.BoolVar(&opts.verify, "verify", false, "Drop cracked pairs whose plaintext does not hash to the NTLM")
	fs.IntVar(&opts.minSize, "min", 1, "Only report groups with at least this many accounts")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return opts, err
		}

		rest = fs.Args()
		if len(rest) == 0 {
			break
		}

		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	if len(positional) != 2 {
		fs.Usage()
		return opts, fmt.Errorf("expected 2 positional arguments, got %d", len(positional))
	}
	opts.dumpPath = positional[0]
	opts.crackedPath = positional[1]

	if opts.minSize < 1 {
		return opts, fmt.Errorf("-min must be at least 1, got %d", opts.minSize)
	}

	opts.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	return opts, nil
}

// config loads the configuration file, if any, and applies the flags that
// were given explicitly on top of it.
func (opts cliOptions) config() (common.Config, error) {
	conf := common.DefaultConfig()

	if opts.confPath != "" {
		var err error
		conf, err = common.LoadConfig(opts.confPath)
		if err != nil {
			return conf, err
		}
	}

	if opts.set["loglevel"] {
		conf.LogLevel = opts.logLevel
	}
	if opts.set["logfile"] {
		conf.LogFile = opts.logFile
	}
	if opts.set["dedup"] {
		conf.Dedup = opts.dedup
	}
	if opts.set["skip-machine"] {
		conf.SkipMachineAccounts = opts.skipMachine
	}
	if opts.set["enabled-only"] {
		conf.EnabledOnly = opts.enabledOnly
	}
	if opts.set["decode-hex"] {
		conf.DecodeHex = opts.decodeHex
	}
	if opts.set["verify"] {
		conf.VerifyNTLM = opts.verify
	}
	if opts.set["min"] {
		conf.MinGroupSize = opts.minSize
	}

	return conf, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "ERROR: "+err.Error())
		return 1
	}

	conf, err := opts.config()
	if err != nil {
		fmt.Fprintln(stderr, "ERROR: "+err.Error())
		return 1
	}

	hook, err := dupelog.Setup(stderr, conf.LogLevel, conf.LogFile)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR: "+err.Error())
		return 1
	}
	if hook != nil {
		defer hook.Close()
	}

	err = finder.Run(finder.Options{
		DumpPath:    opts.dumpPath,
		CrackedPath: opts.crackedPath,
		OutputPath:  opts.outputPath,
		Config:      conf,
	}, stdout)
	if err != nil {
		log.WithField("error", err).Error("Unable to build the report")
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
