package common

import (
	"fmt"
	"strconv"

	ini "github.com/vaughan0/go-ini"
)

const (
	DEFAULT_SHARED_PLURAL   = "have the password and NTLM -"
	DEFAULT_SHARED_SINGULAR = "has the password and NTLM -"
	DEFAULT_NO_MATCHES      = "No matching entries with known passwords were found."
)

// Messages holds every user facing string of the report
type Messages struct {
	// SharedPlural follows the accounts of a group with more than one member
	SharedPlural string
	// SharedSingular follows the account of a single member group
	SharedSingular string
	// NoMatches is the whole report when nothing was found
	NoMatches string
}

// DefaultMessages returns the built-in English report strings
func DefaultMessages() Messages {
	return Messages{
		SharedPlural:   DEFAULT_SHARED_PLURAL,
		SharedSingular: DEFAULT_SHARED_SINGULAR,
		NoMatches:      DEFAULT_NO_MATCHES,
	}
}

// Config is the content of the [General] and [Messages] sections of the
// configuration file.
type Config struct {
	LogLevel string
	LogFile  string

	Dedup               bool
	SkipMachineAccounts bool
	EnabledOnly         bool
	DecodeHex           bool
	VerifyNTLM          bool
	MinGroupSize        int

	Messages Messages
}

// DefaultConfig is used when no configuration file is given
func DefaultConfig() Config {
	return Config{
		LogLevel:     "Info",
		MinGroupSize: 1,
		Messages:     DefaultMessages(),
	}
}

// LoadConfig reads an INI configuration file. Keys that are missing keep
// their default value.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()

	confFile, err := ini.LoadFile(path)
	if err != nil {
		return conf, fmt.Errorf("unable to load configuration file %s: %w", path, err)
	}

	genConf := confFile.Section("General")

	if v, ok := genConf["LogLevel"]; ok {
		conf.LogLevel = StripQuotes(v)
	}
	if v, ok := genConf["LogFile"]; ok {
		conf.LogFile = StripQuotes(v)
	}

	boolKeys := []struct {
		key string
		dst *bool
	}{
		{"Dedup", &conf.Dedup},
		{"SkipMachineAccounts", &conf.SkipMachineAccounts},
		{"EnabledOnly", &conf.EnabledOnly},
		{"DecodeHex", &conf.DecodeHex},
		{"VerifyNTLM", &conf.VerifyNTLM},
	}
	for _, b := range boolKeys {
		v, ok := genConf[b.key]
		if !ok {
			continue
		}

		parsed, err := strconv.ParseBool(StripQuotes(v))
		if err != nil {
			return conf, fmt.Errorf("invalid value %q for %s in section General: %w", v, b.key, err)
		}
		*b.dst = parsed
	}

	if v, ok := genConf["MinGroupSize"]; ok {
		size, err := strconv.Atoi(StripQuotes(v))
		if err != nil || size < 1 {
			return conf, fmt.Errorf("invalid value %q for MinGroupSize in section General, expected a positive integer", v)
		}
		conf.MinGroupSize = size
	}

	msgConf := confFile.Section("Messages")
	if v := StripQuotes(msgConf["SharedPlural"]); v != "" {
		conf.Messages.SharedPlural = v
	}
	if v := StripQuotes(msgConf["SharedSingular"]); v != "" {
		conf.Messages.SharedSingular = v
	}
	if v := StripQuotes(msgConf["NoMatches"]); v != "" {
		conf.Messages.NoMatches = v
	}

	return conf, nil
}

// StripQuotes removes one pair of matching quotes around a configuration value
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}

	return s
}
