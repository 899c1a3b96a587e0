package dupelog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// FileHook appends every log entry to a file in a fixed width layout that
// stays readable when several runs share the same log.
type FileHook struct {
	Filename string

	writer *os.File
	levels []logrus.Level
}

// NewFileHook opens (or creates) the log file at location. Entries up to and
// including level are written.
func NewFileHook(location string, level logrus.Level) (*FileHook, error) {
	logwriter, err := os.OpenFile(location, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	var levels []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}

	return &FileHook{
		Filename: location,
		writer:   logwriter,
		levels:   levels,
	}, nil
}

func (hook *FileHook) Fire(entry *logrus.Entry) error {
	b := &bytes.Buffer{}

	fmt.Fprintf(b, "[%-25s %5s] %s", entry.Time.Format(time.RFC3339Nano), entry.Level.String(), entry.Message)

	// Pad so the fields of consecutive lines line up
	for i := b.Len(); i < 120; i++ {
		b.WriteByte(' ')
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')

	_, err := hook.writer.Write(b.Bytes())
	return err
}

func (hook *FileHook) Levels() []logrus.Level {
	return hook.levels
}

// Close closes the underlying log file
func (hook *FileHook) Close() error {
	return hook.writer.Close()
}

// ParseLevel turns the LogLevel configuration value into a logrus level.
// Unknown values fall back to Info.
func ParseLevel(name string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// Setup points the standard logger at out with the given level and, when
// logFile is set, mirrors it to that file. The returned hook is nil when no
// file was requested.
func Setup(out io.Writer, levelName, logFile string) (*FileHook, error) {
	level := ParseLevel(levelName)

	logrus.SetOutput(out)
	logrus.SetLevel(level)
	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	if level == logrus.DebugLevel {
		logrus.Warn("Debug logs include account names and hashes from the inputs")
	}

	if logFile == "" {
		return nil, nil
	}

	hook, err := NewFileHook(logFile, level)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file %s: %w", logFile, err)
	}
	logrus.AddHook(hook)

	return hook, nil
}
