package common

import (
	"errors"
	"os"
)

var (
	ErrInputNotFound = errors.New("input file not found or unreadable")
	ErrOutputWrite   = errors.New("unable to write output")
)

// InputError is returned when one of the input files can not be read
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return "unable to read input file " + e.Path + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func (e *InputError) Is(target error) bool {
	return target == ErrInputNotFound
}

// OutputError is returned when the report can not be created or written
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	path := e.Path
	if path == "" {
		path = "standard output"
	}

	return "unable to write report to " + path + ": " + e.Err.Error()
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

func (e *OutputError) Is(target error) bool {
	return target == ErrOutputWrite
}

// CheckInputs makes sure every path exists and can be opened for reading
// before any of them is parsed.
func CheckInputs(paths ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return &InputError{Path: path, Err: err}
		}

		if info.IsDir() {
			return &InputError{Path: path, Err: errors.New("is a directory")}
		}

		f, err := os.Open(path)
		if err != nil {
			return &InputError{Path: path, Err: err}
		}
		f.Close()
	}

	return nil
}

// ReadInput returns the whole content of an input file
func ReadInput(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &InputError{Path: path, Err: err}
	}

	return string(b), nil
}

// CreateOutput creates or truncates the report file at path
func CreateOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &OutputError{Path: path, Err: err}
	}

	return f, nil
}
