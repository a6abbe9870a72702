package script

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Error codes reported by LoadError.
const (
	ErrCodeParseFailed      = "E004" // YAML or CUE syntax error
	ErrCodeNotFound         = "E005" // File not found or unreadable
	ErrCodeSchema           = "E006" // CUE schema violation
	ErrCodeUnknownFormat    = "E008" // Unrecognized file extension
	ErrCodeInvalidStatement = "E201" // Statement cannot be built
)

// LoadError represents an error met while loading a description file.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads a description file, choosing the decoder by extension:
// .cue for CUE, .yaml, .yml and .json for YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("failed to read description file: %v", err), Err: err}
	}

	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		f, err = ParseCUE(path, data)
	case ".yaml", ".yml", ".json":
		f, err = ParseYAML(data)
	default:
		return nil, &LoadError{Code: ErrCodeUnknownFormat, Message: fmt.Sprintf("unsupported description file %q (want .yaml, .yml, .json or .cue)", path)}
	}
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// ParseYAML decodes a YAML (or JSON) description. Unknown fields are
// rejected.
func ParseYAML(data []byte) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: "empty description file", Err: err}
		}
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("failed to parse YAML: %v", err), Err: err}
	}
	return &f, nil
}

// ParseCUE compiles a CUE description, validates it against the embedded
// schema and decodes the result. filename is used for error positions.
func ParseCUE(filename string, data []byte) (*File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, cueLoadError(ErrCodeParseFailed, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#File")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}

	// Exported JSON keeps field order, which the YAML decoder then
	// preserves in records.
	js, err := unified.MarshalJSON()
	if err != nil {
		return nil, cueLoadError(ErrCodeSchema, err)
	}
	return ParseYAML(js)
}

// cueLoadError converts a CUE error to a LoadError with position info.
func cueLoadError(code string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error(), Err: err}
	}

	// Report the first error, with its position when it has one.
	first := errs[0]
	loadErr := &LoadError{Code: code, Message: first.Error(), Err: err}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
