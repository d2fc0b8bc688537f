package directory

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for snapshot loading.
const (
	ErrCodeNotFound     = "E101" // Snapshot file missing or unreadable
	ErrCodeUnknownType  = "E102" // Unsupported file extension
	ErrCodeDecodeFailed = "E103" // File content does not match the snapshot shape
)

// LoadError represents an error that occurred while loading a snapshot.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a snapshot from a .yaml, .yml, .json or .cue file.
//
// YAML and JSON files are decoded strictly: unknown fields are errors.
// CUE files are unified with the #Snapshot schema before decoding, so CUE
// constraints and references may be used to author the snapshot.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "reading snapshot", Err: err}
	}

	var snap *Snapshot
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		snap, err = DecodeYAML(data)
	case ".json":
		snap, err = decodeJSON(data)
	case ".cue":
		snap, err = DecodeCUE(data, path)
	default:
		return nil, &LoadError{Code: ErrCodeUnknownType, Path: path, Message: fmt.Sprintf("unsupported snapshot format %q", ext)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: "decoding snapshot", Err: err}
	}
	return snap, nil
}

// DecodeYAML decodes a snapshot from YAML. Unknown fields are rejected.
func DecodeYAML(data []byte) (*Snapshot, error) {
	snap := &Snapshot{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(snap); err != nil {
		// An empty document is an empty snapshot.
		if errors.Is(err, io.EOF) {
			return snap, nil
		}
		return nil, err
	}
	return snap, nil
}

func decodeJSON(data []byte) (*Snapshot, error) {
	snap := &Snapshot{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// DecodeCUE compiles CUE source, validates it against the #Snapshot schema
// and decodes it. filename is used in error positions only.
func DecodeCUE(data []byte, filename string) (*Snapshot, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Snapshot"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling snapshot schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", filename, err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating %s: %w", filename, err)
	}

	snap := &Snapshot{}
	if err := unified.Decode(snap); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}
	return snap, nil
}
