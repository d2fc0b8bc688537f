package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/queryir"
)

// Scenario defines a conformance scenario: a directory snapshot, a list of
// queries to push through the pipeline, and assertions across them.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Directory is an inline directory snapshot.
	Directory *directory.Snapshot `yaml:"directory,omitempty"`

	// DirectoryFile is a snapshot file loaded with directory.Load.
	// LoadScenario resolves it relative to the scenario file.
	DirectoryFile string `yaml:"directory_file,omitempty"`

	// Cases are evaluated in order.
	Cases []Case `yaml:"cases"`

	// Assertions are evaluated after every case has run.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Case is one query, given either as a query string or as form values.
type Case struct {
	Name  string                             `yaml:"name"`
	Query string                             `yaml:"query,omitempty"`
	Form  *queryir.SearchAdvancedFiltersForm `yaml:"form,omitempty"`

	// Save writes the built query to the saved-search registry.
	Save bool `yaml:"save,omitempty"`

	// Expect holds per-case expectations. Unset fields are not checked.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation lists the outcomes checked for one case.
type Expectation struct {
	Valid        *bool                              `yaml:"valid,omitempty"`
	Input        string                             `yaml:"input,omitempty"`
	Canonical    string                             `yaml:"canonical,omitempty"`
	Display      string                             `yaml:"display,omitempty"`
	Standardized string                             `yaml:"standardized,omitempty"`
	Hash         *uint32                            `yaml:"hash,omitempty"`
	Canned       *bool                              `yaml:"canned,omitempty"`
	Form         *queryir.SearchAdvancedFiltersForm `yaml:"form,omitempty"`
	Duplicate    *bool                              `yaml:"duplicate,omitempty"`
}

// Assertion validates a property across cases or of the final registry.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Cases names the cases the assertion applies to.
	Cases []string `yaml:"cases,omitempty"`

	// Count is the expected number of saved searches (saved_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertSameHash              = "same_hash"
	AssertDistinctHash          = "distinct_hash"
	AssertRoundTrip             = "round_trip"
	AssertStandardizeIdempotent = "standardize_idempotent"
	AssertSavedCount            = "saved_count"
)

// LoadScenario reads and validates a scenario YAML file.
// Unknown fields are rejected. A relative directory_file is resolved
// against the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.DirectoryFile != "" && !filepath.IsAbs(scenario.DirectoryFile) {
		scenario.DirectoryFile = filepath.Join(filepath.Dir(path), scenario.DirectoryFile)
	}
	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Directory != nil && s.DirectoryFile != "" {
		return fmt.Errorf("directory and directory_file are mutually exclusive")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		names[c.Name] = true
		if c.Form != nil && c.Query != "" {
			return fmt.Errorf("cases[%d]: query and form are mutually exclusive", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a, names); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion, cases map[string]bool) error {
	for _, name := range a.Cases {
		if !cases[name] {
			return fmt.Errorf("assertions[%d]: unknown case %q", index, name)
		}
	}

	switch a.Type {
	case AssertSameHash, AssertDistinctHash:
		if len(a.Cases) < 2 {
			return fmt.Errorf("assertions[%d]: %s needs at least two cases", index, a.Type)
		}
	case AssertRoundTrip, AssertStandardizeIdempotent:
	case AssertSavedCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for saved_count", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
