package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/searchquery/internal/directory"
)

// Snapshot returns a small directory snapshot covering every directory kind.
// Each call returns a fresh copy.
//
//	accounts:   12 alice@example.com, 30 bob@example.com, 44 (no login)
//	cards:      100 Chase, 200 Amex
//	reports:    R1 "Q3 travel"
//	tax rates:  VAT {id_TAX_1, id_TAX_2}, Standard {id_TAX_1}, Exempt {id_TAX_3}
//	currencies: USD, EUR
//	policies:   P1 categories Travel, tags Alpha; P2 categories Meals
func Snapshot() *directory.Snapshot {
	return &directory.Snapshot{
		Accounts: map[string]directory.PersonalDetails{
			"12": {Login: "alice@example.com", DisplayName: "Alice"},
			"30": {Login: "bob@example.com", DisplayName: "Bob"},
			"44": {DisplayName: "No Login"},
		},
		Cards: map[string]directory.Card{
			"100": {Bank: "Chase"},
			"200": {Bank: "Amex"},
		},
		Reports: map[string]directory.Report{
			"R1": {Name: "Q3 travel"},
		},
		TaxRates: map[string][]string{
			"VAT":      {"id_TAX_1", "id_TAX_2"},
			"Standard": {"id_TAX_1"},
			"Exempt":   {"id_TAX_3"},
		},
		Currencies: map[string]directory.Currency{
			"USD": {Name: "US Dollar", Symbol: "$"},
			"EUR": {Name: "Euro", Symbol: "€"},
		},
		Policies: map[string]directory.Policy{
			"P1": {Categories: []string{"Travel"}, Tags: []string{"Alpha"}},
			"P2": {Categories: []string{"Meals"}},
		},
	}
}

// Directories returns Snapshot().Directories().
func Directories() directory.Directories {
	return Snapshot().Directories()
}

// WriteSnapshotYAML writes Snapshot() to dir/directory.yaml and returns the
// file's path.
func WriteSnapshotYAML(t testing.TB, dir string) string {
	t.Helper()
	data, err := yaml.Marshal(Snapshot())
	require.NoError(t, err)
	path := filepath.Join(dir, "directory.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
