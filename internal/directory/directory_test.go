package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSnapshot() *Snapshot {
	return &Snapshot{
		Accounts: map[string]PersonalDetails{
			"12": {Login: "alice@example.com", DisplayName: "Alice"},
			"7":  {Login: "ALICE@example.com"},
			"30": {Login: "bob@example.com"},
		},
		Cards: map[string]Card{
			"900": {Bank: "Chase"},
			"100": {Bank: "Chase"},
			"200": {Bank: "Amex"},
		},
		Reports: map[string]Report{
			"R1": {Name: "Q3 travel"},
		},
		TaxRates: map[string][]string{
			"VAT":      {"id_TAX_1", "id_TAX_2"},
			"Standard": {"id_TAX_1"},
		},
		Currencies: map[string]Currency{
			"USD": {Name: "US Dollar", Symbol: "$"},
		},
		Policies: map[string]Policy{
			"P2": {Categories: []string{"Travel", "Meals"}, Tags: []string{"Project A"}},
			"P1": {Categories: []string{"Meals", "Office"}},
		},
	}
}

func TestSnapshot_PersonalDetails(t *testing.T) {
	dirs := fixtureSnapshot().Directories()

	pd, ok := dirs.LookupPersonalDetails("12")
	require.True(t, ok)
	assert.Equal(t, "12", pd.AccountID, "empty AccountID defaults to map key")
	assert.Equal(t, "alice@example.com", pd.Login)

	_, ok = dirs.LookupPersonalDetails("missing")
	assert.False(t, ok)
}

func TestSnapshot_LoginLookupIsCaseInsensitiveAndDeterministic(t *testing.T) {
	dirs := fixtureSnapshot().Directories()

	// "12" sorts before "7", so it wins the tie on every run.
	for i := 0; i < 20; i++ {
		pd, ok := dirs.LookupLogin("Alice@Example.com")
		require.True(t, ok)
		assert.Equal(t, "12", pd.AccountID)
	}

	_, ok := dirs.LookupLogin("")
	assert.False(t, ok)
}

func TestSnapshot_Cards(t *testing.T) {
	dirs := fixtureSnapshot().Directories()

	card, ok := dirs.LookupCard("200")
	require.True(t, ok)
	assert.Equal(t, Card{CardID: "200", Bank: "Amex"}, card)

	card, ok = dirs.LookupCardByBank("Chase")
	require.True(t, ok)
	assert.Equal(t, "100", card.CardID, "lowest card ID wins")

	_, ok = dirs.LookupCardByBank("Wells")
	assert.False(t, ok)
}

func TestSnapshot_TaxRates(t *testing.T) {
	snap := fixtureSnapshot()
	dirs := snap.Directories()

	ids, ok := dirs.LookupTaxRateIDs("VAT")
	require.True(t, ok)
	assert.Equal(t, []string{"id_TAX_1", "id_TAX_2"}, ids)

	ids[0] = "mutated"
	assert.Equal(t, "id_TAX_1", snap.TaxRates["VAT"][0], "returned slice must be a copy")

	assert.Equal(t, []string{"Standard", "VAT"}, dirs.LookupTaxRateNames("id_TAX_1"))
	assert.True(t, dirs.HasTaxRateID("id_TAX_2"))
	assert.False(t, dirs.HasTaxRateID("id_TAX_3"))
}

func TestSnapshot_PolicyNames(t *testing.T) {
	dirs := fixtureSnapshot().Directories()

	assert.Equal(t, []string{"Travel", "Meals"}, dirs.CategoryNames("P2"))
	assert.Equal(t, []string{"Meals", "Office", "Travel"}, dirs.CategoryNames(""))
	assert.Equal(t, []string{"Project A"}, dirs.TagNames(""))
	assert.Empty(t, dirs.TagNames("P1"))
}

func TestDirectories_ZeroValueIsEmpty(t *testing.T) {
	var dirs Directories

	_, ok := dirs.LookupPersonalDetails("1")
	assert.False(t, ok)
	_, ok = dirs.LookupLogin("a@b.c")
	assert.False(t, ok)
	_, ok = dirs.LookupCard("1")
	assert.False(t, ok)
	_, ok = dirs.LookupCardByBank("Chase")
	assert.False(t, ok)
	_, ok = dirs.LookupReport("R1")
	assert.False(t, ok)
	_, ok = dirs.LookupTaxRateIDs("VAT")
	assert.False(t, ok)
	assert.Nil(t, dirs.LookupTaxRateNames("id"))
	assert.False(t, dirs.HasTaxRateID("id"))
	assert.False(t, dirs.HasCurrency("USD"))
	assert.Nil(t, dirs.CategoryNames(""))
	assert.Nil(t, dirs.TagNames("P1"))

	var snap *Snapshot
	assert.Equal(t, Directories{}, snap.Directories())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "dirs.yaml", `
personalDetails:
  "12":
    login: alice@example.com
cards:
  "100":
    bank: Chase
taxRates:
  VAT: [id_TAX_1]
currencies:
  USD: {name: US Dollar}
policies:
  P1:
    categories: [Meals]
`)

	snap, err := Load(path)
	require.NoError(t, err)

	dirs := snap.Directories()
	pd, ok := dirs.LookupLogin("alice@example.com")
	require.True(t, ok)
	assert.Equal(t, "12", pd.AccountID)
	assert.True(t, dirs.HasCurrency("USD"))
	assert.Equal(t, []string{"Meals"}, dirs.CategoryNames("P1"))
}

func TestLoad_YAMLRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "dirs.yml", "accounts: {}\n")

	_, err := Load(path)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeDecodeFailed, loadErr.Code)
}

func TestLoad_EmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Snapshot{}, snap)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "dirs.json", `{"reports": {"R1": {"name": "Q3 travel"}}}`)

	snap, err := Load(path)
	require.NoError(t, err)

	report, ok := snap.Directories().LookupReport("R1")
	require.True(t, ok)
	assert.Equal(t, Report{ReportID: "R1", Name: "Q3 travel"}, report)
}

func TestLoad_CUE(t *testing.T) {
	path := writeFile(t, "dirs.cue", `
_bank: "Chase"
cards: {
	"100": bank: _bank
	"101": bank: _bank
}
taxRates: VAT: ["id_TAX_1", "id_TAX_2"]
policies: P1: tags: ["Project A"]
`)

	snap, err := Load(path)
	require.NoError(t, err)

	dirs := snap.Directories()
	card, ok := dirs.LookupCardByBank("Chase")
	require.True(t, ok)
	assert.Equal(t, "100", card.CardID)
	assert.Equal(t, []string{"Project A"}, dirs.TagNames("P1"))
	ids, ok := dirs.LookupTaxRateIDs("VAT")
	require.True(t, ok)
	assert.Len(t, ids, 2)
}

func TestLoad_CUESchemaViolation(t *testing.T) {
	path := writeFile(t, "dirs.cue", `cards: "100": bank: 42`)

	_, err := Load(path)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeDecodeFailed, loadErr.Code)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)

	path := writeFile(t, "dirs.toml", "")
	_, err = Load(path)
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeUnknownType, loadErr.Code)
	assert.Contains(t, err.Error(), ".toml")
}
