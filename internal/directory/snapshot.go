package directory

import (
	"maps"
	"slices"
	"strings"
)

// Policy holds the category and tag names one policy defines.
type Policy struct {
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Snapshot is a map-backed, read-only set of directories.
//
// Map keys are identifiers (account ID for Accounts, card ID, report ID, currency code,
// policy ID); TaxRates maps a tax-rate name to its identifiers. Record ID
// fields left empty default to the map key.
//
// All lookups iterate in sorted key order, so ties (two cards from the same
// bank, two accounts whose logins differ only in case) resolve the same way
// on every run. A Snapshot must not be modified while in use.
type Snapshot struct {
	Accounts   map[string]PersonalDetails `json:"personalDetails,omitempty" yaml:"personalDetails,omitempty"`
	Cards      map[string]Card            `json:"cards,omitempty" yaml:"cards,omitempty"`
	Reports    map[string]Report          `json:"reports,omitempty" yaml:"reports,omitempty"`
	TaxRates   map[string][]string        `json:"taxRates,omitempty" yaml:"taxRates,omitempty"`
	Currencies map[string]Currency        `json:"currencies,omitempty" yaml:"currencies,omitempty"`
	Policies   map[string]Policy          `json:"policies,omitempty" yaml:"policies,omitempty"`
}

// Directories exposes s through the Directories bundle.
func (s *Snapshot) Directories() Directories {
	if s == nil {
		return Directories{}
	}
	return Directories{
		PersonalDetails: s,
		Cards:           s,
		Reports:         s,
		TaxRates:        s,
		Currencies:      s,
		Categories:      policyCategories{s},
		Tags:            policyTags{s},
	}
}

// PersonalDetails implements PersonalDetailsList.
func (s *Snapshot) PersonalDetails(accountID string) (PersonalDetails, bool) {
	pd, ok := s.Accounts[accountID]
	if !ok {
		return PersonalDetails{}, false
	}
	if pd.AccountID == "" {
		pd.AccountID = accountID
	}
	return pd, true
}

// PersonalDetailsByLogin implements PersonalDetailsList.
// Logins compare case-insensitively.
func (s *Snapshot) PersonalDetailsByLogin(login string) (PersonalDetails, bool) {
	if login == "" {
		return PersonalDetails{}, false
	}
	for _, id := range slices.Sorted(maps.Keys(s.Accounts)) {
		if strings.EqualFold(s.Accounts[id].Login, login) {
			return s.PersonalDetails(id)
		}
	}
	return PersonalDetails{}, false
}

// Card implements CardList.
func (s *Snapshot) Card(cardID string) (Card, bool) {
	card, ok := s.Cards[cardID]
	if !ok {
		return Card{}, false
	}
	if card.CardID == "" {
		card.CardID = cardID
	}
	return card, true
}

// CardByBank implements CardList.
func (s *Snapshot) CardByBank(bank string) (Card, bool) {
	if bank == "" {
		return Card{}, false
	}
	for _, id := range slices.Sorted(maps.Keys(s.Cards)) {
		if s.Cards[id].Bank == bank {
			return s.Card(id)
		}
	}
	return Card{}, false
}

// Report implements ReportList.
func (s *Snapshot) Report(reportID string) (Report, bool) {
	report, ok := s.Reports[reportID]
	if !ok {
		return Report{}, false
	}
	if report.ReportID == "" {
		report.ReportID = reportID
	}
	return report, true
}

// TaxRateIDs implements TaxRateList.
func (s *Snapshot) TaxRateIDs(name string) ([]string, bool) {
	ids, ok := s.TaxRates[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(ids), true
}

// TaxRateNames implements TaxRateList. Names are returned sorted.
func (s *Snapshot) TaxRateNames(taxRateID string) []string {
	var names []string
	for _, name := range slices.Sorted(maps.Keys(s.TaxRates)) {
		if slices.Contains(s.TaxRates[name], taxRateID) {
			names = append(names, name)
		}
	}
	return names
}

// HasTaxRateID implements TaxRateList.
func (s *Snapshot) HasTaxRateID(taxRateID string) bool {
	for _, ids := range s.TaxRates {
		if slices.Contains(ids, taxRateID) {
			return true
		}
	}
	return false
}

// Currency implements CurrencyList.
func (s *Snapshot) Currency(code string) (Currency, bool) {
	currency, ok := s.Currencies[code]
	if !ok {
		return Currency{}, false
	}
	if currency.Code == "" {
		currency.Code = code
	}
	return currency, true
}

// policyCategories adapts a Snapshot's categories to PolicyNameList.
type policyCategories struct{ s *Snapshot }

func (p policyCategories) Names(policyID string) []string {
	return slices.Clone(p.s.Policies[policyID].Categories)
}

func (p policyCategories) AllNames() []string {
	return p.s.unionPolicyNames(func(pol Policy) []string { return pol.Categories })
}

// policyTags adapts a Snapshot's tags to PolicyNameList.
type policyTags struct{ s *Snapshot }

func (p policyTags) Names(policyID string) []string {
	return slices.Clone(p.s.Policies[policyID].Tags)
}

func (p policyTags) AllNames() []string {
	return p.s.unionPolicyNames(func(pol Policy) []string { return pol.Tags })
}

// unionPolicyNames returns the distinct names across policies in policy ID order.
func (s *Snapshot) unionPolicyNames(names func(Policy) []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range slices.Sorted(maps.Keys(s.Policies)) {
		for _, name := range names(s.Policies[id]) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
