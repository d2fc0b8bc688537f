package directory

// PersonalDetails describes one account.
type PersonalDetails struct {
	AccountID   string `json:"accountID" yaml:"accountID"`
	Login       string `json:"login,omitempty" yaml:"login,omitempty"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// Card describes one payment card.
type Card struct {
	CardID string `json:"cardID" yaml:"cardID"`
	Bank   string `json:"bank,omitempty" yaml:"bank,omitempty"`
}

// Report describes one expense report.
type Report struct {
	ReportID string `json:"reportID" yaml:"reportID"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Currency describes one currency.
type Currency struct {
	Code   string `json:"code" yaml:"code"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
}

// PersonalDetailsList resolves accounts by identifier or login.
type PersonalDetailsList interface {
	PersonalDetails(accountID string) (PersonalDetails, bool)
	PersonalDetailsByLogin(login string) (PersonalDetails, bool)
}

// CardList resolves cards by identifier or bank name.
type CardList interface {
	Card(cardID string) (Card, bool)
	CardByBank(bank string) (Card, bool)
}

// ReportList resolves reports by identifier.
type ReportList interface {
	Report(reportID string) (Report, bool)
}

// TaxRateList maps tax-rate names to the identifiers that carry them.
// One name may be used by several policies, each with its own identifier.
type TaxRateList interface {
	TaxRateIDs(name string) ([]string, bool)
	TaxRateNames(taxRateID string) []string
	HasTaxRateID(taxRateID string) bool
}

// CurrencyList resolves currencies by code.
type CurrencyList interface {
	Currency(code string) (Currency, bool)
}

// PolicyNameList lists category or tag names per policy.
type PolicyNameList interface {
	// Names returns the names defined by one policy.
	Names(policyID string) []string
	// AllNames returns the names defined across every policy.
	AllNames() []string
}

// Directories bundles the directories one conversion reads.
// A nil field behaves as an empty directory.
type Directories struct {
	PersonalDetails PersonalDetailsList
	Cards           CardList
	Reports         ReportList
	TaxRates        TaxRateList
	Currencies      CurrencyList
	Categories      PolicyNameList
	Tags            PolicyNameList
}

// LookupPersonalDetails resolves an account identifier.
func (d Directories) LookupPersonalDetails(accountID string) (PersonalDetails, bool) {
	if d.PersonalDetails == nil {
		return PersonalDetails{}, false
	}
	return d.PersonalDetails.PersonalDetails(accountID)
}

// LookupLogin resolves a login to its account.
func (d Directories) LookupLogin(login string) (PersonalDetails, bool) {
	if d.PersonalDetails == nil {
		return PersonalDetails{}, false
	}
	return d.PersonalDetails.PersonalDetailsByLogin(login)
}

// LookupCard resolves a card identifier.
func (d Directories) LookupCard(cardID string) (Card, bool) {
	if d.Cards == nil {
		return Card{}, false
	}
	return d.Cards.Card(cardID)
}

// LookupCardByBank resolves a bank name to a card.
func (d Directories) LookupCardByBank(bank string) (Card, bool) {
	if d.Cards == nil {
		return Card{}, false
	}
	return d.Cards.CardByBank(bank)
}

// LookupReport resolves a report identifier.
func (d Directories) LookupReport(reportID string) (Report, bool) {
	if d.Reports == nil {
		return Report{}, false
	}
	return d.Reports.Report(reportID)
}

// LookupTaxRateIDs resolves a tax-rate name to its identifiers.
func (d Directories) LookupTaxRateIDs(name string) ([]string, bool) {
	if d.TaxRates == nil {
		return nil, false
	}
	return d.TaxRates.TaxRateIDs(name)
}

// LookupTaxRateNames returns every tax-rate name whose identifiers include taxRateID.
func (d Directories) LookupTaxRateNames(taxRateID string) []string {
	if d.TaxRates == nil {
		return nil
	}
	return d.TaxRates.TaxRateNames(taxRateID)
}

// HasTaxRateID reports whether any tax-rate name carries taxRateID.
func (d Directories) HasTaxRateID(taxRateID string) bool {
	return d.TaxRates != nil && d.TaxRates.HasTaxRateID(taxRateID)
}

// HasCurrency reports whether code is a known currency.
func (d Directories) HasCurrency(code string) bool {
	if d.Currencies == nil {
		return false
	}
	_, ok := d.Currencies.Currency(code)
	return ok
}

// CategoryNames returns the categories of policyID, or of every policy when
// policyID is empty.
func (d Directories) CategoryNames(policyID string) []string {
	return policyNames(d.Categories, policyID)
}

// TagNames returns the tags of policyID, or of every policy when policyID is empty.
func (d Directories) TagNames(policyID string) []string {
	return policyNames(d.Tags, policyID)
}

func policyNames(list PolicyNameList, policyID string) []string {
	if list == nil {
		return nil
	}
	if policyID == "" {
		return list.AllNames()
	}
	return list.Names(policyID)
}
