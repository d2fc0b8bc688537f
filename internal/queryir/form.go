package queryir

// FormField names one input of the advanced-filter editor.
type FormField string

const (
	FormFieldType        FormField = "type"
	FormFieldStatus      FormField = "status"
	FormFieldPolicyID    FormField = "policyID"
	FormFieldDateAfter   FormField = "dateAfter"
	FormFieldDateBefore  FormField = "dateBefore"
	FormFieldLessThan    FormField = "lessThan"
	FormFieldGreaterThan FormField = "greaterThan"
	FormFieldExpenseType FormField = "expenseType"
	FormFieldCurrency    FormField = "currency"
	FormFieldMerchant    FormField = "merchant"
	FormFieldDescription FormField = "description"
	FormFieldFrom        FormField = "from"
	FormFieldTo          FormField = "to"
	FormFieldCategory    FormField = "category"
	FormFieldTag         FormField = "tag"
	FormFieldTaxRate     FormField = "taxRate"
	FormFieldCardID      FormField = "cardID"
	FormFieldReportID    FormField = "reportID"
	FormFieldKeyword     FormField = "keyword"
	FormFieldIn          FormField = "in"
)

// FormFields lists every form field in editor order.
var FormFields = []FormField{
	FormFieldType, FormFieldStatus, FormFieldPolicyID,
	FormFieldDateAfter, FormFieldDateBefore, FormFieldLessThan, FormFieldGreaterThan,
	FormFieldExpenseType, FormFieldCurrency, FormFieldMerchant, FormFieldDescription,
	FormFieldFrom, FormFieldTo, FormFieldCategory, FormFieldTag, FormFieldTaxRate,
	FormFieldCardID, FormFieldReportID, FormFieldKeyword, FormFieldIn,
}

// IsList reports whether field holds multiple values.
func (field FormField) IsList() bool {
	return (&SearchAdvancedFiltersForm{}).listField(field) != nil
}

// SearchAdvancedFiltersForm holds the values of the advanced-filter editor.
// Date and amount ranges are split into two bounds each.
type SearchAdvancedFiltersForm struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Status   string `json:"status,omitempty" yaml:"status,omitempty"`
	PolicyID string `json:"policyID,omitempty" yaml:"policyID,omitempty"`

	DateAfter   string `json:"dateAfter,omitempty" yaml:"dateAfter,omitempty"`
	DateBefore  string `json:"dateBefore,omitempty" yaml:"dateBefore,omitempty"`
	LessThan    string `json:"lessThan,omitempty" yaml:"lessThan,omitempty"`
	GreaterThan string `json:"greaterThan,omitempty" yaml:"greaterThan,omitempty"`

	Merchant    string `json:"merchant,omitempty" yaml:"merchant,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ReportID    string `json:"reportID,omitempty" yaml:"reportID,omitempty"`
	Keyword     string `json:"keyword,omitempty" yaml:"keyword,omitempty"`

	ExpenseType []string `json:"expenseType,omitempty" yaml:"expenseType,omitempty"`
	Currency    []string `json:"currency,omitempty" yaml:"currency,omitempty"`
	From        []string `json:"from,omitempty" yaml:"from,omitempty"`
	To          []string `json:"to,omitempty" yaml:"to,omitempty"`
	Category    []string `json:"category,omitempty" yaml:"category,omitempty"`
	Tag         []string `json:"tag,omitempty" yaml:"tag,omitempty"`
	TaxRate     []string `json:"taxRate,omitempty" yaml:"taxRate,omitempty"`
	CardID      []string `json:"cardID,omitempty" yaml:"cardID,omitempty"`
	In          []string `json:"in,omitempty" yaml:"in,omitempty"`
}

// Text returns the value of a single-valued field.
func (f *SearchAdvancedFiltersForm) Text(field FormField) string {
	if p := f.textField(field); p != nil {
		return *p
	}
	return ""
}

// SetText assigns a single-valued field. List fields are ignored.
func (f *SearchAdvancedFiltersForm) SetText(field FormField, value string) {
	if p := f.textField(field); p != nil {
		*p = value
	}
}

// List returns the value of a list field.
func (f *SearchAdvancedFiltersForm) List(field FormField) []string {
	if p := f.listField(field); p != nil {
		return *p
	}
	return nil
}

// SetList assigns a list field. Single-valued fields are ignored.
func (f *SearchAdvancedFiltersForm) SetList(field FormField, values []string) {
	if p := f.listField(field); p != nil {
		*p = values
	}
}

func (f *SearchAdvancedFiltersForm) textField(field FormField) *string {
	switch field {
	case FormFieldType:
		return &f.Type
	case FormFieldStatus:
		return &f.Status
	case FormFieldPolicyID:
		return &f.PolicyID
	case FormFieldDateAfter:
		return &f.DateAfter
	case FormFieldDateBefore:
		return &f.DateBefore
	case FormFieldLessThan:
		return &f.LessThan
	case FormFieldGreaterThan:
		return &f.GreaterThan
	case FormFieldMerchant:
		return &f.Merchant
	case FormFieldDescription:
		return &f.Description
	case FormFieldReportID:
		return &f.ReportID
	case FormFieldKeyword:
		return &f.Keyword
	default:
		return nil
	}
}

func (f *SearchAdvancedFiltersForm) listField(field FormField) *[]string {
	switch field {
	case FormFieldExpenseType:
		return &f.ExpenseType
	case FormFieldCurrency:
		return &f.Currency
	case FormFieldFrom:
		return &f.From
	case FormFieldTo:
		return &f.To
	case FormFieldCategory:
		return &f.Category
	case FormFieldTag:
		return &f.Tag
	case FormFieldTaxRate:
		return &f.TaxRate
	case FormFieldCardID:
		return &f.CardID
	case FormFieldIn:
		return &f.In
	default:
		return nil
	}
}
