package queryir

import "slices"

// FilterKey names a searchable attribute.
type FilterKey string

const (
	FilterKeyDate        FilterKey = "date"
	FilterKeyAmount      FilterKey = "amount"
	FilterKeyExpenseType FilterKey = "expenseType"
	FilterKeyCurrency    FilterKey = "currency"
	FilterKeyMerchant    FilterKey = "merchant"
	FilterKeyDescription FilterKey = "description"
	FilterKeyFrom        FilterKey = "from"
	FilterKeyTo          FilterKey = "to"
	FilterKeyCategory    FilterKey = "category"
	FilterKeyTag         FilterKey = "tag"
	FilterKeyTaxRate     FilterKey = "taxRate"
	FilterKeyCardID      FilterKey = "cardID"
	FilterKeyReportID    FilterKey = "reportID"
	FilterKeyKeyword     FilterKey = "keyword"
	FilterKeyIn          FilterKey = "in"
)

// FilterKeys lists every filter key in serialization order.
var FilterKeys = []FilterKey{
	FilterKeyDate,
	FilterKeyAmount,
	FilterKeyExpenseType,
	FilterKeyCurrency,
	FilterKeyMerchant,
	FilterKeyDescription,
	FilterKeyFrom,
	FilterKeyTo,
	FilterKeyCategory,
	FilterKeyTag,
	FilterKeyTaxRate,
	FilterKeyCardID,
	FilterKeyReportID,
	FilterKeyKeyword,
	FilterKeyIn,
}

// ParseFilterKey returns the filter key named s.
func ParseFilterKey(s string) (FilterKey, bool) {
	k := FilterKey(s)
	if slices.Contains(FilterKeys, k) {
		return k, true
	}
	return "", false
}

func (k FilterKey) String() string {
	return string(k)
}

// RootKey names a top-level query field that is not a filter.
type RootKey string

const (
	RootKeyPolicyID  RootKey = "policyID"
	RootKeyType      RootKey = "type"
	RootKeyStatus    RootKey = "status"
	RootKeySortBy    RootKey = "sortBy"
	RootKeySortOrder RootKey = "sortOrder"
)

// RootKeys lists the root keys in serialization order.
var RootKeys = []RootKey{
	RootKeyPolicyID,
	RootKeyType,
	RootKeyStatus,
	RootKeySortBy,
	RootKeySortOrder,
}

// ParseRootKey returns the root key named s.
func ParseRootKey(s string) (RootKey, bool) {
	k := RootKey(s)
	if slices.Contains(RootKeys, k) {
		return k, true
	}
	return "", false
}

// DataType is the kind of object a search returns.
type DataType string

const (
	DataTypeExpense DataType = "expense"
	DataTypeInvoice DataType = "invoice"
	DataTypeTrip    DataType = "trip"
	DataTypeChat    DataType = "chat"
)

// DataTypes lists every data type.
var DataTypes = []DataType{DataTypeExpense, DataTypeInvoice, DataTypeTrip, DataTypeChat}

// StatusAll matches every status of any data type.
const StatusAll = "all"

// statusFamilies holds the statuses each data type accepts.
var statusFamilies = map[DataType][]string{
	DataTypeExpense: {StatusAll, "drafts", "outstanding", "approved", "paid"},
	DataTypeInvoice: {StatusAll, "outstanding", "paid"},
	DataTypeTrip:    {StatusAll, "current", "past"},
	DataTypeChat:    {StatusAll, "unread", "sent", "attachments", "links", "pinned"},
}

// ParseDataType returns the data type named s.
func ParseDataType(s string) (DataType, bool) {
	t := DataType(s)
	if slices.Contains(DataTypes, t) {
		return t, true
	}
	return "", false
}

// Statuses returns the status family of t, or nil for an unknown type.
func (t DataType) Statuses() []string {
	return slices.Clone(statusFamilies[t])
}

// HasStatus reports whether status belongs to the status family of t.
func (t DataType) HasStatus(status string) bool {
	return slices.Contains(statusFamilies[t], status)
}

// Expense types accepted by the expenseType filter.
const (
	ExpenseTypeCash     = "cash"
	ExpenseTypeCard     = "card"
	ExpenseTypeDistance = "distance"
)

// ExpenseTypes lists the valid expenseType values.
var ExpenseTypes = []string{ExpenseTypeCash, ExpenseTypeCard, ExpenseTypeDistance}

// EmptyValue is the sentinel that matches objects with no category or tag.
const EmptyValue = "none"

// Defaults applied by the parser when a root field is absent.
const (
	DefaultType      = DataTypeExpense
	DefaultStatus    = StatusAll
	DefaultSortBy    = "date"
	DefaultSortOrder = "desc"
)
