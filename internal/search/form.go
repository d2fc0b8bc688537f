package search

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/queryir"
)

var (
	datePattern   = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	amountPattern = regexp.MustCompile(`^[0-9]{1,8}(\.[0-9]{0,2})?$`)
)

// isValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func isValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// isValidAmount reports whether s is a non-negative amount with at most
// eight integer digits and two decimals. A bare trailing point is allowed.
func isValidAmount(s string) bool {
	return amountPattern.MatchString(s)
}

// BuildQueryStringFromFilterFormValues serializes the advanced-filter form.
//
// The result starts with the default sort clauses, then type, status and
// policyID when set, then every non-empty field in filter-key order, then
// the date and amount range fragments. List fields are deduplicated keeping
// the first occurrence; keyword text is split on whitespace.
func BuildQueryStringFromFilterFormValues(form *queryir.SearchAdvancedFiltersForm) string {
	parts := []string{
		string(queryir.RootKeySortBy) + ":" + queryir.DefaultSortBy,
		string(queryir.RootKeySortOrder) + ":" + queryir.DefaultSortOrder,
	}
	if form == nil {
		return strings.Join(parts, " ")
	}

	for _, field := range []queryir.FormField{queryir.FormFieldType, queryir.FormFieldStatus, queryir.FormFieldPolicyID} {
		if v := form.Text(field); v != "" {
			parts = append(parts, string(field)+":"+SanitizeSearchValue(v))
		}
	}

	for _, key := range queryir.FilterKeys {
		field := queryir.FormField(key)
		switch key {
		case queryir.FilterKeyDate, queryir.FilterKeyAmount:
			// Range fragments are appended last.
		case queryir.FilterKeyMerchant, queryir.FilterKeyDescription, queryir.FilterKeyReportID:
			if v := form.Text(field); v != "" {
				parts = append(parts, string(key)+":"+SanitizeSearchValue(v))
			}
		case queryir.FilterKeyKeyword:
			words := strings.Fields(form.Keyword)
			for i, w := range words {
				words[i] = SanitizeSearchValue(w)
			}
			if len(words) > 0 {
				parts = append(parts, strings.Join(words, " "))
			}
		default:
			values := dedupe(form.List(field))
			for i, v := range values {
				values[i] = SanitizeSearchValue(v)
			}
			if len(values) > 0 {
				parts = append(parts, string(key)+":"+strings.Join(values, ","))
			}
		}
	}

	if date := rangeFragment(queryir.FilterKeyDate, form.DateBefore, form.DateAfter); date != "" {
		parts = append(parts, date)
	}
	if amount := rangeFragment(queryir.FilterKeyAmount, form.LessThan, form.GreaterThan); amount != "" {
		parts = append(parts, amount)
	}
	return strings.Join(parts, " ")
}

// rangeFragment renders key<upper key>lower for the bounds that are set.
// Dates write the upper bound first and amounts the lower bound first.
func rangeFragment(key queryir.FilterKey, upper, lower string) string {
	var bounds []string
	if upper != "" {
		bounds = append(bounds, string(key)+queryir.OperatorLowerThan.Token()+SanitizeSearchValue(upper))
	}
	if lower != "" {
		bound := string(key) + queryir.OperatorGreaterThan.Token() + SanitizeSearchValue(lower)
		if key == queryir.FilterKeyAmount {
			bounds = append([]string{bound}, bounds...)
		} else {
			bounds = append(bounds, bound)
		}
	}
	return strings.Join(bounds, " ")
}

// dedupe returns the non-empty values of in, first occurrence first.
func dedupe(in []string) []string {
	var out []string
	for _, v := range in {
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// BuildFilterFormValuesFromQuery fills the advanced-filter form from q.
//
// List values the directories do not recognize are dropped, as are dates and
// amounts that fail validation. An unknown type falls back to expense and a
// status outside the type's family falls back to all.
func BuildFilterFormValuesFromQuery(q *queryir.SearchQueryJSON, dirs directory.Directories) *queryir.SearchAdvancedFiltersForm {
	form := &queryir.SearchAdvancedFiltersForm{}
	if q == nil {
		form.Type = string(queryir.DefaultType)
		form.Status = queryir.DefaultStatus
		return form
	}

	flat := flatFiltersOf(q)
	for _, key := range flat.Keys() {
		entries := flat[key]
		field := queryir.FormField(key)
		switch key {
		case queryir.FilterKeyMerchant, queryir.FilterKeyDescription, queryir.FilterKeyReportID:
			form.SetText(field, entries[0].Value.String())
		case queryir.FilterKeyKeyword:
			words := make([]string, len(entries))
			for i, e := range entries {
				words[i] = e.Value.String()
			}
			form.Keyword = strings.Join(words, " ")
		case queryir.FilterKeyDate:
			form.DateBefore = firstBound(entries, queryir.OperatorLowerThan, isValidDate)
			form.DateAfter = firstBound(entries, queryir.OperatorGreaterThan, isValidDate)
		case queryir.FilterKeyAmount:
			form.LessThan = firstBound(entries, queryir.OperatorLowerThan, isValidAmount)
			form.GreaterThan = firstBound(entries, queryir.OperatorGreaterThan, isValidAmount)
		default:
			valid := listValidator(key, q.PolicyID, dirs)
			var values []string
			for _, e := range entries {
				if v := e.Value.String(); valid(v) {
					values = append(values, v)
				}
			}
			if len(values) > 0 {
				form.SetList(field, values)
			}
		}
	}

	dataType, ok := queryir.ParseDataType(string(q.Type))
	if !ok {
		dataType = queryir.DefaultType
	}
	form.Type = string(dataType)
	form.Status = queryir.DefaultStatus
	if dataType.HasStatus(q.Status) {
		form.Status = q.Status
	}
	form.PolicyID = q.PolicyID
	return form
}

func firstBound(entries []queryir.QueryFilter, op queryir.Operator, valid func(string) bool) string {
	for _, e := range entries {
		if e.Operator == op && valid(e.Value.String()) {
			return e.Value.String()
		}
	}
	return ""
}

// listValidator returns the membership test for a list-valued filter key.
func listValidator(key queryir.FilterKey, policyID string, dirs directory.Directories) func(string) bool {
	switch key {
	case queryir.FilterKeyExpenseType:
		return func(v string) bool { return slices.Contains(queryir.ExpenseTypes, v) }
	case queryir.FilterKeyCardID:
		return func(v string) bool { _, ok := dirs.LookupCard(v); return ok }
	case queryir.FilterKeyTaxRate:
		return dirs.HasTaxRateID
	case queryir.FilterKeyIn:
		return func(v string) bool { _, ok := dirs.LookupReport(v); return ok }
	case queryir.FilterKeyFrom, queryir.FilterKeyTo:
		return func(v string) bool { _, ok := dirs.LookupPersonalDetails(v); return ok }
	case queryir.FilterKeyCurrency:
		return dirs.HasCurrency
	case queryir.FilterKeyCategory:
		names := dirs.CategoryNames(policyID)
		return func(v string) bool { return v == queryir.EmptyValue || slices.Contains(names, v) }
	case queryir.FilterKeyTag:
		names := dirs.TagNames(policyID)
		return func(v string) bool { return v == queryir.EmptyValue || slices.Contains(names, v) }
	default:
		return func(string) bool { return false }
	}
}
