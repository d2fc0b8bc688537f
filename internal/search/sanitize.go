package search

import "regexp"

// unsafeValueChars matches any character that cannot appear in a bare value.
var unsafeValueChars = regexp.MustCompile(`[^A-Za-z0-9_@./#&+\-\\';,"]`)

// SanitizeSearchValue returns value unchanged when every character is safe in
// a bare value, and wrapped in double quotes otherwise.
//
//	SanitizeSearchValue("Big Co")  // `"Big Co"`
//	SanitizeSearchValue("a@b.com") // `a@b.com`
func SanitizeSearchValue(value string) string {
	if unsafeValueChars.MatchString(value) {
		return `"` + value + `"`
	}
	return value
}
