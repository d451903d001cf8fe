package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MonthNames holds the canonical month names in calendar order.
// Data files and questions both normalize to these Traditional Chinese
// full names, matching the source spreadsheets.
var MonthNames = []string{
	"一月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "十一月", "十二月",
}

// monthNamesNumeric are the numeric Chinese forms (7月) in calendar order.
var monthNamesNumeric = []string{
	"1月", "2月", "3月", "4月", "5月", "6月",
	"7月", "8月", "9月", "10月", "11月", "12月",
}

// monthNamesEnglish are English full names in calendar order.
var monthNamesEnglish = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// monthNamesEnglishShort are English abbreviations in calendar order.
var monthNamesEnglishShort = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// MonthKey identifies one period of transaction records by year and
// canonical month name. A zero Year means the year was not specified
// and any year matches.
type MonthKey struct {
	Name string
	Year int
}

// String renders the key in storage form, e.g. "2025-七月".
// Keys without a year render as the bare month name.
func (k MonthKey) String() string {
	if k.Year == 0 {
		return k.Name
	}
	return fmt.Sprintf("%d-%s", k.Year, k.Name)
}

// Ordinal returns the 1-based calendar position of the month, or 0 if
// the name is not canonical.
func (k MonthKey) Ordinal() int {
	for i, name := range MonthNames {
		if name == k.Name {
			return i + 1
		}
	}
	return 0
}

// Matches reports whether k refers to the same period as other,
// treating a zero Year on either side as a wildcard.
func (k MonthKey) Matches(other MonthKey) bool {
	if k.Name != other.Name {
		return false
	}
	return k.Year == 0 || other.Year == 0 || k.Year == other.Year
}

// MatchesAny reports whether any key in keys matches k.
func (k MonthKey) MatchesAny(keys []MonthKey) bool {
	for _, other := range keys {
		if k.Matches(other) {
			return true
		}
	}
	return false
}

// ParseMonthKey parses a storage-form key like "2025-七月" or a bare
// canonical month name.
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '-'); idx > 0 {
		year, err := strconv.Atoi(s[:idx])
		if err != nil {
			return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
		}
		key := MonthKey{Year: year, Name: s[idx+1:]}
		if key.Ordinal() == 0 {
			return MonthKey{}, fmt.Errorf("invalid month name in key %q", s)
		}
		return key, nil
	}
	key := MonthKey{Name: s}
	if key.Ordinal() == 0 {
		return MonthKey{}, fmt.Errorf("invalid month name %q", s)
	}
	return key, nil
}

// NormalizeMonthName maps any supported month spelling (Traditional
// Chinese full name, numeric Chinese form, English full or abbreviated
// name) to the canonical name. The English index wraps modulo 12 onto
// the canonical ordering. Returns "" if the input is not a month.
func NormalizeMonthName(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	for i, name := range MonthNames {
		if s == name || lower == monthNamesNumeric[i] {
			return MonthNames[i]
		}
	}
	english := append(append([]string{}, monthNamesEnglish...), monthNamesEnglishShort...)
	for i, name := range english {
		if lower == name {
			return MonthNames[i%12]
		}
	}
	return ""
}
