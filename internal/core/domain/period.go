package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearMonth identifies a calendar month, the primary time key across all
// financial tables. The zero value means "no period given".
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ParseYearMonth normalizes the period spellings found in source tables and
// questions: "2025-06", "June 2025" (any case) and "6/2025" all parse to the
// same key. Anything else is an error.
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return YearMonth{}, fmt.Errorf("empty period")
	}

	if t, err := time.Parse("2006-01", s); err == nil {
		return YearMonth{Year: t.Year(), Month: t.Month()}, nil
	}

	if fields := strings.Fields(s); len(fields) == 2 {
		if month, ok := monthsByName[strings.ToLower(fields[0])]; ok {
			if year, err := strconv.Atoi(fields[1]); err == nil && year >= 1 && year <= 9999 {
				return YearMonth{Year: year, Month: month}, nil
			}
		}
	}

	if parts := strings.Split(s, "/"); len(parts) == 2 {
		month, merr := strconv.Atoi(parts[0])
		year, yerr := strconv.Atoi(parts[1])
		if merr == nil && yerr == nil && month >= 1 && month <= 12 && year >= 1 && year <= 9999 {
			return YearMonth{Year: year, Month: time.Month(month)}, nil
		}
	}

	return YearMonth{}, fmt.Errorf("unrecognized period %q", s)
}

// IsZero reports whether the period is unset.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// String renders the canonical "YYYY-MM" form.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Human renders the period the way it reads in an answer, e.g. "June 2025".
func (ym YearMonth) Human() string {
	return fmt.Sprintf("%s %d", ym.Month.String(), ym.Year)
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// After reports whether ym is strictly later than other.
func (ym YearMonth) After(other YearMonth) bool {
	return other.Before(ym)
}

// MarshalJSON renders the period as its canonical string form.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	if ym.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(ym.String())), nil
}

// UnmarshalJSON accepts any of the spellings ParseYearMonth understands.
func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("period must be a JSON string: %w", err)
	}
	if s == "" {
		*ym = YearMonth{}
		return nil
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}
