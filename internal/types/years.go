package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Years is a count of years of experience. Input that cannot be read as a
// non-negative whole number is kept verbatim in Raw so scoring can reject
// the record instead of silently treating it as zero.
type Years struct {
	Value int
	Raw   string
}

// YearsOf returns a valid Years value.
func YearsOf(n int) Years {
	return Years{Value: n}
}

// Valid reports whether the value was decoded cleanly and is non-negative.
func (y Years) Valid() bool {
	return y.Raw == "" && y.Value >= 0
}

func (y Years) String() string {
	if y.Raw != "" {
		return y.Raw
	}
	return strconv.Itoa(y.Value)
}

// UnmarshalJSON accepts numbers, numeric strings and null.
func (y *Years) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = Years{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode experience_years: %w", err)
		}
		*y = ParseYears(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*y = Years{Raw: string(data)}
		return nil
	}
	*y = yearsFromFloat(f, string(data))
	return nil
}

// MarshalJSON writes valid values as numbers and malformed ones as their raw text.
func (y Years) MarshalJSON() ([]byte, error) {
	if y.Raw != "" {
		return json.Marshal(y.Raw)
	}
	return json.Marshal(y.Value)
}

// ParseYears reads a Years value from text, as stored in a database column.
// Blank text is zero years.
func ParseYears(s string) Years {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Years{}
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Years{Raw: s}
	}
	return yearsFromFloat(f, s)
}

func yearsFromFloat(f float64, raw string) Years {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return Years{Raw: raw}
	}
	return YearsOf(int(f))
}
