// internal/core/domain/normalize.go
package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RawValue is a loosely typed scalar as it arrives from forms, JSON bodies or
// spreadsheet cells. JSON numbers, strings and booleans are all accepted.
type RawValue string

// UnmarshalJSON accepts both quoted and bare scalars
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	*v = RawValue(data)
	return nil
}

// String returns the trimmed raw text
func (v RawValue) String() string {
	return strings.TrimSpace(string(v))
}

// IsBlank reports whether the value carries no text
func (v RawValue) IsBlank() bool {
	return v.String() == ""
}

// Raw returns a pointer to a RawValue, for building inputs
func Raw(s string) *RawValue {
	v := RawValue(s)
	return &v
}

// Text returns a pointer to s, for building inputs
func Text(s string) *string {
	return &s
}

// parseNumber parses a finite number from raw text
func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeCount floors a numeric string and clamps it at zero.
// Invalid or empty input yields 0.
func NormalizeCount(raw string) int {
	f, ok := parseNumber(raw)
	if !ok {
		return 0
	}
	f = math.Floor(f)
	if f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// NormalizeAmount parses a non-negative money amount. Invalid, empty or
// negative input yields zero.
func NormalizeAmount(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// NormalizeOptionalCount returns nil for blank input and a normalized count
// otherwise.
func NormalizeOptionalCount(raw string) *int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	n := NormalizeCount(raw)
	return &n
}

// clampCount is NormalizeCount for values that are already integers
func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
