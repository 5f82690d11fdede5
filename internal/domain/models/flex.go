package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a money or measurement value. The upstream sends it either as a
// JSON number or as a decimal string; both decode, anything else is zero.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Float returns the value as float64.
func (a Amount) Float() float64 { return float64(a) }

// nonNegative clamps values the upstream should never send below zero.
func nonNegative(a Amount) Amount {
	if a < 0 {
		return 0
	}
	return a
}

// dateOnly strips a time component from ISO timestamps ("2024-05-01T00:00:00Z").
func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "T"); i > 0 {
		return s[:i]
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
