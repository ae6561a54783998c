// Package hashrate provides a unit-aware hash-rate value type.
//
// The pool API reports hash rates as a bare float plus a single
// hash_rate_unit field shared by every hash-rate field in the record.
// This package folds the two into one self-contained value.
package hashrate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Magnitude is the unit scale of a hash rate (H/s up to Yh/s).
type Magnitude int

const (
	H  Magnitude = iota // hashes per second
	KH                  // kilohashes (10^3)
	MH                  // megahashes (10^6)
	GH                  // gigahashes (10^9)
	TH                  // terahashes (10^12)
	PH                  // petahashes (10^15)
	EH                  // exahashes (10^18)
	ZH                  // zettahashes (10^21)
	YH                  // yottahashes (10^24)
)

// Exponent returns the decimal exponent of the magnitude.
// H is 0, each step up adds 3, YH is 24.
func (m Magnitude) Exponent() int {
	return int(m) * 3
}

// String returns the wire spelling of the magnitude (e.g. "Gh/s").
func (m Magnitude) String() string {
	switch m {
	case H:
		return "H/s"
	case KH:
		return "Kh/s"
	case MH:
		return "Mh/s"
	case GH:
		return "Gh/s"
	case TH:
		return "Th/s"
	case PH:
		return "Ph/s"
	case EH:
		return "Eh/s"
	case ZH:
		return "Zh/s"
	case YH:
		return "Yh/s"
	default:
		return fmt.Sprintf("Magnitude(%d)", int(m))
	}
}

// ParseMagnitude parses a wire unit string into a Magnitude.
// Matching is case-insensitive ("GH/S", "Gh/s" and "gh/s" are equivalent).
func ParseMagnitude(s string) (Magnitude, error) {
	switch strings.ToLower(s) {
	case "h/s":
		return H, nil
	case "kh/s":
		return KH, nil
	case "mh/s":
		return MH, nil
	case "gh/s":
		return GH, nil
	case "th/s":
		return TH, nil
	case "ph/s":
		return PH, nil
	case "eh/s":
		return EH, nil
	case "zh/s":
		return ZH, nil
	case "yh/s":
		return YH, nil
	default:
		return 0, fmt.Errorf("unknown hash rate unit %q", s)
	}
}

// HashRate is an immutable magnitude-qualified hash rate.
//
// The struct is comparable: == compares (magnitude, value) as a pair.
// Values carrying different magnitudes never compare equal even when
// their canonical rates match; compare HashesPerSecond for that.
type HashRate struct {
	magnitude Magnitude
	value     float64
}

// New builds a HashRate from a magnitude and a raw value.
func New(magnitude Magnitude, value float64) HashRate {
	return HashRate{magnitude: magnitude, value: value}
}

// Magnitude returns the unit scale the value was reported in.
func (h HashRate) Magnitude() Magnitude {
	return h.magnitude
}

// Value returns the raw value as reported, unscaled.
func (h HashRate) Value() float64 {
	return h.value
}

// HashesPerSecond returns the canonical rate, value * 10^exponent.
func (h HashRate) HashesPerSecond() float64 {
	return h.value * math.Pow10(h.magnitude.Exponent())
}

func (h HashRate) String() string {
	return fmt.Sprintf("%g %s", h.value, h.magnitude)
}

// MarshalJSON encodes the value together with its unit, e.g.
// {"unit":"Gh/s","value":5727000000.746604}.
func (h HashRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Unit  string  `json:"unit"`
		Value float64 `json:"value"`
	}{
		Unit:  h.magnitude.String(),
		Value: h.value,
	})
}
