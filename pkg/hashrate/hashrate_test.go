package hashrate

import (
	"math"
	"testing"
)

func TestMagnitude_Exponent(t *testing.T) {
	tests := []struct {
		magnitude Magnitude
		exponent  int
	}{
		{H, 0},
		{KH, 3},
		{MH, 6},
		{GH, 9},
		{TH, 12},
		{PH, 15},
		{EH, 18},
		{ZH, 21},
		{YH, 24},
	}

	for _, tt := range tests {
		if got := tt.magnitude.Exponent(); got != tt.exponent {
			t.Errorf("%s.Exponent() = %d; want %d", tt.magnitude, got, tt.exponent)
		}
	}
}

func TestParseMagnitude(t *testing.T) {
	tests := []struct {
		input string
		want  Magnitude
	}{
		{"H/s", H},
		{"Kh/s", KH},
		{"kh/s", KH},
		{"KH/S", KH},
		{"Mh/s", MH},
		{"Gh/s", GH},
		{"gH/s", GH},
		{"Th/s", TH},
		{"Ph/s", PH},
		{"Eh/s", EH},
		{"Zh/s", ZH},
		{"Yh/s", YH},
	}

	for _, tt := range tests {
		got, err := ParseMagnitude(tt.input)
		if err != nil {
			t.Errorf("ParseMagnitude(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMagnitude(%q) = %s; want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseMagnitude_Unknown(t *testing.T) {
	for _, input := range []string{"", "Gh", "h", "Xh/s", "Gh/s "} {
		if _, err := ParseMagnitude(input); err == nil {
			t.Errorf("ParseMagnitude(%q) should fail", input)
		}
	}
}

func TestHashRate_HashesPerSecond(t *testing.T) {
	// Canonical conversion law: value * 10^exponent, for every magnitude.
	for m := H; m <= YH; m++ {
		v := 5727000000.746604
		got := New(m, v).HashesPerSecond()
		want := v * math.Pow10(m.Exponent())
		if got != want {
			t.Errorf("New(%s, %g).HashesPerSecond() = %g; want %g", m, v, got, want)
		}
	}

	// H/s is the base unit: no scaling.
	if got := New(H, 42.5).HashesPerSecond(); got != 42.5 {
		t.Errorf("New(H, 42.5).HashesPerSecond() = %g; want 42.5", got)
	}
}

func TestHashRate_Accessors(t *testing.T) {
	h := New(GH, 1.25)
	if h.Magnitude() != GH {
		t.Errorf("Magnitude() = %s; want Gh/s", h.Magnitude())
	}
	if h.Value() != 1.25 {
		t.Errorf("Value() = %g; want 1.25", h.Value())
	}
}

func TestHashRate_Equality(t *testing.T) {
	// Equality is on the (magnitude, value) pair, not the canonical value.
	if New(GH, 1) != New(GH, 1) {
		t.Error("identical pairs should be equal")
	}
	if New(GH, 1) == New(MH, 1000) {
		t.Error("equal canonical rates with different magnitudes must not compare equal")
	}
}

func TestHashRate_String(t *testing.T) {
	if got := New(TH, 12.5).String(); got != "12.5 Th/s" {
		t.Errorf("String() = %q; want %q", got, "12.5 Th/s")
	}
}
