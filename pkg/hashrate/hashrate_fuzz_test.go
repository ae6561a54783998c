package hashrate

import (
	"testing"
)

// FuzzParseMagnitude checks the unit parser never panics and that every
// accepted unit round-trips through String.
func FuzzParseMagnitude(f *testing.F) {
	f.Add("H/s")
	f.Add("Gh/s")
	f.Add("YH/S")
	f.Add("")
	f.Add("zh/s")

	f.Fuzz(func(t *testing.T, s string) {
		m, err := ParseMagnitude(s)
		if err != nil {
			return
		}
		back, err := ParseMagnitude(m.String())
		if err != nil || back != m {
			t.Errorf("magnitude %s does not round-trip through String()", m)
		}
	})
}
