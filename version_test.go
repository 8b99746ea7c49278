package spdm

import "testing"

func TestVersionNibbles(t *testing.T) {
	cases := []struct {
		v           Version
		major, minor uint8
	}{
		{0x10, 0x10, 0x00},
		{0x12, 0x10, 0x02},
		{0x00, 0x00, 0x00},
		{0xFF, 0xF0, 0x0F},
		{0x2A, 0x20, 0x0A},
	}
	for _, c := range cases {
		if got := c.v.Major(); got != c.major {
			t.Errorf("Version(0x%02X).Major() = 0x%02X, want 0x%02X", uint8(c.v), got, c.major)
		}
		if got := c.v.Minor(); got != c.minor {
			t.Errorf("Version(0x%02X).Minor() = 0x%02X, want 0x%02X", uint8(c.v), got, c.minor)
		}
	}
}

func TestVersionCompatible(t *testing.T) {
	for v := 0; v <= 0xFF; v++ {
		want := v&0xF0 == 0x10
		if got := Version(v).Compatible(); got != want {
			t.Errorf("Version(0x%02X).Compatible() = %v, want %v", v, got, want)
		}
	}
}
