package models

import "testing"

func TestParseFloor(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"4F/8F", 4},
		{"B1F/5F", 0},
		{"", 0},
		{"RF/10F", 0},
		{"2F/5F", 2},
		{" 12F / 15F ", 12},
		{"10F", 10},
		{"b2/10F", 0},
	}

	for _, tt := range tests {
		got := parseFloor(tt.raw)
		if got != tt.want {
			t.Errorf("parseFloor(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestIDOrdinal(t *testing.T) {
	tests := []struct {
		id   string
		want int64
	}{
		{"12345", 12345},
		{"", 0},
		{"abc", 0},
		{"12a", 0},
		{" 99 ", 99},
	}

	for _, tt := range tests {
		got := IDOrdinal(tt.id)
		if got != tt.want {
			t.Errorf("IDOrdinal(%q) = %d; want %d", tt.id, got, tt.want)
		}
	}
}

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantOK  bool
		wantRaw string
	}{
		{"json number", float64(25000), 25000, true, ""},
		{"digit string", "28000", 28000, true, ""},
		{"thousands separators", "28,000", 28000, true, ""},
		{"missing", nil, 0, false, ""},
		{"empty string", "", 0, false, ""},
		{"masked price", "面議", 0, false, "面議"},
	}

	for _, tt := range tests {
		got, ok, raw := coercePrice(tt.in)
		if got != tt.want || ok != tt.wantOK || raw != tt.wantRaw {
			t.Errorf("%s: coercePrice(%v) = (%d, %v, %q); want (%d, %v, %q)",
				tt.name, tt.in, got, ok, raw, tt.want, tt.wantOK, tt.wantRaw)
		}
	}
}

func TestCoerceArea(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{float64(18.5), 18.5},
		{"18.5", 18.5},
		{"1,200", 1200},
		{"", 0},
		{"十五坪", 0},
		{nil, 0},
	}

	for _, tt := range tests {
		got, _ := coerceArea(tt.in)
		if got != tt.want {
			t.Errorf("coerceArea(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
