package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2025-03-01", wantErr: false},
		{name: "leap day", input: "2024-02-29", wantErr: false},
		{name: "invalid leap day", input: "2025-02-29", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "wrong separator", input: "2025/03/01", wantErr: true},
		{name: "missing zero padding", input: "2025-3-1", wantErr: true},
		{name: "timestamp instead of date", input: "2025-03-01T00:00:00Z", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var invalid *InvalidDateError
				if !errors.As(err, &invalid) {
					t.Errorf("Parse(%q) error is %T, want *InvalidDateError", tt.input, err)
				}
				return
			}
			if got := d.String(); got != tt.input {
				t.Errorf("round trip = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestAddDaysBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start string
		n     int
		want  string
	}{
		{name: "simple increment", start: "2025-03-01", n: 1, want: "2025-03-02"},
		{name: "month boundary forward", start: "2025-01-31", n: 1, want: "2025-02-01"},
		{name: "month boundary backward", start: "2025-03-01", n: -1, want: "2025-02-28"},
		{name: "leap february backward", start: "2024-03-01", n: -1, want: "2024-02-29"},
		{name: "year boundary forward", start: "2024-12-31", n: 1, want: "2025-01-01"},
		{name: "year boundary backward", start: "2025-01-01", n: -1, want: "2024-12-31"},
		{name: "full year", start: "2025-01-01", n: 365, want: "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.start).AddDays(tt.n)
			if got.String() != tt.want {
				t.Errorf("AddDays(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestSub(t *testing.T) {
	a := MustParse("2025-03-10")
	b := MustParse("2025-03-01")
	if got := a.Sub(b); got != 9 {
		t.Errorf("Sub() = %d, want 9", got)
	}
	if got := b.Sub(a); got != -9 {
		t.Errorf("Sub() reversed = %d, want -9", got)
	}
	if got := a.Sub(a); got != 0 {
		t.Errorf("Sub() same day = %d, want 0", got)
	}
}

func TestWeekday(t *testing.T) {
	// 2025-01-05 is a Sunday.
	if got := MustParse("2025-01-05").Weekday(); got != time.Sunday {
		t.Errorf("Weekday() = %v, want Sunday", got)
	}
	if got := MustParse("2025-01-06").Weekday(); got != time.Monday {
		t.Errorf("Weekday() = %v, want Monday", got)
	}
}

func TestFromTimeUsesWallClockDate(t *testing.T) {
	// Late evening in New York is already the next day in UTC; the calendar
	// date must follow the instant's own location, not UTC.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	instant := time.Date(2025, 3, 1, 23, 30, 0, 0, loc)
	if got := FromTime(instant).String(); got != "2025-03-01" {
		t.Errorf("FromTime() = %s, want 2025-03-01", got)
	}
	if got := FromTime(instant.UTC()).String(); got != "2025-03-02" {
		t.Errorf("FromTime(UTC view) = %s, want 2025-03-02", got)
	}
}

func TestDaySet(t *testing.T) {
	s, err := ParseDaySet([]string{"2025-01-01", "2025-01-02", "2025-01-01"})
	if err != nil {
		t.Fatalf("ParseDaySet() error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("duplicates should collapse, got len %d", s.Len())
	}
	if !s.Has(MustParse("2025-01-01")) {
		t.Error("expected set to contain 2025-01-01")
	}
	if s.Has(MustParse("2025-01-03")) {
		t.Error("did not expect set to contain 2025-01-03")
	}

	sorted := s.Sorted()
	if len(sorted) != 2 || sorted[0].String() != "2025-01-01" || sorted[1].String() != "2025-01-02" {
		t.Errorf("Sorted() = %v", sorted)
	}

	if _, err := ParseDaySet([]string{"2025-01-01", "bogus"}); err == nil {
		t.Error("expected error for malformed date in set")
	}
}
