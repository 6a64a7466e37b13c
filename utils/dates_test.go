package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "10:00", want: "10:00"},
		{in: "9:30", want: "09:30"},
		{in: "15:00:00", want: "15:00"},
		{in: "23:59", want: "23:59"},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "10:5", wantErr: true},
		{in: "10", wantErr: true},
		{in: "ten:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseClock(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)

	d, err := ParseDate("2030-01-01", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("got %v", d)
	}

	for _, bad := range []string{"2030/01/01", "2030-13-01", "01-01-2030", "tomorrow"} {
		if _, err := ParseDate(bad, loc); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestBeginningOfDay(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	got := BeginningOfDay(time.Date(2026, 10, 19, 23, 59, 59, 1, loc))
	want := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("BeginningOfDay = %v, want %v", got, want)
	}
}
