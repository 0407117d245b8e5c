package reminder

import (
	"errors"
	"testing"
	"time"
)

func TestDurationToMs(t *testing.T) {
	tests := []struct {
		window Window
		want   int64
	}{
		{window: "1h", want: 3_600_000},
		{window: "2h", want: 7_200_000},
		{window: "4h", want: 14_400_000},
		{window: "6h", want: 21_600_000},
		{window: "12h", want: 43_200_000},
		{window: "1d", want: 86_400_000},
		{window: "2d", want: 172_800_000},
		{window: "3d", want: 259_200_000},
		{window: "5d", want: 432_000_000},
		{window: "7d", want: 604_800_000},
		{window: "3w", want: 0},
		{window: "h", want: 0},
		{window: "xd", want: 0},
		{window: "", want: 0},
	}

	for _, tc := range tests {
		if got := DurationToMs(tc.window); got != tc.want {
			t.Errorf("DurationToMs(%q) = %d, want %d", tc.window, got, tc.want)
		}
	}
}

func TestEveryWindowParses(t *testing.T) {
	for _, w := range Windows {
		parsed, err := ParseWindow(string(w))
		if err != nil {
			t.Fatalf("ParseWindow(%q) returned error: %v", w, err)
		}
		if parsed != w {
			t.Fatalf("expected %q, got %q", w, parsed)
		}
		if DurationToMs(w) <= 0 {
			t.Fatalf("expected positive duration for %q", w)
		}
	}
}

func TestParseWindowRejectsUnknownTokens(t *testing.T) {
	for _, value := range []string{"3h", "10d", "1w", "", "1H"} {
		if _, err := ParseWindow(value); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("ParseWindow(%q) error = %v, want ErrInvalidWindow", value, err)
		}
	}
}

func TestParsePriorityAndStatus(t *testing.T) {
	if p, err := ParsePriority("2"); err != nil || p != PriorityMedium {
		t.Fatalf("ParsePriority(\"2\") = %q, %v", p, err)
	}
	if _, err := ParsePriority("4"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if s, err := ParseStatus("snoozed"); err != nil || s != StatusSnoozed {
		t.Fatalf("ParseStatus(\"snoozed\") = %q, %v", s, err)
	}
	if _, err := ParseStatus("archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestFormatWindow(t *testing.T) {
	tests := map[Window]string{
		"1h":  "1 hour",
		"12h": "12 hours",
		"1d":  "1 day",
		"7d":  "7 days",
		"2w":  "2w",
	}
	for window, want := range tests {
		if got := FormatWindow(window); got != want {
			t.Errorf("FormatWindow(%q) = %q, want %q", window, got, want)
		}
	}
}

func TestWindowDuration(t *testing.T) {
	if got := Window("3d").Duration(); got != 72*time.Hour {
		t.Fatalf("expected 72h, got %v", got)
	}
}
