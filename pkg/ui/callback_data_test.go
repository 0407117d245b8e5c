package ui

import (
	"strings"
	"testing"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Action
		wantErr bool
	}{
		{
			name:  "home",
			input: "s:home",
			want:  Action{Screen: ScreenHome},
		},
		{
			name:  "close",
			input: "s:close",
			want:  Action{Screen: ScreenClose},
		},
		{
			name:  "tier",
			input: "s:tier:2",
			want:  Action{Screen: ScreenTier, Priority: "2"},
		},
		{
			name:  "toggle dnd",
			input: "s:toggle:dnd",
			want:  Action{Screen: ScreenHome, Op: OpToggle, Toggle: ToggleDND},
		},
		{
			name:  "set window",
			input: "s:win:3:12h",
			want:  Action{Screen: ScreenTier, Op: OpSetWindow, Priority: "3", Window: "12h"},
		},
		{
			name:  "responded",
			input: "r:done:42",
			want:  Action{Op: OpResponded, MessageID: 42},
		},
		{
			name:  "later",
			input: "r:later:7",
			want:  Action{Op: OpLater, MessageID: 7},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "invalid prefix",
			input:   "x:home",
			wantErr: true,
		},
		{
			name:    "unknown screen",
			input:   "s:pairs",
			wantErr: true,
		},
		{
			name:    "unknown toggle",
			input:   "s:toggle:vibrate",
			wantErr: true,
		},
		{
			name:    "unknown tier",
			input:   "s:tier:4",
			wantErr: true,
		},
		{
			name:    "unknown window",
			input:   "s:win:1:90m",
			wantErr: true,
		},
		{
			name:    "reminder zero id",
			input:   "r:done:0",
			wantErr: true,
		},
		{
			name:    "reminder non-numeric id",
			input:   "r:later:abc",
			wantErr: true,
		},
		{
			name:    "reminder signed id",
			input:   "r:later:+3",
			wantErr: true,
		},
		{
			name:    "reminder unknown op",
			input:   "r:archive:3",
			wantErr: true,
		},
		{
			name:    "extra parts",
			input:   "s:win:1:2h:extra",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "s:" + strings.Repeat("a", MaxCallbackDataLen),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCallbackData(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected action: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuilderCallbacks(t *testing.T) {
	tests := []struct {
		name  string
		build func() (string, error)
		want  Action
	}{
		{
			name:  "home",
			build: BuildHomeCallback,
			want:  Action{Screen: ScreenHome},
		},
		{
			name:  "close",
			build: BuildCloseCallback,
			want:  Action{Screen: ScreenClose},
		},
		{
			name:  "tier",
			build: func() (string, error) { return BuildTierCallback("1") },
			want:  Action{Screen: ScreenTier, Priority: "1"},
		},
		{
			name:  "toggle push",
			build: func() (string, error) { return BuildToggleCallback(TogglePush) },
			want:  Action{Screen: ScreenHome, Op: OpToggle, Toggle: TogglePush},
		},
		{
			name:  "window",
			build: func() (string, error) { return BuildWindowCallback("2", "5d") },
			want:  Action{Screen: ScreenTier, Op: OpSetWindow, Priority: "2", Window: "5d"},
		},
		{
			name:  "responded",
			build: func() (string, error) { return BuildRespondedCallback(18446744073709) },
			want:  Action{Op: OpResponded, MessageID: 18446744073709},
		},
		{
			name:  "later",
			build: func() (string, error) { return BuildLaterCallback(5) },
			want:  Action{Op: OpLater, MessageID: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(data) > MaxCallbackDataLen {
				t.Fatalf("callback data too long: %d", len(data))
			}
			got, err := ParseCallbackData(data)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected action: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildersRejectInvalidValues(t *testing.T) {
	if _, err := BuildRespondedCallback(0); err == nil {
		t.Fatalf("expected error for zero message id")
	}
	if _, err := BuildTierCallback("0"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
	if _, err := BuildWindowCallback("1", "8h"); err == nil {
		t.Fatalf("expected error for unknown window")
	}
	if _, err := BuildToggleCallback("vibrate"); err == nil {
		t.Fatalf("expected error for unknown toggle")
	}
}

func TestActionIsReminder(t *testing.T) {
	if !(Action{Op: OpLater, MessageID: 1}).IsReminder() {
		t.Fatalf("expected later action to be a reminder action")
	}
	if (Action{Screen: ScreenHome, Op: OpToggle, Toggle: TogglePush}).IsReminder() {
		t.Fatalf("did not expect toggle to be a reminder action")
	}
}
