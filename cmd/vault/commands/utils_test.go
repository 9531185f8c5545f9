// ABOUTME: Tests for shared utility functions used by CLI commands
// ABOUTME: Verifies truncate, oneLine, validation, and query text helpers

package commands

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"very short maxLen", "hello", 2, "he"},
		{"maxLen equals 3", "hello", 3, "hel"},
		{"empty string", "", 10, ""},
		{"unicode kept whole", "你好世界！", 4, "你..."},
		{"unicode short maxLen", "你好世界！", 2, "你好"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestOneLine(t *testing.T) {
	tests := map[string]string{
		"single line":           "single line",
		"two\nlines":            "two lines",
		"  padded\t\ttabs  \n ": "padded tabs",
		"":                      "",
	}
	for in, want := range tests {
		if got := oneLine(in); got != want {
			t.Errorf("oneLine(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateCount(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{1, false},
		{100, false},
		{0, false},
		{-5, true},
	}

	for _, tt := range tests {
		err := validateCount(tt.n, "limit")
		if (err != nil) != tt.wantErr {
			t.Errorf("validateCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}

func TestQueryText(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		want    string
		wantErr bool
	}{
		{"single arg", []string{"hello world"}, "", "hello world", false},
		{"joined args", []string{"hello", "world"}, "", "hello world", false},
		{"stdin", []string{"-"}, "from\nstdin", "from\nstdin", false},
		{"blank arg", []string{"   "}, "", "", true},
		{"empty stdin", []string{"-"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.SetIn(strings.NewReader(tt.stdin))

			got, err := queryText(cmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("queryText() = %q, want %q", got, tt.want)
			}
		})
	}
}
