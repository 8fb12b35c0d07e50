package commands

import (
	"bytes"
	"strings"
	"testing"

	cockroacherrors "github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/novahq/nova/internal/config"
	novaerrors "github.com/novahq/nova/internal/errors"
	"github.com/novahq/nova/internal/marketplace"
	"github.com/novahq/nova/internal/marketplace/source"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "abc", 10, "abc"},
		{"exactly max", "abcde", 5, "abcde"},
		{"truncated", "abcdefghij", 8, "abcde..."},
		{"tiny max", "abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"explicit exit error", novaerrors.NewExitError(nil, 7), 7},
		{"invalid source", cockroacherrors.WithDetail(source.ErrInvalidSource, "x"), novaerrors.ExitUser},
		{"already exists", marketplace.ErrAlreadyExists, novaerrors.ExitUser},
		{"not found", marketplace.ErrNotFound, novaerrors.ExitUser},
		{"invalid manifest", cockroacherrors.Mark(cockroacherrors.New("broken"), marketplace.ErrManifestInvalid), novaerrors.ExitUser},
		{"scope unavailable", config.ErrScopeUnavailable, novaerrors.ExitUser},
		{"config validation", &config.ValidationError{Scope: config.ScopeProject, Message: "bad"}, novaerrors.ExitUser},
		{"plain error", cockroacherrors.New("disk on fire"), novaerrors.ExitSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRenderError(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	err := cockroacherrors.WithHint(
		cockroacherrors.WithDetail(cockroacherrors.New("boom"), "it broke here"),
		"try again")

	var buf bytes.Buffer
	renderError(&buf, err)

	out := buf.String()
	assert.Contains(t, out, "error: boom")
	assert.Contains(t, out, "it broke here")
	assert.Contains(t, out, "hint: try again")
}

func TestRenderError_Suggestion(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	renderError(&buf, novaerrors.NewUserError(cockroacherrors.New("bad flag"), "see --help"))

	out := buf.String()
	if !strings.Contains(out, "hint: see --help") {
		t.Errorf("suggestion not rendered: %q", out)
	}
}
