package commands

import (
	"fmt"
	"io"

	cockroacherrors "github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/novahq/nova/internal/config"
	novaerrors "github.com/novahq/nova/internal/errors"
	"github.com/novahq/nova/internal/marketplace"
	"github.com/novahq/nova/internal/marketplace/source"
)

// renderError prints an error with its attached details and hints.
func renderError(w io.Writer, err error) {
	errLabel := color.New(color.FgRed, color.Bold)
	errLabel.Fprint(w, "error: ")
	fmt.Fprintln(w, err.Error())

	dim := color.New(color.FgHiBlack)
	for _, d := range cockroacherrors.GetAllDetails(err) {
		dim.Fprintf(w, "  %s\n", d)
	}

	hintLabel := color.New(color.FgYellow)
	for _, h := range cockroacherrors.GetAllHints(err) {
		hintLabel.Fprintf(w, "hint: %s\n", h)
	}

	var exitErr *novaerrors.ExitError
	if cockroacherrors.As(err, &exitErr) && exitErr.Suggestion != "" {
		hintLabel.Fprintf(w, "hint: %s\n", exitErr.Suggestion)
	}
}

// exitCode maps an error to a process exit code. Explicit ExitErrors win;
// otherwise user-correctable failures map to ExitUser and everything else
// to ExitSystem.
func exitCode(err error) int {
	var exitErr *novaerrors.ExitError
	if cockroacherrors.As(err, &exitErr) {
		return exitErr.Code
	}

	userErrs := []error{
		source.ErrInvalidSource,
		marketplace.ErrAlreadyExists,
		marketplace.ErrNotFound,
		marketplace.ErrManifestNotFound,
		marketplace.ErrManifestInvalid,
		novaerrors.ErrInvalidScope,
		novaerrors.ErrInvalidConfig,
		config.ErrScopeUnavailable,
	}
	for _, sentinel := range userErrs {
		if cockroacherrors.Is(err, sentinel) {
			return novaerrors.ExitUser
		}
	}

	var validationErr *config.ValidationError
	if cockroacherrors.As(err, &validationErr) {
		return novaerrors.ExitUser
	}

	return novaerrors.ExitSystem
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
