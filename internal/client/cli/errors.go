package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diamondstore/internal/common"
)

var (
	errAdminRequired   = fmt.Errorf("admin login required: %w", common.ErrUnauthorized)
	errBadCredentials  = fmt.Errorf("invalid username or password: %w", common.ErrUnauthorized)
	errMissingArgument = errors.New("missing argument")
)

// userMessage renders err as the one-line message shown after a command.
func userMessage(err error) string {
	var (
		ve *common.ValidationError
		se *common.ServerError
		ne *common.NetworkError
	)
	switch {
	case errors.Is(err, common.ErrBackendUnavailable):
		return "Offline: " + common.ErrBackendUnavailable.Error()
	case errors.As(err, &ve):
		return "Invalid input: " + ve.Error()
	case errors.Is(err, common.ErrUnauthorized):
		return err.Error()
	case errors.Is(err, common.ErrNotFound):
		return "Not found: " + err.Error()
	case errors.As(err, &se):
		return "Failed: " + se.Message
	case errors.As(err, &ne):
		return "Network error: " + ne.Err.Error()
	default:
		return "Error: " + err.Error()
	}
}
