package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/familiar/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Out     io.Writer
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Out:     out,
		Verbose: verbose,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}

	details := map[string]interface{}{}
	if e, ok := errors.As(err); ok && e.Details != nil {
		details = e.Details
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "familiar: configuration not found at %v\n", details["path"])
		fmt.Fprintf(h.Out, "Create it with at least:\n\n  [options]\n  prompt_char = \"$\"\n\nor point --config at another file.\n")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		if path, ok := details["path"]; ok {
			fmt.Fprintf(h.Out, "familiar: invalid configuration in %v\n", path)
		} else {
			fmt.Fprintf(h.Out, "familiar: invalid configuration\n")
		}
		fmt.Fprintf(h.Out, "%v\n", err)

	case errors.ErrCodeEnvironment:
		fmt.Fprintf(h.Out, "familiar: cannot read the environment: %v\n", err)

	default:
		fmt.Fprintf(h.Out, "familiar: %v\n", err)
	}

	if h.Verbose {
		if e, ok := errors.As(err); ok {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", e.ToJSON())
		}
	}
	return err
}
