package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// EnvironmentMissing reports a required environment variable that is unset or empty.
func EnvironmentMissing(key string) *Error {
	return New(ErrCodeEnvironment, fmt.Sprintf("environment variable %s is not set", key)).
		WithDetail("variable", key)
}

// EnvironmentUnreadable wraps a failure to read process state such as the working directory.
func EnvironmentUnreadable(what string, err error) *Error {
	return Wrap(err, ErrCodeEnvironment, fmt.Sprintf("cannot read %s", what)).
		WithDetail("item", what)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *Error {
	e := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	if exitErr, ok := err.(*exec.ExitError); ok {
		e = e.WithDetail("exitCode", exitErr.ExitCode())
	}

	return e
}
