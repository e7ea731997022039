package prompt

import (
	"fmt"
	"os"
)

// Environment is the process state the composer reads.
type Environment interface {
	// Getwd returns the current working directory.
	Getwd() (string, error)
	LookupEnv(key string) (string, bool)
}

// OSEnvironment reads the real process environment. Getwd keeps the
// logical path from $PWD when it still names the current directory, so
// symlinked directories display the way the shell shows them.
type OSEnvironment struct{}

func (OSEnvironment) Getwd() (string, error) {
	return os.Getwd()
}

func (OSEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Getenv adapts LookupEnv to the func(string) string shape used by path
// expansion.
func Getenv(env Environment) func(string) string {
	return func(key string) string {
		value, _ := env.LookupEnv(key)
		return value
	}
}

// StaticEnvironment is a fixed environment for tests and embedding.
type StaticEnvironment struct {
	Dir  string
	Vars map[string]string
}

func (e StaticEnvironment) Getwd() (string, error) {
	if e.Dir == "" {
		return "", fmt.Errorf("no working directory")
	}
	return e.Dir, nil
}

func (e StaticEnvironment) LookupEnv(key string) (string, bool) {
	value, ok := e.Vars[key]
	return value, ok
}
