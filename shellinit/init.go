// Package shellinit prints the snippet that installs familiar as the
// prompt of an interactive shell:
//
//	eval "$(familiar --init bash)"
package shellinit

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/grovetools/familiar/errors"
	"github.com/grovetools/familiar/theme"
)

const bashTemplate = `# Added by '%[1]s --init bash'
_familiar_prompt() {
    PS1="$(%[1]s --shell bash)"
}
if [[ ";${PROMPT_COMMAND[*]:-};" != *";_familiar_prompt;"* ]]; then
    PROMPT_COMMAND="_familiar_prompt${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
fi
`

// familiar escapes $ and ` for zsh assuming prompt_subst is on, so the
// snippet turns it on rather than depend on the user's options.
const zshTemplate = `# Added by '%[1]s --init zsh'
setopt prompt_subst
_familiar_prompt() {
    PROMPT="$(%[1]s --shell zsh)"
}
typeset -ga precmd_functions
if (( ! ${precmd_functions[(I)_familiar_prompt]} )); then
    precmd_functions+=(_familiar_prompt)
fi
`

// Shells lists the shells Snippet supports.
var Shells = []theme.Shell{theme.ShellBash, theme.ShellZsh}

// Snippet returns the init script for shell. binary is the command the
// script runs on every prompt; it is quoted for the shell.
func Snippet(shell, binary string) (string, error) {
	quoted, err := syntax.Quote(binary, syntax.LangBash)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot quote binary path").
			WithDetail("binary", binary)
	}

	switch theme.Shell(strings.ToLower(shell)) {
	case theme.ShellBash:
		return fmt.Sprintf(bashTemplate, quoted), nil
	case theme.ShellZsh:
		return fmt.Sprintf(zshTemplate, quoted), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unsupported shell %q (want bash or zsh)", shell)).
			WithDetail("shell", shell)
	}
}
