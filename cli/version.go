package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/familiar/version"
)

// SetVersionTemplate enables --version and prints the build details with it.
func SetVersionTemplate(cmd *cobra.Command, info version.Info) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}}\n%s\n", info.String()))
}
