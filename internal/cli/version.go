package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TwigBush/authz-go/internal/version"
)

func cmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Verbose())
		},
	}
}
