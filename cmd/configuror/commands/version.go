package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/cmd"
	"github.com/thoreinstein/configuror/internal/settings"
	"github.com/thoreinstein/configuror/pkg/configuror"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of configuror.`,
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		info := cmd.Info()
		fmt.Fprintf(w, "configuror version %s\n", info.Version)
		fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
		fmt.Fprintf(w, "  built:    %s\n", info.Date)
		fmt.Fprintf(w, "  go:       %s\n", info.GoVersion)
		fmt.Fprintf(w, "  formats:  %d\n", len(configuror.Formats()))
		if used := settings.FileUsed(); used != "" {
			fmt.Fprintf(w, "  settings: %s\n", used)
		}
	},
}
