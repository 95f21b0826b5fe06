package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teachforge-io/agent/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		version, gitCommit, ok := common.GetModuleBuildInfo()

		if !ok {
			fmt.Println("Failed to get version information")
			return
		}

		fmt.Printf("TeachForge Agent %s", version)
		if gitCommit != "unknown" && len(gitCommit) > 0 {
			if len(gitCommit) > 8 {
				fmt.Printf(" (git: %s)", gitCommit[:8])
			} else {
				fmt.Printf(" (git: %s)", gitCommit)
			}
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
