package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/buildenv/internal/msdev"
)

var (
	sdkJSON   bool
	sdkPaths  bool
	sdkOutput string
)

func init() {
	sdkCmd.Flags().BoolVar(&sdkJSON, "json", false,
		"output as JSON")
	sdkCmd.Flags().BoolVar(&sdkPaths, "paths", false,
		"include known tool paths")
	sdkCmd.Flags().StringVarP(&sdkOutput, "output", "o", "",
		"write the instances to a JSON file")
	rootCmd.AddCommand(sdkCmd)
}

var sdkCmd = &cobra.Command{
	Use:   "sdk",
	Short: "List installed Windows SDKs",
	Long: `List Windows SDK installations found under the registered kits roots.

Covers the Windows 8.0 and 8.1 kits as well as every Windows 10 SDK
version. Each entry carries the header, library, and tool paths verified
on disk for this machine's CPU. Off Windows hosts the list is always
empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInstances(cmd, sdkJSON, sdkPaths, sdkOutput, func(inst msdev.ToolInstance) bool {
			return strings.HasSuffix(inst.Name, "SDK")
		})
	},
}
