package commands

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/buildenv/internal/host"
)

var hostJSON bool

func init() {
	hostCmd.Flags().BoolVar(&hostJSON, "json", false,
		"output as JSON")
	rootCmd.AddCommand(hostCmd)
}

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Show the detected host personality",
	Long: `Show how buildenv classifies the machine it runs on.

The variant distinguishes native Windows from the hosted shells (WSL,
Cygwin, MSYS2) and from macOS and plain Linux. The remaining fields are
derived from the variant: the generic machine name, whether a Windows
filesystem is reachable, and the CPU architecture names used to pick
toolchains.`,
	Args: cobra.NoArgs,
	RunE: runHost,
}

// hostReport is the JSON shape of the host command output.
type hostReport struct {
	Variant          string `json:"variant"`
	Machine          string `json:"machine"`
	IsWindows        bool   `json:"is_windows"`
	IsWindowsHost    bool   `json:"is_windows_host"`
	IsLinux          bool   `json:"is_linux"`
	IsMacOS          bool   `json:"is_macos"`
	WindowsCPU       string `json:"windows_cpu,omitempty"`
	MacCPU           string `json:"mac_cpu,omitempty"`
	PosixDrivePrefix string `json:"posix_drive_prefix,omitempty"`
}

func runHost(cmd *cobra.Command, _ []string) error {
	info := host.Detect()
	out := cmd.OutOrStdout()

	if hostJSON {
		report := hostReport{
			Variant:          info.Variant.String(),
			Machine:          info.Machine(),
			IsWindows:        info.IsWindows,
			IsWindowsHost:    info.IsWindowsHost,
			IsLinux:          info.IsLinux,
			IsMacOS:          info.IsMacOS,
			WindowsCPU:       info.WindowsCPU(true),
			MacCPU:           info.MacCPU(),
			PosixDrivePrefix: info.PosixDrivePrefix,
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding host report")
	}

	fmt.Fprintf(out, "variant:       %s\n", info.Variant)
	fmt.Fprintf(out, "machine:       %s\n", info.Machine())
	fmt.Fprintf(out, "windows host:  %v\n", info.IsWindowsHost)
	if cpu := info.WindowsCPU(true); cpu != "" {
		fmt.Fprintf(out, "windows cpu:   %s\n", cpu)
	}
	if cpu := info.MacCPU(); cpu != "" {
		fmt.Fprintf(out, "mac cpu:       %s\n", cpu)
	}
	if info.PosixDrivePrefix != "" {
		fmt.Fprintf(out, "drive prefix:  %s\n", info.PosixDrivePrefix)
	}

	return nil
}
