package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/buildenv/internal/host"
	"github.com/thoreinstein/buildenv/internal/logging"
	"github.com/thoreinstein/buildenv/internal/msdev"
	"github.com/thoreinstein/buildenv/internal/pathconv"
	"github.com/thoreinstein/buildenv/pkg/fileutil"
)

var (
	vsJSON   bool
	vsPaths  bool
	vsOutput string
)

func init() {
	vsCmd.Flags().BoolVar(&vsJSON, "json", false,
		"output as JSON")
	vsCmd.Flags().BoolVar(&vsPaths, "paths", false,
		"include known tool paths")
	vsCmd.Flags().StringVarP(&vsOutput, "output", "o", "",
		"write the instances to a JSON file")
	rootCmd.AddCommand(vsCmd)
}

var vsCmd = &cobra.Command{
	Use:   "vs",
	Short: "List installed Visual Studio instances",
	Long: `List Visual Studio installations found through the registry.

Covers both the legacy discovery path (Visual Studio 2003 through 2015)
and the modern setup engine (2017 and later). On WSL, Cygwin, and MSYS2
the registry is read through reg.exe; off Windows hosts the list is
always empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInstances(cmd, vsJSON, vsPaths, vsOutput, func(inst msdev.ToolInstance) bool {
			return !strings.HasSuffix(inst.Name, "SDK")
		})
	},
}

// instanceReport is the JSON shape shared by the vs and sdk commands.
type instanceReport struct {
	Name       string            `json:"name"`
	Version    string            `json:"version"`
	Path       string            `json:"path"`
	KnownPaths map[string]string `json:"known_paths,omitempty"`
}

func runInstances(cmd *cobra.Command, asJSON, showPaths bool, outputPath string, keep func(msdev.ToolInstance) bool) error {
	info := host.Detect()
	logger := logging.FromContext(cmd.Context())
	scanner := msdev.NewScannerWithLogger(info, pathconv.NewTranslatorWithLogger(info, logger), logger)
	instances, err := scanner.Instances()
	if err != nil {
		return errors.Wrap(err, "discovering installed tooling")
	}

	var kept []msdev.ToolInstance
	for _, inst := range instances {
		if keep(inst) {
			kept = append(kept, inst)
		}
	}

	out := cmd.OutOrStdout()

	if outputPath != "" {
		reports := make([]instanceReport, 0, len(kept))
		for _, inst := range kept {
			reports = append(reports, instanceReport{
				Name:       inst.Name,
				Version:    inst.Version,
				Path:       inst.Path,
				KnownPaths: inst.KnownPaths(),
			})
		}
		if err := fileutil.AtomicWriteJSON(outputPath, reports); err != nil {
			return errors.Wrapf(err, "writing %s", outputPath)
		}
		fmt.Fprintf(out, "wrote %d instances to %s\n", len(reports), outputPath)
		return nil
	}

	if asJSON {
		reports := make([]instanceReport, 0, len(kept))
		for _, inst := range kept {
			reports = append(reports, instanceReport{
				Name:       inst.Name,
				Version:    inst.Version,
				Path:       inst.Path,
				KnownPaths: inst.KnownPaths(),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(reports), "encoding instances")
	}

	if len(kept) == 0 {
		fmt.Fprintln(out, "none found")
		return nil
	}

	for _, inst := range kept {
		fmt.Fprintln(out, inst)
		if !showPaths {
			continue
		}
		known := inst.KnownPaths()
		names := make([]string, 0, len(known))
		for name := range known {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %s\n", name, known[name])
		}
	}

	return nil
}
