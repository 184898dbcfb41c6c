package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ilham-ap/parex/pkg/version"
)

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display version, commit, and build information for parex",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, short)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print just the version and commit")

	return cmd
}

func runVersion(cmd *cobra.Command, short bool) error {
	info := version.Get()
	out := cmd.OutOrStdout()

	if short {
		fmt.Fprintln(out, info.Short())
		return nil
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		fmt.Fprintln(out, info.String())
	}

	return nil
}
