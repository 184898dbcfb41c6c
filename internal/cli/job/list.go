package job

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ilham-ap/parex/internal/config"
)

// jobEntry is one job preset flattened for list output
type jobEntry struct {
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Commands    int           `json:"commands" yaml:"commands"`
	Workers     int           `json:"workers,omitempty" yaml:"workers,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Isolated    bool          `json:"isolated,omitempty" yaml:"isolated,omitempty"`
}

// newListCmd creates the job list command
func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured job presets",
		Long: `List the job presets defined in your parex configuration,
with the number of commands and any pool overrides each one carries.`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml)")

	return cmd
}

func runList(outputFormat string) error {
	logger := slog.Default()

	cfgPath := viper.GetString("config")
	manager := config.NewManager(cfgPath)
	cfg, err := manager.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Debug("loaded configuration", "jobs", len(cfg.Jobs))

	names := manager.JobNames()
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "No job presets configured\n")
		return nil
	}

	entries := buildEntries(names, cfg.Jobs)

	if outputFormat == "" {
		outputFormat = viper.GetString("output")
	}
	if outputFormat == "" {
		outputFormat = "table"
	}

	switch outputFormat {
	case "json":
		return outputJSON(entries)
	case "yaml":
		return outputYAML(entries)
	case "table":
		return outputTable(entries, viper.GetBool("no-color"))
	default:
		return fmt.Errorf("unsupported output format: %s (supported: table, json, yaml)", outputFormat)
	}
}

// buildEntries flattens job presets into list rows, preserving the
// order of names
func buildEntries(names []string, jobs map[string]config.JobConfig) []jobEntry {
	entries := make([]jobEntry, 0, len(names))
	for _, name := range names {
		job := jobs[name]
		entries = append(entries, jobEntry{
			Name:        name,
			Description: job.Description,
			Commands:    len(job.Commands),
			Workers:     job.Workers,
			Timeout:     job.Timeout,
			Isolated:    job.Isolated,
		})
	}
	return entries
}

func outputTable(entries []jobEntry, noColor bool) error {
	table := tablewriter.NewWriter(os.Stdout)

	table.SetHeader([]string{"Name", "Description", "Commands", "Workers", "Timeout", "Isolated"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	if noColor {
		color.NoColor = true
	}
	cyan := color.New(color.FgCyan)

	for _, e := range entries {
		name := e.Name
		if !noColor {
			name = cyan.Sprint(name)
		}

		description := e.Description
		if len(description) > 40 {
			description = description[:37] + "..."
		}

		workers := "-"
		if e.Workers > 0 {
			workers = fmt.Sprintf("%d", e.Workers)
		}

		timeout := "-"
		if e.Timeout > 0 {
			timeout = e.Timeout.String()
		}

		isolated := ""
		if e.Isolated {
			isolated = "yes"
		}

		table.Append([]string{
			name,
			description,
			fmt.Sprintf("%d", e.Commands),
			workers,
			timeout,
			isolated,
		})
	}

	table.Render()
	return nil
}

func outputJSON(entries []jobEntry) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func outputYAML(entries []jobEntry) error {
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(entries)
}
