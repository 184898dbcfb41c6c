package job

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ilham-ap/parex/internal/config"
	"github.com/ilham-ap/parex/internal/util"
)

// newShowCmd creates the job show command
func newShowCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show one job preset in full",
		Long: `Show the full definition of a single job preset, including every
command it runs and the pool settings it overrides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0], outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json, yaml)")

	return cmd
}

func runShow(name, outputFormat string) error {
	cfgPath := viper.GetString("config")
	manager := config.NewManager(cfgPath)
	if _, err := manager.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	job, ok := manager.GetJob(name)
	if !ok {
		return fmt.Errorf("%w: %q", util.ErrJobNotFound, name)
	}

	if outputFormat == "" {
		outputFormat = viper.GetString("output")
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(job)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(job)
	case "", "text", "table":
		printJob(name, job, viper.GetBool("no-color"))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: text, json, yaml)", outputFormat)
	}
}

func printJob(name string, job *config.JobConfig, noColor bool) {
	if noColor {
		color.NoColor = true
	}
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Printf("%s %s\n", bold.Sprint("Job:"), cyan.Sprint(name))
	if job.Description != "" {
		fmt.Printf("%s %s\n", bold.Sprint("Description:"), job.Description)
	}
	if job.Workers > 0 {
		fmt.Printf("%s %d\n", bold.Sprint("Workers:"), job.Workers)
	}
	if job.Timeout > 0 {
		fmt.Printf("%s %s\n", bold.Sprint("Timeout:"), job.Timeout)
	}
	if job.Isolated {
		fmt.Printf("%s yes\n", bold.Sprint("Isolated:"))
	}

	fmt.Printf("%s\n", bold.Sprint("Commands:"))
	for i, command := range job.Commands {
		fmt.Printf("  %2d. %s\n", i+1, command)
	}
}
