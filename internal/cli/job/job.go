package job

import (
	"github.com/spf13/cobra"
)

// NewJobCmd creates the job management command
func NewJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage job presets",
		Long: `Manage job presets from your parex configuration.

A job preset names a fixed set of commands together with pool settings
(workers, timeout, isolation) so a recurring batch can be run with
"parex run --job <name>" instead of spelling the commands out each time.`,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())

	return cmd
}
