package run

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ilham-ap/parex/internal/config"
	"github.com/ilham-ap/parex/internal/executor"
	"github.com/ilham-ap/parex/internal/output"
	"github.com/ilham-ap/parex/internal/util"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var (
		file    string
		jobName string
		shell   string
	)

	cmd := &cobra.Command{
		Use:   "run [command...]",
		Short: "Run commands concurrently on a worker pool",
		Long: `Run executes independent shell commands in parallel through a bounded
worker pool. Commands are taken from the arguments, from a file with one
command per line (--file, use "-" for stdin), or from a job preset
configured in your parex config (--job).

Each command becomes one task: it is dispatched to the next free worker,
tracked through a future, and reported with its status and duration once
the whole batch has resolved. One failing command never affects its
siblings.`,
		Example: `  # Run three commands on the default pool
  parex run "make build" "make lint" "make docs"

  # Run every line of a file with 8 workers
  parex run --file commands.txt -p 8

  # Run a configured job preset
  parex run --job checks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, file, jobName, shell)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `file with one command per line ("-" for stdin)`)
	cmd.Flags().StringVar(&jobName, "job", "", "name of a job preset from the config file")
	cmd.Flags().StringVar(&shell, "shell", "", "shell used to run commands (default from config)")

	return cmd
}

// runSettings are the effective settings for one run after merging
// flags, config defaults, and an optional job preset
type runSettings struct {
	commands []string
	workers  int
	timeout  time.Duration
	isolated bool
	shell    string
}

func runRun(cmd *cobra.Command, args []string, file, jobName, shell string) error {
	logger := slog.Default()

	cfgPath := viper.GetString("config")
	manager := config.NewManager(cfgPath)
	cfg, err := manager.Load()
	if err != nil {
		return util.WrapErrorf(err, "loading configuration")
	}

	settings, err := resolveSettings(cmd, args, file, jobName, shell, manager, cfg)
	if err != nil {
		return err
	}

	logger.Debug("starting run",
		"commands", len(settings.commands),
		"workers", settings.workers,
		"isolated", settings.isolated,
		"timeout", settings.timeout)

	results, err := executeCommands(cmd.Context(), settings, logger)
	if err != nil {
		return err
	}

	if err := printResults(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	if failed := executor.CountFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d commands failed", failed, len(results))
	}

	return nil
}

// resolveSettings merges flags, config defaults, and the job preset
func resolveSettings(
	cmd *cobra.Command,
	args []string,
	file, jobName, shell string,
	manager *config.Manager,
	cfg *config.Config,
) (*runSettings, error) {
	s := &runSettings{
		workers:  cfg.Defaults.Workers,
		timeout:  cfg.Defaults.Timeout,
		shell:    cfg.Defaults.Shell,
		isolated: viper.GetBool("isolated"),
	}

	switch {
	case jobName != "":
		job, ok := manager.GetJob(jobName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", util.ErrJobNotFound, jobName)
		}
		s.commands = job.Commands
		if job.Workers > 0 {
			s.workers = job.Workers
		}
		if job.Timeout > 0 {
			s.timeout = job.Timeout
		}
		if job.Isolated {
			s.isolated = true
		}

	case file != "":
		commands, err := readCommands(file, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		s.commands = commands

	default:
		s.commands = args
	}

	if len(s.commands) == 0 {
		return nil, util.ErrNoCommands
	}

	// Explicit flags override both config defaults and job presets
	if cmd.Flags().Changed("workers") || viper.GetInt("workers") != config.DefaultWorkers {
		s.workers = viper.GetInt("workers")
	}
	if cmd.Flags().Changed("timeout") {
		s.timeout = viper.GetDuration("timeout")
	}
	if shell != "" {
		s.shell = shell
	}

	return s, nil
}

// readCommands reads one command per line, skipping blanks and comments
func readCommands(file string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if file == "-" {
		r = stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open command file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var commands []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		commands = append(commands, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}

	return commands, nil
}

// executeCommands runs every command through the executor and collects
// the outcomes in submission order
func executeCommands(ctx context.Context, s *runSettings, logger *slog.Logger) ([]executor.Result, error) {
	opts := []executor.Option{
		executor.WithWorkers(s.workers),
		executor.WithLogger(logger),
		executor.WithContext(ctx),
	}
	if s.isolated {
		opts = append(opts, executor.WithMode(executor.ModeIsolated))
	}

	pool := executor.New(opts...)
	defer pool.Shutdown(true)

	body := commandBody(s.shell, s.timeout)

	futures := make([]*executor.Future, 0, len(s.commands))
	for _, command := range s.commands {
		f, err := pool.SubmitTask(executor.Task{
			Label: truncateLabel(command),
			Input: command,
			Body:  body,
		})
		if err != nil {
			return nil, util.WrapCommandError(command, err)
		}
		futures = append(futures, f)
	}

	results, err := executor.Collect(ctx, futures)
	if err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}

	return results, nil
}

// commandBody builds the task body that runs one shell command.
// The command's combined output is the task's result value; a non-zero
// exit status fails the task with the trailing output attached.
func commandBody(shell string, timeout time.Duration) executor.Body {
	return func(ctx context.Context, input any) (any, error) {
		command, ok := input.(string)
		if !ok {
			return nil, fmt.Errorf("expected a command string, got %T", input)
		}

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		out, err := exec.CommandContext(ctx, shell, "-c", command).CombinedOutput()
		text := strings.TrimRight(string(out), "\n")

		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return nil, fmt.Errorf("timed out after %s", timeout)
			}
			if text != "" {
				return nil, fmt.Errorf("%w: %s", err, lastLine(text))
			}
			return nil, err
		}

		return text, nil
	}
}

// printResults renders the batch with the configured formatter
func printResults(w io.Writer, results []executor.Result) error {
	format := output.Format(viper.GetString("output"))
	if format == "" {
		format = output.FormatTable
	}

	formatter := output.NewFormatter(format,
		output.WithNoColor(viper.GetBool("no-color")),
		output.WithWide(true),
	)

	return formatter.FormatResults(w, results)
}

// truncateLabel keeps task labels short enough for table output
func truncateLabel(command string) string {
	const max = 40
	if len(command) <= max {
		return command
	}
	return command[:max-3] + "..."
}

// lastLine returns the final non-empty line of a command's output
func lastLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
