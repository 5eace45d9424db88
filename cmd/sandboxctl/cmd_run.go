package main

import (
	"github.com/spf13/cobra"

	"github.com/akulearn/sandbox"
	"github.com/akulearn/sandbox/store/postgres"
	"github.com/akulearn/sandbox/types"
)

var runFlags struct {
	runID       string
	strict      bool
	postgresDSN string
	httpTimeout int
	aiTimeout   int
}

var runCmd = &cobra.Command{
	Use:   "run <graph-file>",
	Short: "Execute a workflow graph and print the execution result",
	Long: `Run executes a learner workflow graph (YAML or JSON) and prints the
execution result as JSON: success flag, per-node outputs, the ordered
execution log and the final output.

Results are archived under --run-id; with --postgres-dsn they go to
PostgreSQL, otherwise to an in-memory store that vanishes on exit.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.runID, "run-id", "cli-run", "Run id used as the archive key")
	f.BoolVar(&runFlags.strict, "strict-branching", false, "Select if-else successors by evaluated branch instead of always the first")
	f.StringVar(&runFlags.postgresDSN, "postgres-dsn", "", "PostgreSQL DSN for the result archive (default: in-memory)")
	f.IntVar(&runFlags.httpTimeout, "http-timeout", 30, "Deadline in seconds for http action calls")
	f.IntVar(&runFlags.aiTimeout, "ai-timeout", 60, "Deadline in seconds for openai action calls")
}

func buildRunnerOptions() ([]types.RunnerOption, error) {
	opts := []types.RunnerOption{
		types.WithHTTPTimeoutSeconds(runFlags.httpTimeout),
		types.WithAITimeoutSeconds(runFlags.aiTimeout),
	}
	if runFlags.strict {
		opts = append(opts, types.EnableStrictBranching())
	}
	if runFlags.postgresDSN != "" {
		config, err := postgres.ParseDSN(runFlags.postgresDSN)
		if err != nil {
			return nil, err
		}
		opts = append(opts, types.WithPostgresConfig(&types.PostgresConfig{
			Host:     config.Host,
			Port:     config.Port,
			User:     config.User,
			Password: config.Password,
			Database: config.Database,
			SSLMode:  config.SSLMode,
		}))
	} else {
		opts = append(opts, types.EnableMemStore())
	}
	return opts, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	nodes, err := readGraphFile(args[0])
	if err != nil {
		return err
	}

	opts, err := buildRunnerOptions()
	if err != nil {
		return err
	}
	runner, err := sandbox.NewRunner(opts...)
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context(), runFlags.runID, nodes)
	if err != nil {
		return err
	}
	return printJSON(result)
}
