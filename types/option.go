package types

import (
	"context"

	"github.com/mcuadros/go-defaults"
)

func NewRunnerOptions() *RunnerOptions {
	opts := &RunnerOptions{Ctx: context.Background()}
	defaults.SetDefaults(opts)
	return opts
}

type RunnerOptions struct {
	/**
	 * default: context.Background()
	 * fallback context used when a caller passes nil to Execute, Run or
	 * RunBatch.
	 */
	Ctx context.Context
	/**
	 * default: 30
	 * deadline in seconds attached to each http action call. An
	 * unresponsive upstream would otherwise hang the run indefinitely.
	 */
	HTTPTimeoutSeconds int `default:"30"`
	/**
	 * default: 60
	 * deadline in seconds attached to each openai action call.
	 */
	AITimeoutSeconds int `default:"60"`
	/**
	 * default: false
	 * The learner runtime this engine replaces always followed the first
	 * successor of an if-else node regardless of the evaluated branch.
	 * StrictBranching=false keeps that behavior; true selects
	 * successors[0] for the "true" branch and successors[1] for "false".
	 */
	StrictBranching bool `default:"false"`
	/**
	 * default: 8
	 * RunBatch executes this many independent runs concurrently. Each
	 * individual run stays strictly sequential.
	 */
	BatchConcurrency int `default:"8"`
	/**
	 * default: false, only set it to true when doing testing or developing.
	 */
	MemStore bool `default:"false"`

	// PostgreSQL archive configuration.
	// If both MemStore and PostgresConfig are set, PostgresConfig takes precedence.
	PostgresConfig *PostgresConfig

	// Injected capabilities. When nil the default openai client and a
	// plain http.Client are used.
	Completer  Completer
	HTTPClient HTTPDoer
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string // disable, require, verify-ca, verify-full
}

type RunnerOption func(*RunnerOptions)

// WithContext sets the context used for runs started with a nil context.
func WithContext(ctx context.Context) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.Ctx = ctx
	}
}

func WithHTTPTimeoutSeconds(seconds int) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.HTTPTimeoutSeconds = seconds
	}
}

func WithAITimeoutSeconds(seconds int) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.AITimeoutSeconds = seconds
	}
}

func EnableStrictBranching() RunnerOption {
	return func(opts *RunnerOptions) {
		opts.StrictBranching = true
	}
}

func SetBatchConcurrency(concurrency int) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.BatchConcurrency = concurrency
	}
}

func EnableMemStore() RunnerOption {
	return func(opts *RunnerOptions) {
		opts.MemStore = true
	}
}

// WithPostgresConfig configures the runner to archive results in PostgreSQL.
func WithPostgresConfig(config *PostgresConfig) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.PostgresConfig = config
	}
}

func WithCompleter(c Completer) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.Completer = c
	}
}

func WithHTTPClient(c HTTPDoer) RunnerOption {
	return func(opts *RunnerOptions) {
		opts.HTTPClient = c
	}
}
