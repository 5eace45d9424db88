package sandbox

import (
	"net/http"
	"time"

	"github.com/juju/errors"

	"github.com/akulearn/sandbox/ai"
	"github.com/akulearn/sandbox/runtime"
	"github.com/akulearn/sandbox/store"
	"github.com/akulearn/sandbox/store/mem"
	"github.com/akulearn/sandbox/store/postgres"
	"github.com/akulearn/sandbox/types"
)

// NewRunner creates a workflow runner with the given options, wiring the
// archive store and default capabilities.
func NewRunner(opts ...types.RunnerOption) (*runtime.Runner, error) {
	options := types.NewRunnerOptions()
	for _, opt := range opts {
		opt(options)
	}

	var s store.Store
	var err error

	// PostgresConfig takes precedence over MemStore
	if options.PostgresConfig != nil {
		pgConfig := &postgres.Config{
			Host:     options.PostgresConfig.Host,
			Port:     options.PostgresConfig.Port,
			User:     options.PostgresConfig.User,
			Password: options.PostgresConfig.Password,
			Database: options.PostgresConfig.Database,
			SSLMode:  options.PostgresConfig.SSLMode,
		}

		s, err = postgres.NewPostgresStore(pgConfig)
		if err != nil {
			return nil, errors.Annotatef(err, "failed to create PostgreSQL store")
		}
	} else if options.MemStore {
		s = mem.NewMemStore()
	} else {
		// default to mem store if not specified
		s = mem.NewMemStore()
	}

	if options.Completer == nil {
		options.Completer = ai.New()
	}
	if options.HTTPClient == nil {
		options.HTTPClient = &http.Client{
			Timeout: time.Duration(options.HTTPTimeoutSeconds) * time.Second,
		}
	}

	return runtime.NewRunner(s, options), nil
}
