package runtime

import (
	"context"

	"github.com/juju/errors"

	"github.com/akulearn/sandbox/types"
	"github.com/akulearn/sandbox/utils"
)

// Archive path prefixes. Run results are keyed by run id, verification
// records by session id.
const (
	RunResultPath    = "/run_result/"
	VerificationPath = "/verification/"
)

func (r *Runner) saveResult(ctx context.Context, runID string, result *types.ExecutionResult) error {
	b, err := utils.Serialize(result)
	if err != nil {
		return errors.Trace(err)
	}

	return errors.Trace(r.store.Set(ctx, RunResultPath, runID, b))
}

// LoadResult retrieves an archived execution result.
func (r *Runner) LoadResult(ctx context.Context, runID string) (*types.ExecutionResult, error) {
	if r.store == nil {
		return nil, errors.NotSupportedf("runner has no archive store")
	}
	b, err := r.store.Get(ctx, RunResultPath, runID)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if b == nil {
		return nil, errors.NotFoundf("run result: %s", runID)
	}

	result := &types.ExecutionResult{}
	if err := utils.Unserialize(b, result); err != nil {
		return nil, errors.Trace(err)
	}
	return result, nil
}

// ListRuns iterates archived run ids.
func (r *Runner) ListRuns(ctx context.Context) ([]string, error) {
	if r.store == nil {
		return nil, errors.NotSupportedf("runner has no archive store")
	}
	ids := make([]string, 0)
	err := r.store.List(ctx, RunResultPath, func(runID string) bool {
		ids = append(ids, runID)
		return true
	})
	return ids, errors.Trace(err)
}

// SaveVerification archives a verification result for the certification
// collaborators, keyed by session id.
func (r *Runner) SaveVerification(ctx context.Context, sessionID string, vr *types.VerificationResult) error {
	if r.store == nil {
		return errors.NotSupportedf("runner has no archive store")
	}
	b, err := utils.Serialize(vr)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(r.store.Set(ctx, VerificationPath, sessionID, b))
}

// LoadVerification retrieves an archived verification result.
func (r *Runner) LoadVerification(ctx context.Context, sessionID string) (*types.VerificationResult, error) {
	if r.store == nil {
		return nil, errors.NotSupportedf("runner has no archive store")
	}
	b, err := r.store.Get(ctx, VerificationPath, sessionID)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if b == nil {
		return nil, errors.NotFoundf("verification result: %s", sessionID)
	}

	vr := &types.VerificationResult{}
	if err := utils.Unserialize(b, vr); err != nil {
		return nil, errors.Trace(err)
	}
	return vr, nil
}
