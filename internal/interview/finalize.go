package interview

import (
    "context"
    "fmt"
    "log"

    "voxhire/agent/internal/types"
)

// finalize is the evaluation trigger: invoked at most once per session. A
// re-entrant call after completion is a no-op. The status flip is gated on
// evaluation success so evaluation is present iff the session is complete; on
// failure the session stays active and end-of-interview can be retried.
func (o *Orchestrator) finalize(ctx context.Context) error {
    o.mu.Lock()
    if o.status == types.StatusComplete {
        o.mu.Unlock()
        return nil
    }
    cfg := o.cfg
    lg := o.log
    o.mu.Unlock()

    msgs := lg.Snapshot()
    eval, err := o.evaluator.Evaluate(ctx, msgs, cfg.JobTitle)
    if err != nil {
        metricEvaluations.WithLabelValues("failure").Inc()
        log.Printf("[interview] evaluation failed, session stays active: %v", err)
        return fmt.Errorf("%w: %v", ErrEvaluation, err)
    }

    o.mu.Lock()
    if o.status == types.StatusComplete {
        // Lost the race to a concurrent finalize; keep the first verdict.
        o.mu.Unlock()
        return nil
    }
    o.eval = &eval
    o.setStatusLocked(types.StatusComplete)
    o.mu.Unlock()

    metricEvaluations.WithLabelValues("success").Inc()
    metricSessionsCompleted.Inc()

    entry, err := o.store.Save(types.StatusComplete, cfg, msgs, eval)
    if err != nil {
        // The session is complete either way; the archive write is durable
        // best-effort and logged for operator follow-up.
        log.Printf("[interview] archive save failed: %v", err)
    } else {
        log.Printf("[interview] session archived id=%s score=%s", entry.ID, eval.Score)
    }

    o.notify("session_complete", map[string]any{"score": eval.Score})
    return nil
}
