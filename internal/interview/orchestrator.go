package interview

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "sync"

    "voxhire/agent/internal/archive"
    "voxhire/agent/internal/audio"
    "voxhire/agent/internal/closing"
    "voxhire/agent/internal/transcript"
    "voxhire/agent/internal/types"
)

var (
    // ErrValidation covers missing setup fields, empty turns, and ending too
    // early. Surfaced synchronously, no state change.
    ErrValidation = errors.New("validation")
    // ErrBusy means another turn or request is already in flight.
    ErrBusy = errors.New("request already in flight")
    // ErrState means the operation is not legal for the session's status.
    ErrState = errors.New("invalid session state")
    // ErrEvaluation means the evaluation collaborator failed or returned an
    // incomplete verdict; the session stays active and recoverable.
    ErrEvaluation = errors.New("evaluation failed")
)

// apologyMessage is appended in place of a real interviewer turn when the
// generation collaborator fails. The conversation continues.
const apologyMessage = "I apologize, but I encountered an error. Please try again."

// closingMessage is appended when the candidate ends the interview explicitly.
const closingMessage = "Thank you for taking the time to speak with me today. We appreciate your interest in this position. You'll hear from us if you've been selected for the next stage. Have a great day!"

// Generator produces interviewer turns.
type Generator interface {
    Reply(ctx context.Context, prior []types.Message, cfg types.SessionConfig, isInitial bool) (string, error)
}

// Evaluator produces the structured end-of-session verdict.
type Evaluator interface {
    Evaluate(ctx context.Context, msgs []types.Message, jobTitle string) (types.Evaluation, error)
}

// Notifier receives session events for delivery to attached front ends.
type Notifier interface {
    Notify(event string, payload any)
}

// Snapshot is a read-only view of the in-memory session.
type Snapshot struct {
    Config     types.SessionConfig `json:"config"`
    Status     types.Status        `json:"status"`
    Messages   []types.Message     `json:"messages"`
    Evaluation *types.Evaluation   `json:"evaluation,omitempty"`
}

// Orchestrator owns the single in-memory session and drives its lifecycle:
// setup -> active -> complete. It is the only writer of the transcript and
// status besides the evaluation trigger it hosts.
type Orchestrator struct {
    mu       sync.Mutex
    cfg      types.SessionConfig
    status   types.Status
    log      *transcript.Log
    eval     *types.Evaluation
    inFlight bool

    // pendingEnd is refreshed by the transcript's interviewer-append hook and
    // consulted only after successful generation, so apology turns never
    // trigger termination.
    pendingEnd bool

    gen       Generator
    evaluator Evaluator
    pipeline  *audio.Pipeline
    detector  closing.Detector
    store     *archive.Store
    notifier  Notifier
}

func New(gen Generator, evaluator Evaluator, pipeline *audio.Pipeline, detector closing.Detector, store *archive.Store) *Orchestrator {
    o := &Orchestrator{
        status:    types.StatusSetup,
        gen:       gen,
        evaluator: evaluator,
        pipeline:  pipeline,
        detector:  detector,
        store:     store,
    }
    o.log = transcript.New()
    o.log.OnInterviewer(o.checkTermination)
    return o
}

// SetNotifier attaches an event sink. Optional.
func (o *Orchestrator) SetNotifier(n Notifier) {
    o.mu.Lock()
    o.notifier = n
    o.mu.Unlock()
}

func (o *Orchestrator) notify(event string, payload any) {
    o.mu.Lock()
    n := o.notifier
    o.mu.Unlock()
    if n != nil {
        n.Notify(event, payload)
    }
}

// checkTermination runs after every interviewer append, per the turn log's
// notification contract.
func (o *Orchestrator) checkTermination(m types.Message) {
    o.mu.Lock()
    lg := o.log
    o.mu.Unlock()
    should := o.detector.ShouldEnd(lg.Len(), m.Content)
    o.mu.Lock()
    o.pendingEnd = should
    o.mu.Unlock()
}

// Configure sets the session parameters. Legal only during setup.
func (o *Orchestrator) Configure(cfg types.SessionConfig) error {
    o.mu.Lock()
    defer o.mu.Unlock()
    if o.status != types.StatusSetup {
        return fmt.Errorf("%w: session already started", ErrState)
    }
    o.cfg = cfg
    return nil
}

// StartInterview transitions setup -> active and requests the opening turn.
// The opening message is played asynchronously; the transition does not wait
// for audio. Retryable while the transcript is still empty, so a failed
// opening request does not strand the session.
func (o *Orchestrator) StartInterview(ctx context.Context) (types.Message, error) {
    o.mu.Lock()
    if o.status == types.StatusComplete || (o.status == types.StatusActive && o.log.Len() > 0) {
        o.mu.Unlock()
        return types.Message{}, fmt.Errorf("%w: interview already started", ErrState)
    }
    if o.cfg.JobTitle == "" || o.cfg.CandidateName == "" || o.cfg.CandidateEmail == "" {
        o.mu.Unlock()
        return types.Message{}, fmt.Errorf("%w: job title, candidate name and candidate email are required", ErrValidation)
    }
    if o.inFlight {
        o.mu.Unlock()
        return types.Message{}, ErrBusy
    }
    o.inFlight = true
    o.setStatusLocked(types.StatusActive)
    cfg := o.cfg
    lg := o.log
    o.mu.Unlock()
    defer o.clearInFlight()

    metricSessionsStarted.Inc()
    reply, err := o.gen.Reply(ctx, nil, cfg, true)
    if err != nil {
        metricGenerationFailures.Inc()
        return types.Message{}, fmt.Errorf("opening turn: %w", err)
    }
    msg := lg.Append(types.RoleInterviewer, reply)
    o.notify("interviewer_message", msg)

    go o.play(context.Background(), reply)
    return msg, nil
}

// SubmitTurn drives one candidate/interviewer exchange. The candidate message
// is appended strictly before the generation request; the reply is appended
// strictly before termination is evaluated. On generation failure an apology
// message is appended instead and termination is not evaluated.
func (o *Orchestrator) SubmitTurn(ctx context.Context, content string) (types.Message, error) {
    content = strings.TrimSpace(content)
    if content == "" {
        return types.Message{}, fmt.Errorf("%w: empty turn", ErrValidation)
    }

    o.mu.Lock()
    if o.status != types.StatusActive {
        o.mu.Unlock()
        return types.Message{}, fmt.Errorf("%w: interview is not active", ErrState)
    }
    if o.inFlight {
        o.mu.Unlock()
        return types.Message{}, ErrBusy
    }
    o.inFlight = true
    cfg := o.cfg
    lg := o.log
    o.mu.Unlock()
    defer o.clearInFlight()

    candidate := lg.Append(types.RoleCandidate, content)
    o.notify("candidate_message", candidate)
    metricTurns.Inc()

    reply, err := o.gen.Reply(ctx, lg.Snapshot(), cfg, false)
    if err != nil {
        metricGenerationFailures.Inc()
        log.Printf("[interview] generation failed: %v", err)
        msg := lg.Append(types.RoleInterviewer, apologyMessage)
        o.notify("interviewer_message", msg)
        return msg, nil
    }

    msg := lg.Append(types.RoleInterviewer, reply)
    o.notify("interviewer_message", msg)

    o.play(ctx, reply)

    o.mu.Lock()
    shouldEnd := o.pendingEnd
    o.mu.Unlock()
    if shouldEnd {
        if err := o.finalize(ctx); err != nil {
            log.Printf("[interview] finalize after closing turn: %v", err)
        }
    }
    return msg, nil
}

// EndInterview ends the session explicitly, regardless of the termination
// detector. Requires at least one full exchange.
func (o *Orchestrator) EndInterview(ctx context.Context) error {
    o.mu.Lock()
    if o.status != types.StatusActive {
        o.mu.Unlock()
        return fmt.Errorf("%w: interview is not active", ErrState)
    }
    if o.log.Len() < 2 {
        o.mu.Unlock()
        return fmt.Errorf("%w: please have at least one exchange before ending the interview", ErrValidation)
    }
    if o.inFlight {
        o.mu.Unlock()
        return ErrBusy
    }
    o.inFlight = true
    lg := o.log
    o.mu.Unlock()
    defer o.clearInFlight()

    o.pipeline.Halt()

    msg := lg.Append(types.RoleInterviewer, closingMessage)
    o.notify("interviewer_message", msg)
    o.play(ctx, closingMessage)

    return o.finalize(ctx)
}

// Replay re-plays an interviewer message through the audio pipeline.
func (o *Orchestrator) Replay(ctx context.Context, messageID string) error {
    o.mu.Lock()
    lg := o.log
    o.mu.Unlock()
    for _, m := range lg.Snapshot() {
        if m.ID == messageID && m.Role == types.RoleInterviewer {
            if err := o.pipeline.Play(ctx, m.Content); err != nil {
                if errors.Is(err, audio.ErrBusy) {
                    return ErrBusy
                }
                log.Printf("[interview] replay: %v", err)
            }
            return nil
        }
    }
    return fmt.Errorf("%w: unknown interviewer message %q", ErrValidation, messageID)
}

// Reset discards the in-memory session. The archive is unaffected. Rejected
// while a request is in flight, so an abandoned turn can never drive the
// discarded transcript to completion.
func (o *Orchestrator) Reset() error {
    o.mu.Lock()
    if o.inFlight {
        o.mu.Unlock()
        return ErrBusy
    }
    o.cfg = types.SessionConfig{}
    o.setStatusLocked(types.StatusSetup)
    o.eval = nil
    o.pendingEnd = false
    o.log = transcript.New()
    o.log.OnInterviewer(o.checkTermination)
    o.mu.Unlock()

    o.pipeline.Halt()
    o.notify("session_reset", nil)
    return nil
}

// Teardown releases audio resources. Called on process shutdown.
func (o *Orchestrator) Teardown() {
    o.pipeline.Halt()
}

func (o *Orchestrator) Snapshot() Snapshot {
    o.mu.Lock()
    defer o.mu.Unlock()
    var eval *types.Evaluation
    if o.eval != nil {
        e := *o.eval
        eval = &e
    }
    return Snapshot{
        Config:     o.cfg,
        Status:     o.status,
        Messages:   o.log.Snapshot(),
        Evaluation: eval,
    }
}

func (o *Orchestrator) Status() types.Status {
    o.mu.Lock()
    defer o.mu.Unlock()
    return o.status
}

// play delivers a reply through the audio pipeline. Playback failures are
// non-fatal; the turn's text is already in the transcript.
func (o *Orchestrator) play(ctx context.Context, text string) {
    if err := o.pipeline.Play(ctx, text); err != nil {
        log.Printf("[interview] playback: %v", err)
    }
}

func (o *Orchestrator) clearInFlight() {
    o.mu.Lock()
    o.inFlight = false
    o.mu.Unlock()
}

// setStatusLocked records the transition metric. Caller holds o.mu.
func (o *Orchestrator) setStatusLocked(to types.Status) {
    if o.status == to {
        return
    }
    metricStatusTransitions.WithLabelValues(string(o.status), string(to)).Inc()
    o.status = to
}
