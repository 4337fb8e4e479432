package api

import (
    "encoding/json"
    "errors"
    "io"
    "net/http"

    "voxhire/agent/internal/archive"
    "voxhire/agent/internal/audio"
    "voxhire/agent/internal/config"
    "voxhire/agent/internal/health"
    "voxhire/agent/internal/interview"
    "voxhire/agent/internal/types"
)

type Handlers struct {
    cfg      config.Config
    orch     *interview.Orchestrator
    store    *archive.Store
    pipeline *audio.Pipeline
    rec      *audio.BufferRecorder
}

func NewHandlers(cfg config.Config, orch *interview.Orchestrator, st *archive.Store, p *audio.Pipeline, rec *audio.BufferRecorder) *Handlers {
    return &Handlers{cfg: cfg, orch: orch, store: st, pipeline: p, rec: rec}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(code)
    _ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Rejected requests change no
// session state, so clients can always retry after fixing the input.
func writeError(w http.ResponseWriter, err error) {
    switch {
    case errors.Is(err, interview.ErrValidation):
        http.Error(w, err.Error(), http.StatusBadRequest)
    case errors.Is(err, interview.ErrBusy), errors.Is(err, audio.ErrBusy):
        http.Error(w, err.Error(), http.StatusConflict)
    case errors.Is(err, interview.ErrState):
        http.Error(w, err.Error(), http.StatusConflict)
    case errors.Is(err, audio.ErrNoSpeech), errors.Is(err, audio.ErrTranscription):
        http.Error(w, err.Error(), http.StatusUnprocessableEntity)
    case errors.Is(err, interview.ErrEvaluation):
        http.Error(w, err.Error(), http.StatusBadGateway)
    case errors.Is(err, audio.ErrDevice):
        http.Error(w, err.Error(), http.StatusInternalServerError)
    default:
        // Remaining failures come from upstream collaborators.
        http.Error(w, err.Error(), http.StatusBadGateway)
    }
}

// HandleGetInterview returns the full in-memory session state.
func (h *Handlers) HandleGetInterview(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, h.orch.Snapshot())
}

// HandleConfigure stores the session parameters during setup.
func (h *Handlers) HandleConfigure(w http.ResponseWriter, r *http.Request) {
    var cfg types.SessionConfig
    if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
        http.Error(w, "invalid JSON body", http.StatusBadRequest)
        return
    }
    if err := h.orch.Configure(cfg); err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": h.orch.Status()})
}

func (h *Handlers) HandleStart(w http.ResponseWriter, r *http.Request) {
    msg, err := h.orch.StartInterview(r.Context())
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"message": msg, "status": h.orch.Status()})
}

// HandleTurn submits a typed candidate turn.
func (h *Handlers) HandleTurn(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Content string `json:"content"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid JSON body", http.StatusBadRequest)
        return
    }
    msg, err := h.orch.SubmitTurn(r.Context(), body.Content)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"message": msg, "status": h.orch.Status()})
}

// HandleAudioTurn accepts an uploaded recording, runs it through the capture
// path and submits the transcript as the candidate's turn.
func (h *Handlers) HandleAudioTurn(w http.ResponseWriter, r *http.Request) {
    if err := r.ParseMultipartForm(16 << 20); err != nil {
        http.Error(w, "invalid multipart body", http.StatusBadRequest)
        return
    }
    file, _, err := r.FormFile("audio")
    if err != nil {
        http.Error(w, "missing audio file", http.StatusBadRequest)
        return
    }
    defer file.Close()
    data, err := io.ReadAll(file)
    if err != nil {
        http.Error(w, "reading audio", http.StatusBadRequest)
        return
    }

    ctx := r.Context()
    if err := h.pipeline.StartCapture(ctx); err != nil {
        writeError(w, err)
        return
    }
    h.rec.Feed(data)
    text, err := h.pipeline.StopCapture(ctx)
    if err != nil {
        writeError(w, err)
        return
    }

    msg, err := h.orch.SubmitTurn(ctx, text)
    if err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "transcript": text,
        "message":    msg,
        "status":     h.orch.Status(),
    })
}

func (h *Handlers) HandleEnd(w http.ResponseWriter, r *http.Request) {
    if err := h.orch.EndInterview(r.Context()); err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, h.orch.Snapshot())
}

func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
    if err := h.orch.Reset(); err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": h.orch.Status()})
}

// HandleReplay re-plays a prior interviewer message.
func (h *Handlers) HandleReplay(w http.ResponseWriter, r *http.Request) {
    var body struct {
        MessageID string `json:"message_id"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid JSON body", http.StatusBadRequest)
        return
    }
    if err := h.orch.Replay(r.Context(), body.MessageID); err != nil {
        writeError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handlers) HandleListInterviews(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]any{"interviews": h.store.List()})
}

func (h *Handlers) HandleGetArchived(w http.ResponseWriter, r *http.Request, id string) {
    entry, ok := h.store.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) HandleDeleteArchived(w http.ResponseWriter, r *http.Request, id string) {
    h.store.Delete(id)
    writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
    status := health.CheckAll(r.Context(), h.cfg)
    code := http.StatusOK
    if !status.OK {
        code = http.StatusServiceUnavailable
    }
    writeJSON(w, code, status)
}
