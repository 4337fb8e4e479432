package api

import (
    "bytes"
    "context"
    "encoding/json"
    "mime/multipart"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "voxhire/agent/internal/archive"
    "voxhire/agent/internal/audio"
    "voxhire/agent/internal/closing"
    "voxhire/agent/internal/config"
    "voxhire/agent/internal/interview"
    "voxhire/agent/internal/types"
)

type mockGen struct {
    replies []string
}

func (m *mockGen) Reply(ctx context.Context, prior []types.Message, cfg types.SessionConfig, isInitial bool) (string, error) {
    if len(m.replies) > 0 {
        r := m.replies[0]
        m.replies = m.replies[1:]
        return r, nil
    }
    return "Interesting, go on.", nil
}

type mockEval struct{}

func (m *mockEval) Evaluate(ctx context.Context, msgs []types.Message, jobTitle string) (types.Evaluation, error) {
    return types.Evaluation{Score: types.ScoreStrong, Summary: "Solid.", Insights: []string{}}, nil
}

type mockTranscriber struct{ text string }

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
    return m.text, nil
}

type mockSynth struct{}

func (m *mockSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
    return []byte("mp3"), nil
}

type mockPlayer struct{}

func (m *mockPlayer) Play(ctx context.Context, audio []byte) error { return nil }

func newTestServer(t *testing.T, gen *mockGen, transcript string) (*httptest.Server, *archive.Store) {
    t.Helper()
    var cfg config.Config
    cfg.Archive.Dir = t.TempDir()
    st, err := archive.New(cfg.Archive.Dir)
    if err != nil {
        t.Fatalf("archive: %v", err)
    }
    rec := audio.NewBufferRecorder()
    pipeline := audio.NewPipeline(rec, &mockTranscriber{text: transcript}, &mockSynth{}, &mockPlayer{}, 0)
    orch := interview.New(gen, &mockEval{}, pipeline, closing.New(nil, 0), st)
    h := NewHandlers(cfg, orch, st, pipeline, rec)
    srv := httptest.NewServer(NewRouter(h))
    t.Cleanup(srv.Close)
    return srv, st
}

func postJSON(t *testing.T, url string, body any) *http.Response {
    t.Helper()
    b, _ := json.Marshal(body)
    resp, err := http.Post(url, "application/json", bytes.NewReader(b))
    if err != nil {
        t.Fatalf("request: %v", err)
    }
    return resp
}

func setup(t *testing.T, srv *httptest.Server) {
    t.Helper()
    resp := postJSON(t, srv.URL+"/interview", types.SessionConfig{
        JobTitle:       "Backend Engineer",
        CandidateName:  "Jordan Li",
        CandidateEmail: "jordan@example.com",
    })
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("configure: status %d", resp.StatusCode)
    }
}

func TestConfigureAndStartFlow(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{replies: []string{"Welcome! Tell me about yourself."}}, "")
    setup(t, srv)

    resp := postJSON(t, srv.URL+"/interview/start", nil)
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("start: status %d", resp.StatusCode)
    }
    var out struct {
        Message types.Message `json:"message"`
        Status  types.Status  `json:"status"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if out.Message.Role != types.RoleInterviewer || out.Status != types.StatusActive {
        t.Fatalf("unexpected start response: %+v", out)
    }

    getResp, err := http.Get(srv.URL + "/interview")
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    var snap interview.Snapshot
    if err := json.NewDecoder(getResp.Body).Decode(&snap); err != nil {
        t.Fatalf("decode snapshot: %v", err)
    }
    if snap.Status != types.StatusActive || len(snap.Messages) != 1 {
        t.Fatalf("unexpected snapshot: %+v", snap)
    }
}

func TestStartWithoutSetup400(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "")
    resp := postJSON(t, srv.URL+"/interview/start", nil)
    if resp.StatusCode != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", resp.StatusCode)
    }
}

func TestEmptyTurn400(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "")
    setup(t, srv)
    postJSON(t, srv.URL+"/interview/start", nil)

    resp := postJSON(t, srv.URL+"/interview/turns", map[string]string{"content": "   "})
    if resp.StatusCode != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", resp.StatusCode)
    }
}

func TestTurnBeforeStart409(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "")
    setup(t, srv)
    resp := postJSON(t, srv.URL+"/interview/turns", map[string]string{"content": "hello"})
    if resp.StatusCode != http.StatusConflict {
        t.Fatalf("expected 409, got %d", resp.StatusCode)
    }
}

func audioUpload(t *testing.T, url string, payload []byte) *http.Response {
    t.Helper()
    var buf bytes.Buffer
    mw := multipart.NewWriter(&buf)
    fw, err := mw.CreateFormFile("audio", "recording.webm")
    if err != nil {
        t.Fatalf("form file: %v", err)
    }
    _, _ = fw.Write(payload)
    _ = mw.Close()

    resp, err := http.Post(url+"/interview/audio", mw.FormDataContentType(), &buf)
    if err != nil {
        t.Fatalf("request: %v", err)
    }
    return resp
}

func TestAudioTurnFlow(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "I have five years of experience.")
    setup(t, srv)
    postJSON(t, srv.URL+"/interview/start", nil)

    resp := audioUpload(t, srv.URL, []byte("webm-bytes"))
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("expected 200, got %d", resp.StatusCode)
    }
    var out struct {
        Transcript string        `json:"transcript"`
        Message    types.Message `json:"message"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if out.Transcript != "I have five years of experience." {
        t.Fatalf("unexpected transcript %q", out.Transcript)
    }
    if out.Message.Role != types.RoleInterviewer {
        t.Fatalf("expected interviewer reply, got %+v", out.Message)
    }
}

func TestAudioTurnNoSpeech422(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "   ")
    setup(t, srv)
    postJSON(t, srv.URL+"/interview/start", nil)

    resp := audioUpload(t, srv.URL, []byte("webm-bytes"))
    if resp.StatusCode != http.StatusUnprocessableEntity {
        t.Fatalf("expected 422, got %d", resp.StatusCode)
    }
}

func TestEndTooEarly400(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "")
    setup(t, srv)
    postJSON(t, srv.URL+"/interview/start", nil)

    resp := postJSON(t, srv.URL+"/interview/end", nil)
    if resp.StatusCode != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", resp.StatusCode)
    }
}

func TestCompleteAndArchiveEndpoints(t *testing.T) {
    gen := &mockGen{replies: []string{
        "Welcome!",
        "Thank you for taking the time to speak with me today.",
    }}
    srv, _ := newTestServer(t, gen, "")
    setup(t, srv)
    postJSON(t, srv.URL+"/interview/start", nil)

    resp := postJSON(t, srv.URL+"/interview/turns", map[string]string{"content": "My answer"})
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("turn: status %d", resp.StatusCode)
    }

    listResp, err := http.Get(srv.URL + "/interviews")
    if err != nil {
        t.Fatalf("list: %v", err)
    }
    var list struct {
        Interviews []types.ArchivedInterview `json:"interviews"`
    }
    if err := json.NewDecoder(listResp.Body).Decode(&list); err != nil {
        t.Fatalf("decode list: %v", err)
    }
    if len(list.Interviews) != 1 {
        t.Fatalf("expected 1 archived interview, got %d", len(list.Interviews))
    }
    id := list.Interviews[0].ID

    getResp, _ := http.Get(srv.URL + "/interviews/" + id)
    if getResp.StatusCode != http.StatusOK {
        t.Fatalf("get archived: status %d", getResp.StatusCode)
    }

    req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/interviews/"+id, nil)
    delResp, err := http.DefaultClient.Do(req)
    if err != nil {
        t.Fatalf("delete: %v", err)
    }
    if delResp.StatusCode != http.StatusOK {
        t.Fatalf("delete: status %d", delResp.StatusCode)
    }

    getResp, _ = http.Get(srv.URL + "/interviews/" + id)
    if getResp.StatusCode != http.StatusNotFound {
        t.Fatalf("expected 404 after delete, got %d", getResp.StatusCode)
    }
}

func TestReplayUnknownMessage400(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "")
    setup(t, srv)
    postJSON(t, srv.URL+"/interview/start", nil)

    resp := postJSON(t, srv.URL+"/interview/replay", map[string]string{"message_id": "nope"})
    if resp.StatusCode != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", resp.StatusCode)
    }
}

func TestResetReturnsToSetup(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "")
    setup(t, srv)
    postJSON(t, srv.URL+"/interview/start", nil)

    resp := postJSON(t, srv.URL+"/interview/reset", nil)
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("reset: status %d", resp.StatusCode)
    }
    var out struct {
        Status types.Status `json:"status"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        t.Fatalf("decode: %v", err)
    }
    if out.Status != types.StatusSetup {
        t.Fatalf("expected setup after reset, got %s", out.Status)
    }
}

func TestMethodNotAllowed(t *testing.T) {
    srv, _ := newTestServer(t, &mockGen{}, "")
    resp, err := http.Get(srv.URL + "/interview/start")
    if err != nil {
        t.Fatalf("request: %v", err)
    }
    if resp.StatusCode != http.StatusMethodNotAllowed {
        t.Fatalf("expected 405, got %d", resp.StatusCode)
    }
    if !strings.Contains(resp.Header.Get("Content-Type"), "text/plain") {
        t.Errorf("unexpected content type %q", resp.Header.Get("Content-Type"))
    }
}
