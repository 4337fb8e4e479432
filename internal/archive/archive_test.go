package archive

import (
    "errors"
    "testing"

    "voxhire/agent/internal/types"
)

func testConfig(name string) types.SessionConfig {
    return types.SessionConfig{
        JobTitle:       "Backend Engineer",
        CandidateName:  name,
        CandidateEmail: name + "@example.com",
    }
}

func testEval() types.Evaluation {
    return types.Evaluation{Score: types.ScoreStrong, Summary: "Solid.", Insights: []string{"clear", "concise", "curious"}}
}

func TestSaveRejectsIncomplete(t *testing.T) {
    s, err := New(t.TempDir())
    if err != nil {
        t.Fatalf("new: %v", err)
    }
    _, err = s.Save(types.StatusActive, testConfig("Ann"), nil, testEval())
    if !errors.Is(err, ErrNotComplete) {
        t.Fatalf("expected ErrNotComplete, got %v", err)
    }
}

func TestSaveListMostRecentFirst(t *testing.T) {
    s, err := New(t.TempDir())
    if err != nil {
        t.Fatalf("new: %v", err)
    }
    first, err := s.Save(types.StatusComplete, testConfig("Ann"), nil, testEval())
    if err != nil {
        t.Fatalf("save: %v", err)
    }
    second, err := s.Save(types.StatusComplete, testConfig("Bob"), nil, testEval())
    if err != nil {
        t.Fatalf("save: %v", err)
    }

    got := s.List()
    if len(got) != 2 {
        t.Fatalf("expected 2 entries, got %d", len(got))
    }
    if got[0].ID != second.ID || got[1].ID != first.ID {
        t.Fatal("expected most-recent-first ordering")
    }
}

func TestDeleteThenGetAbsent(t *testing.T) {
    s, err := New(t.TempDir())
    if err != nil {
        t.Fatalf("new: %v", err)
    }
    entry, err := s.Save(types.StatusComplete, testConfig("Ann"), nil, testEval())
    if err != nil {
        t.Fatalf("save: %v", err)
    }
    s.Delete(entry.ID)
    if _, ok := s.Get(entry.ID); ok {
        t.Fatal("expected entry absent after delete")
    }
    // Deleting again is a no-op.
    s.Delete(entry.ID)
}

func TestReloadFromDisk(t *testing.T) {
    dir := t.TempDir()
    s, err := New(dir)
    if err != nil {
        t.Fatalf("new: %v", err)
    }
    msgs := []types.Message{{ID: "m1", Role: types.RoleInterviewer, Content: "Hi"}}
    entry, err := s.Save(types.StatusComplete, testConfig("Ann"), msgs, testEval())
    if err != nil {
        t.Fatalf("save: %v", err)
    }

    reopened, err := New(dir)
    if err != nil {
        t.Fatalf("reopen: %v", err)
    }
    got, ok := reopened.Get(entry.ID)
    if !ok {
        t.Fatal("expected entry after reload")
    }
    if got.CandidateName != "Ann" || len(got.Messages) != 1 || got.Evaluation == nil {
        t.Fatalf("entry lost fields across reload: %+v", got)
    }
}
