package transcript

import (
    "testing"

    "voxhire/agent/internal/types"
)

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
    l := New()
    m := l.Append(types.RoleCandidate, "hello")
    if m.ID == "" {
        t.Fatal("expected assigned id")
    }
    if m.CreatedAt.IsZero() {
        t.Fatal("expected assigned timestamp")
    }
    if l.Len() != 1 {
        t.Fatalf("expected length 1, got %d", l.Len())
    }
}

func TestSnapshotIsCopy(t *testing.T) {
    l := New()
    l.Append(types.RoleInterviewer, "hi there")
    snap := l.Snapshot()
    snap[0].Content = "mutated"
    if l.Snapshot()[0].Content != "hi there" {
        t.Fatal("snapshot mutation leaked into log")
    }
}

func TestOrderingIsInsertionOrder(t *testing.T) {
    l := New()
    l.Append(types.RoleInterviewer, "first")
    l.Append(types.RoleCandidate, "second")
    l.Append(types.RoleInterviewer, "third")
    snap := l.Snapshot()
    if snap[0].Content != "first" || snap[1].Content != "second" || snap[2].Content != "third" {
        t.Fatalf("unexpected order: %v", snap)
    }
}

func TestInterviewerHook(t *testing.T) {
    l := New()
    var got []string
    l.OnInterviewer(func(m types.Message) { got = append(got, m.Content) })

    l.Append(types.RoleCandidate, "candidate turn")
    if len(got) != 0 {
        t.Fatal("hook should not fire for candidate messages")
    }
    l.Append(types.RoleInterviewer, "interviewer turn")
    if len(got) != 1 || got[0] != "interviewer turn" {
        t.Fatalf("expected hook for interviewer message, got %v", got)
    }
}
