package transcript

import (
    "sync"
    "time"

    "github.com/google/uuid"
    "voxhire/agent/internal/types"
)

// Log is the append-only record of exchanged messages. Entries are never
// mutated or removed; ordering is insertion order.
type Log struct {
    mu   sync.RWMutex
    msgs []types.Message

    onInterviewer func(types.Message)
}

func New() *Log { return &Log{} }

// OnInterviewer registers a hook invoked after every interviewer append.
// The hook runs outside the log's lock.
func (l *Log) OnInterviewer(fn func(types.Message)) {
    l.mu.Lock()
    l.onInterviewer = fn
    l.mu.Unlock()
}

// Append records a message and returns a copy with id and timestamp assigned.
func (l *Log) Append(role types.Role, content string) types.Message {
    msg := types.Message{
        ID:        uuid.New().String(),
        Role:      role,
        Content:   content,
        CreatedAt: time.Now().UTC(),
    }
    l.mu.Lock()
    l.msgs = append(l.msgs, msg)
    hook := l.onInterviewer
    l.mu.Unlock()

    if role == types.RoleInterviewer && hook != nil {
        hook(msg)
    }
    return msg
}

// Snapshot returns a copy safe to hand to other components.
func (l *Log) Snapshot() []types.Message {
    l.mu.RLock()
    defer l.mu.RUnlock()
    out := make([]types.Message, len(l.msgs))
    copy(out, l.msgs)
    return out
}

func (l *Log) Len() int {
    l.mu.RLock()
    defer l.mu.RUnlock()
    return len(l.msgs)
}
