package archive

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "sort"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "voxhire/agent/internal/types"
)

// ErrNotComplete is returned when a session that has not completed is saved.
var ErrNotComplete = errors.New("archive: session not complete")

// Store keeps completed interviews, most-recent-first. Each entry is durable
// as one JSON document under dir; the in-memory index is rebuilt at startup.
type Store struct {
    mu      sync.RWMutex
    dir     string
    entries []types.ArchivedInterview
}

func New(dir string) (*Store, error) {
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, fmt.Errorf("archive dir: %w", err)
    }
    s := &Store{dir: dir}
    if err := s.load(); err != nil {
        return nil, err
    }
    return s, nil
}

func (s *Store) load() error {
    files, err := os.ReadDir(s.dir)
    if err != nil {
        return err
    }
    for _, f := range files {
        if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
            continue
        }
        b, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
        if err != nil {
            return err
        }
        var entry types.ArchivedInterview
        if err := json.Unmarshal(b, &entry); err != nil {
            return fmt.Errorf("archive entry %s: %w", f.Name(), err)
        }
        s.entries = append(s.entries, entry)
    }
    sort.Slice(s.entries, func(i, j int) bool {
        return s.entries[i].CompletedAt.After(s.entries[j].CompletedAt)
    })
    return nil
}

// Save archives a completed session, assigning an archive id. Not idempotent:
// the caller's once-only completion guard is the sole double-save protection.
func (s *Store) Save(status types.Status, cfg types.SessionConfig, msgs []types.Message, eval types.Evaluation) (types.ArchivedInterview, error) {
    if status != types.StatusComplete {
        return types.ArchivedInterview{}, ErrNotComplete
    }
    entry := types.ArchivedInterview{
        ID:             uuid.New().String(),
        JobTitle:       cfg.JobTitle,
        CandidateName:  cfg.CandidateName,
        CandidateEmail: cfg.CandidateEmail,
        Messages:       msgs,
        Evaluation:     &eval,
        CompletedAt:    time.Now().UTC(),
    }

    b, err := json.MarshalIndent(entry, "", "  ")
    if err != nil {
        return types.ArchivedInterview{}, err
    }
    if err := os.WriteFile(s.path(entry.ID), b, 0o644); err != nil {
        return types.ArchivedInterview{}, fmt.Errorf("archive write: %w", err)
    }

    s.mu.Lock()
    s.entries = append([]types.ArchivedInterview{entry}, s.entries...)
    s.mu.Unlock()
    return entry, nil
}

// List returns entries most-recent-first.
func (s *Store) List() []types.ArchivedInterview {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]types.ArchivedInterview, len(s.entries))
    copy(out, s.entries)
    return out
}

func (s *Store) Get(id string) (types.ArchivedInterview, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    for _, e := range s.entries {
        if e.ID == id {
            return e, true
        }
    }
    return types.ArchivedInterview{}, false
}

// Delete removes the matching entry. No-op if absent.
func (s *Store) Delete(id string) {
    s.mu.Lock()
    for i, e := range s.entries {
        if e.ID == id {
            s.entries = append(s.entries[:i], s.entries[i+1:]...)
            break
        }
    }
    s.mu.Unlock()
    if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
        // Entry is already gone from the index; a surviving file gets
        // re-indexed on next startup.
        log.Printf("[archive] delete %s: %v", id, err)
    }
}

func (s *Store) path(id string) string {
    return filepath.Join(s.dir, id+".json")
}
