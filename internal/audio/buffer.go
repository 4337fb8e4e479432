package audio

import (
    "context"
    "errors"
    "sync"
)

// BufferRecorder is a Recorder fed out-of-band, for deployments where the
// capture device lives on the far side of an HTTP upload rather than on this
// process. Begin arms it, Feed accumulates audio, End drains it.
type BufferRecorder struct {
    mu    sync.Mutex
    armed bool
    buf   []byte
}

func NewBufferRecorder() *BufferRecorder { return &BufferRecorder{} }

func (b *BufferRecorder) Begin(ctx context.Context) error {
    b.mu.Lock()
    defer b.mu.Unlock()
    b.armed = true
    b.buf = nil
    return nil
}

// Feed appends captured audio. Bytes fed while not armed are dropped.
func (b *BufferRecorder) Feed(audio []byte) {
    b.mu.Lock()
    defer b.mu.Unlock()
    if !b.armed {
        return
    }
    b.buf = append(b.buf, audio...)
}

func (b *BufferRecorder) End() ([]byte, error) {
    b.mu.Lock()
    defer b.mu.Unlock()
    if !b.armed {
        return nil, errors.New("recorder not armed")
    }
    b.armed = false
    out := b.buf
    b.buf = nil
    return out, nil
}
