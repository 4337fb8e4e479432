package audio

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "sync"
    "time"
)

// State is the pipeline state. Exactly one is active at a time; capture and
// playback are mutually exclusive by construction.
type State string

const (
    StateIdle         State = "idle"
    StateRecording    State = "recording"
    StateTranscribing State = "transcribing"
    StatePlaying      State = "playing"
)

var (
    // ErrBusy is returned when a transition is requested outside its legal
    // source state. No state change occurs.
    ErrBusy = errors.New("audio pipeline busy")
    // ErrDevice is returned when the input device cannot be acquired.
    ErrDevice = errors.New("audio device unavailable")
    // ErrNoSpeech is returned when capture yields no transcribable speech.
    ErrNoSpeech = errors.New("no speech detected")
    // ErrTranscription is returned when the transcription collaborator fails.
    ErrTranscription = errors.New("transcription failed")
    // ErrPlayback is returned on playback failure. Non-fatal: the turn's text
    // remains available, audio is simply absent.
    ErrPlayback = errors.New("playback failed")
)

// Recorder acquires and releases the audio input device.
type Recorder interface {
    // Begin acquires the device and starts capturing.
    Begin(ctx context.Context) error
    // End stops capturing, releases the device and returns the captured audio.
    End() ([]byte, error)
}

// Transcriber converts captured audio to text.
type Transcriber interface {
    Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Synthesizer converts text to audio.
type Synthesizer interface {
    Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player delivers synthesized audio to the listener.
type Player interface {
    Play(ctx context.Context, audio []byte) error
}

// Pipeline coordinates capture/transcribe/playback as a mutually-exclusive
// state machine: idle -> recording -> transcribing -> idle (capture path) and
// idle -> playing -> idle (playback path).
type Pipeline struct {
    mu    sync.Mutex
    state State

    rec   Recorder
    tr    Transcriber
    synth Synthesizer
    out   Player

    maxSpeakChars int
    playCancel    context.CancelFunc
}

func NewPipeline(rec Recorder, tr Transcriber, synth Synthesizer, out Player, maxSpeakChars int) *Pipeline {
    if maxSpeakChars <= 0 {
        maxSpeakChars = 5000
    }
    return &Pipeline{state: StateIdle, rec: rec, tr: tr, synth: synth, out: out, maxSpeakChars: maxSpeakChars}
}

func (p *Pipeline) State() State {
    p.mu.Lock()
    defer p.mu.Unlock()
    return p.state
}

// transition moves to `to` only if currently in `from`.
func (p *Pipeline) transition(from, to State) bool {
    p.mu.Lock()
    defer p.mu.Unlock()
    if p.state != from {
        return false
    }
    metricTransitions.WithLabelValues(string(from), string(to)).Inc()
    p.state = to
    return true
}

func (p *Pipeline) setState(to State) {
    p.mu.Lock()
    defer p.mu.Unlock()
    if p.state == to {
        return
    }
    metricTransitions.WithLabelValues(string(p.state), string(to)).Inc()
    p.state = to
}

// StartCapture acquires the input device. Legal only from idle.
func (p *Pipeline) StartCapture(ctx context.Context) error {
    if !p.transition(StateIdle, StateRecording) {
        return ErrBusy
    }
    if err := p.rec.Begin(ctx); err != nil {
        p.setState(StateIdle)
        metricCaptureFailures.WithLabelValues("device").Inc()
        return fmt.Errorf("%w: %v", ErrDevice, err)
    }
    return nil
}

// StopCapture stops the recording, submits the audio for transcription and
// returns the text. Legal only from recording; always ends idle.
func (p *Pipeline) StopCapture(ctx context.Context) (string, error) {
    if !p.transition(StateRecording, StateTranscribing) {
        return "", ErrBusy
    }
    defer p.setState(StateIdle)

    audio, err := p.rec.End()
    if err != nil {
        metricCaptureFailures.WithLabelValues("device").Inc()
        return "", fmt.Errorf("%w: %v", ErrDevice, err)
    }
    if len(audio) == 0 {
        metricCaptureFailures.WithLabelValues("no_speech").Inc()
        return "", ErrNoSpeech
    }

    text, err := p.tr.Transcribe(ctx, audio)
    if err != nil {
        metricCaptureFailures.WithLabelValues("transcription").Inc()
        return "", fmt.Errorf("%w: %v", ErrTranscription, err)
    }
    text = strings.TrimSpace(text)
    if text == "" {
        metricCaptureFailures.WithLabelValues("no_speech").Inc()
        return "", ErrNoSpeech
    }
    return text, nil
}

// Play synthesizes and delivers the text. Legal only from playing's source
// state idle. Empty or over-long text is skipped silently (soft limit, not an
// error). Always ends idle.
func (p *Pipeline) Play(ctx context.Context, text string) error {
    text = strings.TrimSpace(text)
    if text == "" {
        return nil
    }
    if len(text) > p.maxSpeakChars {
        log.Printf("[audio] text too long for speech (%d chars), skipping playback", len(text))
        metricPlaybackSkips.Inc()
        return nil
    }

    p.mu.Lock()
    if p.state != StateIdle {
        p.mu.Unlock()
        return ErrBusy
    }
    metricTransitions.WithLabelValues(string(StateIdle), string(StatePlaying)).Inc()
    p.state = StatePlaying
    playCtx, cancel := context.WithCancel(ctx)
    p.playCancel = cancel
    p.mu.Unlock()

    defer func() {
        cancel()
        p.mu.Lock()
        p.playCancel = nil
        p.mu.Unlock()
        p.setState(StateIdle)
    }()

    audio, err := p.synth.Synthesize(playCtx, text)
    if err != nil {
        return fmt.Errorf("%w: synthesis: %v", ErrPlayback, err)
    }
    if len(audio) == 0 {
        return fmt.Errorf("%w: empty audio", ErrPlayback)
    }
    if err := p.out.Play(playCtx, audio); err != nil {
        return fmt.Errorf("%w: %v", ErrPlayback, err)
    }
    return nil
}

// Halt stops any in-progress capture and cancels any pending playback
// delivery. Called on explicit end-of-interview and on session teardown; the
// input device handle is released either way.
func (p *Pipeline) Halt() {
    p.mu.Lock()
    st := p.state
    cancel := p.playCancel
    p.playCancel = nil
    p.mu.Unlock()

    if cancel != nil {
        cancel()
    }
    if st == StateRecording {
        // Discard whatever was captured; End releases the device.
        if _, err := p.rec.End(); err != nil {
            log.Printf("[audio] halt: releasing recorder: %v", err)
        }
        p.setState(StateIdle)
    }

    // A cancelled playback still has to unwind back to idle; wait for it so
    // the caller's next Play is not rejected as busy.
    for p.State() == StatePlaying {
        time.Sleep(time.Millisecond)
    }
}
