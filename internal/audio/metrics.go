package audio

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    metricTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "audio_pipeline_transitions_total",
        Help: "Audio pipeline state transitions",
    }, []string{"from", "to"})

    metricCaptureFailures = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "audio_capture_failures_total",
        Help: "Capture path failures by reason",
    }, []string{"reason"})

    metricPlaybackSkips = promauto.NewCounter(prometheus.CounterOpts{
        Name: "audio_playback_skips_total",
        Help: "Playback requests skipped for over-long text",
    })
)
