package openai

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    metricRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
        Name:    "openai_request_seconds",
        Help:    "Collaborator request latency by operation",
        Buckets: prometheus.ExponentialBuckets(0.05, 1.6, 12),
    }, []string{"op"})

    metricPromptTokens = promauto.NewHistogram(prometheus.HistogramOpts{
        Name:    "openai_prompt_tokens",
        Help:    "Estimated prompt token count per generation request",
        Buckets: prometheus.ExponentialBuckets(64, 2, 10),
    })
)
