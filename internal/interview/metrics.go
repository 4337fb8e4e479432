package interview

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    metricSessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
        Name: "interview_sessions_started_total",
        Help: "Sessions transitioned from setup to active",
    })

    metricSessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
        Name: "interview_sessions_completed_total",
        Help: "Sessions completed with an evaluation",
    })

    metricTurns = promauto.NewCounter(prometheus.CounterOpts{
        Name: "interview_turns_total",
        Help: "Candidate turns submitted",
    })

    metricGenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
        Name: "interview_generation_failures_total",
        Help: "Generation collaborator failures (apology turns)",
    })

    metricEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "interview_evaluations_total",
        Help: "Evaluation attempts by outcome",
    }, []string{"outcome"})

    metricStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "interview_status_transitions_total",
        Help: "Session status transitions",
    }, []string{"from", "to"})
)
