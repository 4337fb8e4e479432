package livews

import (
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
)

var (
    metricClients = promauto.NewGauge(prometheus.GaugeOpts{
        Name: "livews_clients_attached",
        Help: "Currently attached websocket clients",
    })

    metricEventsSent = promauto.NewCounterVec(prometheus.CounterOpts{
        Name: "livews_events_sent_total",
        Help: "Events delivered to clients by type",
    }, []string{"type"})
)
