package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "voxhire/agent/internal/api"
    "voxhire/agent/internal/archive"
    "voxhire/agent/internal/audio"
    "voxhire/agent/internal/closing"
    "voxhire/agent/internal/config"
    "voxhire/agent/internal/interview"
    "voxhire/agent/internal/livews"
    "voxhire/agent/internal/openai"
)

func main() {
    // Load .env file if present (ignored if missing)
    _ = godotenv.Load()

    cfg := config.Load()
    if cfg.OpenAI.APIKey == "" {
        log.Println("warning: OPENAI_API_KEY not set; collaborator calls will fail")
    }

    store, err := archive.New(cfg.Archive.Dir)
    if err != nil {
        log.Fatalf("archive: %v", err)
    }

    client := openai.NewClient(openai.Config{
        APIKey:          cfg.OpenAI.APIKey,
        BaseURL:         cfg.OpenAI.BaseURL,
        ChatModel:       cfg.OpenAI.ChatModel,
        TranscribeModel: cfg.OpenAI.TranscribeModel,
        SpeechModel:     cfg.OpenAI.SpeechModel,
        Voice:           cfg.OpenAI.Voice,
    })

    hub := livews.NewHub()

    // Audio arrives as HTTP uploads and leaves over the websocket.
    rec := audio.NewBufferRecorder()
    pipeline := audio.NewPipeline(rec, client, client, hub, cfg.Interview.MaxSpeechChars)

    detector := closing.New(nil, cfg.Interview.MaxMessages)
    orch := interview.New(client, client, pipeline, detector, store)
    orch.SetNotifier(hub)

    h := api.NewHandlers(cfg, orch, store, pipeline, rec)
    mux := api.NewRouter(h)
    mux.HandleFunc("/ws", hub.HandleWS)
    mux.Handle("/metrics", promhttp.Handler())

    addr := ":" + cfg.Server.Port
    srv := &http.Server{
        Addr:              addr,
        Handler:           logMiddleware(mux),
        ReadHeaderTimeout: 5 * time.Second,
    }

    // Graceful shutdown on SIGINT/SIGTERM
    sigc := make(chan os.Signal, 1)
    signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
    go func() {
        <-sigc
        log.Printf("shutdown signal received; stopping server...")
        orch.Teardown()
        hub.Close()
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = srv.Shutdown(ctx)
    }()

    log.Printf("server starting on %s", addr)
    if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
        log.Println("server error:", err)
        os.Exit(1)
    }
}

func logMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        next.ServeHTTP(w, r)
        log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
    })
}
