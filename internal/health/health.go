package health

import (
    "context"
    "fmt"
    "io"
    "net/http"
    "os"
    "path/filepath"
    "time"

    "golang.org/x/sync/errgroup"

    "voxhire/agent/internal/config"
)

type CheckResult struct {
    Name    string        `json:"name"`
    OK      bool          `json:"ok"`
    Latency time.Duration `json:"latency_ms"`
    Error   string        `json:"error,omitempty"`
}

type HealthStatus struct {
    OK        bool          `json:"ok"`
    Checks    []CheckResult `json:"checks"`
    CheckedAt time.Time     `json:"checked_at"`
}

func (h HealthStatus) String() string {
    status := "OK"
    if !h.OK {
        status = "FAIL"
    }
    s := fmt.Sprintf("Health: %s\n", status)
    for _, c := range h.Checks {
        mark := "✓"
        if !c.OK {
            mark = "✗"
        }
        s += fmt.Sprintf("  %s %s (%dms)", mark, c.Name, c.Latency.Milliseconds())
        if c.Error != "" {
            s += fmt.Sprintf(" - %s", c.Error)
        }
        s += "\n"
    }
    return s
}

// CheckAll runs all health checks concurrently and returns combined status.
func CheckAll(ctx context.Context, cfg config.Config) HealthStatus {
    results := make([]CheckResult, 2)
    g, ctx := errgroup.WithContext(ctx)
    g.Go(func() error {
        results[0] = checkOpenAI(ctx, cfg)
        return nil
    })
    g.Go(func() error {
        results[1] = checkArchiveDir(cfg)
        return nil
    })
    _ = g.Wait()

    allOK := true
    for _, c := range results {
        if !c.OK {
            allOK = false
        }
    }

    return HealthStatus{
        OK:        allOK,
        Checks:    results,
        CheckedAt: time.Now().UTC(),
    }
}

func checkOpenAI(ctx context.Context, cfg config.Config) CheckResult {
    start := time.Now()
    result := CheckResult{Name: "openai"}

    if cfg.OpenAI.APIKey == "" {
        result.Error = "OPENAI_API_KEY not set"
        result.Latency = time.Since(start)
        return result
    }

    // Listing models is the cheapest authenticated call.
    req, err := http.NewRequestWithContext(ctx, "GET", cfg.OpenAI.BaseURL+"/models", nil)
    if err != nil {
        result.Error = fmt.Sprintf("request build failed: %v", err)
        result.Latency = time.Since(start)
        return result
    }
    req.Header.Set("Authorization", "Bearer "+cfg.OpenAI.APIKey)

    resp, err := http.DefaultClient.Do(req)
    if err != nil {
        result.Error = fmt.Sprintf("request failed: %v", err)
        result.Latency = time.Since(start)
        return result
    }
    defer resp.Body.Close()

    result.Latency = time.Since(start)

    if resp.StatusCode == 401 {
        result.Error = "invalid API key (401)"
        return result
    }
    if resp.StatusCode != 200 {
        body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
        result.Error = fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body))
        return result
    }

    result.OK = true
    return result
}

func checkArchiveDir(cfg config.Config) CheckResult {
    start := time.Now()
    result := CheckResult{Name: "archive_dir"}

    if err := os.MkdirAll(cfg.Archive.Dir, 0o755); err != nil {
        result.Error = fmt.Sprintf("cannot create %s: %v", cfg.Archive.Dir, err)
        result.Latency = time.Since(start)
        return result
    }

    probe := filepath.Join(cfg.Archive.Dir, ".healthcheck")
    if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
        result.Error = fmt.Sprintf("not writable: %v", err)
        result.Latency = time.Since(start)
        return result
    }
    _ = os.Remove(probe)

    result.Latency = time.Since(start)
    result.OK = true
    return result
}
