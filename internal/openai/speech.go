package openai

import (
    "bytes"
    "context"
    "encoding/json"
    "io"
    "net/http"
    "time"
)

type speechRequest struct {
    Model string `json:"model"`
    Voice string `json:"voice"`
    Input string `json:"input"`
}

// Synthesize converts text to audio. The caller (audio pipeline) skips the
// call entirely for empty or over-long text.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
    reqBytes, err := json.Marshal(speechRequest{
        Model: c.cfg.SpeechModel,
        Voice: c.cfg.Voice,
        Input: text,
    })
    if err != nil {
        return nil, err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/speech", bytes.NewReader(reqBytes))
    if err != nil {
        return nil, err
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

    start := time.Now()
    resp, err := c.httpc.Do(req)
    metricRequestSeconds.WithLabelValues("synthesize").Observe(time.Since(start).Seconds())
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return nil, apiError(resp)
    }
    return io.ReadAll(resp.Body)
}
