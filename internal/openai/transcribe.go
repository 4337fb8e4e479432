package openai

import (
    "bytes"
    "context"
    "encoding/json"
    "mime/multipart"
    "net/http"
    "time"
)

type transcriptionResponse struct {
    Text string `json:"text"`
}

// Transcribe uploads captured audio for speech-to-text. The returned text may
// be empty, which the audio pipeline treats as no speech detected.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
    var buf bytes.Buffer
    mw := multipart.NewWriter(&buf)
    fw, err := mw.CreateFormFile("file", "recording.webm")
    if err != nil {
        return "", err
    }
    if _, err := fw.Write(audio); err != nil {
        return "", err
    }
    _ = mw.WriteField("model", c.cfg.TranscribeModel)
    _ = mw.WriteField("language", "en")
    if err := mw.Close(); err != nil {
        return "", err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/audio/transcriptions", &buf)
    if err != nil {
        return "", err
    }
    req.Header.Set("Content-Type", mw.FormDataContentType())
    req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

    start := time.Now()
    resp, err := c.httpc.Do(req)
    metricRequestSeconds.WithLabelValues("transcribe").Observe(time.Since(start).Seconds())
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return "", apiError(resp)
    }

    var tr transcriptionResponse
    if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
        return "", err
    }
    return tr.Text, nil
}
