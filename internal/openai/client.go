package openai

import (
    "fmt"
    "io"
    "net/http"
    "strings"
    "sync"
    "time"

    "github.com/pkoukk/tiktoken-go"
)

// Config carries the API key, endpoint and per-purpose model names.
type Config struct {
    APIKey          string
    BaseURL         string
    ChatModel       string
    TranscribeModel string
    SpeechModel     string
    Voice           string
}

// Client talks to the OpenAI (or compatible) HTTP API. It implements the
// generation, transcription, speech and evaluation collaborator interfaces
// consumed by the interview core.
type Client struct {
    cfg   Config
    httpc *http.Client

    encOnce sync.Once
    enc     *tiktoken.Tiktoken
}

func NewClient(cfg Config) *Client {
    if cfg.BaseURL == "" {
        cfg.BaseURL = "https://api.openai.com/v1"
    }
    cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
    return &Client{
        cfg:   cfg,
        httpc: &http.Client{Timeout: 120 * time.Second},
    }
}

// encoding returns the tokenizer for the chat model, falling back to
// cl100k_base for models tiktoken does not know.
func (c *Client) encoding() *tiktoken.Tiktoken {
    c.encOnce.Do(func() {
        enc, err := tiktoken.EncodingForModel(c.cfg.ChatModel)
        if err != nil {
            enc, err = tiktoken.GetEncoding("cl100k_base")
        }
        if err == nil {
            c.enc = enc
        }
    })
    return c.enc
}

func (c *Client) countTokens(text string) int {
    enc := c.encoding()
    if enc == nil {
        return 0
    }
    return len(enc.Encode(text, nil, nil))
}

// apiError drains a truncated body into the error for diagnosis.
func apiError(resp *http.Response) error {
    b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
    return fmt.Errorf("openai: status=%d body=%s", resp.StatusCode, string(b))
}
