package openai

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "voxhire/agent/internal/types"
)

type chatMessage struct {
    Role    string `json:"role"`
    Content string `json:"content"`
}

type chatRequest struct {
    Model          string        `json:"model"`
    Messages       []chatMessage `json:"messages"`
    Temperature    float64       `json:"temperature,omitempty"`
    MaxTokens      int           `json:"max_tokens,omitempty"`
    ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
    Type string `json:"type"`
}

type chatResponse struct {
    Choices []struct {
        Message chatMessage `json:"message"`
    } `json:"choices"`
}

// Reply asks the generation collaborator for the next interviewer message.
// prior is the transcript so far; empty with isInitial set for the opening turn.
func (c *Client) Reply(ctx context.Context, prior []types.Message, cfg types.SessionConfig, isInitial bool) (string, error) {
    msgs := []chatMessage{{Role: "system", Content: interviewerPrompt(cfg, isInitial)}}
    for _, m := range prior {
        msgs = append(msgs, chatMessage{Role: wireRole(m.Role), Content: m.Content})
    }

    body := chatRequest{
        Model:       c.cfg.ChatModel,
        Messages:    msgs,
        Temperature: 0.7,
        MaxTokens:   300,
    }

    if n := c.countTokens(joinContents(msgs)); n > 0 {
        metricPromptTokens.Observe(float64(n))
    }

    var resp chatResponse
    if err := c.postChat(ctx, "generate", body, &resp); err != nil {
        return "", err
    }
    if len(resp.Choices) == 0 {
        return "", fmt.Errorf("openai: no choices in response")
    }
    return resp.Choices[0].Message.Content, nil
}

func (c *Client) postChat(ctx context.Context, op string, body chatRequest, out *chatResponse) error {
    reqBytes, err := json.Marshal(body)
    if err != nil {
        return fmt.Errorf("marshal request: %w", err)
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqBytes))
    if err != nil {
        return err
    }
    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

    start := time.Now()
    resp, err := c.httpc.Do(req)
    metricRequestSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
    if err != nil {
        return err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return apiError(resp)
    }
    return json.NewDecoder(resp.Body).Decode(out)
}

func wireRole(r types.Role) string {
    if r == types.RoleInterviewer {
        return "assistant"
    }
    return "user"
}

func joinContents(msgs []chatMessage) string {
    var b strings.Builder
    for _, m := range msgs {
        b.WriteString(m.Content)
        b.WriteString("\n")
    }
    return b.String()
}

// interviewerPrompt mirrors the screening-interviewer instructions: 3-5
// concise questions, one at a time, ending with a professional closing.
func interviewerPrompt(cfg types.SessionConfig, isInitial bool) string {
    var b strings.Builder
    fmt.Fprintf(&b, `You are a professional AI interviewer conducting a preliminary screening interview for a %s position.
Your role is to:
1. Ask relevant, professional screening questions (3-5 questions total)
2. Ask follow-up questions when appropriate to get more details
3. Maintain a professional yet conversational and friendly tone
4. Keep questions concise and focused
5. When you've asked enough questions (3-5), ALWAYS end with a professional closing message that:
   - Thanks the candidate for their time
   - Mentions they'll hear back if selected
   - Example: "Thank you for taking the time to speak with me today. We appreciate your interest in this position. You'll hear from us if you've been selected for the next stage. Have a great day!"

`, cfg.JobTitle)

    if cfg.UseCustomQuestions && len(cfg.CustomQuestions) > 0 {
        fmt.Fprintf(&b, "Use these custom questions as a guide: %s", strings.Join(cfg.CustomQuestions, ", "))
    } else {
        fmt.Fprintf(&b, "Generate questions relevant to the %s role, focusing on technical skills, experience, and cultural fit.", cfg.JobTitle)
    }

    b.WriteString("\n\nImportant: Keep your responses concise. Ask one question at a time. When ending the interview, always include a professional closing message thanking the candidate.")

    if isInitial {
        b.WriteString("\n\nStart by greeting the candidate warmly and asking your first question.")
    }
    return b.String()
}
