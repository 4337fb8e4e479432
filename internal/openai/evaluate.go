package openai

import (
    "context"
    "encoding/json"
    "fmt"
    "strings"

    "voxhire/agent/internal/types"
)

const recruiterPromptFmt = `You are an expert recruiter analyzing an interview transcript for a %s position.

Analyze the conversation and provide:
1. A score: "Strong", "Moderate", or "Weak" based on the candidate's responses
2. A brief summary (2-3 sentences) of the candidate's performance
3. 3-5 key insights or highlights from the interview

Format your response as JSON:
{
  "score": "Strong" | "Moderate" | "Weak",
  "summary": "brief summary here",
  "insights": ["insight 1", "insight 2", "insight 3"]
}`

type evaluationPayload struct {
    Score    string   `json:"score"`
    Summary  string   `json:"summary"`
    Insights []string `json:"insights"`
}

// Evaluate sends the full transcript to the evaluation collaborator and
// parses the structured verdict. Score and summary are the minimum success
// condition; missing insights default to an empty list.
func (c *Client) Evaluate(ctx context.Context, msgs []types.Message, jobTitle string) (types.Evaluation, error) {
    var conv strings.Builder
    for _, m := range msgs {
        fmt.Fprintf(&conv, "%s: %s\n", wireRole(m.Role), m.Content)
    }

    body := chatRequest{
        Model: c.cfg.ChatModel,
        Messages: []chatMessage{
            {Role: "system", Content: fmt.Sprintf(recruiterPromptFmt, jobTitle)},
            {Role: "user", Content: fmt.Sprintf("Interview transcript:\n\n%s\nProvide your assessment in the JSON format specified.", conv.String())},
        },
        Temperature:    0.5,
        ResponseFormat: &respFormat{Type: "json_object"},
    }

    var resp chatResponse
    if err := c.postChat(ctx, "evaluate", body, &resp); err != nil {
        return types.Evaluation{}, err
    }
    if len(resp.Choices) == 0 {
        return types.Evaluation{}, fmt.Errorf("openai: no choices in response")
    }

    var payload evaluationPayload
    if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
        return types.Evaluation{}, fmt.Errorf("parse evaluation: %w", err)
    }
    if payload.Score == "" || payload.Summary == "" {
        return types.Evaluation{}, fmt.Errorf("evaluation missing score or summary")
    }
    insights := payload.Insights
    if insights == nil {
        insights = []string{}
    }
    return types.Evaluation{
        Score:    types.Score(payload.Score),
        Summary:  payload.Summary,
        Insights: insights,
    }, nil
}
