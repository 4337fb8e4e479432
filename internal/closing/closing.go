package closing

import "strings"

// DefaultPhrases are the closing phrases the interviewer model is prompted to
// use. Matching is lowercase containment; the list is a heuristic over
// free-form generated text, not a contract.
var DefaultPhrases = []string{
    "thank you for taking the time",
    "thank you for your time",
    "you'll hear from us",
    "hear from us if",
    "selected for the next stage",
    "appreciate your interest",
    "conclusion",
    "wrap up",
}

// DefaultMaxMessages is the length fallback: once the transcript reaches this
// many messages (roughly six exchanges) the interview ends regardless of
// content, covering closings the phrase list misses.
const DefaultMaxMessages = 12

// Detector decides whether the conversation should end after an interviewer
// message. The zero value is not usable; use New.
type Detector struct {
    phrases     []string
    maxMessages int
}

func New(phrases []string, maxMessages int) Detector {
    if len(phrases) == 0 {
        phrases = DefaultPhrases
    }
    if maxMessages <= 0 {
        maxMessages = DefaultMaxMessages
    }
    return Detector{phrases: phrases, maxMessages: maxMessages}
}

// ShouldEnd applies the phrase match first, then the length fallback.
func (d Detector) ShouldEnd(logLen int, lastInterviewerMessage string) bool {
    lower := strings.ToLower(lastInterviewerMessage)
    for _, p := range d.phrases {
        if strings.Contains(lower, p) {
            return true
        }
    }
    return logLen >= d.maxMessages
}
