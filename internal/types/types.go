package types

import "time"

// Role identifies who produced a message.
type Role string

const (
	RoleCandidate   Role = "candidate"
	RoleInterviewer Role = "interviewer"
)

// Status is the lifecycle phase of a session.
type Status string

const (
	StatusSetup    Status = "setup"
	StatusActive   Status = "active"
	StatusComplete Status = "complete"
)

// Score is the overall evaluation verdict.
type Score string

const (
	ScoreStrong   Score = "Strong"
	ScoreModerate Score = "Moderate"
	ScoreWeak     Score = "Weak"
)

// Message is one turn in the transcript. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionConfig is set once during setup and read-only afterwards.
type SessionConfig struct {
	JobTitle           string   `json:"job_title"`
	CandidateName      string   `json:"candidate_name"`
	CandidateEmail     string   `json:"candidate_email"`
	CustomQuestions    []string `json:"custom_questions,omitempty"`
	UseCustomQuestions bool     `json:"use_custom_questions"`
}

// Evaluation is produced exactly once per session.
type Evaluation struct {
	Score    Score    `json:"score"`
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

// ArchivedInterview is the immutable snapshot of a completed session.
type ArchivedInterview struct {
	ID             string      `json:"id"`
	JobTitle       string      `json:"job_title"`
	CandidateName  string      `json:"candidate_name"`
	CandidateEmail string      `json:"candidate_email"`
	Messages       []Message   `json:"messages"`
	Evaluation     *Evaluation `json:"evaluation,omitempty"`
	CompletedAt    time.Time   `json:"completed_at"`
}
