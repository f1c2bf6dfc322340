package models

import "time"

// Transaction is a wallet movement on the member's account.
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Event is a portal event members can register for.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	Fee         float64   `json:"fee"`
	CPDCredits  int       `json:"cpdCredits"`
	Registered  bool      `json:"registered"`
}

// CPDModule is a continuing professional development module.
type CPDModule struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Credits   int    `json:"credits"`
	Completed bool   `json:"completed"`
	Progress  int    `json:"progress"`
}

// Candidate stands in an Election.
type Candidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// Election is an open or closed ballot.
type Election struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Open       bool        `json:"open"`
	Candidates []Candidate `json:"candidates"`
	HasVoted   bool        `json:"hasVoted"`
}

// Vote is the body of a ballot submission.
type Vote struct {
	CandidateID string `json:"candidateId"`
}

// ChatMessage is one message of the member chat.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sentAt"`
}

// NewChatMessage is the body of a chat submission.
type NewChatMessage struct {
	Content string `json:"content"`
}
