// Package domain holds the core data model: messages, conversation threads,
// stance labels, and per-message feature bags.
package domain

import "time"

// Message is one post in a conversation thread. ParentID is a lookup
// relation into the owning ThreadSet, never an ownership edge; it is empty
// for thread roots.
type Message struct {
	ID           string
	Text         string
	ParentID     string
	Verified     bool
	IsNews       bool
	HashtagCount int
	MentionCount int
	RetweetCount int
	CreatedAt    time.Time
}

// IsRoot reports whether the message starts its thread.
func (m *Message) IsRoot() bool {
	return m.ParentID == ""
}
