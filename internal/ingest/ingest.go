// Package ingest loads conversation threads and gold annotations from disk.
// Threads arrive as JSONL message records; annotations as a JSON object
// mapping message IDs to stance labels. Labels validate against the closed
// stance set at load time.
package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/lueurxax/stance-classifier/internal/core/domain"
	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
)

const (
	scannerInitialBuffer = 64 * 1024
	scannerMaxBuffer     = 1024 * 1024
)

type messageRecord struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	ParentID     string `json:"parent_id,omitempty"`
	Verified     bool   `json:"verified,omitempty"`
	IsNews       bool   `json:"is_news,omitempty"`
	HashtagCount int    `json:"hashtag_count,omitempty"`
	MentionCount int    `json:"mention_count,omitempty"`
	RetweetCount int    `json:"retweet_count,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// LoadThreads reads a JSONL message file into a validated ThreadSet.
func LoadThreads(path string) (*domain.ThreadSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening threads file: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	var messages []*domain.Message

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxBuffer)

	line := 0
	for scanner.Scan() {
		line++

		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var rec messageRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", errs.ErrInvalidRecord, path, line, err)
		}

		message, err := rec.toMessage()
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", errs.ErrInvalidRecord, path, line, err)
		}

		messages = append(messages, message)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading threads file: %w", err)
	}

	threads, err := domain.NewThreadSet(messages)
	if err != nil {
		return nil, fmt.Errorf("building thread set from %s: %w", path, err)
	}

	return threads, nil
}

func (r messageRecord) toMessage() (*domain.Message, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("missing message id")
	}

	m := &domain.Message{
		ID:           r.ID,
		Text:         r.Text,
		ParentID:     r.ParentID,
		Verified:     r.Verified,
		IsNews:       r.IsNews,
		HashtagCount: r.HashtagCount,
		MentionCount: r.MentionCount,
		RetweetCount: r.RetweetCount,
	}

	if r.CreatedAt != "" {
		createdAt, err := dateparse.ParseAny(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", r.CreatedAt, err)
		}

		m.CreatedAt = createdAt
	}

	return m, nil
}

// LoadAnnotations reads a JSON object of message ID to gold label.
func LoadAnnotations(path string) (domain.Annotations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening annotations file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidRecord, path, err)
	}

	annotations := make(domain.Annotations, len(raw))

	for id, label := range raw {
		stance, err := domain.ParseStance(label)
		if err != nil {
			return nil, fmt.Errorf("annotation for %s: %w", id, err)
		}

		annotations[id] = stance
	}

	return annotations, nil
}

// ValidateCoverage checks that every message in the set has an annotation.
func ValidateCoverage(threads *domain.ThreadSet, annotations domain.Annotations) error {
	for _, m := range threads.Messages() {
		if _, ok := annotations[m.ID]; !ok {
			return fmt.Errorf("%w: message %s", errs.ErrAnnotationCoverage, m.ID)
		}
	}

	return nil
}
