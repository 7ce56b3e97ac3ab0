package domain

import (
	"fmt"

	errs "github.com/lueurxax/stance-classifier/internal/core/errors"
)

// ThreadSet owns a collection of messages and their parent-lookup relation.
// Messages reachable from one root form a tree; the set may hold many trees.
type ThreadSet struct {
	order []*Message
	byID  map[string]*Message
}

// NewThreadSet builds a ThreadSet from messages in their given order.
// It rejects duplicate IDs, dangling parent references, and parent cycles.
func NewThreadSet(messages []*Message) (*ThreadSet, error) {
	set := &ThreadSet{
		order: make([]*Message, 0, len(messages)),
		byID:  make(map[string]*Message, len(messages)),
	}

	for _, m := range messages {
		if _, exists := set.byID[m.ID]; exists {
			return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateMessage, m.ID)
		}

		set.byID[m.ID] = m
		set.order = append(set.order, m)
	}

	for _, m := range messages {
		if m.ParentID == "" {
			continue
		}

		if _, ok := set.byID[m.ParentID]; !ok {
			return nil, fmt.Errorf("%w: message %s references parent %s", errs.ErrUnknownParent, m.ID, m.ParentID)
		}
	}

	for _, m := range messages {
		if err := set.checkAcyclic(m); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// checkAcyclic walks the parent chain with a step bound of the set size.
// A chain longer than that can only mean a cycle.
func (t *ThreadSet) checkAcyclic(m *Message) error {
	current := m
	for steps := 0; current.ParentID != ""; steps++ {
		if steps >= len(t.order) {
			return fmt.Errorf("%w: starting at message %s", errs.ErrCyclicThread, m.ID)
		}

		current = t.byID[current.ParentID]
	}

	return nil
}

// Messages returns the messages in insertion order.
func (t *ThreadSet) Messages() []*Message {
	return t.order
}

// Len returns the number of messages in the set.
func (t *ThreadSet) Len() int {
	return len(t.order)
}

// Get looks up a message by ID.
func (t *ThreadSet) Get(id string) (*Message, bool) {
	m, ok := t.byID[id]
	return m, ok
}

// Parent resolves the parent of a message, or nil for roots.
func (t *ThreadSet) Parent(m *Message) *Message {
	if m.ParentID == "" {
		return nil
	}

	return t.byID[m.ParentID]
}

// Root resolves the ancestor with no parent. The walk is iterative so deep
// threads cannot exhaust the stack; construction guarantees the chain is
// finite and acyclic.
func (t *ThreadSet) Root(m *Message) *Message {
	current := m
	for current.ParentID != "" {
		current = t.byID[current.ParentID]
	}

	return current
}

// Depth counts parent hops from the message to its root.
func (t *ThreadSet) Depth(m *Message) int {
	depth := 0
	for current := m; current.ParentID != ""; current = t.byID[current.ParentID] {
		depth++
	}

	return depth
}
