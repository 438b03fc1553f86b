// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"errors"
	"fmt"

	"github.com/axljndotdev/manito-manita/store"
)

var (
	ErrSelfAssignment   = errors.New("participant cannot be assigned to themselves")
	ErrGiverAssigned    = errors.New("giver already has a recipient")
	ErrReceiverTargeted = errors.New("recipient is already targeted")
)

// Assignments is the set of giver→receiver edges. Each giver has at most one
// receiver and each receiver at most one giver.
type Assignments struct {
	byGiver    map[string]string
	byReceiver map[string]string
}

func NewAssignments() *Assignments {
	return &Assignments{
		byGiver:    make(map[string]string),
		byReceiver: make(map[string]string),
	}
}

// AssignmentsFrom builds the set from stored edges, failing on any edge that
// breaks the one-to-one rule.
func AssignmentsFrom(edges []store.Edge) (*Assignments, error) {
	a := NewAssignments()
	for _, e := range edges {
		if err := a.Add(e.Giver, e.Receiver); err != nil {
			return nil, fmt.Errorf("invalid stored assignment %s→%s: %w", e.Giver, e.Receiver, err)
		}
	}
	return a, nil
}

func (a *Assignments) Add(giver, receiver string) error {
	if giver == receiver {
		return ErrSelfAssignment
	}
	if _, ok := a.byGiver[giver]; ok {
		return ErrGiverAssigned
	}
	if _, ok := a.byReceiver[receiver]; ok {
		return ErrReceiverTargeted
	}
	a.byGiver[giver] = receiver
	a.byReceiver[receiver] = giver
	return nil
}

func (a *Assignments) IsTarget(pin string) bool {
	_, ok := a.byReceiver[pin]
	return ok
}

func (a *Assignments) ReceiverOf(giver string) (string, bool) {
	r, ok := a.byGiver[giver]
	return r, ok
}

func (a *Assignments) Len() int {
	return len(a.byGiver)
}
