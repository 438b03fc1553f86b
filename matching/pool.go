// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/axljndotdev/manito-manita/models"
)

var errEmptyPool = errors.New("empty pool")

// drawRandomInt returns a uniform value in [0, max). Tests replace it.
var drawRandomInt = secureRandomInt

// EligiblePool returns the approved participants the requester may draw:
// everyone except the requester and anyone already targeted.
func EligiblePool(approved []models.Participant, requester string, a *Assignments) []models.Participant {
	pool := make([]models.Participant, 0, len(approved))
	for _, p := range approved {
		if !p.Approved || p.PIN == requester || a.IsTarget(p.PIN) {
			continue
		}
		pool = append(pool, p)
	}
	return pool
}

// Pick selects one member of pool uniformly at random
func Pick(pool []models.Participant) (models.Participant, error) {
	if len(pool) == 0 {
		return models.Participant{}, errEmptyPool
	}

	idx, err := drawRandomInt(len(pool))
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to pick random participant: %w", err)
	}
	if idx < 0 || idx >= len(pool) {
		return models.Participant{}, fmt.Errorf("random index %d out of range [0, %d)", idx, len(pool))
	}
	return pool[idx], nil
}

func secureRandomInt(max int) (int, error) {
	if max <= 0 {
		return 0, errEmptyPool
	}

	n, err := crand.Int(crand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
