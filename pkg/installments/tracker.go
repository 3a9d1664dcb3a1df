// Package installments keeps installment purchases from being counted once per
// statement they appear on.
//
// Statements repeat an installment purchase every month with its "current/total"
// marker. The tracker remembers, per merchant key, the last accepted current
// installment and only accepts strictly smaller ones afterwards, so statements
// must be supplied newest first. Supplying them in another order drops
// legitimate installments; see plan.Ordered.
package installments

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadInstallment = errors.New("invalid installment marker")

// Entry is the recorded installment number for one merchant key.
type Entry struct {
	Key         string
	Installment int
}

// Tracker holds the installment state of a single run.
type Tracker struct {
	seen  map[string]int
	order []string
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]int)}
}

// Accept reports whether a line for key carrying installment ("02/10") should
// be kept. Lines without installment are always kept and never recorded.
func (t *Tracker) Accept(key, installment string) (bool, error) {
	if installment == "" {
		return true, nil
	}

	current, err := Current(installment)
	if err != nil {
		return false, err
	}

	last, ok := t.seen[key]
	if ok && last <= current {
		return false, nil
	}
	if !ok {
		t.order = append(t.order, key)
	}
	t.seen[key] = current
	return true, nil
}

// Current returns the installment number before the "/".
func Current(installment string) (int, error) {
	before, _, _ := strings.Cut(strings.TrimSpace(installment), "/")
	n, err := strconv.Atoi(before)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadInstallment, installment)
	}
	return n, nil
}

func (t *Tracker) Len() int {
	return len(t.seen)
}

// Entries lists the state in the order keys were first recorded.
func (t *Tracker) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, Entry{Key: key, Installment: t.seen[key]})
	}
	return out
}

// Snapshot returns a copy of the state.
func (t *Tracker) Snapshot() map[string]int {
	out := make(map[string]int, len(t.seen))
	for k, v := range t.seen {
		out[k] = v
	}
	return out
}
