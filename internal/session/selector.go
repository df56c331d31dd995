package session

import (
	"context"
	"fmt"
	"math/rand/v2"

	"cue-cards/internal/domain"
)

// Policy decides how a running session reacts to collection changes
type Policy string

const (
	// PolicyFrozen keeps the first permutation for the whole session
	PolicyFrozen Policy = "frozen"
	// PolicyPrune drops cards that were deleted or archived, keeping order
	PolicyPrune Policy = "prune"
	// PolicyReshuffle rebuilds the session from the current active cards
	PolicyReshuffle Policy = "reshuffle"
)

// ParsePolicy converts a configuration value into a Policy
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyFrozen, PolicyPrune, PolicyReshuffle:
		return p, nil
	case "":
		return PolicyFrozen, nil
	default:
		return "", fmt.Errorf("unknown session policy %q", s)
	}
}

// CardStore is the part of the collection store a session needs
type CardStore interface {
	MarkDone(ctx context.Context, id string) error
	UpdateCard(ctx context.Context, card domain.Card) error
}

// Option configures a Selector
type Option func(*Selector)

// WithRand sets the random source used for shuffling
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		s.rng = r
	}
}

// WithPolicy sets the reconcile policy applied by Sync
func WithPolicy(p Policy) Option {
	return func(s *Selector) {
		s.policy = p
	}
}

// Selector presents active cards one at a time in a random order that stays
// fixed for the session. It is not safe for concurrent use.
type Selector struct {
	store  CardStore
	rng    *rand.Rand
	policy Policy

	cards []domain.Card
	index int
}

// New creates an empty session over store
func New(store CardStore, opts ...Option) *Selector {
	s := &Selector{
		store:  store,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		policy: PolicyFrozen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prime builds the session from cards if it has not been built yet.
// It does nothing while cards is empty or once a session exists.
func (s *Selector) Prime(cards []domain.Card) {
	if len(s.cards) > 0 || len(cards) == 0 {
		return
	}
	s.build(cards)
}

// build replaces the session with a uniform permutation of the active cards
func (s *Selector) build(cards []domain.Card) {
	active := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if c.IsActive() {
			active = append(active, c.Clone())
		}
	}
	s.rng.Shuffle(len(active), func(i, j int) {
		active[i], active[j] = active[j], active[i]
	})
	s.cards = active
	s.index = 0
}

// Current returns the card on screen, or false when the session is empty
func (s *Selector) Current() (domain.Card, bool) {
	if len(s.cards) == 0 {
		return domain.Card{}, false
	}
	return s.cards[s.index].Clone(), true
}

// Advance moves to the next card, wrapping at the end
func (s *Selector) Advance() {
	if len(s.cards) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.cards)
}

// Len returns the number of cards in the session
func (s *Selector) Len() int {
	return len(s.cards)
}

// Index returns the position of the current card
func (s *Selector) Index() int {
	return s.index
}

// Policy returns the reconcile policy
func (s *Selector) Policy() Policy {
	return s.policy
}

// Cards returns a copy of the session order
func (s *Selector) Cards() []domain.Card {
	out := make([]domain.Card, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Clone()
	}
	return out
}

// MarkCurrentDone marks the current card done in the store and advances.
// The session advances even when the store reports a failed save.
func (s *Selector) MarkCurrentDone(ctx context.Context) error {
	current, ok := s.Current()
	if !ok {
		return nil
	}
	err := s.store.MarkDone(ctx, current.ID)
	s.Advance()
	return err
}

// UpdateCurrent replaces the session's copy of card and saves it through the store
func (s *Selector) UpdateCurrent(ctx context.Context, card domain.Card) error {
	for i := range s.cards {
		if s.cards[i].ID == card.ID {
			s.cards[i] = card.Clone()
		}
	}
	return s.store.UpdateCard(ctx, card)
}

// Sync reconciles the session with the latest cards according to the policy.
// An empty session is primed first.
func (s *Selector) Sync(cards []domain.Card) {
	if len(s.cards) == 0 {
		s.Prime(cards)
		return
	}

	switch s.policy {
	case PolicyPrune:
		s.prune(cards)
	case PolicyReshuffle:
		s.build(cards)
	}
}

// prune drops session cards that are gone or archived and refreshes the rest.
// The current card stays current when it survives; otherwise the next survivor is.
func (s *Selector) prune(cards []domain.Card) {
	latest := make(map[string]domain.Card, len(cards))
	for _, c := range cards {
		latest[c.ID] = c
	}

	kept := make([]domain.Card, 0, len(s.cards))
	newIndex := 0
	for i, c := range s.cards {
		fresh, ok := latest[c.ID]
		if !ok || !fresh.IsActive() {
			continue
		}
		if i < s.index {
			newIndex++
		}
		kept = append(kept, fresh.Clone())
	}

	s.cards = kept
	if len(kept) == 0 {
		s.index = 0
		return
	}
	s.index = newIndex % len(kept)
}
