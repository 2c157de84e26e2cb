// Package memory implements the tile-matching memory game: deck building,
// the turn state machine, the game clock and session orchestration.
// It has no terminal or storage dependencies; the platform layer drives it
// through Session.Select and reads it back through Session.Snapshot.
package memory

import (
	"fmt"
	"math/rand"
	"time"
)

// Symbol is the face value printed on a tile.
type Symbol string

// DefaultSymbols is the pool used when no config overrides it.
var DefaultSymbols = []Symbol{"🐶", "🐱", "🦊", "🐼", "🦁", "🐵", "🐸", "🐨", "🐯", "🐷", "🐔", "🐻"}

// DefaultTotalCards is the board size of a standard game.
const DefaultTotalCards = 24

// Deck is the board layout: one symbol per position.
type Deck []Symbol

// Build creates a shuffled deck of totalCards tiles.
// Pairs are drawn from pool in order, wrapping around when the pool is
// smaller than totalCards/2, so small pools produce repeated pairs.
func Build(totalCards int, pool []Symbol, rng *rand.Rand) (Deck, error) {
	if totalCards < 2 || totalCards%2 != 0 {
		return nil, fmt.Errorf("%w: total cards must be even and at least 2, got %d", ErrInvalidConfiguration, totalCards)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: symbol pool is empty", ErrInvalidConfiguration)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pairs := totalCards / 2
	deck := make(Deck, 0, totalCards)
	for i := range pairs {
		deck = append(deck, pool[i%len(pool)])
	}
	deck = append(deck, deck...)

	Shuffle(deck, rng)
	return deck, nil
}

// Shuffle permutes the deck in place (Fisher-Yates).
func Shuffle(deck Deck, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Counts returns how many times each symbol appears in the deck.
func (d Deck) Counts() map[Symbol]int {
	counts := make(map[Symbol]int, len(d)/2)
	for _, s := range d {
		counts[s]++
	}
	return counts
}
