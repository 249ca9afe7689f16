package piece

import (
	"fmt"
	"math/rand/v2"
)

// BatchSize is the number of pieces offered to the player at once.
const BatchSize = 3

var catalog = []Shape{
	NewShape("single", [][]uint8{{1}}),
	NewShape("domino-h", [][]uint8{{1, 1}}),
	NewShape("domino-v", [][]uint8{{1}, {1}}),
	NewShape("square", [][]uint8{{1, 1}, {1, 1}}),
	NewShape("tromino-h", [][]uint8{{1, 1, 1}}),
	NewShape("tromino-v", [][]uint8{{1}, {1}, {1}}),
	NewShape("t", [][]uint8{{1, 1, 1}, {0, 1, 0}}),
	NewShape("z", [][]uint8{{1, 1, 0}, {0, 1, 1}}),
	NewShape("s", [][]uint8{{0, 1, 1}, {1, 1, 0}}),
	NewShape("l", [][]uint8{{1, 0}, {1, 0}, {1, 1}}),
	NewShape("l-reverse", [][]uint8{{0, 1}, {0, 1}, {1, 1}}),
}

// Catalog returns the fixed, ordered list of shapes pieces are drawn from.
func Catalog() []Shape {
	out := make([]Shape, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog shape with the given name.
func Lookup(name string) (Shape, bool) {
	for _, s := range catalog {
		if s.name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// MustLookup is Lookup for names known to be in the catalog.
func MustLookup(name string) Shape {
	s, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("piece: unknown shape %q", name))
	}
	return s
}

// ID identifies a piece for the lifetime of a Dealer.
type ID uint64

// Piece is one offered block. Used flips once, when the piece is placed.
type Piece struct {
	ID    ID
	Shape Shape
	Used  bool
}

// Dealer draws batches of pieces using an injected random source.
type Dealer struct {
	rng    *rand.Rand
	nextID ID
}

// NewDealer returns a dealer drawing from rng.
func NewDealer(rng *rand.Rand) *Dealer {
	return &Dealer{rng: rng}
}

// DrawBatch returns n fresh pieces. Each shape is chosen uniformly and
// independently from the catalog; every piece gets an ID never handed out before.
func (d *Dealer) DrawBatch(n int) []Piece {
	batch := make([]Piece, n)
	for i := range batch {
		d.nextID++
		batch[i] = Piece{
			ID:    d.nextID,
			Shape: catalog[d.rng.IntN(len(catalog))],
		}
	}
	return batch
}

// Deal returns fresh pieces for the given shapes without drawing from the
// random source, so a seeded dealer keeps its sequence.
func (d *Dealer) Deal(shapes ...Shape) []Piece {
	batch := make([]Piece, len(shapes))
	for i, shape := range shapes {
		d.nextID++
		batch[i] = Piece{ID: d.nextID, Shape: shape}
	}
	return batch
}
