package piece_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockquiz/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogContents(t *testing.T) {
	shapes := piece.Catalog()
	require.Len(t, shapes, 11)

	tests := []struct {
		name   string
		rows   int
		cols   int
		filled int
		layout string
	}{
		{"single", 1, 1, 1, "#"},
		{"domino-h", 1, 2, 2, "##"},
		{"domino-v", 2, 1, 2, "#\n#"},
		{"square", 2, 2, 4, "##\n##"},
		{"tromino-h", 1, 3, 3, "###"},
		{"tromino-v", 3, 1, 3, "#\n#\n#"},
		{"t", 2, 3, 4, "###\n.#."},
		{"z", 2, 3, 4, "##.\n.##"},
		{"s", 2, 3, 4, ".##\n##."},
		{"l", 3, 2, 4, "#.\n#.\n##"},
		{"l-reverse", 3, 2, 4, ".#\n.#\n##"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := shapes[i]
			assert.Equal(t, tt.name, s.Name())
			assert.Equal(t, tt.rows, s.Rows())
			assert.Equal(t, tt.cols, s.Cols())
			assert.Equal(t, tt.filled, s.FilledCount())
			assert.Equal(t, tt.layout, s.String())
			assert.Len(t, s.Offsets(), tt.filled)
		})
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	shapes := piece.Catalog()
	shapes[0] = piece.MustLookup("square")

	assert.Equal(t, "single", piece.Catalog()[0].Name())
}

func TestShapeFilledOutsideBoundingBox(t *testing.T) {
	s := piece.MustLookup("t")
	assert.True(t, s.Filled(1, 1))
	assert.False(t, s.Filled(1, 0))
	assert.False(t, s.Filled(-1, 0))
	assert.False(t, s.Filled(0, 3))
}

func TestNewShapePanicsOnBadMatrix(t *testing.T) {
	assert.Panics(t, func() { piece.NewShape("empty", nil) })
	assert.Panics(t, func() { piece.NewShape("ragged", [][]uint8{{1, 1}, {1}}) })
}

func TestLookupUnknown(t *testing.T) {
	_, ok := piece.Lookup("pentomino")
	assert.False(t, ok)
	assert.Panics(t, func() { piece.MustLookup("pentomino") })
}

func TestDrawBatch(t *testing.T) {
	dealer := piece.NewDealer(rand.New(rand.NewPCG(1, 2)))

	batch := dealer.DrawBatch(piece.BatchSize)
	require.Len(t, batch, piece.BatchSize)

	for _, p := range batch {
		assert.False(t, p.Used)
		assert.NotZero(t, p.ID)
		_, ok := piece.Lookup(p.Shape.Name())
		assert.True(t, ok)
	}
}

func TestDrawBatchIDsAreUnique(t *testing.T) {
	dealer := piece.NewDealer(rand.New(rand.NewPCG(7, 7)))
	seen := make(map[piece.ID]bool)

	for range 100 {
		for _, p := range dealer.DrawBatch(piece.BatchSize) {
			assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
			seen[p.ID] = true
		}
	}
	assert.Len(t, seen, 300)
}

func TestDrawBatchIsDeterministicForSeed(t *testing.T) {
	a := piece.NewDealer(rand.New(rand.NewPCG(42, 0)))
	b := piece.NewDealer(rand.New(rand.NewPCG(42, 0)))

	for range 10 {
		batchA := a.DrawBatch(piece.BatchSize)
		batchB := b.DrawBatch(piece.BatchSize)
		for i := range batchA {
			assert.Equal(t, batchA[i].Shape.Name(), batchB[i].Shape.Name())
		}
	}
}

func TestDealKeepsRandomSequence(t *testing.T) {
	a := piece.NewDealer(rand.New(rand.NewPCG(42, 0)))
	b := piece.NewDealer(rand.New(rand.NewPCG(42, 0)))

	dealt := a.Deal(piece.MustLookup("square"), piece.MustLookup("t"))
	require.Len(t, dealt, 2)
	assert.Equal(t, "square", dealt[0].Shape.Name())
	assert.Equal(t, "t", dealt[1].Shape.Name())
	assert.Less(t, dealt[0].ID, dealt[1].ID)

	batchA := a.DrawBatch(piece.BatchSize)
	batchB := b.DrawBatch(piece.BatchSize)
	for i := range batchA {
		assert.Equal(t, batchB[i].Shape.Name(), batchA[i].Shape.Name())
		assert.Greater(t, batchA[i].ID, dealt[1].ID)
	}
}

func TestDrawBatchCoversCatalog(t *testing.T) {
	dealer := piece.NewDealer(rand.New(rand.NewPCG(3, 4)))
	counts := make(map[string]int)

	for range 2000 {
		for _, p := range dealer.DrawBatch(piece.BatchSize) {
			counts[p.Shape.Name()]++
		}
	}

	assert.Len(t, counts, len(piece.Catalog()))
	for name, n := range counts {
		// 6000 draws over 11 shapes, roughly 545 each.
		assert.Greater(t, n, 400, "shape %s drawn too rarely", name)
		assert.Less(t, n, 700, "shape %s drawn too often", name)
	}
}
