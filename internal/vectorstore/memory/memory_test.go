package memory

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestInit_InvalidDimension(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(context.Background(), 0))
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 3))

	err := s.Upsert(ctx, []domain.Chunk{{ID: "a"}}, [][]float64{{1, 0}})
	assert.Error(t, err)
}

func TestUpsert_LengthMismatch(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 2))

	err := s.Upsert(ctx, []domain.Chunk{{ID: "a"}, {ID: "b"}}, [][]float64{{1, 0}})
	assert.Error(t, err)
}

func TestSearch_RanksByCosineSimilarity(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 2))
	chunks := []domain.Chunk{
		{ID: "x", Text: "off-axis"},
		{ID: "y", Text: "aligned"},
	}
	require.NoError(t, s.Upsert(ctx, chunks, [][]float64{{0, 1}, {1, 0}}))

	results, err := s.Search(ctx, []float64{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "y", results[0].Chunk.ID)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, "x", results[1].Chunk.ID)
}

func TestSearch_UnnormalizedVectorsRankByDirection(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 2))
	chunks := []domain.Chunk{
		{ID: "big", Text: "large magnitude, wrong direction"},
		{ID: "exact", Text: "small magnitude, exact direction"},
	}
	require.NoError(t, s.Upsert(ctx, chunks, [][]float64{{10, 10}, {0, 1}}))

	results, err := s.Search(ctx, []float64{0, 1}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Chunk.ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "big", results[1].Chunk.ID)
	assert.InDelta(t, math.Sqrt2/2, results[1].Score, 1e-9)
}

func TestSearch_ZeroVectorScoresZero(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 2))
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{{ID: "empty"}}, [][]float64{{0, 0}}))

	results, err := s.Search(ctx, []float64{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Score)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 2))
	chunks := []domain.Chunk{
		{ID: "first"},
		{ID: "second"},
		{ID: "third"},
	}
	same := []float64{1, 0}
	require.NoError(t, s.Upsert(ctx, chunks, [][]float64{same, same, same}))

	results, err := s.Search(ctx, []float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Chunk.ID)
	assert.Equal(t, "second", results[1].Chunk.ID)
	assert.Equal(t, "third", results[2].Chunk.ID)
}

func TestSearch_TopKClamped(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 1))
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{{ID: "only"}}, [][]float64{{1}}))

	results, err := s.Search(ctx, []float64{1}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestClear(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx, 1))
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{{ID: "a"}}, [][]float64{{1}}))
	require.NoError(t, s.Clear(ctx))

	results, err := s.Search(ctx, []float64{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
