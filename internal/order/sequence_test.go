package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNumberSource struct {
	last string
	err  error
}

func (s *stubNumberSource) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	return s.last, s.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSequenceStartsAtOne(t *testing.T) {
	g := NewSequenceGenerator(&stubNumberSource{}, nil)
	g.now = fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local))

	num, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OS-20240601-001", num)
}

func TestSequenceIncrements(t *testing.T) {
	src := &stubNumberSource{}
	g := NewSequenceGenerator(src, nil)
	g.now = fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local))

	want := []string{"OS-20240601-001", "OS-20240601-002", "OS-20240601-003"}
	for _, w := range want {
		num, err := g.Next(context.Background())
		require.NoError(t, err)
		assert.Equal(t, w, num)
		src.last = num
	}
}

func TestSequenceResetsPerDay(t *testing.T) {
	// três ordens no dia 01; no dia 02 não existe ordem com o novo prefixo
	src := &stubNumberSource{last: ""}
	g := NewSequenceGenerator(src, nil)
	g.now = fixedClock(time.Date(2024, 6, 2, 0, 30, 0, 0, time.Local))

	num, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OS-20240602-001", num)
}

func TestSequenceFallsBackOnLookupError(t *testing.T) {
	src := &stubNumberSource{err: errors.New("connection reset")}
	g := NewSequenceGenerator(src, nil)
	g.now = fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local))

	num, err := g.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OS-20240601-001", num)
}

func TestSequenceExhausted(t *testing.T) {
	_, err := NextInSequence("OS-20240601", "OS-20240601-999")
	assert.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestNextInSequenceMalformed(t *testing.T) {
	_, err := NextInSequence("OS-20240601", "OS-20240601-abc")
	assert.Error(t, err)
}
