package diagnostics

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_KeepsMostRecent(t *testing.T) {
	ring := NewRing(3)
	for i := 1; i <= 5; i++ {
		ring.Report("search", fmt.Errorf("failure %d", i))
	}

	entries := ring.Snapshot()
	require.Len(t, entries, 3)
	assert.Equal(t, "failure 3", entries[0].Message)
	assert.Equal(t, "failure 5", entries[2].Message)
	assert.Equal(t, "search", entries[2].Component)
	assert.Equal(t, uint64(5), ring.Total())

	last, ok := ring.Last()
	require.True(t, ok)
	assert.Equal(t, "failure 5", last.Message)
}

func TestRing_Empty(t *testing.T) {
	ring := NewRing(0)

	assert.Equal(t, 0, ring.Len())
	assert.Empty(t, ring.Snapshot())
	_, ok := ring.Last()
	assert.False(t, ok)
}

func TestRing_IgnoresNil(t *testing.T) {
	ring := NewRing(2)
	ring.Report("search", nil)

	assert.Equal(t, 0, ring.Len())
	assert.Equal(t, uint64(0), ring.Total())
}

func TestMulti_FansOut(t *testing.T) {
	a, b := NewRing(2), NewRing(2)
	Multi{a, nil, b}.Report("search", errors.New("boom"))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestLogSink_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	LogSink{}.Report("search", errors.New("catalog returned status 500"))

	assert.Contains(t, buf.String(), "search: catalog returned status 500")
}
