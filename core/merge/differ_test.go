package merge

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiffer_Compute(t *testing.T) {
	base, side1, side2 := doc(t, "[a, b]"), doc(t, "[a, x, b]"), doc(t, "[a, b, y]")
	d := NewDiffer(base, side1, side2)

	assert.Same(t, base, d.Base())
	assert.Same(t, side1, d.Side1())
	assert.Same(t, side2, d.Side2())

	first, err := d.Compute(false)
	require.NoError(t, err)

	cached, err := d.Compute(false)
	require.NoError(t, err)
	assert.Same(t, first, cached)

	forced, err := d.Compute(true)
	require.NoError(t, err)
	assert.NotSame(t, first, forced)
	assert.Equal(t, kinds(first), kinds(forced))

	d.Reset()
	fresh, err := d.Compute(false)
	require.NoError(t, err)
	assert.NotSame(t, forced, fresh)
}

func TestDiffer_ConcurrentCompute(t *testing.T) {
	d := NewDiffer(doc(t, "{a: [1, 2]}"), doc(t, "{a: [1, 3]}"), doc(t, "{a: [0, 1, 2]}"))

	var wg sync.WaitGroup
	results := make([]*Node, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			root, err := d.Compute(false)
			assert.NoError(t, err)
			results[i] = root
		}(i)
	}
	wg.Wait()

	for _, root := range results {
		assert.Same(t, results[0], root)
	}
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, err := Compute(doc(t, "a: 1"), doc(t, "[1]"), doc(t, "a: 1"), WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("Type mismatch").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "map", entries[0].ContextMap()["reference"])
	assert.Equal(t, "list", entries[0].ContextMap()["other"])

	// A nil logger keeps the default.
	_, err = Compute(nil, nil, nil, WithLogger(nil))
	assert.NoError(t, err)
}
