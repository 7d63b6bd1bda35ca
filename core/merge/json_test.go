package merge

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sideJSON struct {
	Value any `json:"value"`
}

type nodeJSON struct {
	Kind  string     `json:"kind"`
	Key   any        `json:"key"`
	Base  *sideJSON  `json:"base"`
	Side1 *sideJSON  `json:"side1"`
	Side2 *sideJSON  `json:"side2"`
	Items []nodeJSON `json:"items"`
}

func marshalNode(t *testing.T, n *Node) nodeJSON {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)

	var out nodeJSON
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestNode_MarshalJSON(t *testing.T) {
	t.Run("Leaf values", func(t *testing.T) {
		out := marshalNode(t, compute(t, "{a: 1}", "{a: 2}", "{a: 1}"))

		assert.Equal(t, "has_changed_children", out.Kind)
		assert.Nil(t, out.Base)
		require.Len(t, out.Items, 1)
		item := out.Items[0]
		assert.Equal(t, "changed_by_side1", item.Kind)
		assert.Equal(t, "a", item.Key)
		assert.EqualValues(t, 1, item.Base.Value)
		assert.EqualValues(t, 2, item.Side1.Value)
	})

	t.Run("Null against a map", func(t *testing.T) {
		out := marshalNode(t, compute(t, "a: {x: 1}", "a: null", "a: {x: 1}"))

		require.Len(t, out.Items, 1)
		item := out.Items[0]
		assert.Equal(t, "changed_by_side1", item.Kind)
		assert.Nil(t, item.Base)
		require.NotNil(t, item.Side1)
		assert.Nil(t, item.Side1.Value)
	})

	t.Run("Non-finite floats", func(t *testing.T) {
		out := marshalNode(t, compute(t, "{ratio: .nan, limit: 1}", "{ratio: .nan, limit: .inf}", "{ratio: .nan, limit: -.inf}"))

		require.Len(t, out.Items, 2)
		assert.Equal(t, "unchanged", out.Items[0].Kind)
		assert.Equal(t, "NaN", out.Items[0].Base.Value)
		assert.Equal(t, "conflict", out.Items[1].Kind)
		assert.Equal(t, "+Inf", out.Items[1].Side1.Value)
		assert.Equal(t, "-Inf", out.Items[1].Side2.Value)
	})
}

func TestJSONValue(t *testing.T) {
	assert.Equal(t, 1.5, jsonValue(1.5))
	assert.Equal(t, "x", jsonValue("x"))
	assert.Equal(t, "+Inf", jsonValue(float32(math.Inf(1))))
	assert.Equal(t, "NaN", jsonValue(math.NaN()))
}
