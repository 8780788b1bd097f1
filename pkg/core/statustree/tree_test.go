package statustree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_NestedPayload(t *testing.T) {
	payload := []byte(`{
		"status": "DOWN",
		"checks": {
			"database": "UP",
			"queue": {"status": "DOWN", "lag": 1200}
		},
		"replicas": [true, false],
		"note": null
	}`)

	tree, err := Decode(payload)
	require.NoError(t, err)
	require.False(t, tree.IsLeaf())

	assert.Equal(t, "DOWN", tree.Children["status"].Value)
	assert.Equal(t, "UP", tree.Children["checks"].Children["database"].Value)
	assert.Equal(t, "1200", tree.Children["checks"].Children["queue"].Children["lag"].Value)
	assert.Equal(t, "true", tree.Children["replicas"].Children["0"].Value)
	assert.Equal(t, "", tree.Children["note"].Value)
}

func TestDecode_ScalarPayload(t *testing.T) {
	tree, err := Decode([]byte(`"UP"`))
	require.NoError(t, err)
	assert.True(t, tree.IsLeaf())
	assert.Equal(t, "UP", tree.Value)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"status":`))
	assert.Error(t, err)
}

func TestFlatten(t *testing.T) {
	tree := Branch(map[string]*Node{
		"status": Leaf("UP"),
		"checks": Branch(map[string]*Node{
			"cache": Leaf("UP"),
			"db":    Leaf("DOWN"),
		}),
	})

	rows := Flatten(tree)
	require.Len(t, rows, 4)

	// Children are visited in key order, branches before their children
	assert.Equal(t, []string{"checks"}, rows[0].Path)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Empty(t, rows[0].Value)

	assert.Equal(t, []string{"checks", "cache"}, rows[1].Path)
	assert.Equal(t, 1, rows[1].Depth)
	assert.Equal(t, "UP", rows[1].Value)

	assert.Equal(t, []string{"checks", "db"}, rows[2].Path)
	assert.Equal(t, "DOWN", rows[2].Value)

	assert.Equal(t, []string{"status"}, rows[3].Path)
	assert.Equal(t, "UP", rows[3].Value)
}

func TestFlatten_LeafRoot(t *testing.T) {
	assert.Empty(t, Flatten(Leaf("UP")))
}
