package rbtree_test

import (
	"bytes"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"github.com/treedex/treedex/rbtree"
)

const seed = 42

func generateRandomStrings(r *rand.Rand, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(r.Intn(n))
	}
	return out
}

func TestInsert(t *testing.T) {
	r := rand.New(rand.NewSource(seed))
	random := generateRandomStrings(r, 10_000)
	sorted := make([]string, len(random))
	copy(sorted, random)
	slices.Sort(sorted)
	reversed := make([]string, len(sorted))
	copy(reversed, sorted)
	slices.Reverse(reversed)

	tests := []struct {
		name  string
		input []string
	}{
		{"Empty", nil},
		{"Single", []string{"1"}},
		{"Sorted", sorted},
		{"Reversed", reversed},
		{"Random", random},
		{"AllEqual", []string{"k", "k", "k", "k", "k", "k", "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := rbtree.New()
			for _, k := range tt.input {
				tree.Insert(k)
			}

			require.NoError(t, tree.Check())
			require.Equal(t, len(tt.input), tree.Len())

			keys := tree.Keys()
			want := make([]string, len(tt.input))
			copy(want, tt.input)
			slices.Sort(want)
			require.Equal(t, want, keys)
		})
	}
}

func TestInsertReRootsOnRotation(t *testing.T) {
	// ascending inserts force a left rotation at the root on the third key
	tree := rbtree.New()
	tree.Insert("a")
	tree.Insert("b")
	tree.Insert("c")

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, "b", root.Key())
	assert.Equal(t, rbtree.Black, root.Color())
	require.NotNil(t, root.Left())
	require.NotNil(t, root.Right())
	assert.Equal(t, "a", root.Left().Key())
	assert.Equal(t, "c", root.Right().Key())
	assert.Equal(t, rbtree.Red, root.Left().Color())
	assert.Equal(t, rbtree.Red, root.Right().Color())
}

func TestInsertDuplicatesGoRight(t *testing.T) {
	tree := rbtree.New()
	tokens := []string{"A_1", "A_1", "B_2", "C_3", "C_3", "C_3"}
	for _, tok := range tokens {
		tree.Insert(tok)
	}

	require.NoError(t, tree.Check())
	assert.Equal(t, 6, tree.Len())
	assert.Equal(t, rbtree.Black, tree.Root().Color())
	assert.Equal(t, []string{"A_1", "A_1", "B_2", "C_3", "C_3", "C_3"}, tree.Keys())
}

func TestInvariantsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("insertions preserve the red-black invariants", prop.ForAll(
		func(keys []string) bool {
			tree := rbtree.New()
			for _, k := range keys {
				tree.Insert(k)
			}
			if tree.Check() != nil {
				return false
			}
			if tree.Len() != len(keys) {
				return false
			}
			return slices.IsSorted(tree.Keys())
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestInOrderEarlyStop(t *testing.T) {
	tree := rbtree.New()
	for _, k := range []string{"d", "b", "f", "a", "c", "e", "g"} {
		tree.Insert(k)
	}

	var visited []string
	tree.InOrder(func(n *rbtree.Node) bool {
		visited = append(visited, n.Key())
		return len(visited) < 3
	})
	assert.Equal(t, []string{"a", "b", "c"}, visited)
}

func TestRender(t *testing.T) {
	tree := rbtree.New()
	tree.Insert("b")
	tree.Insert("a")
	tree.Insert("c")

	var buf bytes.Buffer
	tree.Render(&buf)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "b (black)")
	assert.Contains(t, lines[1], "a (red)")
	assert.Contains(t, lines[2], "c (red)")
}

func BenchmarkInsert(b *testing.B) {
	r := rand.New(rand.NewSource(seed))
	keys := generateRandomStrings(r, 10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := rbtree.New()
		for _, k := range keys {
			tree.Insert(k)
		}
	}
}
