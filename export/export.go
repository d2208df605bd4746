// Package export serializes the built indexes: the Huffman code mapping and
// the red-black tree's shape.
package export

import (
	"encoding/json"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/treedex/treedex/rbtree"
)

// Codes writes the token→code mapping as indented JSON. encoding/json emits
// map keys in lexicographic order, which is the order-stability the artifact
// contract asks for.
func Codes(w io.Writer, codes map[string]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(codes)
}

// Snapshot is the recursive structural dump of a red-black tree node.
// Absent children are null.
type Snapshot struct {
	Key   string    `json:"key" cbor:"key"`
	Color string    `json:"color" cbor:"color"`
	Left  *Snapshot `json:"left" cbor:"left"`
	Right *Snapshot `json:"right" cbor:"right"`
}

// TreeSnapshot converts a tree into its exportable form. An empty tree
// yields nil, which serializes as null.
func TreeSnapshot(t *rbtree.Tree) *Snapshot {
	return snapshotNode(t.Root())
}

func snapshotNode(n *rbtree.Node) *Snapshot {
	if n == nil {
		return nil
	}
	return &Snapshot{
		Key:   n.Key(),
		Color: n.Color().String(),
		Left:  snapshotNode(n.Left()),
		Right: snapshotNode(n.Right()),
	}
}

// TreeJSON writes the tree snapshot as indented JSON.
func TreeJSON(w io.Writer, t *rbtree.Tree) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(TreeSnapshot(t))
}

// TreeCBOR writes the same snapshot in CBOR for binary consumers.
func TreeCBOR(w io.Writer, t *rbtree.Tree) error {
	return cbor.NewEncoder(w).Encode(TreeSnapshot(t))
}
