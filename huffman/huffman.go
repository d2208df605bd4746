// Package huffman builds a prefix-free binary code over a multiset of string
// tokens by repeated minimum-weight merging.
//
// Codes are deterministic across runs: equal-weight merge candidates are
// ordered by the position at which their token first appeared in the input,
// and merged nodes rank after every pre-existing node of the same weight.
package huffman

import (
	"errors"

	"github.com/treedex/treedex/logger"
)

// ErrEmptyInput is returned when there are no tokens to build a code for.
var ErrEmptyInput = errors.New("huffman: empty frequency table")

// FrequencyTable maps distinct tokens to occurrence counts while remembering
// first-appearance order. A plain Go map would not do here: map iteration
// order is randomized, and the merge tie-break depends on table order.
type FrequencyTable struct {
	tokens []string
	counts map[string]int
}

// Count tallies the given token stream into a new table.
func Count(tokens []string) *FrequencyTable {
	ft := NewFrequencyTable()
	for _, t := range tokens {
		ft.Add(t, 1)
	}
	return ft
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add records n additional occurrences of token.
func (ft *FrequencyTable) Add(token string, n int) {
	if _, seen := ft.counts[token]; !seen {
		ft.tokens = append(ft.tokens, token)
	}
	ft.counts[token] += n
}

// Len returns the number of distinct tokens.
func (ft *FrequencyTable) Len() int { return len(ft.tokens) }

// Tokens returns the distinct tokens in first-appearance order.
func (ft *FrequencyTable) Tokens() []string {
	out := make([]string, len(ft.tokens))
	copy(out, ft.tokens)
	return out
}

// CountOf returns the occurrence count for token, 0 if absent.
func (ft *FrequencyTable) CountOf(token string) int { return ft.counts[token] }

// Node is a node of the Huffman tree. A leaf carries a token; an internal
// node carries exactly two children and the sum of their weights.
type Node struct {
	Token  string
	Weight int
	Left   *Node
	Right  *Node

	seq int // creation order, breaks weight ties
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool { return n.Left == nil && n.Right == nil }

// Build constructs the Huffman tree for the table. A single-entry table
// yields its leaf directly; otherwise exactly Len()-1 merges run, each
// combining the two lightest remaining nodes (first popped becomes the left
// child).
func Build(ft *FrequencyTable) (*Node, error) {
	if ft == nil || ft.Len() == 0 {
		return nil, ErrEmptyInput
	}
	if ft.Len() == 1 {
		t := ft.tokens[0]
		return &Node{Token: t, Weight: ft.counts[t]}, nil
	}

	nodes := make(minHeap, ft.Len())
	for i, t := range ft.tokens {
		nodes[i] = &Node{Token: t, Weight: ft.counts[t], seq: i}
	}
	nodes.heapify()

	log := logger.Logger()
	seq := ft.Len()
	for step := 1; len(nodes) > 1; step++ {
		a := nodes[0]
		nodes.popHead()
		b := nodes[0]
		nodes.popHead()

		merged := &Node{Weight: a.Weight + b.Weight, Left: a, Right: b, seq: seq}
		seq++
		log.Debug().
			Int("step", step).
			Str("left", a.Token).Int("leftWeight", a.Weight).
			Str("right", b.Token).Int("rightWeight", b.Weight).
			Int("weight", merged.Weight).
			Msg("huffman merge")

		nodes.push(merged)
	}
	return nodes[0], nil
}

// Codes assigns each leaf the bit-string of its path from the root, "0" for
// a left edge and "1" for a right edge. A root that is itself a leaf (single
// distinct token) gets the code "0".
func Codes(root *Node) map[string]string {
	codes := make(map[string]string)
	if root == nil {
		return codes
	}
	root.traverse("", codes)
	return codes
}

func (n *Node) traverse(prefix string, codes map[string]string) {
	if n.Leaf() {
		if prefix == "" {
			prefix = "0"
		}
		codes[n.Token] = prefix
		return
	}
	if n.Left != nil {
		n.Left.traverse(prefix+"0", codes)
	}
	if n.Right != nil {
		n.Right.traverse(prefix+"1", codes)
	}
}

// A minHeap of huffman nodes ordered by (weight, seq).
//
// The code is identical to https://pkg.go.dev/container/heap but replaces
// interfaces with a concrete type to avoid memory overhead.
type minHeap []*Node

func (h minHeap) less(i, j int) bool {
	return h[i].Weight < h[j].Weight || (h[i].Weight == h[j].Weight && h[i].seq < h[j].seq)
}
func (h minHeap) swap(i, j int) { h[i], h[j] = h[j], h[i] }

// heapify establishes the heap invariants required by the other routines in
// this package. The complexity is O(n) where n = len(*h).
func (h *minHeap) heapify() {
	n := len(*h)
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// push the element x onto the heap.
// The complexity is O(log n) where n = len(*h).
func (h *minHeap) push(x *Node) {
	*h = append(*h, x)
	h.up(len(*h) - 1)
}

// popHead removes the minimum element (according to less) from the heap.
// The complexity is O(log n) where n = len(*h).
func (h *minHeap) popHead() {
	n := len(*h) - 1
	h.swap(0, n)
	h.down(0, n)
	*h = (*h)[0:n]
}

func (h *minHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *minHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
