// Package rbtree implements a red-black binary search tree keyed by string.
//
// Duplicate keys are allowed and descend to the right, so inserting the same
// key n times yields n distinct nodes. Deletion is not supported; the tree is
// built once and then only traversed.
package rbtree

import (
	"errors"
	"fmt"
	"io"
)

// Color is a node's red-black color tag.
type Color bool

const (
	Red   Color = true
	Black Color = false
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Node is a tree node. The parent pointer is a navigation aid for the insert
// fixup; ownership flows strictly root to children.
type Node struct {
	key                 string
	color               Color
	left, right, parent *Node
}

func (n *Node) Key() string  { return n.key }
func (n *Node) Color() Color { return n.color }
func (n *Node) Left() *Node  { return n.left }
func (n *Node) Right() *Node { return n.right }

// Tree is a red-black tree instance. The zero value is an empty tree.
type Tree struct {
	root *Node
	size int
}

// New creates an empty tree.
func New() *Tree { return &Tree{} }

// Root returns the root node, nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of nodes, counting duplicates.
func (t *Tree) Len() int { return t.size }

// Insert adds key to the tree while maintaining the red-black invariants.
// Keys equal to an existing key go right.
func (t *Tree) Insert(key string) {
	z := &Node{key: key, color: Red}

	var y *Node
	x := t.root
	for x != nil {
		y = x
		if z.key < x.key {
			x = x.left
		} else {
			x = x.right
		}
	}

	z.parent = y
	switch {
	case y == nil:
		t.root = z
	case z.key < y.key:
		y.left = z
	default:
		y.right = z
	}
	t.size++

	t.fixInsert(z)
}

// fixInsert restores the coloring invariants after z was attached as a red
// leaf. It walks upward recoloring while both parent and uncle are red, and
// otherwise rotates the red-red pair into shape. The four cases are the
// standard CLRS ones, mirrored for z's parent being a left or right child.
func (t *Tree) fixInsert(z *Node) {
	for z.parent != nil && z.parent.color == Red {
		g := z.parent.parent
		if g == nil {
			break
		}
		if z.parent == g.left {
			u := g.right
			if u != nil && u.color == Red {
				z.parent.color = Black
				u.color = Black
				g.color = Red
				z = g
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z)
				}
				z.parent.color = Black
				z.parent.parent.color = Red
				t.rotateRight(z.parent.parent)
			}
		} else {
			u := g.left
			if u != nil && u.color == Red {
				z.parent.color = Black
				u.color = Black
				g.color = Red
				z = g
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z)
				}
				z.parent.color = Black
				z.parent.parent.color = Red
				t.rotateLeft(z.parent.parent)
			}
		}
	}
	t.root.color = Black
}

func (t *Tree) rotateLeft(x *Node) {
	/*
		      x                y
		     / \              / \
		    A   y     →      x   C
		       / \          / \
		      B   C        A   B
	*/
	y := x.right
	if y == nil {
		return
	}
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Tree) rotateRight(y *Node) {
	/*
		      y                x
		     / \              / \
		    x   C     →      A   y
		   / \                  / \
		  A   B                B   C
	*/
	x := y.left
	if x == nil {
		return
	}
	y.left = x.right
	if x.right != nil {
		x.right.parent = y
	}
	x.parent = y.parent
	if y.parent == nil {
		t.root = x
	} else if y == y.parent.right {
		y.parent.right = x
	} else {
		y.parent.left = x
	}
	x.right = y
	y.parent = x
}

// InOrder walks the tree in key order, calling visit for every node until it
// returns false.
func (t *Tree) InOrder(visit func(*Node) bool) {
	var stack []*Node
	curr := t.root
	for curr != nil || len(stack) > 0 {
		for curr != nil {
			stack = append(stack, curr)
			curr = curr.left
		}
		curr = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(curr) {
			return
		}
		curr = curr.right
	}
}

// Keys returns every key in non-decreasing order.
func (t *Tree) Keys() []string {
	out := make([]string, 0, t.size)
	t.InOrder(func(n *Node) bool {
		out = append(out, n.key)
		return true
	})
	return out
}

// Check verifies the red-black invariants: the root is black, no red node
// has a red child, every root-to-nil path crosses the same number of black
// nodes, and parent links agree with child links. A non-nil error indicates
// a defect in the insert fixup, never a legitimate input condition.
func (t *Tree) Check() error {
	if t.root == nil {
		return nil
	}
	if t.root.color != Black {
		return errors.New("rbtree: root is red")
	}
	if t.root.parent != nil {
		return errors.New("rbtree: root has a parent")
	}
	_, err := checkSubtree(t.root)
	return err
}

func checkSubtree(n *Node) (blackHeight int, err error) {
	if n == nil {
		return 1, nil
	}
	if n.color == Red {
		if (n.left != nil && n.left.color == Red) || (n.right != nil && n.right.color == Red) {
			return 0, fmt.Errorf("rbtree: red node %q has a red child", n.key)
		}
	}
	if n.left != nil && n.left.parent != n {
		return 0, fmt.Errorf("rbtree: broken parent link below %q", n.key)
	}
	if n.right != nil && n.right.parent != n {
		return 0, fmt.Errorf("rbtree: broken parent link below %q", n.key)
	}

	lh, err := checkSubtree(n.left)
	if err != nil {
		return 0, err
	}
	rh, err := checkSubtree(n.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("rbtree: black-height mismatch at %q (%d vs %d)", n.key, lh, rh)
	}
	if n.color == Black {
		lh++
	}
	return lh, nil
}

// Render writes an indented sideways rendering of the tree to w, one node
// per line as "└─ key (color)".
func (t *Tree) Render(w io.Writer) {
	renderNode(w, t.root, "", true)
}

func renderNode(w io.Writer, n *Node, indent string, last bool) {
	if n == nil {
		return
	}
	branch := "├─ "
	if last {
		branch = "└─ "
	}
	fmt.Fprintf(w, "%s%s%s (%s)\n", indent, branch, n.key, n.color)
	if last {
		indent += "   "
	} else {
		indent += "│  "
	}
	renderNode(w, n.left, indent, false)
	renderNode(w, n.right, indent, true)
}
