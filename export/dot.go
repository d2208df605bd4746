package export

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/treedex/treedex/rbtree"
)

// DOT writes a graphviz description of the tree: one node statement per tree
// node with its color, one edge statement per parent→child link, emitted in
// pre-order. Node IDs are generated positionally so duplicate keys stay
// distinct graph nodes.
func DOT(w io.Writer, t *rbtree.Tree) error {
	if _, err := fmt.Fprint(w, "digraph RBTree {\nnode [shape=circle, style=filled, fontname=\"Arial\"];\n"); err != nil {
		return err
	}
	if err := writeDOTNode(w, t.Root(), new(int)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// writeDOTNode emits the subtree rooted at n. *id is the next unassigned
// node ID; after the left subtree is written, *id is exactly the right
// child's ID, so edges can name their target before descending.
func writeDOTNode(w io.Writer, n *rbtree.Node, id *int) error {
	if n == nil {
		return nil
	}
	self := *id
	*id++
	if _, err := fmt.Fprintf(w, "n%d [label=%q, fillcolor=%q, fontcolor=\"white\"];\n", self, n.Key(), n.Color().String()); err != nil {
		return err
	}
	if n.Left() != nil {
		if _, err := fmt.Fprintf(w, "n%d -> n%d;\n", self, *id); err != nil {
			return err
		}
		if err := writeDOTNode(w, n.Left(), id); err != nil {
			return err
		}
	}
	if n.Right() != nil {
		if _, err := fmt.Fprintf(w, "n%d -> n%d;\n", self, *id); err != nil {
			return err
		}
		if err := writeDOTNode(w, n.Right(), id); err != nil {
			return err
		}
	}
	return nil
}

// RenderDOT invokes graphviz on an already-written DOT file to produce a
// PNG. Callers treat any error as a warning: the DOT file is a complete
// artifact on its own and rendering needs the external dot binary.
func RenderDOT(ctx context.Context, dotPath, pngPath string) error {
	cmd := exec.CommandContext(ctx, "dot", "-Tpng", dotPath, "-o", pngPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("export: dot render failed: %w (output: %q)", err, out)
	}
	return nil
}
