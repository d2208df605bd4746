package huffman

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// EncodeStream writes the code of every token to w at bit granularity. The
// final byte is zero-padded by the bit writer's Close.
func EncodeStream(w io.Writer, tokens []string, codes map[string]string) error {
	bw := bitio.NewWriter(w)
	for _, t := range tokens {
		code, ok := codes[t]
		if !ok {
			return fmt.Errorf("huffman: token %q has no code", t)
		}
		for i := 0; i < len(code); i++ {
			if err := bw.WriteBool(code[i] == '1'); err != nil {
				return err
			}
		}
	}
	return bw.Close()
}

// DecodeStream reads n tokens back from r by walking the tree bit by bit.
// A single-leaf tree consumes one bit per token, matching the "0" code
// EncodeStream emits for it.
func DecodeStream(r io.Reader, root *Node, n int) ([]string, error) {
	if root == nil {
		return nil, ErrEmptyInput
	}
	br := bitio.NewReader(r)
	out := make([]string, 0, n)
	for len(out) < n {
		node := root
		if node.Leaf() {
			if _, err := br.ReadBool(); err != nil {
				return nil, err
			}
			out = append(out, node.Token)
			continue
		}
		for !node.Leaf() {
			bit, err := br.ReadBool()
			if err != nil {
				return nil, err
			}
			if bit {
				node = node.Right
			} else {
				node = node.Left
			}
		}
		out = append(out, node.Token)
	}
	return out, nil
}
