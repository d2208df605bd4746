// treedex ingests a CSV file, derives a combined token per record from two
// columns, and builds two indexes over the token stream: Huffman prefix
// codes and a red-black tree, emitting JSON, DOT and optional CBOR/PNG
// artifacts.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
