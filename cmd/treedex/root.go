package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/treedex/treedex/export"
	"github.com/treedex/treedex/huffman"
	"github.com/treedex/treedex/ingest"
	"github.com/treedex/treedex/logger"
	"github.com/treedex/treedex/rbtree"
)

var (
	fFieldA  string
	fFieldB  string
	fOutDir  string
	fCBOR    bool
	fRender  bool
	fVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "treedex",
	Short:         "build Huffman and red-black indexes over tokens derived from tabular data",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var indexCmd = &cobra.Command{
	Use:   "index <csv>",
	Short: "ingest a CSV file and emit code and tree artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&fFieldA, "field-a", "famsize", "first column of the combined token")
	indexCmd.Flags().StringVar(&fFieldB, "field-b", "age", "second column of the combined token")
	indexCmd.Flags().StringVarP(&fOutDir, "out", "o", ".", "directory for the emitted artifacts")
	indexCmd.Flags().BoolVar(&fCBOR, "cbor", false, "also write the tree snapshot as CBOR")
	indexCmd.Flags().BoolVar(&fRender, "render", false, "render the DOT file to PNG with graphviz")
	indexCmd.Flags().BoolVarP(&fVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if fVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log := logger.Logger()

	path := filepath.Clean(args[0])
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("cannot open input")
		return err
	}
	defer f.Close()

	records, header, err := ingest.ReadCSV(f)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("cannot parse input")
		return err
	}
	log.Info().Int("records", len(records)).Strs("columns", header).Msg("loaded csv")

	tokens, err := ingest.DeriveTokens(records, fFieldA, fFieldB)
	if err != nil {
		log.Error().Err(err).Msg("token derivation failed")
		return err
	}
	tokenCol := ingest.NormalizeField(fFieldA) + "_" + ingest.NormalizeField(fFieldB)

	if err := os.MkdirAll(fOutDir, 0o755); err != nil {
		return err
	}

	// Huffman index over the frequency table.
	ft := huffman.Count(tokens)
	root, err := huffman.Build(ft)
	if err != nil {
		log.Error().Err(err).Msg("huffman build failed")
		return err
	}
	codes := huffman.Codes(root)

	codesPath := filepath.Join(fOutDir, tokenCol+"_codes.json")
	if err := writeArtifact(codesPath, func(w io.Writer) error {
		return export.Codes(w, codes)
	}); err != nil {
		return err
	}
	log.Info().Int("distinctTokens", ft.Len()).Str("path", codesPath).Msg("wrote huffman codes")

	// Red-black index, one insertion per token occurrence.
	tree := rbtree.New()
	for _, t := range tokens {
		tree.Insert(t)
	}
	tree.Render(cmd.OutOrStdout())

	structPath := filepath.Join(fOutDir, "rb_tree_structure.json")
	if err := writeArtifact(structPath, func(w io.Writer) error {
		return export.TreeJSON(w, tree)
	}); err != nil {
		return err
	}
	if fCBOR {
		cborPath := filepath.Join(fOutDir, "rb_tree_structure.cbor")
		if err := writeArtifact(cborPath, func(w io.Writer) error {
			return export.TreeCBOR(w, tree)
		}); err != nil {
			return err
		}
	}

	dotPath := filepath.Join(fOutDir, "rb_tree_visual.dot")
	if err := writeArtifact(dotPath, func(w io.Writer) error {
		return export.DOT(w, tree)
	}); err != nil {
		return err
	}
	log.Info().Int("nodes", tree.Len()).Str("path", dotPath).Msg("wrote red-black tree artifacts")

	if fRender {
		pngPath := filepath.Join(fOutDir, "rb_tree_visual.png")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := export.RenderDOT(ctx, dotPath, pngPath); err != nil {
			log.Warn().Err(err).Msg("graphviz render skipped")
		} else {
			log.Info().Str("path", pngPath).Msg("rendered tree image")
		}
	}

	colPath := filepath.Join(fOutDir, tokenCol+".csv")
	if err := writeArtifact(colPath, func(w io.Writer) error {
		return ingest.WriteTokenColumn(w, tokenCol, tokens)
	}); err != nil {
		return err
	}
	log.Info().Str("path", colPath).Msg("wrote token column")
	return nil
}

func writeArtifact(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
