package main

import (
	"flag"
	"fmt"

	"codeberg.org/papermind/server/internal/chunker"
	"codeberg.org/papermind/server/internal/extractor"
)

// extracts and chunks a local PDF, printing what an ingest would store;
// useful for tuning chunk sizes against real documents
func InspectFile(args []string) error {
	flags := flag.NewFlagSet("inspect", flag.ExitOnError)
	chunkSize := flags.Int("chunk-size", chunker.DefaultOptions().ChunkSize, "maximum chunk length in characters")
	chunkOverlap := flags.Int("chunk-overlap", chunker.DefaultOptions().ChunkOverlap, "characters carried between adjacent chunks")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() < 1 {
		return fmt.Errorf("usage: ingester inspect [options] <pdf-path>")
	}

	path := flags.Arg(0)

	pages, err := extractor.ExtractPDFText(path)
	if err != nil {
		return err
	}

	opts := chunker.DefaultOptions()
	opts.ChunkSize = *chunkSize
	opts.ChunkOverlap = *chunkOverlap

	chunks := chunker.SplitPages(pages, opts)

	fmt.Printf("file:    %s\n", path)
	fmt.Printf("pages:   %d\n", len(pages))
	fmt.Printf("chunks:  %d\n", len(chunks))

	for _, chunk := range chunks {
		excerpt := chunk.Text
		if len(excerpt) > 80 {
			excerpt = excerpt[:80] + "..."
		}

		fmt.Printf("  [%3d] page %2d, %4d chars: %s\n", chunk.ChunkIndex, chunk.PageNumber, len(chunk.Text), excerpt)
	}

	return nil
}
