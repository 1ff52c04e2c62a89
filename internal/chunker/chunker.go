// Package chunker splits extracted page text into fixed-size overlapping
// windows, keeping page provenance on every chunk.
package chunker

import (
	"strings"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/extractor"
)

// DefaultChunkSize is the default window size in runes.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default overlap between consecutive windows.
const DefaultChunkOverlap = 200

// Chunk is a bounded span of document text with its source page. ChunkIndex
// is the insertion position across the whole document, used as the stable
// tie-break for retrieval ranking.
type Chunk struct {
	Content    string
	Page       int
	ChunkIndex int
}

type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker. Non-positive size or negative overlap fall back to
// the defaults; overlap is clamped to size/4 when it would not leave the
// window advancing.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split windows each page independently so a chunk never spans a page
// boundary and its page attribution is exact. Pages that are blank after
// trimming produce no chunks; a fully empty document yields nil, which the
// ingest service treats as a failed extraction rather than a success.
func (c *Chunker) Split(pages []extractor.Page) []Chunk {
	var chunks []Chunk
	index := 0
	for _, page := range pages {
		text := strings.TrimSpace(page.Text)
		if text == "" {
			continue
		}
		runes := []rune(text)
		step := c.chunkSize - c.overlap
		for start := 0; start < len(runes); start += step {
			end := start + c.chunkSize
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, Chunk{
				Content:    string(runes[start:end]),
				Page:       page.Number,
				ChunkIndex: index,
			})
			index++
			if end == len(runes) {
				break
			}
		}
	}
	return chunks
}
