package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/chunker"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/extractor"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

// Extractor produces ordered per-page text from a stored PDF.
type Extractor interface {
	Extract(path string) ([]extractor.Page, error)
}

// Embedder maps text to fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
	EmbedBatch(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

// Generator produces a natural-language answer grounded on retrieved context.
type Generator interface {
	Generate(ctx context.Context, question string, contexts []string) (string, error)
}

// IndexStore is the per-document chunk collection store.
type IndexStore interface {
	Persist(ctx context.Context, key string, chunks []model.Chunk) error
	Query(ctx context.Context, key string, embedding pgvector.Vector, k int) ([]model.Chunk, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// DocumentRegistry is the relational source of truth for document identity.
type DocumentRegistry interface {
	Create(ctx context.Context, doc *model.Document) error
	FindByFilename(ctx context.Context, filename string) (*model.Document, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	List(ctx context.Context, limit, offset int) ([]model.Document, int64, error)
	RefreshUploadedAt(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeedbackStore persists answer feedback.
type FeedbackStore interface {
	Create(ctx context.Context, fb *model.Feedback) error
	ListByDocumentID(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]model.Feedback, int64, error)
}

// FileStore keeps raw PDFs and extracted-text artifacts on disk.
type FileStore interface {
	SaveRaw(filename string, r io.Reader) (string, error)
	SaveText(filename, text string) (string, error)
	Remove(filename string)
}

// Chunker splits extracted pages into embeddable chunks.
type Chunker interface {
	Split(pages []extractor.Page) []chunker.Chunk
}
