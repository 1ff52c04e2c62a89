package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/extractor"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

type UploadAction string

const (
	ActionUnspecified UploadAction = ""
	ActionNew         UploadAction = "new"
	ActionOverwrite   UploadAction = "overwrite"
)

type UploadRequest struct {
	Filename string
	Content  io.Reader
	Action   UploadAction
	// ExistingDocumentID is required for ActionOverwrite and must resolve to
	// the document currently holding the normalized filename.
	ExistingDocumentID uuid.UUID
}

// IngestService is the single authority over the document lifecycle: it
// decides NEW vs CONFLICT vs OVERWRITE, runs the multi-step ingestion write,
// and keeps registry state and index state from diverging. A registry row is
// created only after the collection is durably persisted, and every failure
// in between rolls the filesystem and index back to the pre-request state.
type IngestService struct {
	registry  DocumentRegistry
	index     IndexStore
	files     FileStore
	extractor Extractor
	chunker   Chunker
	embedder  Embedder
	locks     *DocumentLocks
	logger    *slog.Logger
}

func NewIngestService(registry DocumentRegistry, index IndexStore, files FileStore, ex Extractor, ch Chunker, em Embedder, locks *DocumentLocks) *IngestService {
	return &IngestService{
		registry:  registry,
		index:     index,
		files:     files,
		extractor: ex,
		chunker:   ch,
		embedder:  em,
		locks:     locks,
		logger:    slog.Default().With("component", "ingest_service"),
	}
}

// NormalizeFilename strips path components and validates the PDF extension.
func NormalizeFilename(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", errs.Validation("filename not provided")
	}
	if !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		return "", errs.Validation("invalid file type: only PDF files are allowed")
	}
	return base, nil
}

// Upload applies the upload decision table and runs the chosen ingestion path.
func (s *IngestService) Upload(ctx context.Context, req *UploadRequest) (*model.Document, error) {
	filename, err := NormalizeFilename(req.Filename)
	if err != nil {
		return nil, err
	}

	existing, err := s.registry.FindByFilename(ctx, filename)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "registry lookup", Err: err}
	}

	switch {
	case existing == nil:
		return s.ingestNew(ctx, filename, req.Content)

	case req.Action == ActionUnspecified:
		return nil, &errs.ConflictError{ExistingID: existing.ID, Filename: filename}

	case req.Action == ActionNew:
		fresh, err := s.disambiguate(ctx, filename)
		if err != nil {
			return nil, err
		}
		return s.ingestNew(ctx, fresh, req.Content)

	case req.Action == ActionOverwrite:
		if req.ExistingDocumentID == uuid.Nil {
			return nil, errs.Validation("action overwrite requires existing_document_id")
		}
		if req.ExistingDocumentID != existing.ID {
			return nil, errs.Validation("document %s does not hold filename %q", req.ExistingDocumentID, filename)
		}
		return s.overwrite(ctx, existing, req.Content)

	default:
		return nil, errs.Validation("unknown action %q", req.Action)
	}
}

// disambiguate probes the registry for "name (n).pdf" from n=1 until a free
// name is found.
func (s *IngestService) disambiguate(ctx context.Context, filename string) (string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		existing, err := s.registry.FindByFilename(ctx, candidate)
		if err != nil {
			return "", &errs.PersistenceError{Op: "registry lookup", Err: err}
		}
		if existing == nil {
			return candidate, nil
		}
	}
}

func (s *IngestService) ingestNew(ctx context.Context, filename string, content io.Reader) (*model.Document, error) {
	path, err := s.files.SaveRaw(filename, content)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "store raw pdf", Err: err}
	}

	docID := uuid.New()
	key := model.CollectionKey(docID)

	cleanup := func() {
		s.files.Remove(filename)
		if err := s.index.Delete(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Warn("cleanup: failed to delete partial collection", "key", key, "error", err)
		}
	}

	chunks, err := s.buildChunks(ctx, filename, path, docID)
	if err != nil {
		cleanup()
		return nil, err
	}

	if err := s.index.Persist(ctx, key, chunks); err != nil {
		cleanup()
		return nil, err
	}

	// Registry insert comes last: a Document row must always signal a
	// queryable index.
	doc := &model.Document{Filename: filename, UploadedAt: time.Now().UTC()}
	doc.ID = docID
	if err := s.registry.Create(ctx, doc); err != nil {
		cleanup()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent race on the filename; report the winner.
			if winner, lookupErr := s.registry.FindByFilename(ctx, filename); lookupErr == nil && winner != nil {
				return nil, &errs.ConflictError{ExistingID: winner.ID, Filename: filename}
			}
			return nil, &errs.ConflictError{Filename: filename}
		}
		return nil, &errs.PersistenceError{Op: "registry insert", Err: err}
	}

	s.logger.Info("document ingested", "id", docID, "filename", filename, "chunks", len(chunks))
	return doc, nil
}

func (s *IngestService) overwrite(ctx context.Context, doc *model.Document, content io.Reader) (*model.Document, error) {
	unlock := s.locks.Lock(doc.ID)
	defer unlock()

	key := model.CollectionKey(doc.ID)

	path, err := s.files.SaveRaw(doc.Filename, content)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "store raw pdf", Err: err}
	}

	// Replace, never merge: the old collection goes away before re-persisting.
	// Deletion failure of an absent collection is logged, not fatal.
	if err := s.index.Delete(ctx, key); err != nil {
		s.logger.Warn("overwrite: failed to delete prior collection", "key", key, "error", err)
	}

	chunks, err := s.buildChunks(ctx, doc.Filename, path, doc.ID)
	if err != nil {
		// The prior collection is gone; until a successful re-upload the
		// registry row legitimately signals an unavailable index.
		s.logger.Error("overwrite failed after prior collection removal", "id", doc.ID, "error", err)
		return nil, err
	}

	if err := s.index.Persist(ctx, key, chunks); err != nil {
		s.logger.Error("overwrite failed to persist new collection", "id", doc.ID, "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.registry.RefreshUploadedAt(ctx, doc.ID, now); err != nil {
		return nil, &errs.PersistenceError{Op: "registry timestamp refresh", Err: err}
	}
	doc.UploadedAt = now

	s.logger.Info("document overwritten", "id", doc.ID, "filename", doc.Filename, "chunks", len(chunks))
	return doc, nil
}

// buildChunks runs extract → text artifact → chunk → embed and assembles the
// chunk rows for one document.
func (s *IngestService) buildChunks(ctx context.Context, filename, path string, docID uuid.UUID) ([]model.Chunk, error) {
	pages, err := s.extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	if _, err := s.files.SaveText(filename, extractor.FullText(pages)); err != nil {
		return nil, &errs.PersistenceError{Op: "write text artifact", Err: err}
	}

	spans := s.chunker.Split(pages)
	if len(spans) == 0 {
		return nil, errs.Validation("document %q contains no extractable text", filename)
	}

	texts := make([]string, len(spans))
	for i, span := range spans {
		texts[i] = span.Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(spans) {
		return nil, &errs.CollaboratorError{
			Collaborator: "embedding provider",
			Err:          fmt.Errorf("expected %d vectors, got %d", len(spans), len(vectors)),
		}
	}

	chunks := make([]model.Chunk, len(spans))
	for i, span := range spans {
		chunks[i] = model.Chunk{
			DocumentID: docID,
			Content:    span.Content,
			Page:       span.Page,
			ChunkIndex: span.ChunkIndex,
			Embedding:  vectors[i],
		}
	}
	return chunks, nil
}

// Get returns one registry row.
func (s *IngestService) Get(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	doc, err := s.registry.FindByID(ctx, id)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "registry lookup", Err: err}
	}
	if doc == nil {
		return nil, errs.NotFound("document", id)
	}
	return doc, nil
}

// List returns registry rows ordered by upload time.
func (s *IngestService) List(ctx context.Context, limit, offset int) ([]model.Document, int64, error) {
	docs, total, err := s.registry.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, &errs.PersistenceError{Op: "registry list", Err: err}
	}
	return docs, total, nil
}
