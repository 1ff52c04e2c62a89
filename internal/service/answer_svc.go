package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 4

const snippetRunes = 300

type Source struct {
	Page    int    `json:"page"`
	Snippet string `json:"snippet"`
}

type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// AnswerService runs retrieval-augmented question answering against one
// document's collection. It never mutates state.
type AnswerService struct {
	registry  DocumentRegistry
	index     IndexStore
	embedder  Embedder
	generator Generator
	locks     *DocumentLocks
	topK      int
	logger    *slog.Logger
}

func NewAnswerService(registry DocumentRegistry, index IndexStore, embedder Embedder, generator Generator, locks *DocumentLocks, topK int) *AnswerService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerService{
		registry:  registry,
		index:     index,
		embedder:  embedder,
		generator: generator,
		locks:     locks,
		topK:      topK,
		logger:    slog.Default().With("component", "answer_service"),
	}
}

// Ask answers the question from the document's retrieval collection. Unknown
// document ids report not-found; a registry row whose collection is missing
// or empty reports index-unavailable so callers can suggest a re-upload.
func (s *AnswerService) Ask(ctx context.Context, documentID uuid.UUID, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errs.Validation("question not provided")
	}

	doc, err := s.registry.FindByID(ctx, documentID)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "registry lookup", Err: err}
	}
	if doc == nil {
		return nil, errs.NotFound("document", documentID)
	}

	unlock := s.locks.Lock(doc.ID)
	defer unlock()

	key := model.CollectionKey(doc.ID)
	ok, err := s.index.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &errs.IndexUnavailableError{DocumentID: doc.ID}
	}

	questionVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}

	chunks, err := s.index.Query(ctx, key, questionVec, s.topK)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, &errs.IndexUnavailableError{DocumentID: doc.ID}
	}

	contexts := make([]string, len(chunks))
	for i, c := range chunks {
		contexts[i] = c.Content
	}

	answer, err := s.generator.Generate(ctx, question, contexts)
	if err != nil {
		return nil, err
	}

	sources := make([]Source, len(chunks))
	for i, c := range chunks {
		sources[i] = Source{Page: c.Page, Snippet: snippet(c.Content)}
	}

	s.logger.Info("question answered", "document_id", doc.ID, "chunks", len(chunks))
	return &Answer{Answer: answer, Sources: sources}, nil
}

// snippet bounds the chunk text returned to callers; everything but page and
// snippet is stripped from retrieval metadata.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetRunes {
		return content
	}
	return string(runes[:snippetRunes]) + "…"
}
