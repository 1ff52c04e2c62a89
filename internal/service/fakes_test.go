package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/extractor"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

// eventLog records cross-fake operation ordering for write-ordering asserts.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
}

type fakeRegistry struct {
	mu        sync.Mutex
	docs      map[uuid.UUID]*model.Document
	log       *eventLog
	createErr error
	// hideLookups makes the first n FindByFilename calls miss, simulating a
	// concurrent writer landing between lookup and insert.
	hideLookups int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{docs: make(map[uuid.UUID]*model.Document)}
}

func (r *fakeRegistry) seed(filename string) *model.Document {
	doc := &model.Document{Filename: filename, UploadedAt: time.Now().UTC()}
	doc.ID = uuid.New()
	r.docs[doc.ID] = doc
	return doc
}

func (r *fakeRegistry) Create(_ context.Context, doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.docs {
		if existing.Filename == doc.Filename {
			return gorm.ErrDuplicatedKey
		}
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	copied := *doc
	r.docs[doc.ID] = &copied
	r.log.add("registry.create")
	return nil
}

func (r *fakeRegistry) FindByFilename(_ context.Context, filename string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hideLookups > 0 {
		r.hideLookups--
		return nil, nil
	}
	for _, doc := range r.docs {
		if doc.Filename == filename {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRegistry) FindByID(_ context.Context, id uuid.UUID) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeRegistry) List(_ context.Context, limit, offset int) ([]model.Document, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var docs []model.Document
	for _, doc := range r.docs {
		docs = append(docs, *doc)
	}
	return docs, int64(len(docs)), nil
}

func (r *fakeRegistry) RefreshUploadedAt(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[id]; ok {
		doc.UploadedAt = at
	}
	r.log.add("registry.refresh")
	return nil
}

func (r *fakeRegistry) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *fakeRegistry) byFilename(filename string) *model.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range r.docs {
		if doc.Filename == filename {
			return doc
		}
	}
	return nil
}

type fakeIndex struct {
	mu          sync.Mutex
	collections map[string][]model.Chunk
	log         *eventLog
	persistErr  error
	lastQueryK  int
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{collections: make(map[string][]model.Chunk)}
}

func (s *fakeIndex) Persist(_ context.Context, key string, chunks []model.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persistErr != nil {
		return s.persistErr
	}
	stored := make([]model.Chunk, len(chunks))
	copy(stored, chunks)
	for i := range stored {
		stored[i].CollectionKey = key
	}
	s.collections[key] = stored
	s.log.add("index.persist")
	return nil
}

func (s *fakeIndex) Query(_ context.Context, key string, _ pgvector.Vector, k int) ([]model.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQueryK = k
	chunks := s.collections[key]
	if len(chunks) > k {
		chunks = chunks[:k]
	}
	out := make([]model.Chunk, len(chunks))
	copy(out, chunks)
	return out, nil
}

func (s *fakeIndex) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, key)
	s.log.add("index.delete")
	return nil
}

func (s *fakeIndex) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[key]) > 0, nil
}

func (s *fakeIndex) contents(key string) []model.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collections[key]
}

type fakeFiles struct {
	mu      sync.Mutex
	raw     map[string]bool
	text    map[string]bool
	saveErr error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{raw: make(map[string]bool), text: make(map[string]bool)}
}

func (f *fakeFiles) SaveRaw(filename string, _ io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.raw[filename] = true
	return "/fake/pdfs/" + filename, nil
}

func (f *fakeFiles) SaveText(filename, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text[filename] = true
	return "/fake/texts/" + filename, nil
}

func (f *fakeFiles) Remove(filename string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.raw, filename)
	delete(f.text, filename)
}

func (f *fakeFiles) hasRaw(filename string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw[filename]
}

type fakeExtractor struct {
	pages []extractor.Page
	err   error
}

func (e *fakeExtractor) Extract(string) ([]extractor.Page, error) {
	return e.pages, e.err
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return pgvector.Vector{}, err
	}
	return vectors[0], nil
}

func (e *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([]pgvector.Vector, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vectors := make([]pgvector.Vector, len(texts))
	for i, text := range texts {
		vectors[i] = pgvector.NewVector([]float32{float32(len(text)), float32(i)})
	}
	return vectors, nil
}

type fakeGenerator struct {
	answer   string
	err      error
	contexts []string
}

func (g *fakeGenerator) Generate(_ context.Context, _ string, contexts []string) (string, error) {
	g.contexts = contexts
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}
