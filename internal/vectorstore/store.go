// Package vectorstore persists and queries per-document chunk collections
// backed by a pgvector column.
package vectorstore

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Persist writes a document's chunks as one batch inside a transaction, so a
// partially written collection never becomes visible.
func (s *Store) Persist(ctx context.Context, key string, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return errs.Validation("refusing to persist empty collection %s", key)
	}
	for i := range chunks {
		chunks[i].CollectionKey = key
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&chunks).Error
	})
	if err != nil {
		return &errs.PersistenceError{Op: "persist collection " + key, Err: err}
	}
	return nil
}

// Query returns the k chunks nearest to the embedding by cosine distance.
// Ties are broken by original insertion order so ranking is stable.
func (s *Store) Query(ctx context.Context, key string, embedding pgvector.Vector, k int) ([]model.Chunk, error) {
	var chunks []model.Chunk
	err := s.db.WithContext(ctx).
		Model(&model.Chunk{}).
		Select("*, embedding <=> ? AS distance", embedding).
		Where("collection_key = ?", key).
		Where("embedding IS NOT NULL").
		Order("distance ASC, chunk_index ASC").
		Limit(k).
		Find(&chunks).Error
	if err != nil {
		return nil, &errs.PersistenceError{Op: "query collection " + key, Err: err}
	}
	return chunks, nil
}

// Delete removes a collection. Deleting a key with no rows is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Unscoped().
		Where("collection_key = ?", key).
		Delete(&model.Chunk{}).Error
	if err != nil {
		return &errs.PersistenceError{Op: "delete collection " + key, Err: err}
	}
	return nil
}

// Exists reports whether the collection has at least one chunk.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Chunk{}).
		Where("collection_key = ?", key).
		Count(&count).Error
	if err != nil {
		return false, &errs.PersistenceError{Op: "check collection " + key, Err: err}
	}
	return count > 0, nil
}
