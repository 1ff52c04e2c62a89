package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// FindByFilename returns nil without error when no document carries the
// filename; callers use that as the duplicate-detection probe.
func (r *DocumentRepository) FindByFilename(ctx context.Context, filename string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) List(ctx context.Context, limit, offset int) ([]model.Document, int64, error) {
	var docs []model.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Document{})
	query.Count(&total)
	err := query.Order("uploaded_at DESC").Limit(limit).Offset(offset).Find(&docs).Error
	return docs, total, err
}

// RefreshUploadedAt stamps the document with a new upload time after a
// successful overwrite.
func (r *DocumentRepository) RefreshUploadedAt(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Update("uploaded_at", at).Error
}

// Delete hard-removes a registry row. Only the ingestion failure-cleanup path
// uses it.
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&model.Document{}).Error
}
