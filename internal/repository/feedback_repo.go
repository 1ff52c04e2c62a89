package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *FeedbackRepository) ListByDocumentID(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]model.Feedback, int64, error) {
	var feedback []model.Feedback
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("document_id = ?", documentID)

	query.Count(&total)
	err := query.Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&feedback).Error
	return feedback, total, err
}
