package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

type FeedbackService struct {
	feedback FeedbackStore
	registry DocumentRegistry
	logger   *slog.Logger
}

func NewFeedbackService(feedback FeedbackStore, registry DocumentRegistry) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		registry: registry,
		logger:   slog.Default().With("component", "feedback_service"),
	}
}

// Submit stores one feedback row. The referenced document must exist; nothing
// is written otherwise.
func (s *FeedbackService) Submit(ctx context.Context, documentID uuid.UUID, question, answer string, fbType model.FeedbackType) (*model.Feedback, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, errs.Validation("question and answer are required")
	}
	if !fbType.IsValid() {
		return nil, errs.Validation("feedback_type must be %q or %q", model.FeedbackHelpful, model.FeedbackNotHelpful)
	}

	doc, err := s.registry.FindByID(ctx, documentID)
	if err != nil {
		return nil, &errs.PersistenceError{Op: "registry lookup", Err: err}
	}
	if doc == nil {
		return nil, errs.NotFound("document", documentID)
	}

	fb := &model.Feedback{
		DocumentID:   doc.ID,
		Question:     question,
		Answer:       answer,
		FeedbackType: fbType,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, &errs.PersistenceError{Op: "feedback insert", Err: err}
	}

	s.logger.Info("feedback recorded", "id", fb.ID, "document_id", doc.ID, "type", fbType)
	return fb, nil
}

func (s *FeedbackService) ListByDocument(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]model.Feedback, int64, error) {
	doc, err := s.registry.FindByID(ctx, documentID)
	if err != nil {
		return nil, 0, &errs.PersistenceError{Op: "registry lookup", Err: err}
	}
	if doc == nil {
		return nil, 0, errs.NotFound("document", documentID)
	}
	fbs, total, err := s.feedback.ListByDocumentID(ctx, documentID, limit, offset)
	if err != nil {
		return nil, 0, &errs.PersistenceError{Op: "feedback list", Err: err}
	}
	return fbs, total, nil
}
