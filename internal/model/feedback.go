package model

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackType string

const (
	FeedbackHelpful    FeedbackType = "helpful"
	FeedbackNotHelpful FeedbackType = "not_helpful"
)

func (t FeedbackType) IsValid() bool {
	return t == FeedbackHelpful || t == FeedbackNotHelpful
}

// Feedback records a user's verdict on one generated answer. Rows are
// immutable after creation.
type Feedback struct {
	BaseModel
	DocumentID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"document_id"`
	Question     string       `gorm:"type:text;not null" json:"question"`
	Answer       string       `gorm:"type:text;not null" json:"answer"`
	FeedbackType FeedbackType `gorm:"size:50;not null" json:"feedback_type"`
	SubmittedAt  time.Time    `gorm:"not null" json:"submitted_at"`

	Document *Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
}

func (Feedback) TableName() string {
	return "feedback"
}
