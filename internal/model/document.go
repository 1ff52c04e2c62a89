package model

import (
	"time"
)

// Document is the registry row for one uploaded PDF. A row exists only after
// the document's retrieval collection has been durably persisted, so its
// presence is a reliable signal of a queryable index.
type Document struct {
	BaseModel
	Filename   string    `gorm:"size:500;not null;uniqueIndex" json:"filename"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`
}

func (Document) TableName() string {
	return "documents"
}
