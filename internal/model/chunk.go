package model

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Chunk is one embedded text span of a document. All chunks sharing a
// CollectionKey form that document's retrieval collection; the key is derived
// from the document id and never exposed outside the service.
type Chunk struct {
	BaseModel
	CollectionKey string          `gorm:"size:100;not null;index" json:"collection_key"`
	DocumentID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Page          int             `gorm:"not null" json:"page"`
	ChunkIndex    int             `gorm:"default:0" json:"chunk_index"`
	Embedding     pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
}

func (Chunk) TableName() string {
	return "document_chunks"
}

// CollectionKey derives the collection name for a document id. Overwrite and
// query rely on this being a pure function so both always address the same
// physical collection.
func CollectionKey(documentID uuid.UUID) string {
	return "pdf_collection_" + documentID.String()
}
