package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/service"
)

// Ingestor is the slice of IngestService the document handler needs.
type Ingestor interface {
	Upload(ctx context.Context, req *service.UploadRequest) (*model.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Document, error)
	List(ctx context.Context, limit, offset int) ([]model.Document, int64, error)
}

type DocumentHandler struct {
	svc Ingestor
}

func NewDocumentHandler(svc Ingestor) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, errs.Validation("file is required"))
		return
	}
	defer file.Close()

	req := &service.UploadRequest{
		Filename: header.Filename,
		Content:  file,
		Action:   service.UploadAction(c.PostForm("action")),
	}

	if raw := c.PostForm("existing_document_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, errs.Validation("invalid existing_document_id"))
			return
		}
		req.ExistingDocumentID = id
	}

	doc, err := h.svc.Upload(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          doc.ID,
		"filename":    doc.Filename,
		"uploaded_at": doc.UploadedAt,
		"message":     "PDF uploaded and processed successfully.",
	})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid document id"))
		return
	}

	doc, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	docs, total, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": docs,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}
