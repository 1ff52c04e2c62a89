package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
)

// FeedbackRecorder is the slice of FeedbackService the handler needs.
type FeedbackRecorder interface {
	Submit(ctx context.Context, documentID uuid.UUID, question, answer string, fbType model.FeedbackType) (*model.Feedback, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID, limit, offset int) ([]model.Feedback, int64, error)
}

type FeedbackHandler struct {
	svc FeedbackRecorder
}

func NewFeedbackHandler(svc FeedbackRecorder) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

type feedbackRequest struct {
	DocumentID   string `json:"document_id" binding:"required"`
	Question     string `json:"question" binding:"required"`
	Answer       string `json:"answer" binding:"required"`
	FeedbackType string `json:"feedback_type" binding:"required"`
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation("document_id, question, answer and feedback_type are required"))
		return
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		respondError(c, errs.Validation("invalid document_id"))
		return
	}

	fb, err := h.svc.Submit(c.Request.Context(), docID, req.Question, req.Answer, model.FeedbackType(req.FeedbackType))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      fb.ID,
		"message": "Feedback submitted successfully.",
	})
}

func (h *FeedbackHandler) ListByDocument(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid document id"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	feedback, total, err := h.svc.ListByDocument(c.Request.Context(), docID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": feedback,
		"pagination": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}
