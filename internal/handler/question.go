package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/service"
)

// Answerer is the slice of AnswerService the question handler needs.
type Answerer interface {
	Ask(ctx context.Context, documentID uuid.UUID, question string) (*service.Answer, error)
}

type QuestionHandler struct {
	svc Answerer
}

func NewQuestionHandler(svc Answerer) *QuestionHandler {
	return &QuestionHandler{svc: svc}
}

type questionRequest struct {
	Question string `json:"question" binding:"required"`
}

func (h *QuestionHandler) Ask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, errs.Validation("invalid document id"))
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation("question is required"))
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), id, req.Question)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}
