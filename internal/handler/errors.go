package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
)

// respondError maps the error taxonomy onto HTTP statuses. Every body carries
// a machine-readable category so clients can pick retry, resubmit, or give up
// without parsing messages.
func respondError(c *gin.Context, err error) {
	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":                conflict.Error(),
			"category":             errs.CategoryConflict,
			"existing_document_id": conflict.ExistingID,
			"filename":             conflict.Filename,
			"action_required":      true,
		})
		return
	}

	status := http.StatusInternalServerError
	category := "internal_error"

	var categorized errs.Categorizer
	if errors.As(err, &categorized) {
		category = categorized.Category()
		switch category {
		case errs.CategoryValidation:
			status = http.StatusBadRequest
		case errs.CategoryNotFound:
			status = http.StatusNotFound
		case errs.CategoryIndexUnavailable:
			status = http.StatusConflict
		case errs.CategoryCollaborator:
			status = http.StatusBadGateway
		case errs.CategoryPersistence:
			status = http.StatusInternalServerError
		}
	}

	c.JSON(status, gin.H{"error": err.Error(), "category": category})
}
