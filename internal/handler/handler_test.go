package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/errs"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/model"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/service"
)

type stubIngestor struct {
	doc     *model.Document
	err     error
	lastReq *service.UploadRequest
}

func (s *stubIngestor) Upload(_ context.Context, req *service.UploadRequest) (*model.Document, error) {
	s.lastReq = req
	return s.doc, s.err
}

func (s *stubIngestor) Get(context.Context, uuid.UUID) (*model.Document, error) {
	return s.doc, s.err
}

func (s *stubIngestor) List(context.Context, int, int) ([]model.Document, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	if s.doc == nil {
		return nil, 0, nil
	}
	return []model.Document{*s.doc}, 1, nil
}

type stubAnswerer struct {
	answer *service.Answer
	err    error
}

func (s *stubAnswerer) Ask(context.Context, uuid.UUID, string) (*service.Answer, error) {
	return s.answer, s.err
}

type stubFeedback struct {
	fb  *model.Feedback
	err error
}

func (s *stubFeedback) Submit(context.Context, uuid.UUID, string, string, model.FeedbackType) (*model.Feedback, error) {
	return s.fb, s.err
}

func (s *stubFeedback) ListByDocument(context.Context, uuid.UUID, int, int) ([]model.Feedback, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return nil, 0, nil
}

func testRouter(ingest Ingestor, answer Answerer, feedback FeedbackRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.Use(RequestID())

	documentHandler := NewDocumentHandler(ingest)
	questionHandler := NewQuestionHandler(answer)
	feedbackHandler := NewFeedbackHandler(feedback)

	v1 := r.Group("/v1")
	documents := v1.Group("/documents")
	documents.GET("", documentHandler.List)
	documents.POST("", documentHandler.Upload)
	documents.GET("/:id", documentHandler.Get)
	documents.POST("/:id/questions", questionHandler.Ask)
	documents.GET("/:id/feedback", feedbackHandler.ListByDocument)
	v1.POST("/feedback", feedbackHandler.Submit)

	return r
}

func multipartUpload(t *testing.T, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func newDoc(filename string) *model.Document {
	doc := &model.Document{Filename: filename, UploadedAt: time.Now().UTC()}
	doc.ID = uuid.New()
	return doc
}

func TestUploadEndpoint_Created(t *testing.T) {
	ingest := &stubIngestor{doc: newDoc("report.pdf")}
	r := testRouter(ingest, &stubAnswerer{}, &stubFeedback{})

	body, contentType := multipartUpload(t, "report.pdf", nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "report.pdf", payload["filename"])
	assert.NotEmpty(t, payload["id"])
	assert.NotEmpty(t, payload["uploaded_at"])
}

func TestUploadEndpoint_ActionFieldsForwarded(t *testing.T) {
	ingest := &stubIngestor{doc: newDoc("report.pdf")}
	r := testRouter(ingest, &stubAnswerer{}, &stubFeedback{})

	target := uuid.New()
	body, contentType := multipartUpload(t, "report.pdf", map[string]string{
		"action":               "overwrite",
		"existing_document_id": target.String(),
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, ingest.lastReq)
	assert.Equal(t, service.ActionOverwrite, ingest.lastReq.Action)
	assert.Equal(t, target, ingest.lastReq.ExistingDocumentID)
}

func TestUploadEndpoint_ConflictPayload(t *testing.T) {
	existingID := uuid.New()
	ingest := &stubIngestor{err: &errs.ConflictError{ExistingID: existingID, Filename: "report.pdf"}}
	r := testRouter(ingest, &stubAnswerer{}, &stubFeedback{})

	body, contentType := multipartUpload(t, "report.pdf", nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, errs.CategoryConflict, payload["category"])
	assert.Equal(t, existingID.String(), payload["existing_document_id"])
	assert.Equal(t, "report.pdf", payload["filename"])
	assert.Equal(t, true, payload["action_required"])
}

func TestUploadEndpoint_MissingFile(t *testing.T) {
	r := testRouter(&stubIngestor{}, &stubAnswerer{}, &stubFeedback{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errs.CategoryValidation, decodeBody(t, w)["category"])
}

func TestQuestionEndpoint_OK(t *testing.T) {
	answer := &service.Answer{
		Answer:  "it is on page 7",
		Sources: []service.Source{{Page: 7, Snippet: "the token"}},
	}
	r := testRouter(&stubIngestor{}, &stubAnswerer{answer: answer}, &stubFeedback{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents/"+uuid.NewString()+"/questions",
		bytes.NewBufferString(`{"question":"where is the token?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "it is on page 7", payload["answer"])
	sources := payload["sources"].([]any)
	require.Len(t, sources, 1)
	assert.EqualValues(t, 7, sources[0].(map[string]any)["page"])
}

func TestQuestionEndpoint_ErrorCategories(t *testing.T) {
	docID := uuid.New()
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"not found", errs.NotFound("document", docID), http.StatusNotFound, errs.CategoryNotFound},
		{"index unavailable", &errs.IndexUnavailableError{DocumentID: docID}, http.StatusConflict, errs.CategoryIndexUnavailable},
		{"collaborator", &errs.CollaboratorError{Collaborator: "answer generator", Unreachable: true, Err: errors.New("timeout")}, http.StatusBadGateway, errs.CategoryCollaborator},
		{"persistence", &errs.PersistenceError{Op: "query", Err: errors.New("boom")}, http.StatusInternalServerError, errs.CategoryPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRouter(&stubIngestor{}, &stubAnswerer{err: tt.err}, &stubFeedback{})

			req := httptest.NewRequest(http.MethodPost, "/v1/documents/"+docID.String()+"/questions",
				bytes.NewBufferString(`{"question":"anything?"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.category, decodeBody(t, w)["category"])
		})
	}
}

func TestQuestionEndpoint_BadID(t *testing.T) {
	r := testRouter(&stubIngestor{}, &stubAnswerer{}, &stubFeedback{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents/not-a-uuid/questions",
		bytes.NewBufferString(`{"question":"anything?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackEndpoint_Created(t *testing.T) {
	fb := &model.Feedback{FeedbackType: model.FeedbackHelpful}
	fb.ID = uuid.New()
	r := testRouter(&stubIngestor{}, &stubAnswerer{}, &stubFeedback{fb: fb})

	body := `{"document_id":"` + uuid.NewString() + `","question":"q","answer":"a","feedback_type":"helpful"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, fb.ID.String(), decodeBody(t, w)["id"])
}

func TestFeedbackEndpoint_UnknownDocument(t *testing.T) {
	stub := &stubFeedback{err: errs.NotFound("document", uuid.New())}
	r := testRouter(&stubIngestor{}, &stubAnswerer{}, stub)

	body := `{"document_id":"` + uuid.NewString() + `","question":"q","answer":"a","feedback_type":"helpful"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errs.CategoryNotFound, decodeBody(t, w)["category"])
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(&stubIngestor{}, &stubAnswerer{}, &stubFeedback{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/documents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
