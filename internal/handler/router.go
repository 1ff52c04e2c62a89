package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vaibhav-bhosale1/AskMyPDF/internal/chunker"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/config"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/repository"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/service"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/storage"
	"github.com/vaibhav-bhosale1/AskMyPDF/internal/vectorstore"
)

// Collaborators are the model-backed and extraction clients constructed once
// at startup and injected here, keeping the services testable with fakes.
type Collaborators struct {
	Extractor service.Extractor
	Embedder  service.Embedder
	Generator service.Generator
}

func SetupRouter(cfg *config.Config, db *gorm.DB, collab Collaborators) *gin.Engine {
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(CORS())
	r.Use(RequestID())
	r.MaxMultipartMemory = cfg.MaxUploadSize

	// Health check endpoints
	r.GET("/health", healthCheck)
	r.GET("/ready", readinessCheck)
	r.GET("/live", livenessCheck)

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":      "AskMyPDF",
			"status":       "running",
			"health_check": "/health",
		})
	})

	// Initialize repositories and stores
	documentRepo := repository.NewDocumentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	indexStore := vectorstore.NewStore(db)
	fileStore := storage.NewFileStore(cfg.StoragePath)

	// Initialize services
	locks := service.NewDocumentLocks()
	ingestSvc := service.NewIngestService(
		documentRepo,
		indexStore,
		fileStore,
		collab.Extractor,
		chunker.New(cfg.ChunkSize, cfg.ChunkOverlap),
		collab.Embedder,
		locks,
	)
	answerSvc := service.NewAnswerService(documentRepo, indexStore, collab.Embedder, collab.Generator, locks, cfg.TopK)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, documentRepo)

	// Initialize handlers
	documentHandler := NewDocumentHandler(ingestSvc)
	questionHandler := NewQuestionHandler(answerSvc)
	feedbackHandler := NewFeedbackHandler(feedbackSvc)

	// API v1
	v1 := r.Group("/v1")
	{
		documents := v1.Group("/documents")
		{
			documents.GET("", documentHandler.List)
			documents.POST("", documentHandler.Upload)
			documents.GET("/:id", documentHandler.Get)
			documents.POST("/:id/questions", questionHandler.Ask)
			documents.GET("/:id/feedback", feedbackHandler.ListByDocument)
		}

		v1.POST("/feedback", feedbackHandler.Submit)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "askmypdf",
	})
}

func readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

func livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
