package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	daleel "github.com/HOUSSAM16ai/my-ai-project-sub004"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/server/dto"
)

// IngestHandler handles document ingestion requests
type IngestHandler struct {
	engine daleel.Indexer
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(engine daleel.Indexer) *IngestHandler {
	return &IngestHandler{engine: engine}
}

// AddDocuments handles POST /ingest/documents
func (h *IngestHandler) AddDocuments(c *gin.Context) {
	var req dto.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err := h.engine.IndexDocuments(c.Request.Context(), req.Documents); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "ingest_failed",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, dto.IngestResponse{Indexed: len(req.Documents)})
}

// DeleteDocument handles DELETE /ingest/documents/:id
func (h *IngestHandler) DeleteDocument(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "id is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if err := h.engine.DeleteDocument(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "delete_failed",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
