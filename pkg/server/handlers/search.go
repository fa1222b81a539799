package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	daleel "github.com/HOUSSAM16ai/my-ai-project-sub004"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/server/dto"
)

// SearchHandler handles retrieval requests
type SearchHandler struct {
	engine daleel.Searcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(engine daleel.Searcher) *SearchHandler {
	return &SearchHandler{engine: engine}
}

// Search handles POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchQuery
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

	results, err := h.engine.Search(c.Request.Context(), req.ToRequest())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "search_failed",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, dto.NewSearchResponse(results))
}
