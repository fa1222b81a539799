package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/types"
)

// Validation errors
var (
	ErrQueryTooLong   = errors.New("query exceeds maximum length (2048)")
	ErrEmptyDocuments = errors.New("documents cannot be empty")
	ErrTooManyDocs    = errors.New("documents count exceeds maximum (500)")
)

// MaxDocumentsCount bounds one ingest batch.
const MaxDocumentsCount = 500

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// IngestRequest represents a batch of documents to index.
type IngestRequest struct {
	Documents []types.Document `json:"documents" binding:"required"`
}

// Validate performs validation on IngestRequest.
func (r *IngestRequest) Validate() error {
	if len(r.Documents) == 0 {
		return ErrEmptyDocuments
	}
	if len(r.Documents) > MaxDocumentsCount {
		return ErrTooManyDocs
	}
	for i, doc := range r.Documents {
		if strings.TrimSpace(doc.ID) == "" {
			return fmt.Errorf("document %d: %w", i, types.ErrEmptyID)
		}
	}
	return nil
}

// IngestResponse reports how many documents were indexed.
type IngestResponse struct {
	Indexed int `json:"indexed"`
}
