package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harborbank/ledger-service/internal/models"
)

// AccountViewFinder is the read-side lookup used by DirectoryHandler.
type AccountViewFinder interface {
	GetAccountView(ctx context.Context, id uuid.UUID) (*models.AccountView, error)
}

// DirectoryHandler serves cross-type account metadata lookups.
type DirectoryHandler struct {
	queries AccountViewFinder
}

func NewDirectoryHandler(queries AccountViewFinder) *DirectoryHandler {
	return &DirectoryHandler{queries: queries}
}

func (h *DirectoryHandler) GetAccount(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetAccountView(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
