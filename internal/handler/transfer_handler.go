package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/ledger-service/internal/ledger"
	"github.com/harborbank/ledger-service/internal/middleware"
	"github.com/harborbank/ledger-service/internal/models"
)

// Transferrer is the orchestrator surface used by TransferHandler.
type Transferrer interface {
	Transfer(t ledger.Transfer) (decimal.Decimal, error)
}

type TransferHandler struct {
	service Transferrer
}

func NewTransferHandler(service Transferrer) *TransferHandler {
	return &TransferHandler{service: service}
}

type TransferRequest struct {
	SourceID   uuid.UUID          `json:"sourceId" validate:"required"`
	SourceType models.AccountType `json:"sourceType" validate:"required,oneof=CREDIT SAVING"`
	TargetID   uuid.UUID          `json:"targetId" validate:"required"`
	TargetType models.AccountType `json:"targetType" validate:"required,oneof=CREDIT SAVING"`
	Amount     decimal.Decimal    `json:"amount" validate:"required"`
}

// Transfer responds with the source account's resulting balance.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	balance, err := h.service.Transfer(ledger.Transfer{
		SourceID:   req.SourceID,
		SourceType: req.SourceType,
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
		Amount:     req.Amount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}
