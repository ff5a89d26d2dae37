package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/ledger-service/internal/ledger"
	"github.com/harborbank/ledger-service/internal/middleware"
	"github.com/harborbank/ledger-service/internal/models"
)

// AccountService is the operation surface shared by the credit and savings
// account services.
type AccountService interface {
	CreateAccount(draft models.Account) (*models.Account, error)
	GetBalance(id uuid.UUID) (decimal.Decimal, error)
	Deposit(amount decimal.Decimal, id uuid.UUID) (decimal.Decimal, error)
	Withdraw(amount decimal.Decimal, id uuid.UUID) (decimal.Decimal, error)
	GetStatement(id uuid.UUID) ([]models.Statement, error)
}

// AccountHandler serves one account kind; the same handler is mounted under
// /v1/credit-accounts and /v1/save-accounts with the matching service.
type AccountHandler struct {
	service     AccountService
	accountType models.AccountType
}

func NewAccountHandler(service AccountService, accountType models.AccountType) *AccountHandler {
	return &AccountHandler{service: service, accountType: accountType}
}

type CreateAccountRequest struct {
	Name string `json:"name" validate:"required"`
	CPF  string `json:"cpf" validate:"required"`
}

type TransactionRequest struct {
	Value decimal.Decimal `json:"value" validate:"required"`
}

type AccountResponse struct {
	ID          uuid.UUID          `json:"id"`
	AccountType models.AccountType `json:"accountType"`
	Owner       models.Owner       `json:"owner"`
}

type StatementResponse struct {
	Date        time.Time              `json:"date"`
	Value       decimal.Decimal        `json:"value"`
	Transaction models.TransactionKind `json:"transaction"`
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.service.CreateAccount(models.Account{
		Type:  h.accountType,
		Owner: models.Owner{Name: req.Name, CPF: req.CPF},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{
		ID:          account.ID,
		AccountType: account.Type,
		Owner:       account.Owner,
	})
}

func (h *AccountHandler) GetBalance(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	balance, err := h.service.Deposit(req.Value, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	balance, err := h.service.Withdraw(req.Value, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

func (h *AccountHandler) GetStatement(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	statements, err := h.service.GetStatement(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]StatementResponse, len(statements))
	for i, st := range statements {
		responses[i] = StatementResponse{Date: st.Date, Value: st.Amount, Transaction: st.Kind}
	}
	c.JSON(http.StatusOK, responses)
}

// accountID parses the :accountId path parameter, responding 400 on garbage.
func accountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid account id")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps the ledger's semantic errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInvalidAccount):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrInvalidTransaction):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}
