package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/ledger-service/internal/ledger"
)

type mockTransferrer struct {
	transferFn func(t ledger.Transfer) (decimal.Decimal, error)
}

func (m *mockTransferrer) Transfer(t ledger.Transfer) (decimal.Decimal, error) {
	return m.transferFn(t)
}

func setupTransferRouter(service Transferrer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/transfers", NewTransferHandler(service).Transfer)
	return router
}

func TestTransfer(t *testing.T) {
	sourceID := uuid.New()
	targetID := uuid.New()
	validBody := gin.H{
		"sourceId":   sourceID,
		"sourceType": "CREDIT",
		"targetId":   targetID,
		"targetType": "CREDIT",
		"amount":     100,
	}

	tests := []struct {
		name       string
		body       any
		transferFn func(t ledger.Transfer) (decimal.Decimal, error)
		wantStatus int
	}{
		{
			name: "accepted",
			body: validBody,
			transferFn: func(tr ledger.Transfer) (decimal.Decimal, error) {
				return decimal.NewFromInt(895), nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown account type rejected by validation",
			body: gin.H{
				"sourceId":   sourceID,
				"sourceType": "CHECKING",
				"targetId":   targetID,
				"targetType": "CREDIT",
				"amount":     100,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing fields",
			body:       gin.H{"sourceId": sourceID},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "owner mismatch",
			body: validBody,
			transferFn: func(tr ledger.Transfer) (decimal.Decimal, error) {
				return decimal.Zero, fmt.Errorf("%w: cannot transfer from/to saving account for different owners", ledger.ErrInvalidTransaction)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "source missing",
			body: validBody,
			transferFn: func(tr ledger.Transfer) (decimal.Decimal, error) {
				return decimal.Zero, ledger.ErrAccountNotFound
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTransferRouter(&mockTransferrer{transferFn: tt.transferFn})
			w := performJSON(router, http.MethodPost, "/v1/transfers", tt.body)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body)
			}
		})
	}
}

func TestTransferPassesRequestThrough(t *testing.T) {
	sourceID := uuid.New()
	targetID := uuid.New()

	var got ledger.Transfer
	router := setupTransferRouter(&mockTransferrer{
		transferFn: func(tr ledger.Transfer) (decimal.Decimal, error) {
			got = tr
			return decimal.NewFromInt(400), nil
		},
	})
	w := performJSON(router, http.MethodPost, "/v1/transfers", gin.H{
		"sourceId":   sourceID,
		"sourceType": "SAVING",
		"targetId":   targetID,
		"targetType": "CREDIT",
		"amount":     "99.5",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body)
	}
	if got.SourceID != sourceID || got.TargetID != targetID {
		t.Errorf("forwarded transfer = %+v", got)
	}
	if got.Amount.String() != "99.5" {
		t.Errorf("amount = %s, want 99.5", got.Amount)
	}

	var balance decimal.Decimal
	if err := json.Unmarshal(w.Body.Bytes(), &balance); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if balance.String() != "400" {
		t.Errorf("balance = %s, want 400", balance)
	}
}
