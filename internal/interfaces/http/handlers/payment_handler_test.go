package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	domainerrors "github.com/devbyteai/BetStack-sub001/internal/domain/errors"
)

type paymentServiceStub struct {
	tx  *entities.Transaction
	err error

	gotAmount   string
	gotProvider string
	gotPhone    string
	gotPin      string
}

func (s *paymentServiceStub) Deposit(_ context.Context, _ uuid.UUID, amount, provider, phone string) (*entities.Transaction, error) {
	s.gotAmount, s.gotProvider, s.gotPhone = amount, provider, phone
	return s.tx, s.err
}

func (s *paymentServiceStub) Withdraw(_ context.Context, _ uuid.UUID, amount, provider, phone, pin string) (*entities.Transaction, error) {
	s.gotAmount, s.gotProvider, s.gotPhone, s.gotPin = amount, provider, phone, pin
	return s.tx, s.err
}

func TestPaymentHandler_Deposit(t *testing.T) {
	stub := &paymentServiceStub{
		tx: &entities.Transaction{ID: uuid.New(), Type: entities.TransactionTypeDeposit, Status: entities.TransactionStatusPending},
	}
	h := &PaymentHandler{paymentUsecase: stub}

	r := newTestRouter(t)
	r.POST("/deposit", asUser(uuid.New()), h.Deposit)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/deposit", map[string]string{
		"amount":   "250.00",
		"provider": "mpesa",
		"phone":    "254700000001",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "250.00", stub.gotAmount)
	assert.Equal(t, "mpesa", stub.gotProvider)
	assert.Equal(t, "254700000001", stub.gotPhone)
	assert.Contains(t, w.Body.String(), "Deposit initiated")
}

func TestPaymentHandler_Deposit_MissingFields(t *testing.T) {
	h := &PaymentHandler{paymentUsecase: &paymentServiceStub{}}

	r := newTestRouter(t)
	r.POST("/deposit", asUser(uuid.New()), h.Deposit)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/deposit", map[string]string{"amount": "250.00"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Deposit_Unauthenticated(t *testing.T) {
	h := &PaymentHandler{paymentUsecase: &paymentServiceStub{}}

	r := newTestRouter(t)
	r.POST("/deposit", h.Deposit)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/deposit", map[string]string{
		"amount":   "250.00",
		"provider": "mpesa",
		"phone":    "254700000001",
	}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentHandler_Withdraw(t *testing.T) {
	stub := &paymentServiceStub{
		tx: &entities.Transaction{ID: uuid.New(), Type: entities.TransactionTypeWithdrawal, Status: entities.TransactionStatusPending},
	}
	h := &PaymentHandler{paymentUsecase: stub}

	r := newTestRouter(t)
	r.POST("/withdraw", asUser(uuid.New()), h.Withdraw)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/withdraw", map[string]string{
		"amount":   "150.00",
		"provider": "mpesa",
		"phone":    "254700000001",
		"pin":      "1234",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1234", stub.gotPin)
	assert.Contains(t, w.Body.String(), "Withdrawal initiated")
}

func TestPaymentHandler_Withdraw_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"wrong pin", domainerrors.ErrInvalidCredential, http.StatusUnauthorized, domainerrors.CodeInvalidCredential},
		{"below minimum", domainerrors.ErrBelowMinimumAmount, http.StatusBadRequest, domainerrors.CodeBelowMinimum},
		{"insufficient funds", domainerrors.ErrInsufficientFunds, http.StatusUnprocessableEntity, domainerrors.CodeInsufficientFunds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &PaymentHandler{paymentUsecase: &paymentServiceStub{err: tc.err}}

			r := newTestRouter(t)
			r.POST("/withdraw", asUser(uuid.New()), h.Withdraw)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/withdraw", map[string]string{
				"amount":   "150.00",
				"provider": "mpesa",
				"phone":    "254700000001",
				"pin":      "1234",
			}))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantCode)
		})
	}
}
