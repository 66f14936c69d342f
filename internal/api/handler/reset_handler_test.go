package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sa-academy/cms-backend/internal/core/domain"
)

func TestResetHandler_ForgotPassword_GenericResponse(t *testing.T) {
	var got string
	stub := &stubResetService{
		requestFn: func(ctx context.Context, email string) error {
			got = email
			return nil
		},
	}
	handler := NewResetHandler(stub, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users/forgot-password", `{"email":"a@x.com"}`)
	if err := handler.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "a@x.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), resetRequestedMessage) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestResetHandler_ForgotPassword_DeliveryFailure(t *testing.T) {
	stub := &stubResetService{
		requestFn: func(ctx context.Context, email string) error {
			return domain.ErrDeliveryFailure
		},
	}
	handler := NewResetHandler(stub, nil)

	c, _ := newJSONContext(http.MethodPost, "/api/users/forgot-password", `{"email":"a@x.com"}`)
	if err := handler.ForgotPassword(c); !errors.Is(err, domain.ErrDeliveryFailure) {
		t.Fatalf("expected ErrDeliveryFailure, got %v", err)
	}
}

func TestResetHandler_ResetPassword(t *testing.T) {
	stub := &stubResetService{
		redeemFn: func(ctx context.Context, token, password, confirm string) (*domain.Account, error) {
			if token != "abc123" || password != "new" || confirm != "new" {
				t.Fatalf("unexpected args: %s %s %s", token, password, confirm)
			}
			return &domain.Account{ID: "acc-1"}, nil
		},
	}
	handler := NewResetHandler(stub, nil)

	c, rec := newJSONContext(http.MethodPatch, "/api/users/reset-password/abc123", `{"password":"new","confirmPassword":"new"}`)
	c.SetParamNames("token")
	c.SetParamValues("abc123")

	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), resetCompletedMessage) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestResetHandler_ResetPassword_PassesServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrResetInvalidOrExpired, domain.ErrPasswordMismatch} {
		stub := &stubResetService{
			redeemFn: func(ctx context.Context, token, password, confirm string) (*domain.Account, error) {
				return nil, want
			},
		}
		handler := NewResetHandler(stub, nil)

		c, _ := newJSONContext(http.MethodPatch, "/api/users/reset-password/x", `{"password":"a","confirmPassword":"b"}`)
		c.SetParamNames("token")
		c.SetParamValues("x")
		if err := handler.ResetPassword(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}
