package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*ports.LoginResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*ports.LoginResult, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubAccountService struct {
	listFn       func(ctx context.Context) ([]*domain.Account, error)
	changeRoleFn func(ctx context.Context, targetID, role string) (*domain.Account, error)
	deleteFn     func(ctx context.Context, targetID string) error
}

func (s *stubAccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *stubAccountService) ChangeRole(ctx context.Context, targetID, role string) (*domain.Account, error) {
	return s.changeRoleFn(ctx, targetID, role)
}

func (s *stubAccountService) Delete(ctx context.Context, targetID string) error {
	return s.deleteFn(ctx, targetID)
}

type stubResetService struct {
	requestFn func(ctx context.Context, email string) error
	redeemFn  func(ctx context.Context, token, password, confirm string) (*domain.Account, error)
}

func (s *stubResetService) RequestReset(ctx context.Context, email string) error {
	return s.requestFn(ctx, email)
}

func (s *stubResetService) Redeem(ctx context.Context, token, password, confirm string) (*domain.Account, error) {
	return s.redeemFn(ctx, token, password, confirm)
}

// newJSONContext builds an echo context for a JSON request with the
// validator installed.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpErrorCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
