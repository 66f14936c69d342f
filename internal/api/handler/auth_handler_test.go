package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*ports.LoginResult, error) {
			if username != "alice" || email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &ports.LoginResult{
				Account: &domain.Account{ID: "acc-1", Username: username, Email: email, Role: domain.RoleUser},
				Token:   "tok",
			}, nil
		},
	}
	handler := NewAuthHandler(stub, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users", `{"username":"alice","email":"a@example.com","password":"secret","role":"SuperAdmin"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "acc-1" || resp["role"] != "User" || resp["token"] != "tok" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password must not be returned")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrAccountExists
		},
	}
	handler := NewAuthHandler(stub, nil)

	c, _ := newJSONContext(http.MethodPost, "/api/users", `{"username":"bob","email":"b@example.com","password":"x"}`)
	if err := handler.Register(c); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, nil)

	cases := map[string]string{
		"malformed":     `{"username":`,
		"missing email": `{"username":"bob","password":"x"}`,
		"bad email":     `{"username":"bob","email":"nope","password":"x"}`,
		"long password": `{"username":"bob","email":"b@x.com","password":"` + strings.Repeat("x", 80) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/api/users", body)
			if code := httpErrorCode(handler.Register(c)); code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.LoginResult{
				Account: &domain.Account{ID: "acc-1", Username: "alice", Email: email, Role: domain.RoleContentAdmin},
				Token:   "tok",
			}, nil
		},
	}
	handler := NewAuthHandler(stub, nil)

	c, rec := newJSONContext(http.MethodPost, "/api/users/login", `{"email":"a@example.com","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "tok" || resp.Role != "ContentAdmin" || resp.Username != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, nil)

	c, _ := newJSONContext(http.MethodPost, "/api/users/login", `{"email":"a@example.com","password":"wrong"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, nil)

	c, _ := newJSONContext(http.MethodPost, "/api/users/login", `not json`)
	if code := httpErrorCode(handler.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}
