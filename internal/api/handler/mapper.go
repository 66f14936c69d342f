package handler

import (
	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

// --- Service result → HTTP response ---

func toAuthResponse(r *ports.LoginResult) authResponse {
	return authResponse{
		ID:       r.Account.ID,
		Username: r.Account.Username,
		Email:    r.Account.Email,
		Role:     string(r.Account.Role),
		Token:    r.Token,
	}
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func toAccountResponses(accounts []*domain.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	return out
}
