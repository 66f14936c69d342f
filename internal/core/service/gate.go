package service

import (
	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

// Gate decides whether a session token may invoke an operation. It keeps no
// state between calls.
type Gate struct {
	tokens ports.TokenIssuer
}

func NewGate(tokens ports.TokenIssuer) *Gate {
	return &Gate{tokens: tokens}
}

// Authorize validates token and checks its role against allowed. An empty
// allowed set admits any authenticated caller.
func (g *Gate) Authorize(token string, allowed ...domain.Role) (domain.Identity, error) {
	id, err := g.tokens.Validate(token)
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if err := g.Permit(id, allowed...); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

// Permit checks an already verified identity against allowed.
func (g *Gate) Permit(id domain.Identity, allowed ...domain.Role) error {
	if id.AccountID == "" {
		return domain.ErrUnauthenticated
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if id.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}
