package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token para las claims dadas (login/registro).
type TokenIssuer interface {
	Issue(c Claims) (string, error)
}
