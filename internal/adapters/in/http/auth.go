package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"shipping/internal/core/domain/model/identity"
)

var ErrInvalidToken = errors.New("invalid bearer token")

type callerKey struct{}

// Claims are the bearer token claims issued by the identity service.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 bearer tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenVerifier(secret string) (*TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify parses the token and turns its claims into a Caller.
func (v *TokenVerifier) Verify(raw string) (identity.Caller, error) {
	var claims Claims
	if _, err := v.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return identity.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		return identity.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	caller, err := identity.NewCaller(claims.Subject, claims.Email, role)
	if err != nil {
		return identity.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return caller, nil
}

// Sign issues a token for caller. Tokens are normally issued by the identity service;
// this is used by tooling and tests.
func (v *TokenVerifier) Sign(caller identity.Caller, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = caller.AccountID()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:            caller.Email(),
		Role:             caller.Role().String(),
		RegisteredClaims: claims,
	})
	return token.SignedString(v.secret)
}

// Authenticate resolves the bearer token, if any, into a Caller stored in the request
// context. Requests without a token pass through anonymously; whether an operation needs
// one is enforced by the OpenAPI validator. A token that is present but invalid is
// rejected with 401.
func Authenticate(verifier *TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(ctx)
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return writeError(ctx, http.StatusUnauthorized, "Authorization header must be a bearer token")
			}

			caller, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, err.Error())
			}

			req := ctx.Request()
			ctx.SetRequest(req.WithContext(WithCaller(req.Context(), caller)))
			return next(ctx)
		}
	}
}

func WithCaller(ctx context.Context, caller identity.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the authenticated caller, or a zero Caller for anonymous
// requests. Use cases treat the zero Caller as anonymous.
func CallerFromContext(ctx context.Context) identity.Caller {
	caller, _ := ctx.Value(callerKey{}).(identity.Caller)
	return caller
}
