package rest

import (
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
)

const (
	identityKey     = "identity"
	sessionTokenKey = "token"
)

// RequireIdentity accepts a bearer token or the token kept in the session
// cookie and puts the verified email into the request context.
func RequireIdentity(auth authService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				token = sessionToken(ctx)
			}

			if token == "" {
				return writeError(ctx, apperror.ErrUnauthorized)
			}

			email, err := auth.ParseToken(token)
			if err != nil {
				return writeError(ctx, err)
			}

			req := ctx.Request()
			ctx.SetRequest(req.WithContext(identity.WithIdentity(req.Context(), email)))
			ctx.Set(identityKey, email)

			return next(ctx)
		}
	}
}

func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func sessionToken(ctx echo.Context) string {
	userSession, err := session.Get(sessionName, ctx)
	if err != nil {
		return ""
	}

	token, _ := userSession.Values[sessionTokenKey].(string)
	return token
}
