package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"docgate/internal/presentation"
)

// BearerToken stores the bearer token of the request under
// presentation.KeyToken. A missing or non-bearer header stores an empty
// token; whether that is enough is up to the use case.
func BearerToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			scheme, token, found := strings.Cut(ctx.Request().Header.Get(presentation.AuthKey), " ")
			if !found || !strings.EqualFold(scheme, presentation.BearerScheme) {
				token = ""
			}

			ctx.Set(presentation.KeyToken, strings.TrimSpace(token))

			return next(ctx)
		}
	}
}
