package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-system/internal/core/domain"
)

// ContextKeyUser is where the Auth middleware stores the signed-in user.
const ContextKeyUser = "user"

// ctxUser extracts the user injected by the Auth middleware. Its absence
// means the route was registered without the middleware.
func ctxUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(ContextKeyUser).(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return u, nil
}
