package router

import (
	"errors"
	"fmt"
	"net/http"

	"user-service/internal/api"
	"user-service/internal/cache"
	"user-service/internal/database"
	"user-service/internal/handler"
	"user-service/internal/handler/users"
	"user-service/internal/logging"

	"github.com/labstack/echo/v4"
)

// Deps 是路由需要的外部依賴，Cache 可為 nil
type Deps struct {
	DB     database.DB
	Cache  cache.Cache
	Users  users.UserService
	Logger logging.Logger
}

// Setup 註冊所有路由，並讓框架層錯誤也回傳 {"detail": ...}
func Setup(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = ErrorHandler(d.Logger)

	e.GET("/", handler.RootHandler())
	e.GET("/healthz", handler.HealthHandler(d.DB, d.Cache))

	v1Users := e.Group("/api/v1/users")
	v1Users.POST("/", users.CreateUserHandler(d.Users, d.Logger))
	v1Users.PUT("/:user_id", users.UpdateUserHandler(d.Users, d.Logger))
}

// ErrorHandler 把 handler 回傳的錯誤轉成 api.ErrorResponse
func ErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			detail = fmt.Sprint(he.Message)
		} else {
			log.Error(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, api.ErrorResponse{Detail: detail})
		}
		if err != nil {
			log.Error(c.Request().Context(), "write error response failed", "error", err)
		}
	}
}
