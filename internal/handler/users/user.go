package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"user-service/internal/api"
	"user-service/internal/logging"
	"user-service/internal/model"
	"user-service/internal/service"

	"github.com/labstack/echo/v4"
)

// UserService 是 handler 需要的業務操作，由 *service.UserService 實作
type UserService interface {
	CreateUser(ctx context.Context, email, firstName, lastName, password string) (*model.User, error)
	UpdateUser(ctx context.Context, id int, email, firstName, lastName string) (*model.User, error)
}

// @Summary     Create a new user
// @Description 建立新使用者 (Email 網域會轉為小寫)，密碼以 bcrypt 雜湊後儲存
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     200  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse "Email already registered"
// @Failure     422  {object} api.ErrorResponse "欄位驗證失敗"
// @Failure     500  {object} api.ErrorResponse
// @Router      /api/v1/users/ [post]
func CreateUserHandler(svc UserService, log logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Detail: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Detail: api.ValidationDetail(err)})
		}

		user, err := svc.CreateUser(c.Request().Context(), req.Email, req.FirstName, req.LastName, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrDuplicateEmail):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Detail: "Email already registered"})
			case errors.Is(err, service.ErrPasswordTooLong):
				return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Detail: "password: must be at most 72 bytes"})
			}
			return writeServiceError(c, log, err)
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 根據使用者 ID 更新 email、first_name、last_name
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user_id path     int                   true "使用者 ID"
// @Param       body    body     api.UpdateUserRequest true "使用者資料"
// @Success     200     {object} api.UserResponse
// @Failure     400     {object} api.ErrorResponse "Email 已被其他使用者註冊"
// @Failure     404     {object} api.ErrorResponse "使用者不存在"
// @Failure     422     {object} api.ErrorResponse "欄位驗證失敗"
// @Failure     500     {object} api.ErrorResponse
// @Router      /api/v1/users/{user_id} [put]
func UpdateUserHandler(svc UserService, log logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Detail: "invalid user id"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Detail: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Detail: api.ValidationDetail(err)})
		}

		user, err := svc.UpdateUser(c.Request().Context(), id, req.Email, req.FirstName, req.LastName)
		if err != nil {
			var (
				notFound *service.NotFoundError
				conflict *service.EmailConflictError
			)
			switch {
			case errors.As(err, &notFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{
					Detail: fmt.Sprintf("User with id %d not found", notFound.ID),
				})
			case errors.As(err, &conflict):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{
					Detail: fmt.Sprintf("Email %s is already registered.", conflict.Email),
				})
			}
			return writeServiceError(c, log, err)
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// writeServiceError 記錄未預期的錯誤後回 500，不把原因回給客戶端
func writeServiceError(c echo.Context, log logging.Logger, err error) error {
	log.Error(c.Request().Context(), "user request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"user_id", c.Param("user_id"),
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Detail: "internal server error"})
}

func toResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
