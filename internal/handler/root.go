package handler

import (
	"net/http"

	"user-service/internal/api"

	"github.com/labstack/echo/v4"
)

// RootHandler 服務狀態訊息
// @Summary     Service status
// @Description 回傳服務運行中的訊息
// @Tags        health
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Router      / [get]
func RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "User service is running"})
	}
}
