package handler

import (
	"net/http"

	"user-service/internal/api"
	"user-service/internal/cache"
	"user-service/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthHandler 健康檢查
// @Summary     Readiness check
// @Description 檢查資料庫連線，若有設定 Redis 也一併檢查
// @Tags        health
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /healthz [get]
func HealthHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Detail: "database unhealthy"})
		}
		if cch != nil {
			if err := cch.Ping(ctx).Err(); err != nil {
				return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Detail: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
	}
}
