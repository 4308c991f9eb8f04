package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"
	"marketplace_service/pkg/middlewares"
)

// ConnectCheck check api connect start
// @Summary Check store service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "store service start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("store service start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging for a service
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, err := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch service {
	default:
		logger.Log.SetDebugMode(status)
	}
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// errResponse 依錯誤種類分流 HTTP 狀態碼
func errResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errprocess.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, errprocess.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Log.Errorf("internal err :", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// currentUserID 從 JWT middleware 寫入的 locals 取回 user id
func currentUserID(c *fiber.Ctx) (int64, error) {
	idStr, ok := c.Locals(middlewares.TokenUserID).(string)
	if !ok {
		return 0, errprocess.Set(fmt.Sprintf("c.Locals(%s) is nil", middlewares.TokenUserID))
	}
	return strconv.ParseInt(idStr, 10, 64)
}
