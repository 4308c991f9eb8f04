package router

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	accountapp "marketplace_service/internal/account/app"
	"marketplace_service/pkg/middlewares"
)

// SellerGate 商家後台路由需要已建立的商家資料
func SellerGate(usecase accountapp.AccountUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr, ok := c.Locals(middlewares.TokenUserID).(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		userID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		profile, err := usecase.SellerProfile(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
		if profile == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "complete your seller profile"})
		}

		return c.Next()
	}
}
