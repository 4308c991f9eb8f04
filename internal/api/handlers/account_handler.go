package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	accountapp "marketplace_service/internal/account/app"
	accountdomain "marketplace_service/internal/account/domain"
	"marketplace_service/pkg/logger"
	"marketplace_service/pkg/middlewares"
)

// AccountHandler 處理帳號與商家資料的 HTTP 請求
type AccountHandler struct {
	Usecase accountapp.AccountUseCase
}

// NewAccountHandler 建立新的 AccountHandler
func NewAccountHandler(usecase accountapp.AccountUseCase) *AccountHandler {
	return &AccountHandler{Usecase: usecase}
}

// Register 註冊新使用者
// @Summary 註冊新使用者
// @Tags Members
// @Accept json
// @Produce json
// @Param request body object true "username / email / password"
// @Success 200 {object} string "register success"
// @Failure 400 {object} string "請求錯誤"
// @Router /member/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	type request struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Register request", zap.String("username", req.Username), zap.String("email", req.Email))

	if err := h.Usecase.Register(c.Context(), req.Username, req.Email, req.Password); err != nil {
		return errResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "register success"})
}

// Login 使用者登入
// @Summary 使用者登入
// @Tags Members
// @Accept json
// @Produce json
// @Param request body object true "username / password"
// @Success 200 {object} string "login success"
// @Failure 401 {object} string "登入失敗"
// @Router /member/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login", zap.String("username", req.Username))

	tokenStr, isSeller, err := h.Usecase.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	c.Cookie(&fiber.Cookie{Name: middlewares.CookieToken, Value: tokenStr, HTTPOnly: true})
	return c.JSON(fiber.Map{"token": tokenStr, "is_seller": isSeller, "message": "login success"})
}

// Logout 使用者登出
// @Summary 使用者登出
// @Tags Members
// @Produce json
// @Param auth query string false "JWT token"
// @Success 200 {object} string "logout success"
// @Router /member/logout [post]
func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	tokenStr := c.Query(middlewares.QueryToken)
	if tokenStr == "" {
		tokenStr = c.Cookies(middlewares.CookieToken)
	}

	if err := h.Usecase.Logout(c.Context(), tokenStr); err != nil {
		return errResponse(c, err)
	}

	c.ClearCookie(middlewares.CookieToken)
	return c.JSON(fiber.Map{"message": "logout success"})
}

// RefreshSession 延長登入 session
// @Summary 延長登入 session
// @Tags Members
// @Produce json
// @Success 200 {object} string "session refreshed"
// @Failure 400 {object} string "token 無效或已過期"
// @Failure 404 {object} string "session 不存在"
// @Router /member/refresh [post]
func (h *AccountHandler) RefreshSession(c *fiber.Ctx) error {
	bearer := c.Get(fiber.HeaderAuthorization)
	if bearer == "" {
		tokenStr := c.Query(middlewares.QueryToken)
		if tokenStr == "" {
			tokenStr = c.Cookies(middlewares.CookieToken)
		}
		bearer = "Bearer " + tokenStr
	}

	if err := h.Usecase.RefreshSession(c.Context(), bearer); err != nil {
		return errResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "session refreshed"})
}

// SellerProfile 取得商家資料
// @Summary 取得商家資料
// @Tags Sellers
// @Produce json
// @Success 200 {object} accountdomain.SellerProfile
// @Failure 404 {object} string "尚未建立商家資料"
// @Router /seller/profile [get]
func (h *AccountHandler) SellerProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.Usecase.SellerProfile(c.Context(), userID)
	if err != nil {
		return errResponse(c, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "seller profile not found"})
	}
	return c.JSON(profile)
}

// SaveSellerProfile 建立或更新商家資料
// @Summary 建立或更新商家資料
// @Tags Sellers
// @Accept json
// @Produce json
// @Success 200 {object} string "profile saved"
// @Failure 400 {object} string "請求錯誤"
// @Router /seller/profile [post]
func (h *AccountHandler) SaveSellerProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var profile accountdomain.SellerProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	profile.UserID = userID

	if err := h.Usecase.SaveSellerProfile(c.Context(), &profile); err != nil {
		return errResponse(c, err)
	}

	logger.Log.Info(fmt.Sprintf("SaveSellerProfile user=%d business=%s", userID, profile.BusinessName))
	return c.JSON(fiber.Map{"message": "profile saved"})
}

// DeliverySettings 更新配送範圍設定
// @Summary 更新配送範圍設定
// @Tags Sellers
// @Accept json
// @Produce json
// @Success 200 {object} string "delivery settings saved"
// @Failure 400 {object} string "請求錯誤"
// @Router /seller/delivery [post]
func (h *AccountHandler) DeliverySettings(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type request struct {
		City           string `json:"city"`
		DeliveryRadius int    `json:"delivery_radius"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.Usecase.UpdateDeliverySettings(c.Context(), userID, req.City, req.DeliveryRadius); err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "delivery settings saved"})
}
