package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	messagingapp "marketplace_service/internal/messaging/app"
	messagingdomain "marketplace_service/internal/messaging/domain"
	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"
)

// MessagingHandler 處理商家收件匣的 HTTP 請求
type MessagingHandler struct {
	Usecase messagingapp.ConversationUseCase
}

// NewMessagingHandler 建立新的 MessagingHandler
func NewMessagingHandler(usecase messagingapp.ConversationUseCase) *MessagingHandler {
	return &MessagingHandler{Usecase: usecase}
}

// Inbox 收件匣：對話列表，可附帶單一對話內容
// @Summary 收件匣
// @Description 依對話夥伴聚合的訊息列表。帶 user_id 時一併回傳該對話內容並標記已讀。
// @Tags Sellers
// @Produce json
// @Param user_id query int false "對話夥伴 user id"
// @Success 200 {object} messagingdomain.Inbox
// @Router /seller/messages [get]
func (h *MessagingHandler) Inbox(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	inbox, err := h.Usecase.ListConversations(c.Context(), userID)
	if err != nil {
		return errResponse(c, err)
	}

	resp := fiber.Map{
		"conversations": inbox.Conversations,
		"total_unread":  inbox.TotalUnread,
	}

	// 夥伴參數無效或不存在時收件匣照常回傳，對話內容留空
	if partnerStr := c.Query("user_id"); partnerStr != "" {
		messages := []messagingdomain.Message{}
		partnerID, parseErr := strconv.ParseInt(partnerStr, 10, 64)
		if parseErr != nil {
			logger.Log.Warn(fmt.Sprintf("Inbox invalid partner id %q", partnerStr))
		} else {
			msgs, err := h.Usecase.GetConversation(c.Context(), userID, partnerID)
			switch {
			case err == nil:
				messages = msgs
			case errors.Is(err, errprocess.ErrNotFound):
				logger.Log.Warn(fmt.Sprintf("Inbox partner %d not found", partnerID))
			default:
				return errResponse(c, err)
			}
		}
		resp["messages"] = messages
	}

	return c.JSON(resp)
}

// SendMessage 送出訊息
// @Summary 送出訊息
// @Tags Sellers
// @Accept json
// @Produce json
// @Success 200 {object} string "message sent"
// @Failure 400 {object} string "收件者參數錯誤"
// @Failure 404 {object} string "收件者不存在"
// @Router /seller/messages [post]
func (h *MessagingHandler) SendMessage(c *fiber.Ctx) error {
	senderID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type request struct {
		RecipientID string `json:"recipient_id" form:"recipient_id"`
		Subject     string `json:"subject" form:"subject"`
		Body        string `json:"body" form:"body"`
		OrderID     *int64 `json:"order_id" form:"order_id"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	recipientID, err := strconv.ParseInt(req.RecipientID, 10, 64)
	if err != nil {
		return errResponse(c, errprocess.Validation("invalid recipient id %q", req.RecipientID))
	}

	msgID, err := h.Usecase.SendMessage(c.Context(), senderID, recipientID, req.Body, req.Subject, req.OrderID)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "message sent", "id": msgID})
}

// UnreadCount 未讀訊息總數
// @Summary 未讀訊息總數
// @Tags Sellers
// @Produce json
// @Success 200 {object} string "count"
// @Router /seller/messages/unread [get]
func (h *MessagingHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	n, err := h.Usecase.TotalUnread(c.Context(), userID)
	if err != nil {
		return errResponse(c, err)
	}
	return c.JSON(fiber.Map{"unread": n})
}
