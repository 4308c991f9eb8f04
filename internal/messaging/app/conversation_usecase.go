package app

import (
	"context"
	"fmt"

	accountdomain "marketplace_service/internal/account/domain"
	"marketplace_service/internal/messaging/domain"
	"marketplace_service/internal/messaging/repository"
	"marketplace_service/pkg/logger"
)

// UserDirectory 訊息模組對帳號模組的最小依賴
type UserDirectory interface {
	FindUser(ctx context.Context, userQuery *accountdomain.UserQuery) (*accountdomain.User, error)
}

// ConversationUseCase 這裡封裝了對外提供的應用服務
type ConversationUseCase interface {
	ListConversations(ctx context.Context, userID int64) (*domain.Inbox, error)
	SendMessage(ctx context.Context, senderID, recipientID int64, body, subject string, orderID *int64) (int64, error)
	GetConversation(ctx context.Context, userID, partnerID int64) ([]domain.Message, error)
	TotalUnread(ctx context.Context, userID int64) (int, error)
}

type conversationUseCase struct {
	messageRepo repository.MessageRepository
	users       UserDirectory
}

// NewConversationUseCase 建立一個新的 ConversationUseCase
func NewConversationUseCase(messageRepo repository.MessageRepository, users UserDirectory) ConversationUseCase {
	return &conversationUseCase{
		messageRepo: messageRepo,
		users:       users,
	}
}

// ListConversations 把扁平的訊息列表依對話夥伴聚合成收件匣。
// 訊息由新到舊，單趟掃描：每個夥伴第一次出現的訊息即為最新訊息，
// 收件匣順序等於最新訊息的時間序。聚合結果只存在於請求期間。
func (c *conversationUseCase) ListConversations(ctx context.Context, userID int64) (*domain.Inbox, error) {
	msgs, err := c.messageRepo.FindByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	inbox := &domain.Inbox{Conversations: []domain.ConversationSummary{}}
	seen := map[int64]int{} // partnerID -> index into Conversations

	for i := range msgs {
		m := &msgs[i]
		partnerID := m.PartnerOf(userID)

		idx, ok := seen[partnerID]
		if !ok {
			idx = len(inbox.Conversations)
			seen[partnerID] = idx
			inbox.Conversations = append(inbox.Conversations, domain.ConversationSummary{
				Partner:     domain.Partner{ID: partnerID},
				LastMessage: *m,
			})
		}
		if m.UnreadFor(userID) {
			inbox.Conversations[idx].UnreadCount++
			inbox.TotalUnread++
		}
	}

	for i := range inbox.Conversations {
		conv := &inbox.Conversations[i]
		user, err := c.users.FindUser(ctx, &accountdomain.UserQuery{ID: &conv.Partner.ID})
		if err != nil {
			// 夥伴帳號查不到時收件匣仍要能顯示
			logger.Log.Warn(fmt.Sprintf("ListConversations resolve partner %d err : %v", conv.Partner.ID, err))
			continue
		}
		conv.Partner.Username = user.Username
	}

	return inbox, nil
}

// SendMessage 建立一則新訊息，subject 留空時以寄件者名稱代入。
// 空白內文照常接受。
func (c *conversationUseCase) SendMessage(ctx context.Context, senderID, recipientID int64, body, subject string, orderID *int64) (int64, error) {
	if _, err := c.users.FindUser(ctx, &accountdomain.UserQuery{ID: &recipientID}); err != nil {
		return 0, err
	}

	if subject == "" {
		sender, err := c.users.FindUser(ctx, &accountdomain.UserQuery{ID: &senderID})
		if err != nil {
			return 0, err
		}
		subject = "Message from " + sender.Username
	}

	msg := &domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
		OrderID:     orderID,
	}
	if err := c.messageRepo.Create(ctx, msg); err != nil {
		return 0, err
	}

	logger.Log.Info(fmt.Sprintf("usecase SendMessage : %d -> %d msg=%d", senderID, recipientID, msg.ID))
	return msg.ID, nil
}

// GetConversation 讀取與夥伴的完整對話 (舊到新) 並標記夥伴寄來的未讀為已讀。
// 回傳訊息的 is_read 為標記前的值。夥伴不存在時回傳 not found，
// 由 handler 決定降級方式。
func (c *conversationUseCase) GetConversation(ctx context.Context, userID, partnerID int64) ([]domain.Message, error) {
	if _, err := c.users.FindUser(ctx, &accountdomain.UserQuery{ID: &partnerID}); err != nil {
		return nil, err
	}
	return c.messageRepo.FetchConversationAndMarkRead(ctx, userID, partnerID)
}

// TotalUnread 每次重新計算，不快取
func (c *conversationUseCase) TotalUnread(ctx context.Context, userID int64) (int, error) {
	return c.messageRepo.CountUnread(ctx, userID)
}
