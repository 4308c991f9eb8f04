package app

import (
	"context"
	"testing"
	"time"

	accountdomain "marketplace_service/internal/account/domain"
	"marketplace_service/internal/messaging/domain"
	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.SetNewNop()
}

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func msg(id, senderID, recipientID int64, isRead bool, at time.Time) domain.Message {
	return domain.Message{
		ID:          id,
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     "hello",
		Body:        "body",
		IsRead:      isRead,
		CreatedAt:   at,
	}
}

func userQueryID(id int64) interface{} {
	return mock.MatchedBy(func(q *accountdomain.UserQuery) bool {
		return q.ID != nil && *q.ID == id
	})
}

// 測試收件匣依對話夥伴聚合，順序為最新訊息時間
func TestConversationUseCase_ListConversations(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	// repo 回傳新到舊：夥伴 3 最新，夥伴 2 較舊
	mockRepo.On("FindByParticipant", ctx, int64(1)).Return([]domain.Message{
		msg(5, 3, 1, false, baseTime.Add(4*time.Hour)), // 3 -> 1 未讀
		msg(4, 1, 3, false, baseTime.Add(3*time.Hour)), // 1 -> 3 對方未讀，不計入
		msg(3, 2, 1, false, baseTime.Add(2*time.Hour)), // 2 -> 1 未讀
		msg(2, 2, 1, true, baseTime.Add(time.Hour)),    // 2 -> 1 已讀
		msg(1, 1, 2, true, baseTime),
	}, nil)
	mockUsers.On("FindUser", ctx, userQueryID(3)).Return(&accountdomain.User{ID: 3, Username: "cafe_supplies"}, nil)
	mockUsers.On("FindUser", ctx, userQueryID(2)).Return(&accountdomain.User{ID: 2, Username: "bean_buyer"}, nil)

	uc := NewConversationUseCase(mockRepo, mockUsers)
	inbox, err := uc.ListConversations(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, inbox.Conversations, 2)

	first := inbox.Conversations[0]
	assert.Equal(t, int64(3), first.Partner.ID)
	assert.Equal(t, "cafe_supplies", first.Partner.Username)
	assert.Equal(t, int64(5), first.LastMessage.ID)
	assert.Equal(t, 1, first.UnreadCount)

	second := inbox.Conversations[1]
	assert.Equal(t, int64(2), second.Partner.ID)
	assert.Equal(t, int64(3), second.LastMessage.ID)
	assert.Equal(t, 1, second.UnreadCount)

	assert.Equal(t, 2, inbox.TotalUnread)
	mockRepo.AssertExpectations(t)
}

// 測試同一時間戳的最新訊息以 id 大者為準
func TestConversationUseCase_ListConversations_IDTieBreak(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	mockRepo.On("FindByParticipant", ctx, int64(1)).Return([]domain.Message{
		msg(9, 2, 1, true, baseTime),
		msg(8, 1, 2, true, baseTime),
	}, nil)
	mockUsers.On("FindUser", ctx, userQueryID(2)).Return(&accountdomain.User{ID: 2, Username: "bean_buyer"}, nil)

	uc := NewConversationUseCase(mockRepo, mockUsers)
	inbox, err := uc.ListConversations(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, inbox.Conversations, 1)
	assert.Equal(t, int64(9), inbox.Conversations[0].LastMessage.ID)
}

// 測試沒有任何訊息時回傳空收件匣而非錯誤
func TestConversationUseCase_ListConversations_Empty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)

	mockRepo.On("FindByParticipant", ctx, int64(1)).Return([]domain.Message{}, nil)

	uc := NewConversationUseCase(mockRepo, new(MockUserDirectory))
	inbox, err := uc.ListConversations(ctx, 1)

	assert.NoError(t, err)
	assert.NotNil(t, inbox.Conversations)
	assert.Empty(t, inbox.Conversations)
	assert.Zero(t, inbox.TotalUnread)
}

// 測試自己寄出的未讀訊息不計入未讀數
func TestConversationUseCase_ListConversations_SentUnreadNotCounted(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	mockRepo.On("FindByParticipant", ctx, int64(1)).Return([]domain.Message{
		msg(2, 1, 2, false, baseTime.Add(time.Hour)),
		msg(1, 1, 2, false, baseTime),
	}, nil)
	mockUsers.On("FindUser", ctx, userQueryID(2)).Return(&accountdomain.User{ID: 2, Username: "bean_buyer"}, nil)

	uc := NewConversationUseCase(mockRepo, mockUsers)
	inbox, err := uc.ListConversations(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, 0, inbox.Conversations[0].UnreadCount)
	assert.Zero(t, inbox.TotalUnread)
}

// 測試夥伴帳號解析失敗時收件匣仍回傳，名稱留空
func TestConversationUseCase_ListConversations_PartnerResolveDegrades(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	mockRepo.On("FindByParticipant", ctx, int64(1)).Return([]domain.Message{
		msg(1, 2, 1, false, baseTime),
	}, nil)
	mockUsers.On("FindUser", ctx, userQueryID(2)).
		Return(nil, errprocess.NotFound("no user found with given criteria"))

	uc := NewConversationUseCase(mockRepo, mockUsers)
	inbox, err := uc.ListConversations(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, inbox.Conversations, 1)
	assert.Equal(t, int64(2), inbox.Conversations[0].Partner.ID)
	assert.Empty(t, inbox.Conversations[0].Partner.Username)
}

// 測試主旨留空時以寄件者名稱代入
func TestConversationUseCase_SendMessage_DefaultSubject(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	mockUsers.On("FindUser", ctx, userQueryID(2)).Return(&accountdomain.User{ID: 2, Username: "bean_buyer"}, nil)
	mockUsers.On("FindUser", ctx, userQueryID(1)).Return(&accountdomain.User{ID: 1, Username: "roastery"}, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
		return m.Subject == "Message from roastery" && m.SenderID == 1 && m.RecipientID == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Message).ID = 77
	}).Return(nil)

	uc := NewConversationUseCase(mockRepo, mockUsers)
	id, err := uc.SendMessage(ctx, 1, 2, "are the beans in stock?", "", nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), id)
	mockRepo.AssertExpectations(t)
}

// 測試空白內文照常建立
func TestConversationUseCase_SendMessage_EmptyBodyAccepted(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	mockUsers.On("FindUser", ctx, userQueryID(2)).Return(&accountdomain.User{ID: 2, Username: "bean_buyer"}, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.Message) bool {
		return m.Body == "" && m.Subject == "order update"
	})).Return(nil)

	uc := NewConversationUseCase(mockRepo, mockUsers)
	_, err := uc.SendMessage(ctx, 1, 2, "", "order update", nil)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// 測試收件者不存在
func TestConversationUseCase_SendMessage_RecipientNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	mockUsers.On("FindUser", ctx, userQueryID(99)).
		Return(nil, errprocess.NotFound("no user found with given criteria"))

	uc := NewConversationUseCase(mockRepo, mockUsers)
	_, err := uc.SendMessage(ctx, 1, 99, "hello", "hi", nil)

	assert.ErrorIs(t, err, errprocess.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 測試對話讀取：舊到新排序，回傳轉換前的 is_read
func TestConversationUseCase_GetConversation(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	conversation := []domain.Message{
		msg(1, 1, 2, true, baseTime),
		msg(2, 2, 1, false, baseTime.Add(time.Hour)),
	}
	mockUsers.On("FindUser", ctx, userQueryID(2)).Return(&accountdomain.User{ID: 2, Username: "bean_buyer"}, nil)
	mockRepo.On("FetchConversationAndMarkRead", ctx, int64(1), int64(2)).Return(conversation, nil)

	uc := NewConversationUseCase(mockRepo, mockUsers)
	msgs, err := uc.GetConversation(ctx, 1, 2)

	assert.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.True(t, msgs[0].CreatedAt.Before(msgs[1].CreatedAt))
	// 標記前的狀態：這次讀取仍看得到未讀旗標
	assert.False(t, msgs[1].IsRead)
	mockRepo.AssertExpectations(t)
}

// 測試夥伴不存在時回傳 not found，不觸發標記
func TestConversationUseCase_GetConversation_PartnerNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)
	mockUsers := new(MockUserDirectory)

	mockUsers.On("FindUser", ctx, userQueryID(99)).
		Return(nil, errprocess.NotFound("no user found with given criteria"))

	uc := NewConversationUseCase(mockRepo, mockUsers)
	msgs, err := uc.GetConversation(ctx, 1, 99)

	assert.Nil(t, msgs)
	assert.ErrorIs(t, err, errprocess.ErrNotFound)
	mockRepo.AssertNotCalled(t, "FetchConversationAndMarkRead", mock.Anything, mock.Anything, mock.Anything)
}

// 測試未讀總數每次重新計算
func TestConversationUseCase_TotalUnread(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockMessageRepository)

	mockRepo.On("CountUnread", ctx, int64(1)).Return(3, nil).Once()
	mockRepo.On("CountUnread", ctx, int64(1)).Return(0, nil).Once()

	uc := NewConversationUseCase(mockRepo, new(MockUserDirectory))

	n, err := uc.TotalUnread(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = uc.TotalUnread(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}
