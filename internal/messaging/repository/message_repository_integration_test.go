package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"marketplace_service/internal/messaging/domain"
	"marketplace_service/pkg/database"
	"marketplace_service/pkg/logger"
	testtool "marketplace_service/pkg/test_tool"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testPool *pgxpool.Pool
	testRepo MessageRepository
)

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION") == "" {
		fmt.Println("INTEGRATION not set, skip message repository integration tests")
		os.Exit(0)
	}

	logger.SetNewNop()
	ctx := context.Background()

	// **啟動 PostgreSQL**
	postgresContainer, postgresHost, postgresPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image: "postgres:latest",
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	})
	if err != nil {
		fmt.Printf("❌ Failed to start PostgreSQL container: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ PostgreSQL running at %s:%s\n", postgresHost, postgresPort)

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", postgresHost, postgresPort)
	testPool, err = database.NewDatabaseConnection(database.Connection{
		ConnectStr:    connStr,
		RetryCount:    5,
		RetryInterval: 5,
	})
	if err != nil {
		fmt.Printf("❌ Failed to connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}

	_, err = testPool.Exec(ctx, `
		CREATE TABLE messages (
			id           BIGSERIAL PRIMARY KEY,
			sender_id    BIGINT NOT NULL,
			recipient_id BIGINT NOT NULL,
			subject      TEXT NOT NULL DEFAULT '',
			body         TEXT NOT NULL DEFAULT '',
			order_id     BIGINT,
			is_read      BOOLEAN NOT NULL DEFAULT false,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		fmt.Printf("❌ Failed to create schema: %v\n", err)
		os.Exit(1)
	}

	testRepo = NewMessageRepository(testPool)

	code := m.Run()

	_ = postgresContainer.Terminate(ctx)
	os.Exit(code)
}

func seedMessage(t *testing.T, senderID, recipientID int64, body string, isRead bool, at time.Time) int64 {
	t.Helper()
	var id int64
	err := testPool.QueryRow(context.Background(),
		`INSERT INTO messages (sender_id, recipient_id, subject, body, is_read, created_at)
		 VALUES ($1, $2, 'hello', $3, $4, $5) RETURNING id`,
		senderID, recipientID, body, isRead, at).Scan(&id)
	assert.NoError(t, err)
	return id
}

func clearMessages(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), "TRUNCATE messages RESTART IDENTITY")
	assert.NoError(t, err)
}

// **測試訊息查詢排序：新到舊，同時間以 id 大者優先**
func TestFindByParticipant(t *testing.T) {
	ctx := context.Background()
	clearMessages(t)

	at := time.Now().UTC().Truncate(time.Second)
	first := seedMessage(t, 2, 1, "older", true, at.Add(-time.Hour))
	second := seedMessage(t, 1, 2, "same-ts-low", false, at)
	third := seedMessage(t, 2, 1, "same-ts-high", false, at)
	seedMessage(t, 3, 4, "unrelated", false, at)

	msgs, err := testRepo.FindByParticipant(ctx, 1)

	assert.NoError(t, err)
	assert.Len(t, msgs, 3)
	assert.Equal(t, third, msgs[0].ID)
	assert.Equal(t, second, msgs[1].ID)
	assert.Equal(t, first, msgs[2].ID)
}

// **測試對話讀取 + 標記已讀的單一交易行為**
func TestFetchConversationAndMarkRead(t *testing.T) {
	ctx := context.Background()
	clearMessages(t)

	at := time.Now().UTC().Truncate(time.Second)
	seedMessage(t, 1, 2, "q1", true, at.Add(-2*time.Hour))
	unreadIn := seedMessage(t, 2, 1, "a1", false, at.Add(-time.Hour))
	unreadOut := seedMessage(t, 1, 2, "q2", false, at)
	seedMessage(t, 3, 1, "other partner", false, at)

	msgs, err := testRepo.FetchConversationAndMarkRead(ctx, 1, 2)

	assert.NoError(t, err)
	assert.Len(t, msgs, 3)
	// 舊到新
	assert.True(t, msgs[0].CreatedAt.Before(msgs[2].CreatedAt))
	// 回傳的是轉換前的旗標
	for _, m := range msgs {
		if m.ID == unreadIn {
			assert.False(t, m.IsRead)
		}
	}

	// 夥伴寄來的已標記為已讀
	var isRead bool
	err = testPool.QueryRow(ctx, "SELECT is_read FROM messages WHERE id = $1", unreadIn).Scan(&isRead)
	assert.NoError(t, err)
	assert.True(t, isRead)

	// 自己寄出的未讀不受影響
	err = testPool.QueryRow(ctx, "SELECT is_read FROM messages WHERE id = $1", unreadOut).Scan(&isRead)
	assert.NoError(t, err)
	assert.False(t, isRead)

	// 其他夥伴的未讀不受影響
	n, err := testRepo.CountUnread(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}

// **測試建立訊息預設未讀**
func TestCreateMessage(t *testing.T) {
	ctx := context.Background()
	clearMessages(t)

	msg := &domain.Message{SenderID: 1, RecipientID: 2, Subject: "hi", Body: ""}
	err := testRepo.Create(ctx, msg)

	assert.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.IsRead)
	assert.False(t, msg.CreatedAt.IsZero())

	n, err := testRepo.CountUnread(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
