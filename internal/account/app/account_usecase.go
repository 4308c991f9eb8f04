package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"marketplace_service/internal/account/domain"
	"marketplace_service/internal/account/repository"
	"marketplace_service/pkg/database"
	"marketplace_service/pkg/encrypt"
	errprocess "marketplace_service/pkg/err"
	"marketplace_service/pkg/logger"
	token "marketplace_service/pkg/token"
)

// AccountUseCase 這裡封裝了對外提供的應用服務
type AccountUseCase interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, username, password string) (string, bool, error)
	Logout(ctx context.Context, token string) error
	RefreshSession(ctx context.Context, bearer string) error
	FindUser(ctx context.Context, param *domain.UserQuery) (*domain.User, error)
	// SellerProfile 查無資料時回傳 (nil, nil)
	SellerProfile(ctx context.Context, userID int64) (*domain.SellerProfile, error)
	SaveSellerProfile(ctx context.Context, profile *domain.SellerProfile) error
	UpdateDeliverySettings(ctx context.Context, userID int64, city string, radius int) error
}

type accountUseCase struct {
	accountRepo repository.AccountRepository
	sessionTTL  time.Duration
	redisRepo   database.RedisRepository[domain.UserSession]
}

// NewAccountUseCase 建立一個新的 AccountUseCase
func NewAccountUseCase(accountRepo repository.AccountRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.UserSession],
) AccountUseCase {
	return &accountUseCase{
		accountRepo: accountRepo,
		sessionTTL:  sessionTTL,
		redisRepo:   redisRepo,
	}
}

// Register 建立新使用者，username/email 不可重複
func (a *accountUseCase) Register(ctx context.Context, username, email, password string) error {
	if username == "" {
		return errprocess.Validation("username is required")
	}

	// 檢查 username 是否已存在
	if _, err := a.accountRepo.FindUser(ctx, &domain.UserQuery{Username: &username}); err == nil {
		return errprocess.Validation("username already exists")
	}
	// 檢查 email 是否已存在
	if _, err := a.accountRepo.FindUser(ctx, &domain.UserQuery{Email: &email}); err == nil {
		return errprocess.Validation("email already exists")
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		return err
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: pw,
	}

	logger.Log.Info("usecase Register", zap.String("username", username))

	return a.accountRepo.CreateUser(ctx, &user)
}

// Login 驗證密碼，發 JWT 並寫入 redis session。
// 回傳的 bool 表示該 user 是否已有商家資料，前端據此導向商家後台。
func (a *accountUseCase) Login(ctx context.Context, username, password string) (string, bool, error) {
	user, err := a.accountRepo.FindUser(ctx, &domain.UserQuery{Username: &username})
	if err != nil {
		logger.Log.Error("username can't find!!!")
		return "", false, errprocess.NotFound("user %q", username)
	}

	if err = user.IsPasswordMatch(password); err != nil {
		logger.Log.Error("password can't match!!!")
		return "", false, err
	}

	// 明確查詢是否有商家資料，以 presence 分流，不靠例外
	profile, err := a.accountRepo.FindSellerProfile(ctx, user.ID)
	if err != nil {
		return "", false, err
	}

	role := token.RoleCustomer
	if profile != nil {
		role = token.RoleSeller
	}

	t, err := token.GenerateJWTWrapper(formatUserID(user.ID), string(role))
	if err != nil {
		return "", false, err
	}

	now := time.Now()
	session := domain.UserSession{
		Token:        t,
		UserID:       user.ID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(a.sessionTTL),
	}

	if err := a.redisRepo.Set(ctx, formatUserID(user.ID), session, a.sessionTTL); err != nil {
		return "", false, err
	}

	return t, profile != nil, nil
}

// Logout 清除 redis session
func (a *accountUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWTWrapper(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}

	return a.redisRepo.Del(ctx, tokenInfo.UserID)
}

// RefreshSession 使用者重新連線時延長 session 存活時間。
// bearer 為 Authorization 標頭原文，JWT 已過期就不延長。
func (a *accountUseCase) RefreshSession(ctx context.Context, bearer string) error {
	alive, err := token.CheckJWTNotExpire(bearer)
	if err != nil {
		logger.Log.Error("RefreshSession err :", zap.String("err", err.Error()))
		return errprocess.Validation("invalid token")
	}
	if !alive {
		return errprocess.Validation("token expired")
	}

	tokenInfo, err := token.ParseJWTWrapper(strings.TrimPrefix(bearer, "Bearer "))
	if err != nil {
		return err
	}

	ttl, err := a.redisRepo.GetTTL(ctx, tokenInfo.UserID)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		// session 已不存在，要求重新登入
		return errprocess.NotFound("session for user %s", tokenInfo.UserID)
	}

	return a.redisRepo.ExtendTTL(ctx, tokenInfo.UserID, a.sessionTTL)
}

// FindUser 依條件尋找使用者
func (a *accountUseCase) FindUser(ctx context.Context, param *domain.UserQuery) (*domain.User, error) {
	return a.accountRepo.FindUser(ctx, param)
}

// SellerProfile 查詢商家資料
func (a *accountUseCase) SellerProfile(ctx context.Context, userID int64) (*domain.SellerProfile, error) {
	return a.accountRepo.FindSellerProfile(ctx, userID)
}

// SaveSellerProfile 建立或更新商家資料
func (a *accountUseCase) SaveSellerProfile(ctx context.Context, profile *domain.SellerProfile) error {
	if profile.BusinessName == "" {
		return errprocess.Validation("business_name is required")
	}
	if profile.DeliveryRadius <= 0 {
		profile.DeliveryRadius = domain.DefaultDeliveryRadius
	}
	return a.accountRepo.UpsertSellerProfile(ctx, profile)
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// UpdateDeliverySettings 更新配送設定
func (a *accountUseCase) UpdateDeliverySettings(ctx context.Context, userID int64, city string, radius int) error {
	if city == "" {
		return errprocess.Validation("city is required")
	}
	if radius <= 0 {
		return errprocess.Validation("radius must be a positive integer")
	}
	return a.accountRepo.UpdateDeliverySettings(ctx, userID, city, radius)
}
