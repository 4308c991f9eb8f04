package domain

import (
	"time"

	"marketplace_service/pkg/encrypt"
)

// User 用來表示使用者
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// IsPasswordMatch 密碼驗證
func (u *User) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(u.PasswordHash, inputPwd)
}

// UserSession 用來表示使用者的 Session
type UserSession struct {
	Token        string    `json:"Token"`
	UserID       int64     `json:"UserID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsExpired 檢查 Session 是否已過期
func (s *UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// UserQuery join conditions are used to query users
type UserQuery struct {
	ID       *int64  `db:"id"`
	Username *string `db:"username"`
	Email    *string `db:"email"`
}

// SellerProfile 商家擴充資料，一個 user 至多一筆
type SellerProfile struct {
	UserID              int64
	BusinessName        string
	BusinessDescription string
	LogoObject          string // 存於 MinIO 上的 object key
	Phone               string
	Email               string
	Address             string
	City                string
	DeliveryRadius      int // 配送半徑(km)
	TaxID               string
	BankAccount         string
	Rating              float64
	TotalSales          int
	TotalRevenue        float64
	IsVerified          bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultDeliveryRadius 新商家的預設配送半徑(km)
const DefaultDeliveryRadius = 120
