package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"marketplace_service/internal/account/domain"
	errprocess "marketplace_service/pkg/err"
)

// AccountRepository definition get user / seller profile info
type AccountRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUser(ctx context.Context, userQuery *domain.UserQuery) (*domain.User, error)
	// FindSellerProfile 查無資料時回傳 (nil, nil)，呼叫端以 presence 分流
	FindSellerProfile(ctx context.Context, userID int64) (*domain.SellerProfile, error)
	UpsertSellerProfile(ctx context.Context, profile *domain.SellerProfile) error
	UpdateDeliverySettings(ctx context.Context, userID int64, city string, radius int) error
}

type accountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository create a AccountRepository
func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.db.QueryRow(ctx,
		"INSERT INTO users(username, email, password_hash) VALUES ($1, $2, $3) RETURNING id",
		user.Username, user.Email, user.PasswordHash,
	).Scan(&user.ID)
}

func (r *accountRepository) FindUser(ctx context.Context, userQuery *domain.UserQuery) (*domain.User, error) {
	queryStr := "SELECT id, username, email, password_hash, created_at FROM users WHERE 1=1"
	params := []interface{}{}
	paramCount := 1

	if userQuery.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *userQuery.ID)
		paramCount++
	}
	if userQuery.Username != nil {
		queryStr += fmt.Sprintf(" AND username = $%d", paramCount)
		params = append(params, *userQuery.Username)
		paramCount++
	}
	if userQuery.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *userQuery.Email)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errprocess.NotFound("no user found with given criteria")
		}
		return nil, err
	}

	return &user, nil
}

func (r *accountRepository) FindSellerProfile(ctx context.Context, userID int64) (*domain.SellerProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, business_name, business_description, logo_object, phone, email, address, city,
		        delivery_radius, tax_id, bank_account, rating, total_sales, total_revenue,
		        is_verified, is_active, created_at, updated_at
		 FROM seller_profiles WHERE user_id = $1`, userID)

	var p domain.SellerProfile
	err := row.Scan(&p.UserID, &p.BusinessName, &p.BusinessDescription, &p.LogoObject, &p.Phone,
		&p.Email, &p.Address, &p.City, &p.DeliveryRadius, &p.TaxID, &p.BankAccount,
		&p.Rating, &p.TotalSales, &p.TotalRevenue, &p.IsVerified, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// 不是錯誤，表示該 user 還不是商家
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

func (r *accountRepository) UpsertSellerProfile(ctx context.Context, profile *domain.SellerProfile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO seller_profiles
		   (user_id, business_name, business_description, logo_object, phone, email, address, city,
		    delivery_radius, tax_id, bank_account)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (user_id) DO UPDATE SET
		   business_name = EXCLUDED.business_name,
		   business_description = EXCLUDED.business_description,
		   logo_object = EXCLUDED.logo_object,
		   phone = EXCLUDED.phone,
		   email = EXCLUDED.email,
		   address = EXCLUDED.address,
		   city = EXCLUDED.city,
		   delivery_radius = EXCLUDED.delivery_radius,
		   tax_id = EXCLUDED.tax_id,
		   bank_account = EXCLUDED.bank_account,
		   updated_at = now()`,
		profile.UserID, profile.BusinessName, profile.BusinessDescription, profile.LogoObject,
		profile.Phone, profile.Email, profile.Address, profile.City, profile.DeliveryRadius,
		profile.TaxID, profile.BankAccount)
	return err
}

func (r *accountRepository) UpdateDeliverySettings(ctx context.Context, userID int64, city string, radius int) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE seller_profiles SET city = $1, delivery_radius = $2, updated_at = now() WHERE user_id = $3",
		city, radius, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errprocess.NotFound("seller profile for user %d", userID)
	}
	return nil
}
