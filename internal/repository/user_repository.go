package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"ethiqia/internal/models"
)

const userColumns = `user_id, email, password_hash, username, full_name, bio, avatar_url, refresh_token, refresh_token_expiry_time, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (user_id, email, password_hash, refresh_token, refresh_token_expiry_time, created_at)
		VALUES (:user_id, :email, :password_hash, :refresh_token, :refresh_token_expiry_time, :created_at)
	`

	if _, err = r.db.NamedExecContext(ctx, query, user); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrPasswordMismatch
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	return user, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	if _, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID); err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE refresh_token = $1 AND refresh_token_expiry_time > CURRENT_TIMESTAMP`

	user, err := r.getOne(ctx, query, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("get user by refresh token: %w", err)
	}
	return user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = :username, full_name = :full_name, bio = :bio, avatar_url = :avatar_url
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username: %w", ErrConflict)
		}
		return fmt.Errorf("update profile: %w", err)
	}

	return expectAffected(result, fmt.Sprintf("user %s", user.UserID))
}

func (r *userRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET avatar_url = $1 WHERE user_id = $2`, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}

	return expectAffected(result, fmt.Sprintf("user %s", userID))
}

func expectAffected(result sql.Result, subject string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", subject, ErrNotFound)
	}

	return nil
}
