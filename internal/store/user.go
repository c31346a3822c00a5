package store

import (
	"context"
	"fmt"

	"user-service/internal/database"
	"user-service/internal/model"
)

func GetUserByID(ctx context.Context, q database.Querier, userID int) (*model.User, error) {
	row := q.QueryRow(ctx,
		`SELECT id, email, first_name, last_name, hashed_password
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.HashedPassword,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", mapError(err))
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, q database.Querier, email string) (*model.User, error) {
	row := q.QueryRow(ctx,
		`SELECT id, email, first_name, last_name, hashed_password
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.HashedPassword,
	); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", mapError(err))
	}
	return u, nil
}

// CreateUser 新增使用者，id 由資料庫指派後寫回 u
func CreateUser(ctx context.Context, q database.Querier, u *model.User) (*model.User, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO users (email, first_name, last_name, hashed_password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		u.Email,
		u.FirstName,
		u.LastName,
		u.HashedPassword,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", mapError(err))
	}
	return u, nil
}

// UpdateUser 只更新 email、first_name、last_name；id 與 hashed_password 不變
func UpdateUser(ctx context.Context, q database.Querier, u *model.User) error {
	tag, err := q.Exec(ctx,
		`UPDATE users SET email = $1, first_name = $2, last_name = $3
		 WHERE id = $4`,
		u.Email,
		u.FirstName,
		u.LastName,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUser: %w", ErrNotFound)
	}
	return nil
}
