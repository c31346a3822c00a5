package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"user-service/internal/cache"
	"user-service/internal/database"
	"user-service/internal/logging"
	"user-service/internal/model"
	"user-service/internal/store"
)

const (
	emailClaimPrefix      = "user:email-claim:"
	defaultEmailClaimTTL  = 10 * time.Second
	defaultEmailClaimWait = 500 * time.Millisecond
	claimPollInterval     = 25 * time.Millisecond
)

var (
	hashPassword   = HashPassword
	getUserByID    = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	createUser     = store.CreateUser
	updateUser     = store.UpdateUser
)

// UserService 負責使用者建立與更新的驗證與持久化，本身不保存任何狀態。
//
// email 唯一性由兩層保證：檢查與寫入在同一個交易內完成，且 users.email 有
// UNIQUE 約束；約束違反會被轉成 ErrDuplicateEmail 或 EmailConflictError。
// 若設定了 cache，寫入新 email 前會先以 SETNX 取得 email claim，讓同一 email
// 的寫入依序進行，後到的請求在檢查時就能看到已提交的紀錄。claim 只影響先後，
// 不會產生額外的錯誤結果。
type UserService struct {
	db        database.DB
	cache     cache.Cache
	log       logging.Logger
	claimTTL  time.Duration
	claimWait time.Duration
}

// NewUserService 建立 UserService；c 可為 nil，此時不使用 email claim
func NewUserService(db database.DB, c cache.Cache, log logging.Logger) *UserService {
	return &UserService{
		db:        db,
		cache:     c,
		log:       log,
		claimTTL:  defaultEmailClaimTTL,
		claimWait: defaultEmailClaimWait,
	}
}

// NormalizeEmail 去除前後空白並將網域轉為小寫；@ 之前的部分保留原本大小寫
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// CreateUser 建立新使用者並回傳含 id 的完整紀錄
func (s *UserService) CreateUser(ctx context.Context, email, firstName, lastName, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	release := s.claimEmail(ctx, email)
	defer release()

	var created *model.User
	err = s.db.InTx(ctx, func(q database.Querier) error {
		_, err := getUserByEmail(ctx, q, email)
		switch {
		case err == nil:
			return ErrDuplicateEmail
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		u, err := createUser(ctx, q, &model.User{
			Email:          email,
			FirstName:      firstName,
			LastName:       lastName,
			HashedPassword: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateUser 覆寫 email、first_name、last_name，id 與 hashed_password 不變
func (s *UserService) UpdateUser(ctx context.Context, id int, email, firstName, lastName string) (*model.User, error) {
	email = NormalizeEmail(email)

	// claim 在交易提交後才釋放
	release := func() {}
	defer func() { release() }()

	var updated *model.User
	err := s.db.InTx(ctx, func(q database.Querier) error {
		current, err := getUserByID(ctx, q, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &NotFoundError{ID: id}
			}
			return err
		}

		// 自己目前的 email 不算衝突
		if email != current.Email {
			release = s.claimEmail(ctx, email)
			other, err := getUserByEmail(ctx, q, email)
			switch {
			case err == nil && other.ID != id:
				return &EmailConflictError{Email: email}
			case err != nil && !errors.Is(err, store.ErrNotFound):
				return err
			}
		}

		current.Email = email
		current.FirstName = firstName
		current.LastName = lastName
		if err := updateUser(ctx, q, current); err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicateKey):
				return &EmailConflictError{Email: email}
			case errors.Is(err, store.ErrNotFound):
				return &NotFoundError{ID: id}
			}
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// claimEmail 以 SETNX 佔用 email，回傳的 release 必須在交易結束後呼叫。
// claim 被其他請求持有時最多等待 claimWait；逾時、ctx 結束或 cache 出錯時
// 直接放行，交給交易內的檢查與 UNIQUE 約束決定結果。
func (s *UserService) claimEmail(ctx context.Context, email string) func() {
	noop := func() {}
	if s.cache == nil {
		return noop
	}

	key := emailClaimPrefix + email
	deadline := time.Now().Add(s.claimWait)
	for {
		ok, err := s.cache.SetNX(ctx, key, 1, s.claimTTL).Result()
		if err != nil {
			s.log.Warn(ctx, "email claim unavailable", "email", email, "error", err)
			return noop
		}
		if ok {
			return func() {
				if err := s.cache.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
					s.log.Warn(ctx, "release email claim failed", "email", email, "error", err)
				}
			}
		}
		if !time.Now().Before(deadline) {
			s.log.Debug(ctx, "email claim busy, relying on unique constraint", "email", email)
			return noop
		}
		select {
		case <-ctx.Done():
			return noop
		case <-time.After(claimPollInterval):
		}
	}
}
