package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail 建立使用者時 email 已被註冊
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrPasswordTooLong bcrypt 只接受 72 bytes 以內的密碼
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// NotFoundError 更新的目標使用者不存在
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user %d not found", e.ID)
}

// EmailConflictError 更新時新的 email 已屬於另一位使用者
type EmailConflictError struct {
	Email string
}

func (e *EmailConflictError) Error() string {
	return fmt.Sprintf("email %s already registered", e.Email)
}
