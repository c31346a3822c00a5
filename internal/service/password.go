package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost 為 bcrypt 成本，測試可調低
var passwordCost = bcrypt.DefaultCost

// HashPassword 產生含隨機 salt 的 bcrypt 雜湊；超過 72 bytes 的密碼回傳 ErrPasswordTooLong
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}
