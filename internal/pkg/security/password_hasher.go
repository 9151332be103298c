package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt 只取前 72 字节，超长输入直接拒绝而不是静默截断
const maxPasswordBytes = 72

// HashPassword 使用bcrypt算法对密码进行哈希处理
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", errors.New("password too long")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// CheckPasswordHash 检查密码是否与哈希值匹配
func CheckPasswordHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if err != nil && errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errors.New("invalid credentials")
	}

	return err
}
