package auth

import (
	"errors"
	"net/mail"
	"strings"
)

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" {
		return errors.New("username is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type RegisterDTO struct {
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Department *string `json:"department,omitempty"`
}

func (dto RegisterDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" {
		return errors.New("username is required")
	}
	if len(dto.Username) > 64 {
		return errors.New("username must not exceed 64 characters")
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return errors.New("a valid email is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshDTO) Validate() error {
	if dto.RefreshToken == "" {
		return errors.New("refresh_token is required")
	}
	return nil
}
