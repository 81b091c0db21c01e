package service

import (
	"errors"

	"github.com/vaultpass/passgen/internal/crypto"
)

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordMismatch = errors.New("password does not match")
)

// VerifyService checks passwords against Argon2id hashes printed by --hash.
type VerifyService struct{}

// NewVerifyService creates a new VerifyService.
func NewVerifyService() *VerifyService {
	return &VerifyService{}
}

// Verify returns nil when password matches encodedHash.
func (s *VerifyService) Verify(password, encodedHash string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	match, err := crypto.VerifyPassword(password, encodedHash)
	if err != nil {
		return err
	}
	if !match {
		return ErrPasswordMismatch
	}
	return nil
}
