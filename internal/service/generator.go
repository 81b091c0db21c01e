package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

var ErrCountTooSmall = errors.New("count must be more than 0")

// PasswordHasher hashes a generated password for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	generator *crypto.Generator
	hasher    PasswordHasher
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(generator *crypto.Generator, hasher PasswordHasher) *GeneratorService {
	if generator == nil {
		generator = &crypto.Generator{}
	}
	if hasher == nil {
		hasher = crypto.NewHasher()
	}
	return &GeneratorService{generator: generator, hasher: hasher}
}

// Generate produces req.Count independent passwords, handing each to emit as
// soon as it exists. Request validation happens before the first call to emit;
// an error from emit stops generation and is returned.
func (s *GeneratorService) Generate(ctx context.Context, req model.GenerateRequest, emit func(model.GeneratedPassword) error) error {
	if req.Count < 1 {
		return ErrCountTooSmall
	}

	opts := crypto.GeneratorOptions{
		Length:    req.Length,
		Digits:    req.Digits,
		Symbols:   req.Symbols,
		Uppercase: req.Uppercase,
		Lowercase: req.Lowercase,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	slog.Debug("generating passwords",
		"count", req.Count,
		"length", opts.Length,
		"classes", opts.Classes(),
		"hash", req.Hash,
	)

	for i := 0; i < req.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		password, err := s.generator.Generate(opts)
		if err != nil {
			return err
		}

		generated := model.GeneratedPassword{Password: password}
		if req.Hash {
			hash, err := s.hasher.Hash(password)
			if err != nil {
				return err
			}
			generated.Hash = hash
		}

		if err := emit(generated); err != nil {
			return err
		}
	}

	return nil
}
