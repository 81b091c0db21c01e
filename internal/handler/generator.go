package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/service"
)

// Style selects how generated passwords are written.
type Style int

const (
	// StylePlain writes one password per line.
	StylePlain Style = iota
	// StyleBox frames every password in an ASCII box.
	StyleBox
)

// GeneratorHandler writes generated passwords to an output stream.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// Handle writes each password to w as soon as it is generated. Invalid
// requests fail before anything is written.
func (h *GeneratorHandler) Handle(ctx context.Context, w io.Writer, req model.GenerateRequest, style Style) error {
	var write func(model.GeneratedPassword) error
	written := false

	switch style {
	case StyleBox:
		border := boxBorder(req.Length)
		write = func(p model.GeneratedPassword) error {
			written = true
			_, err := io.WriteString(w, border+boxLine(p.Password))
			return err
		}
	default:
		write = func(p model.GeneratedPassword) error {
			_, err := io.WriteString(w, plainLine(p))
			return err
		}
	}

	if err := h.service.Generate(ctx, req, write); err != nil {
		return err
	}

	if style == StyleBox && written {
		_, err := io.WriteString(w, boxBorder(req.Length))
		return err
	}
	return nil
}

// IsValidationError reports whether err was caused by user input.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrLengthTooShort) ||
		errors.Is(err, crypto.ErrLengthTooLong) ||
		errors.Is(err, crypto.ErrInvalidHashFormat) ||
		errors.Is(err, crypto.ErrIncompatibleVersion) ||
		errors.Is(err, service.ErrCountTooSmall) ||
		errors.Is(err, service.ErrPasswordRequired)
}

func plainLine(p model.GeneratedPassword) string {
	if p.Hash != "" {
		return p.Password + "\t" + p.Hash + "\n"
	}
	return p.Password + "\n"
}

// A boxed password is framed by borders sized to its length:
//
//	|------------|
//	|  aB3!kZ9#  |
//	|------------|
func boxBorder(length int) string {
	return "|" + strings.Repeat("-", length+4) + "|\n"
}

func boxLine(password string) string {
	return fmt.Sprintf("|  %s  |\n", password)
}
