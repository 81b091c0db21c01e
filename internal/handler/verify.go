package handler

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vaultpass/passgen/internal/service"
)

// VerifyHandler checks a password read from an input stream.
type VerifyHandler struct {
	service *service.VerifyService
}

// NewVerifyHandler creates a new VerifyHandler.
func NewVerifyHandler(svc *service.VerifyService) *VerifyHandler {
	return &VerifyHandler{service: svc}
}

// Handle reads the first line of r as the password and writes "ok" to w when
// it matches encodedHash.
func (h *VerifyHandler) Handle(r io.Reader, w io.Writer, encodedHash string) error {
	var password string
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		password = strings.TrimRight(scanner.Text(), "\r")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if err := h.service.Verify(password, encodedHash); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "ok")
	return err
}
