package crypto

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	digitChars     = "0123456789"
	symbolChars    = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"

	MinLength = 4
	// MaxLength keeps a single password within 1 MiB.
	MaxLength = 1 << 20

	// DefaultMaxAttempts bounds the rejection loop in Generate.
	DefaultMaxAttempts = 1000
)

var (
	ErrLengthTooShort   = errors.New("password length must be at least 4 and at least the number of selected character types")
	ErrLengthTooLong    = errors.New("password length must be at most 1048576")
	ErrGenerationFailed = errors.New("could not generate a password containing every selected character type")
)

// CharacterClass is one of the disjoint character sets a password draws from.
type CharacterClass int

const (
	Digits CharacterClass = iota
	Symbols
	Uppercase
	Lowercase
)

// Chars returns every character belonging to the class.
func (c CharacterClass) Chars() string {
	switch c {
	case Digits:
		return digitChars
	case Symbols:
		return symbolChars
	case Uppercase:
		return uppercaseChars
	case Lowercase:
		return lowercaseChars
	}
	return ""
}

func (c CharacterClass) String() string {
	switch c {
	case Digits:
		return "digit"
	case Symbols:
		return "symbol"
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	}
	return fmt.Sprintf("CharacterClass(%d)", int(c))
}

// Contains reports whether r is a member of the class.
func (c CharacterClass) Contains(r rune) bool {
	return strings.ContainsRune(c.Chars(), r)
}

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length    int
	Digits    bool
	Symbols   bool
	Uppercase bool
	Lowercase bool
}

// DefaultOptions returns 8 characters with every class enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    8,
		Digits:    true,
		Symbols:   true,
		Uppercase: true,
		Lowercase: true,
	}
}

// Classes returns the enabled classes. Lowercase is forced on when nothing is selected.
func (o GeneratorOptions) Classes() []CharacterClass {
	var classes []CharacterClass
	if o.Digits {
		classes = append(classes, Digits)
	}
	if o.Symbols {
		classes = append(classes, Symbols)
	}
	if o.Uppercase {
		classes = append(classes, Uppercase)
	}
	if o.Lowercase {
		classes = append(classes, Lowercase)
	}
	if len(classes) == 0 {
		classes = append(classes, Lowercase)
	}
	return classes
}

// Alphabet returns the union of the characters of every enabled class.
func (o GeneratorOptions) Alphabet() string {
	var sb strings.Builder
	for _, c := range o.Classes() {
		sb.WriteString(c.Chars())
	}
	return sb.String()
}

// Validate checks the length bounds for the enabled classes.
func (o GeneratorOptions) Validate() error {
	if o.Length < MinLength || o.Length < len(o.Classes()) {
		return ErrLengthTooShort
	}
	if o.Length > MaxLength {
		return ErrLengthTooLong
	}
	return nil
}

// Generator draws passwords from Reader. The zero value uses crypto/rand.
type Generator struct {
	Reader      io.Reader
	MaxAttempts int
}

var defaultGenerator = &Generator{}

// Generate creates a random password with the package default generator.
func Generate(opts GeneratorOptions) (string, error) {
	return defaultGenerator.Generate(opts)
}

// Generate samples Length characters uniformly, with replacement, from the enabled
// alphabet. A candidate missing any enabled class is discarded and redrawn in full.
func (g *Generator) Generate(opts GeneratorOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	classes := opts.Classes()
	alphabet := opts.Alphabet()
	result := make([]byte, opts.Length)
	r := bufio.NewReader(g.reader())

	for attempt := 0; attempt < g.maxAttempts(); attempt++ {
		for i := range result {
			ch, err := randChar(r, alphabet)
			if err != nil {
				return "", err
			}
			result[i] = ch
		}

		if containsAll(result, classes) {
			return string(result), nil
		}
	}

	return "", ErrGenerationFailed
}

func (g *Generator) reader() io.Reader {
	if g.Reader == nil {
		return rand.Reader
	}
	return g.Reader
}

func (g *Generator) maxAttempts() int {
	if g.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return g.MaxAttempts
}

// randChar picks a uniformly random character from charset.
func randChar(r io.Reader, charset string) (byte, error) {
	n, err := rand.Int(r, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return charset[n.Int64()], nil
}

func containsAll(password []byte, classes []CharacterClass) bool {
	for _, c := range classes {
		if !strings.ContainsAny(string(password), c.Chars()) {
			return false
		}
	}
	return true
}
