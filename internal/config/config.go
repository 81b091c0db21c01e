package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/model"
)

var (
	ErrHelp           = errors.New("help requested")
	ErrBoxWithHash    = errors.New("--box and --hash cannot be combined")
	ErrVerifyConflict = errors.New("--verify cannot be combined with --box or --hash")
)

// Config holds the command line options. Length and Count may also come from
// the environment or a .env file.
type Config struct {
	Length   int  `short:"l" long:"length" description:"Length of the generated password (>=4)" env:"PASSGEN_LENGTH" default:"8"`
	Count    int  `short:"c" long:"count" description:"Number of passwords to be generated" env:"PASSGEN_COUNT" default:"1"`
	NoDigit  bool `long:"no-digit" description:"Do not use digits in the password"`
	NoSymbol bool `long:"no-symbol" description:"Do not use symbols in the password"`
	NoUpper  bool `long:"no-upper" description:"Do not use uppercase letters in the password"`
	NoLower  bool `long:"no-lower" description:"Do not use lowercase letters in the password"`
	Box      bool `short:"b" long:"box" description:"Print every password inside an ASCII box"`
	Hash     bool `long:"hash" description:"Print an Argon2id hash next to every password"`
	Verbose  bool `short:"v" long:"verbose" description:"Enable debug logging"`

	Verify string `long:"verify" value-name:"HASH" description:"Read a password from stdin and check it against an Argon2id HASH printed by --hash"`

	// Help is filled with the usage text when ErrHelp is returned.
	Help string `no-flag:"true"`
}

// LoadEnv reads envFiles (.env when none are given) into the environment.
// Variables already set are left alone.
func LoadEnv(envFiles ...string) error {
	return godotenv.Load(envFiles...)
}

// Load parses args into a Config. Call LoadEnv first for .env defaults.
func Load(args []string) (Config, error) {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "passgen"
	parser.ShortDescription = "generate random passwords"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			cfg.Help = ferr.Message
			return cfg, ErrHelp
		}
		return cfg, err
	}
	if len(rest) > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}

	return cfg, cfg.Validate()
}

// Validate rejects option combinations that cannot be rendered.
func (c Config) Validate() error {
	if c.Verify != "" && (c.Box || c.Hash) {
		return ErrVerifyConflict
	}
	if c.Box && c.Hash {
		return ErrBoxWithHash
	}
	return nil
}

// Request converts the options into a generation request.
func (c Config) Request() model.GenerateRequest {
	return model.GenerateRequest{
		Length:    c.Length,
		Count:     c.Count,
		Digits:    !c.NoDigit,
		Symbols:   !c.NoSymbol,
		Uppercase: !c.NoUpper,
		Lowercase: !c.NoLower,
		Hash:      c.Hash,
	}
}

// Style returns the output style selected by the options.
func (c Config) Style() handler.Style {
	if c.Box {
		return handler.StyleBox
	}
	return handler.StylePlain
}

// LogLevel returns the slog level selected by the options.
func (c Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
