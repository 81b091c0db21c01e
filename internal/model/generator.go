package model

// GenerateRequest represents a batch password generation request.
type GenerateRequest struct {
	Length    int
	Count     int
	Digits    bool
	Symbols   bool
	Uppercase bool
	Lowercase bool
	// Hash attaches an Argon2id PHC hash to every generated password.
	Hash bool
}

// GeneratedPassword is a single generated password and its optional hash.
type GeneratedPassword struct {
	Password string
	Hash     string
}
