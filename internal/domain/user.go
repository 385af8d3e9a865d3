package domain

// Admin is the single dashboard operator configured at start-up.
type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	Link         string `json:"link"`
}
