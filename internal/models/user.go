package models

// User represents a registered user as persisted in the store.
// The hash is stored under the "password" key to keep the on-disk layout
// of existing users.json files.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}

// Submission is the raw registration form input. It is validated and
// discarded, never stored.
type Submission struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}
