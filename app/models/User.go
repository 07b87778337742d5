package models

// User is an account row. Password holds the bcrypt hash, never the plaintext.
type User struct {
	Id       string
	Email    string
	Password string
}

// UserDto is the login/register request body.

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
