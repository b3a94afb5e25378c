package models

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserResponse struct {
	User User `json:"user"`
}
