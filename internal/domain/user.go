package domain

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRepository interface {
	CreateUser(user *User) (*User, error)
	GetUserByID(id int) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateUser(id int, user *User) (*User, error)
	DeleteUser(id int) error
	ListUsers() ([]User, error)
}
