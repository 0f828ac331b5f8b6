package models

import (
	"time"
)

const DefaultUserStatus = "I am new!"

type User struct {
	UserID       string    `json:"_id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Status       string    `json:"status" db:"status"`
	PostIDs      []string  `json:"posts" db:"-"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type Post struct {
	PostID    string    `json:"_id" db:"post_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatorID string    `json:"creator" db:"creator_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type UserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=5,bcryptlen"`
}

type PostInput struct {
	Title    string `json:"title" validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=5"`
	ImageURL string `json:"imageUrl"`
}

type AuthData struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type PostPage struct {
	Posts      []*Post `json:"posts"`
	TotalPosts int     `json:"totalPosts"`
}
