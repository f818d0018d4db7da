package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"unique;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Country    string `gorm:"default:'Argentina'" json:"country"`
	Locality   string `gorm:"default:'Buenos Aires'" json:"locality"`
	PostalCode string `gorm:"default:'1000'" json:"postal_code"`
	Role       Role   `gorm:"type:VARCHAR(10);default:'user'" json:"role"`

	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
