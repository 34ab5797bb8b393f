package entity

import "time"

// User representa un usuario registrado. Email es único; PasswordHash nunca
// sale de la API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
