package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer contact; income records may link to one.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo    string    `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"index;not null"`
	Email     string
	Telefono  string
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
