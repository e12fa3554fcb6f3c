package models

import (
	"time"
)

// Nino representa un niño vinculado a un tutor
type Nino struct {
	ID              int       `json:"id_nino" db:"id_nino"`
	Nombre          string    `json:"nombre" db:"nombre"`
	Apellido        string    `json:"apellido" db:"apellido"`
	FechaNacimiento string    `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	IDTutor         int       `json:"id_tutor" db:"id_tutor"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
