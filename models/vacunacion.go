package models

import (
	"time"
)

// LoteVacuna representa un lote de vacunas disponible en un centro.
// Solo lectura desde el núcleo de agendamiento.
type LoteVacuna struct {
	ID                 int       `json:"id_lote" db:"id_lote"`
	NumeroLote         string    `json:"numero_lote" db:"numero_lote"`
	IDVacuna           int       `json:"id_vacuna" db:"id_vacuna"`
	IDCentro           int       `json:"id_centro" db:"id_centro"`
	NombreFabricante   string    `json:"nombre_fabricante" db:"nombre_fabricante"`
	FechaCaducidad     string    `json:"fecha_caducidad" db:"fecha_caducidad"`
	CantidadDisponible int       `json:"cantidad_disponible" db:"cantidad_disponible"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// Caducado indica si el lote está vencido respecto a la fecha dada
func (l LoteVacuna) Caducado(hoy time.Time) bool {
	caducidad, err := time.Parse("2006-01-02", l.FechaCaducidad)
	if err != nil {
		// Un lote con fecha ilegible se trata como no utilizable
		return true
	}
	return caducidad.Before(hoy.Truncate(24 * time.Hour))
}

// RegistroVacunacion representa una dosis aplicada. Inmutable después de
// su creación.
type RegistroVacunacion struct {
	ID              int       `json:"id_registro" db:"id_registro"`
	IDCita          int       `json:"id_cita" db:"id_cita"`
	IDPersonalSalud int       `json:"id_personal_salud" db:"id_personal_salud"`
	IDLote          int       `json:"id_lote" db:"id_lote"`
	NombrePersonal  string    `json:"nombre_personal" db:"nombre_personal"`
	DosisAplicada   string    `json:"dosis_aplicada" db:"dosis_aplicada"`
	NumeroDosis     int       `json:"numero_dosis" db:"numero_dosis"`
	EdadAlMomento   string    `json:"edad_al_momento" db:"edad_al_momento"`
	Notas           string    `json:"notas" db:"notas"`
	Alergias        string    `json:"alergias" db:"alergias"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RegistrarVacunacionRequest son los datos que envía el personal médico al
// atender una cita
type RegistrarVacunacionRequest struct {
	IDPersonalSalud      int    `json:"id_personal_salud"`
	IDLote               int    `json:"id_lote"`
	NombrePersonal       string `json:"nombre_personal"`
	DosisAplicada        string `json:"dosis_aplicada"`
	EdadAlMomento        string `json:"edad_al_momento"`
	Notas                string `json:"notas"`
	Alergias             string `json:"alergias"`
	RequiereProximaDosis bool   `json:"requiere_proxima_dosis"`
	FechaProximaDosis    string `json:"fecha_proxima_dosis"`
	AgendarProximaCita   bool   `json:"agendar_proxima_cita"`
}

// Medico es la vista reducida del personal de salud de un centro
type Medico struct {
	ID       int    `json:"id_usuario" db:"id_usuario"`
	Nombre   string `json:"nombre" db:"nombre"`
	Apellido string `json:"apellido" db:"apellido"`
	Email    string `json:"email" db:"email"`
	IDCentro int    `json:"id_centro" db:"id_centro"`
}
