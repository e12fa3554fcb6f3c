package models

import (
	"time"
)

// EstadoCita representa el estado de una cita de vacunación.
// Conjunto cerrado: Agendada -> Confirmada -> Atendida. Cancelada existe
// como valor pero ninguna operación del sistema transiciona hacia ella.
type EstadoCita string

const (
	EstadoAgendada   EstadoCita = "Agendada"
	EstadoConfirmada EstadoCita = "Confirmada"
	EstadoAtendida   EstadoCita = "Atendida"
	EstadoCancelada  EstadoCita = "Cancelada"
)

// Valido indica si el valor pertenece al conjunto cerrado de estados
func (e EstadoCita) Valido() bool {
	switch e {
	case EstadoAgendada, EstadoConfirmada, EstadoAtendida, EstadoCancelada:
		return true
	}
	return false
}

// PuedeEditarse indica si la cita admite cambios de fecha, hora o personal
func (e EstadoCita) PuedeEditarse() bool {
	return e == EstadoAgendada || e == EstadoConfirmada
}

// PuedeConfirmarse indica si la cita puede pasar a Confirmada
func (e EstadoCita) PuedeConfirmarse() bool {
	return e == EstadoAgendada
}

// PuedeAtenderse indica si la cita puede registrar una vacunación
func (e EstadoCita) PuedeAtenderse() bool {
	return e == EstadoAgendada || e == EstadoConfirmada
}

// Cita representa la tabla Cita en la base de datos
type Cita struct {
	ID              int        `json:"id_cita" db:"id_cita"`
	IDUsuario       int        `json:"id_usuario" db:"id_usuario"`
	IDNino          *int       `json:"id_nino,omitempty" db:"id_nino"`
	IDVacuna        int        `json:"id_vacuna" db:"id_vacuna"`
	IDCentro        int        `json:"id_centro" db:"id_centro"`
	Fecha           string     `json:"fecha" db:"fecha"`
	Hora            string     `json:"hora" db:"hora"`
	Estado          EstadoCita `json:"estado" db:"estado"`
	IDPersonalSalud *int       `json:"id_personal_salud,omitempty" db:"id_personal_salud"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// CitaDetalle es una cita con los nombres resueltos para listados
type CitaDetalle struct {
	Cita
	NombrePaciente string  `json:"nombre_paciente"`
	NombreVacuna   string  `json:"nombre_vacuna"`
	NombreCentro   string  `json:"nombre_centro"`
	NombreMedico   *string `json:"nombre_medico,omitempty"`
}

// NuevaCita son los datos necesarios para insertar una cita
type NuevaCita struct {
	IDUsuario int
	IDNino    *int
	IDVacuna  int
	IDCentro  int
	Fecha     string
	Hora      string
	Estado    EstadoCita
}

// CrearCitaRequest representa la solicitud para agendar una cita
type CrearCitaRequest struct {
	IDNino   *int   `json:"id_nino"`
	IDVacuna int    `json:"id_vacuna"`
	IDCentro int    `json:"id_centro"`
	Fecha    string `json:"fecha"`
	Hora     string `json:"hora"`
}

// ActualizarCitaRequest es la sobrescritura privilegiada de una cita
type ActualizarCitaRequest struct {
	IDVacuna int        `json:"id_vacuna"`
	IDCentro int        `json:"id_centro"`
	Fecha    string     `json:"fecha"`
	Hora     string     `json:"hora"`
	Estado   EstadoCita `json:"estado"`
}

// EditarCitaRequest es la edición de detalle que hace el personal del centro
type EditarCitaRequest struct {
	Fecha           string `json:"fecha"`
	Hora            string `json:"hora"`
	IDPersonalSalud *int   `json:"id_personal_salud"`
}

// AsignarMedicoRequest asocia un médico a una cita
type AsignarMedicoRequest struct {
	IDPersonalSalud int `json:"id_personal_salud"`
}

// ConfirmarCitaRequest confirma una cita con el médico indicado
type ConfirmarCitaRequest struct {
	IDPersonalSalud int `json:"id_personal_salud"`
}
