package models

// Rol representa el rol de un usuario dentro del sistema.
// Los valores numéricos coinciden con la tabla Rol de la base de datos.
type Rol int

const (
	RolAdministrador  Rol = 1
	RolMedico         Rol = 2
	RolDigitador      Rol = 4
	RolTutor          Rol = 5
	RolPersonalCentro Rol = 6
)

// Valido indica si el valor corresponde a un rol conocido
func (r Rol) Valido() bool {
	switch r {
	case RolAdministrador, RolMedico, RolDigitador, RolTutor, RolPersonalCentro:
		return true
	}
	return false
}

// Nombre devuelve el nombre legible del rol
func (r Rol) Nombre() string {
	switch r {
	case RolAdministrador:
		return "Administrador"
	case RolMedico:
		return "Médico"
	case RolDigitador:
		return "Digitador"
	case RolTutor:
		return "Tutor"
	case RolPersonalCentro:
		return "Personal del Centro"
	default:
		return "Desconocido"
	}
}

// EsPersonalPrivilegiado indica si el rol puede sobrescribir citas sin
// restricción de transición de estado
func (r Rol) EsPersonalPrivilegiado() bool {
	return r == RolAdministrador || r == RolDigitador
}
