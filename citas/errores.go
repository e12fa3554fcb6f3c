package citas

import (
	"errors"
	"fmt"
)

// Kind clasifica los fallos del núcleo de agendamiento. Reemplaza la
// clasificación por fragmentos de mensaje que hacía el sistema original:
// la capa de persistencia devuelve errores centinela tipados y el
// servicio los envuelve en un Error con su Kind.
type Kind int

const (
	KindValidacion Kind = iota + 1
	KindNoAutorizado
	KindNoEncontrado
	KindConflicto
	KindPersistencia
)

// Error es el fallo estructurado que devuelven las operaciones del núcleo
type Error struct {
	Kind    Kind
	Mensaje string
	Causa   error
}

func (e *Error) Error() string {
	if e.Causa != nil {
		return fmt.Sprintf("%s: %v", e.Mensaje, e.Causa)
	}
	return e.Mensaje
}

func (e *Error) Unwrap() error {
	return e.Causa
}

func errValidacion(mensaje string) *Error {
	return &Error{Kind: KindValidacion, Mensaje: mensaje}
}

func errNoAutorizado(mensaje string) *Error {
	return &Error{Kind: KindNoAutorizado, Mensaje: mensaje}
}

func errNoEncontrado(mensaje string) *Error {
	return &Error{Kind: KindNoEncontrado, Mensaje: mensaje}
}

func errConflicto(mensaje string) *Error {
	return &Error{Kind: KindConflicto, Mensaje: mensaje}
}

func errPersistencia(mensaje string, causa error) *Error {
	return &Error{Kind: KindPersistencia, Mensaje: mensaje, Causa: causa}
}

// KindDe extrae el Kind de un error del núcleo. Devuelve KindPersistencia
// para errores no estructurados.
func KindDe(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistencia
}

// Errores centinela que el almacén devuelve para que el servicio los
// clasifique sin inspeccionar texto.
var (
	// ErrCitaNoEncontrada: la cita referida no existe.
	ErrCitaNoEncontrada = errors.New("la cita no existe")
	// ErrEstadoNoEditable: la cita no está en un estado que admita edición.
	ErrEstadoNoEditable = errors.New("solo se pueden editar citas en estado Agendada o Confirmada")
	// ErrCitaAtendida: la cita ya fue atendida y es terminal.
	ErrCitaAtendida = errors.New("no se pueden modificar citas que ya han sido atendidas")
	// ErrTransicionInvalida: el cambio de estado no partió del estado esperado.
	ErrTransicionInvalida = errors.New("la cita no está en el estado requerido para esta operación")
	// ErrLoteSinDisponibilidad: el lote se quedó sin dosis al momento de descontar.
	ErrLoteSinDisponibilidad = errors.New("el lote seleccionado no tiene dosis disponibles")
	// ErrRestriccion: la base de datos rechazó la operación por una
	// restricción referencial; el mensaje subyacente viaja en la causa.
	ErrRestriccion = errors.New("error de restricción de datos")
)
