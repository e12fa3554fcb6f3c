// Package citas implementa el núcleo de agendamiento de citas de
// vacunación: creación, confirmación, asignación de médico, edición y
// registro de dosis aplicadas, con sus reglas de rol y de transición de
// estado. El acceso a datos queda detrás de interfaces colaboradoras que
// implementa el paquete database.
package citas

import (
	"context"
	"errors"
	"time"

	"github.com/lizet96/vacunas-backend/models"
)

// Actor es la identidad autenticada que ejecuta una operación
type Actor struct {
	IDUsuario int
	Rol       models.Rol
	IDCentro  int // 0 si el usuario no tiene centro asignado
}

// CitaStore es la persistencia de citas que consume el núcleo
type CitaStore interface {
	ListarPorCentro(ctx context.Context, idCentro int) ([]models.CitaDetalle, error)
	ListarPorUsuario(ctx context.Context, idUsuario int, rol models.Rol) ([]models.CitaDetalle, error)
	Crear(ctx context.Context, cita models.NuevaCita) (int, error)
	ObtenerPorID(ctx context.Context, id int) (*models.Cita, error)
	Actualizar(ctx context.Context, id int, datos models.ActualizarCitaRequest) error
	// ActualizarDetalle modifica fecha, hora y personal solo si la cita
	// sigue en un estado editable. Devuelve ErrCitaNoEncontrada,
	// ErrCitaAtendida o ErrEstadoNoEditable según corresponda.
	ActualizarDetalle(ctx context.Context, id int, fecha, hora string, idPersonal *int) (*models.Cita, error)
	// CambiarEstado ejecuta la transición con un check-and-set sobre el
	// estado de partida. Devuelve false si la cita no estaba en `desde`.
	CambiarEstado(ctx context.Context, id int, desde, hacia models.EstadoCita, idPersonal *int) (bool, error)
	// AsignarPersonal asocia el médico sin alterar el estado de la cita
	AsignarPersonal(ctx context.Context, id int, idPersonal int) error
}

// CatalogoStore son las consultas de catálogo que el núcleo necesita para
// validar entradas
type CatalogoStore interface {
	ObtenerLote(ctx context.Context, idLote int) (*models.LoteVacuna, error)
	ObtenerCentroDePersonal(ctx context.Context, idPersonal int) (int, error)
	ObtenerRolDePersonal(ctx context.Context, idPersonal int) (models.Rol, error)
	ContarDosisAplicadas(ctx context.Context, idUsuario int, idNino *int, idVacuna int) (int, error)
	ListarMedicosPorCentro(ctx context.Context, idCentro int) ([]models.Medico, error)
}

// RegistroStore persiste el registro de vacunación de forma transaccional
type RegistroStore interface {
	// RegistrarVacunacion inserta el registro, descuenta la dosis del
	// lote y transiciona la cita a Atendida en una sola transacción.
	// Las opciones de próxima dosis se persisten en la misma transacción.
	RegistrarVacunacion(ctx context.Context, registro models.RegistroVacunacion, opciones OpcionesProximaDosis) (string, error)
}

// OpcionesProximaDosis controla el sub-flujo opcional de la próxima dosis
type OpcionesProximaDosis struct {
	Requerida   bool
	Fecha       string
	AgendarCita bool
	// Datos para la cita de seguimiento cuando AgendarCita es true
	Plantilla models.NuevaCita
}

// Service ejecuta las operaciones del ciclo de vida de las citas
type Service struct {
	citas    CitaStore
	catalogo CatalogoStore
	registro RegistroStore
	ahora    func() time.Time
}

// NewService construye el servicio. ahora permite fijar el reloj en pruebas;
// con nil se usa time.Now.
func NewService(citas CitaStore, catalogo CatalogoStore, registro RegistroStore, ahora func() time.Time) *Service {
	if ahora == nil {
		ahora = time.Now
	}
	return &Service{citas: citas, catalogo: catalogo, registro: registro, ahora: ahora}
}

// ListarCitas devuelve las citas visibles para el actor. El personal del
// centro ve todas las de su centro; el resto de roles ve las suyas según
// la regla de visibilidad del almacén.
func (s *Service) ListarCitas(ctx context.Context, actor Actor) ([]models.CitaDetalle, error) {
	if !actor.Rol.Valido() {
		return nil, errNoAutorizado("Rol de usuario inválido o ausente")
	}

	if actor.Rol == models.RolPersonalCentro {
		if actor.IDCentro == 0 {
			return nil, errValidacion("El usuario no tiene un centro de vacunación asignado")
		}
		citas, err := s.citas.ListarPorCentro(ctx, actor.IDCentro)
		if err != nil {
			return nil, errPersistencia("Error al obtener las citas del centro", err)
		}
		return citas, nil
	}

	citas, err := s.citas.ListarPorUsuario(ctx, actor.IDUsuario, actor.Rol)
	if err != nil {
		return nil, errPersistencia("Error al obtener las citas", err)
	}
	return citas, nil
}

// CrearCita agenda una nueva cita en estado Agendada. Cuando no se indica
// un niño, la cita es para el propio usuario que agenda.
func (s *Service) CrearCita(ctx context.Context, actor Actor, req models.CrearCitaRequest) (*models.Cita, error) {
	if !actor.Rol.Valido() {
		return nil, errNoAutorizado("Rol de usuario inválido o ausente")
	}
	if req.IDCentro == 0 || req.IDVacuna == 0 || req.Fecha == "" || req.Hora == "" {
		return nil, errValidacion("Faltan campos requeridos para la cita")
	}

	hora := NormalizarHora(req.Hora)
	if actor.Rol == models.RolTutor && !horaEnVentana(hora) {
		return nil, errValidacion("La hora debe estar entre las 07:00 y las 17:00")
	}

	nueva := models.NuevaCita{
		IDUsuario: actor.IDUsuario,
		IDNino:    req.IDNino,
		IDVacuna:  req.IDVacuna,
		IDCentro:  req.IDCentro,
		Fecha:     req.Fecha,
		Hora:      hora,
		Estado:    models.EstadoAgendada,
	}

	id, err := s.citas.Crear(ctx, nueva)
	if err != nil {
		if errors.Is(err, ErrRestriccion) {
			// El detalle de la restricción viaja al cliente, como hacía
			// el sistema con los mensajes del motor de base de datos
			return nil, &Error{Kind: KindConflicto, Mensaje: err.Error(), Causa: err}
		}
		return nil, errPersistencia("Error interno al crear la cita", err)
	}

	return &models.Cita{
		ID:        id,
		IDUsuario: nueva.IDUsuario,
		IDNino:    nueva.IDNino,
		IDVacuna:  nueva.IDVacuna,
		IDCentro:  nueva.IDCentro,
		Fecha:     nueva.Fecha,
		Hora:      nueva.Hora,
		Estado:    nueva.Estado,
	}, nil
}

// ActualizarCita sobrescribe los campos de una cita. Operación
// privilegiada: no aplica el orden de transiciones de estado.
func (s *Service) ActualizarCita(ctx context.Context, actor Actor, id int, req models.ActualizarCitaRequest) error {
	if !actor.Rol.EsPersonalPrivilegiado() {
		return errNoAutorizado("No tienes permisos para actualizar citas")
	}
	if req.Estado != "" && !req.Estado.Valido() {
		return errValidacion("Estado de cita inválido")
	}

	req.Hora = NormalizarHora(req.Hora)

	err := s.citas.Actualizar(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrCitaNoEncontrada) {
			return errNoEncontrado("La cita no existe")
		}
		return errPersistencia("Error al actualizar la cita", err)
	}
	return nil
}
