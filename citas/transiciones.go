package citas

import (
	"context"
	"errors"

	"github.com/lizet96/vacunas-backend/models"
)

// EditarCita cambia fecha, hora y opcionalmente el médico de una cita.
// Reservado al personal del centro; solo citas en estado editable.
func (s *Service) EditarCita(ctx context.Context, actor Actor, id int, req models.EditarCitaRequest) (*models.Cita, error) {
	if actor.Rol != models.RolPersonalCentro {
		return nil, errNoAutorizado("Solo el personal del centro puede editar citas")
	}
	if req.Fecha == "" || req.Hora == "" {
		return nil, errValidacion("Fecha y Hora son campos requeridos")
	}
	if !HoraEditable(req.Hora) {
		return nil, errValidacion("Formato de hora inválido. Use HH:MM (ej: 14:30)")
	}

	hora := NormalizarHora(req.Hora)

	cita, err := s.citas.ActualizarDetalle(ctx, id, req.Fecha, hora, req.IDPersonalSalud)
	if err != nil {
		switch {
		case errors.Is(err, ErrCitaNoEncontrada):
			return nil, errNoEncontrado(ErrCitaNoEncontrada.Error())
		case errors.Is(err, ErrCitaAtendida):
			return nil, errConflicto(ErrCitaAtendida.Error())
		case errors.Is(err, ErrEstadoNoEditable):
			return nil, errConflicto(ErrEstadoNoEditable.Error())
		}
		return nil, errPersistencia("Error al actualizar la cita", err)
	}
	return cita, nil
}

// ResultadoAsignacion es el resultado explícito de asignar un médico. Un
// fallo de regla de negocio no es un error de transporte: viaja como
// Exito=false con su mensaje.
type ResultadoAsignacion struct {
	Exito   bool   `json:"exito"`
	Mensaje string `json:"mensaje"`
}

// AsignarMedico asocia un médico a la cita. El médico debe pertenecer al
// centro del personal que asigna y tener rol de médico; si no, la cita no
// se modifica y el resultado explica el motivo.
func (s *Service) AsignarMedico(ctx context.Context, actor Actor, idCita, idPersonal int) (ResultadoAsignacion, error) {
	var r ResultadoAsignacion

	if actor.Rol != models.RolPersonalCentro {
		return r, errNoAutorizado("Solo el personal del centro puede asignar médicos")
	}
	if idPersonal == 0 {
		return r, errValidacion("Debe especificar el ID del médico a asignar")
	}
	if actor.IDCentro == 0 {
		return r, errValidacion("No se encontró el centro de vacunación asignado al usuario")
	}

	cita, err := s.citas.ObtenerPorID(ctx, idCita)
	if err != nil {
		if errors.Is(err, ErrCitaNoEncontrada) {
			return r, errNoEncontrado(ErrCitaNoEncontrada.Error())
		}
		return r, errPersistencia("Error al consultar la cita", err)
	}

	if cita.Estado == models.EstadoAtendida {
		r.Mensaje = "No se puede asignar médico a una cita ya atendida"
		return r, nil
	}
	if cita.IDCentro != actor.IDCentro {
		r.Mensaje = "La cita no pertenece a su centro de vacunación"
		return r, nil
	}

	rol, err := s.catalogo.ObtenerRolDePersonal(ctx, idPersonal)
	if err != nil {
		return r, errPersistencia("Error al consultar el personal de salud", err)
	}
	if rol != models.RolMedico {
		r.Mensaje = "El personal seleccionado no tiene el rol de médico"
		return r, nil
	}

	centroPersonal, err := s.catalogo.ObtenerCentroDePersonal(ctx, idPersonal)
	if err != nil {
		return r, errPersistencia("Error al consultar el personal de salud", err)
	}
	if centroPersonal != cita.IDCentro {
		r.Mensaje = "El médico no pertenece al centro de vacunación de la cita"
		return r, nil
	}

	if err := s.citas.AsignarPersonal(ctx, idCita, idPersonal); err != nil {
		return r, errPersistencia("Error al asignar el médico a la cita", err)
	}

	r.Exito = true
	r.Mensaje = "Médico asignado exitosamente a la cita"
	return r, nil
}

// ConfirmarCita transiciona una cita de Agendada a Confirmada asociando
// el médico indicado
func (s *Service) ConfirmarCita(ctx context.Context, actor Actor, idCita, idPersonal int) (*models.Cita, error) {
	if actor.Rol != models.RolPersonalCentro {
		return nil, errNoAutorizado("Solo el personal del centro puede confirmar citas")
	}
	if idPersonal == 0 {
		return nil, errValidacion("Debe especificar el ID del médico para confirmar la cita")
	}
	if actor.IDCentro == 0 {
		return nil, errValidacion("No se encontró el centro de vacunación asignado al usuario")
	}

	cita, err := s.citas.ObtenerPorID(ctx, idCita)
	if err != nil {
		if errors.Is(err, ErrCitaNoEncontrada) {
			return nil, errNoEncontrado(ErrCitaNoEncontrada.Error())
		}
		return nil, errPersistencia("Error al consultar la cita", err)
	}

	rol, err := s.catalogo.ObtenerRolDePersonal(ctx, idPersonal)
	if err != nil {
		return nil, errPersistencia("Error al consultar el personal de salud", err)
	}
	if rol != models.RolMedico {
		return nil, errConflicto("El personal seleccionado no tiene el rol correcto")
	}

	centroPersonal, err := s.catalogo.ObtenerCentroDePersonal(ctx, idPersonal)
	if err != nil {
		return nil, errPersistencia("Error al consultar el personal de salud", err)
	}
	if centroPersonal != cita.IDCentro {
		return nil, errConflicto("El médico no pertenece al centro de vacunación de la cita")
	}

	// Check-and-set: si otra petición confirmó primero, la transición no
	// encuentra la cita en Agendada y la operación falla.
	ok, err := s.citas.CambiarEstado(ctx, idCita, models.EstadoAgendada, models.EstadoConfirmada, &idPersonal)
	if err != nil {
		return nil, errPersistencia("Error al confirmar la cita", err)
	}
	if !ok {
		return nil, errConflicto("Solo se pueden confirmar citas en estado Agendada")
	}

	cita.Estado = models.EstadoConfirmada
	cita.IDPersonalSalud = &idPersonal
	return cita, nil
}
