package citas

import (
	"context"
	"errors"
	"time"

	"github.com/lizet96/vacunas-backend/models"
)

// DiasMinimosProximaDosis es el plazo mínimo entre la dosis aplicada y la
// próxima dosis programada.
const DiasMinimosProximaDosis = 21

// ResultadoVacunacion es la respuesta del registro de una dosis
type ResultadoVacunacion struct {
	Mensaje     string `json:"mensaje"`
	NumeroDosis int    `json:"numero_dosis"`
}

// RegistrarVacunacion crea el registro de la dosis aplicada y transiciona
// la cita a Atendida. La validación del lote ocurre completa antes de
// cualquier mutación; el almacén ejecuta el resto en una transacción.
func (s *Service) RegistrarVacunacion(ctx context.Context, actor Actor, idCita int, req models.RegistrarVacunacionRequest) (*ResultadoVacunacion, error) {
	if actor.Rol != models.RolAdministrador && actor.Rol != models.RolPersonalCentro {
		return nil, errNoAutorizado("No tienes permisos para registrar vacunaciones")
	}
	if req.IDLote == 0 || req.IDPersonalSalud == 0 {
		return nil, errValidacion("Debe indicar el lote aplicado y el personal de salud")
	}

	cita, err := s.citas.ObtenerPorID(ctx, idCita)
	if err != nil {
		if errors.Is(err, ErrCitaNoEncontrada) {
			return nil, errNoEncontrado(ErrCitaNoEncontrada.Error())
		}
		return nil, errPersistencia("Error al consultar la cita", err)
	}
	if !cita.Estado.PuedeAtenderse() {
		return nil, errConflicto("La cita ya ha sido atendida")
	}

	lote, err := s.catalogo.ObtenerLote(ctx, req.IDLote)
	if err != nil {
		return nil, errPersistencia("Error al consultar el lote de vacuna", err)
	}
	if lote == nil {
		return nil, errValidacion("El lote de vacuna indicado no existe")
	}
	if lote.IDVacuna != cita.IDVacuna {
		return nil, errValidacion("El lote no corresponde a la vacuna de la cita")
	}
	if lote.Caducado(s.ahora()) {
		return nil, errValidacion("El lote de vacuna está caducado")
	}
	if lote.CantidadDisponible <= 0 {
		return nil, errValidacion("El lote no tiene dosis disponibles")
	}

	opciones, err := s.opcionesProximaDosis(cita, req)
	if err != nil {
		return nil, err
	}

	previas, err := s.catalogo.ContarDosisAplicadas(ctx, cita.IDUsuario, cita.IDNino, cita.IDVacuna)
	if err != nil {
		return nil, errPersistencia("Error al consultar el historial de dosis", err)
	}

	registro := models.RegistroVacunacion{
		IDCita:          idCita,
		IDPersonalSalud: req.IDPersonalSalud,
		IDLote:          req.IDLote,
		NombrePersonal:  req.NombrePersonal,
		DosisAplicada:   req.DosisAplicada,
		NumeroDosis:     previas + 1,
		EdadAlMomento:   req.EdadAlMomento,
		Notas:           req.Notas,
		Alergias:        req.Alergias,
	}

	mensaje, err := s.registro.RegistrarVacunacion(ctx, registro, opciones)
	if err != nil {
		switch {
		case errors.Is(err, ErrTransicionInvalida):
			return nil, errConflicto("La cita ya ha sido atendida")
		case errors.Is(err, ErrLoteSinDisponibilidad):
			return nil, errConflicto(ErrLoteSinDisponibilidad.Error())
		}
		return nil, errPersistencia("Error al registrar la vacunación", err)
	}

	return &ResultadoVacunacion{Mensaje: mensaje, NumeroDosis: registro.NumeroDosis}, nil
}

// opcionesProximaDosis valida la programación opcional de la próxima
// dosis. El plazo mínimo de 21 días se verifica aquí y no solo en el
// formulario.
func (s *Service) opcionesProximaDosis(cita *models.Cita, req models.RegistrarVacunacionRequest) (OpcionesProximaDosis, error) {
	var op OpcionesProximaDosis
	if !req.RequiereProximaDosis {
		return op, nil
	}

	if req.FechaProximaDosis == "" {
		return op, errValidacion("Debe indicar la fecha de la próxima dosis")
	}
	fecha, err := time.Parse("2006-01-02", req.FechaProximaDosis)
	if err != nil {
		return op, errValidacion("Formato de fecha inválido para la próxima dosis. Use AAAA-MM-DD")
	}
	minima := s.ahora().AddDate(0, 0, DiasMinimosProximaDosis).Truncate(24 * time.Hour)
	if fecha.Before(minima) {
		return op, errValidacion("La próxima dosis debe programarse con al menos 21 días de anticipación")
	}

	op.Requerida = true
	op.Fecha = req.FechaProximaDosis
	op.AgendarCita = req.AgendarProximaCita
	if req.AgendarProximaCita {
		op.Plantilla = models.NuevaCita{
			IDUsuario: cita.IDUsuario,
			IDNino:    cita.IDNino,
			IDVacuna:  cita.IDVacuna,
			IDCentro:  cita.IDCentro,
			Fecha:     req.FechaProximaDosis,
			Hora:      cita.Hora,
			Estado:    models.EstadoAgendada,
		}
	}
	return op, nil
}

// ObtenerMedicosPorCentro lista el personal médico de un centro
func (s *Service) ObtenerMedicosPorCentro(ctx context.Context, idCentro int) ([]models.Medico, error) {
	if idCentro == 0 {
		return nil, errValidacion("No se encontró el centro de vacunación asignado al usuario")
	}
	medicos, err := s.catalogo.ListarMedicosPorCentro(ctx, idCentro)
	if err != nil {
		return nil, errPersistencia("Error al obtener los médicos del centro", err)
	}
	return medicos, nil
}

// ContarDosisAplicadas expone el conteo de dosis previas que usa el
// cálculo del número de dosis, para que la interfaz médica lo muestre.
func (s *Service) ContarDosisAplicadas(ctx context.Context, idUsuario int, idNino *int, idVacuna int) (int, error) {
	n, err := s.catalogo.ContarDosisAplicadas(ctx, idUsuario, idNino, idVacuna)
	if err != nil {
		return 0, errPersistencia("Error al consultar el historial de dosis", err)
	}
	return n, nil
}
