package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lizet96/vacunas-backend/citas"
	"github.com/lizet96/vacunas-backend/models"
)

// RegistroStore implementa citas.RegistroStore. Todo el registro de una
// vacunación ocurre en una sola transacción: si cualquier paso falla, la
// cita y el lote quedan intactos.
type RegistroStore struct {
	pool *pgxpool.Pool
}

func NewRegistroStore(pool *pgxpool.Pool) *RegistroStore {
	return &RegistroStore{pool: pool}
}

// RegistrarVacunacion inserta el registro de la dosis, descuenta la
// existencia del lote y transiciona la cita a Atendida. Devuelve el
// mensaje de confirmación para el usuario.
func (s *RegistroStore) RegistrarVacunacion(ctx context.Context, registro models.RegistroVacunacion, opciones citas.OpcionesProximaDosis) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	// El descuento verifica la existencia otra vez dentro de la
	// transacción: dos registros concurrentes no pueden consumir la
	// misma última dosis.
	tag, err := tx.Exec(ctx,
		`UPDATE LoteVacuna SET cantidad_disponible = cantidad_disponible - 1
		 WHERE id_lote = $1 AND cantidad_disponible > 0`, registro.IDLote)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() == 0 {
		return "", citas.ErrLoteSinDisponibilidad
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO RegistroVacunacion
			(id_cita, id_personal_salud, id_lote, nombre_personal, dosis_aplicada,
			 numero_dosis, edad_al_momento, notas, alergias, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		registro.IDCita, registro.IDPersonalSalud, registro.IDLote,
		registro.NombrePersonal, registro.DosisAplicada, registro.NumeroDosis,
		registro.EdadAlMomento, registro.Notas, registro.Alergias, time.Now())
	if err != nil {
		return "", err
	}

	tag, err = tx.Exec(ctx,
		`UPDATE Cita SET estado = $1, updated_at = $2
		 WHERE id_cita = $3 AND estado IN ($4, $5)`,
		models.EstadoAtendida, time.Now(), registro.IDCita,
		models.EstadoAgendada, models.EstadoConfirmada)
	if err != nil {
		return "", err
	}
	if tag.RowsAffected() == 0 {
		return "", citas.ErrTransicionInvalida
	}

	mensaje := fmt.Sprintf("Vacunación registrada exitosamente. Dosis número %d aplicada.", registro.NumeroDosis)

	if opciones.Requerida {
		_, err = tx.Exec(ctx,
			`INSERT INTO RecordatorioDosis (id_cita, fecha_objetivo, created_at)
			 VALUES ($1, $2, $3)`,
			registro.IDCita, opciones.Fecha, time.Now())
		if err != nil {
			return "", err
		}
		mensaje += fmt.Sprintf(" Próxima dosis programada para el %s.", opciones.Fecha)

		if opciones.AgendarCita {
			p := opciones.Plantilla
			_, err = tx.Exec(ctx,
				`INSERT INTO Cita (id_usuario, id_nino, id_vacuna, id_centro, fecha, hora, estado, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.IDUsuario, p.IDNino, p.IDVacuna, p.IDCentro,
				p.Fecha, p.Hora, p.Estado, time.Now(), time.Now())
			if err != nil {
				return "", err
			}
			mensaje += " Se creó la cita de seguimiento."
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return mensaje, nil
}
