package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lizet96/vacunas-backend/citas"
	"github.com/lizet96/vacunas-backend/models"
)

// CitasStore implementa citas.CitaStore sobre PostgreSQL. Las reglas que
// el sistema anterior dejaba en procedimientos almacenados viven aquí
// como transacciones con verificación de estado.
type CitasStore struct {
	pool *pgxpool.Pool
}

func NewCitasStore(pool *pgxpool.Pool) *CitasStore {
	return &CitasStore{pool: pool}
}

const columnasDetalle = `
	c.id_cita, c.id_usuario, c.id_nino, c.id_vacuna, c.id_centro,
	to_char(c.fecha, 'YYYY-MM-DD'), to_char(c.hora, 'HH24:MI:SS'),
	c.estado, c.id_personal_salud, c.created_at, c.updated_at,
	COALESCE(n.nombre || ' ' || n.apellido, u.nombre || ' ' || u.apellido) AS nombre_paciente,
	v.nombre AS nombre_vacuna,
	ce.nombre AS nombre_centro,
	m.nombre || ' ' || m.apellido AS nombre_medico`

const joinsDetalle = `
	FROM Cita c
	JOIN Usuario u ON c.id_usuario = u.id_usuario
	JOIN Vacuna v ON c.id_vacuna = v.id_vacuna
	JOIN CentroVacunacion ce ON c.id_centro = ce.id_centro
	LEFT JOIN Nino n ON c.id_nino = n.id_nino
	LEFT JOIN Usuario m ON c.id_personal_salud = m.id_usuario`

// ListarPorCentro devuelve todas las citas de un centro de vacunación
func (s *CitasStore) ListarPorCentro(ctx context.Context, idCentro int) ([]models.CitaDetalle, error) {
	query := "SELECT " + columnasDetalle + joinsDetalle +
		" WHERE c.id_centro = $1 ORDER BY c.fecha, c.hora, c.id_cita"

	rows, err := s.pool.Query(ctx, query, idCentro)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return escanearDetalles(rows)
}

// ListarPorUsuario aplica la regla de visibilidad por rol: el tutor ve
// las citas que agendó (propias o de sus niños vinculados); los demás
// roles no privilegiados solo ven citas propias.
func (s *CitasStore) ListarPorUsuario(ctx context.Context, idUsuario int, rol models.Rol) ([]models.CitaDetalle, error) {
	var filtro string
	switch {
	case rol == models.RolAdministrador || rol == models.RolDigitador:
		filtro = " ORDER BY c.fecha, c.hora, c.id_cita"
	case rol == models.RolTutor:
		filtro = ` WHERE c.id_usuario = $1
			OR c.id_nino IN (SELECT id_nino FROM Nino WHERE id_tutor = $1)
			ORDER BY c.fecha, c.hora, c.id_cita`
	default:
		filtro = " WHERE c.id_usuario = $1 ORDER BY c.fecha, c.hora, c.id_cita"
	}

	query := "SELECT " + columnasDetalle + joinsDetalle + filtro

	var (
		rows pgx.Rows
		err  error
	)
	if rol == models.RolAdministrador || rol == models.RolDigitador {
		rows, err = s.pool.Query(ctx, query)
	} else {
		rows, err = s.pool.Query(ctx, query, idUsuario)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return escanearDetalles(rows)
}

func escanearDetalles(rows pgx.Rows) ([]models.CitaDetalle, error) {
	var detalles []models.CitaDetalle
	for rows.Next() {
		var d models.CitaDetalle
		err := rows.Scan(&d.ID, &d.IDUsuario, &d.IDNino, &d.IDVacuna, &d.IDCentro,
			&d.Fecha, &d.Hora, &d.Estado, &d.IDPersonalSalud, &d.CreatedAt, &d.UpdatedAt,
			&d.NombrePaciente, &d.NombreVacuna, &d.NombreCentro, &d.NombreMedico)
		if err != nil {
			return nil, err
		}
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}

// Crear inserta una cita nueva y devuelve su id
func (s *CitasStore) Crear(ctx context.Context, cita models.NuevaCita) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO Cita (id_usuario, id_nino, id_vacuna, id_centro, fecha, hora, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id_cita`,
		cita.IDUsuario, cita.IDNino, cita.IDVacuna, cita.IDCentro,
		cita.Fecha, cita.Hora, cita.Estado, time.Now(), time.Now()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
			// Violación de integridad: centro, vacuna o niño inexistente
			return 0, fmt.Errorf("%w: %s", citas.ErrRestriccion, pgErr.Message)
		}
		return 0, err
	}
	return id, nil
}

// ObtenerPorID busca una cita por su id
func (s *CitasStore) ObtenerPorID(ctx context.Context, id int) (*models.Cita, error) {
	var c models.Cita
	err := s.pool.QueryRow(ctx,
		`SELECT id_cita, id_usuario, id_nino, id_vacuna, id_centro,
			to_char(fecha, 'YYYY-MM-DD'), to_char(hora, 'HH24:MI:SS'),
			estado, id_personal_salud, created_at, updated_at
		 FROM Cita WHERE id_cita = $1`, id).Scan(
		&c.ID, &c.IDUsuario, &c.IDNino, &c.IDVacuna, &c.IDCentro,
		&c.Fecha, &c.Hora, &c.Estado, &c.IDPersonalSalud, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, citas.ErrCitaNoEncontrada
		}
		return nil, err
	}
	return &c, nil
}

// Actualizar sobrescribe los campos de la cita sin verificar transiciones
func (s *CitasStore) Actualizar(ctx context.Context, id int, datos models.ActualizarCitaRequest) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE Cita SET id_vacuna = $1, id_centro = $2, fecha = $3, hora = $4, estado = $5, updated_at = $6
		 WHERE id_cita = $7`,
		datos.IDVacuna, datos.IDCentro, datos.Fecha, datos.Hora, datos.Estado, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return citas.ErrCitaNoEncontrada
	}
	return nil
}

// ActualizarDetalle modifica fecha, hora y personal dentro de una
// transacción que verifica el estado actual de la cita.
func (s *CitasStore) ActualizarDetalle(ctx context.Context, id int, fecha, hora string, idPersonal *int) (*models.Cita, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var estado models.EstadoCita
	err = tx.QueryRow(ctx,
		"SELECT estado FROM Cita WHERE id_cita = $1 FOR UPDATE", id).Scan(&estado)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, citas.ErrCitaNoEncontrada
		}
		return nil, err
	}
	if estado == models.EstadoAtendida {
		return nil, citas.ErrCitaAtendida
	}
	if !estado.PuedeEditarse() {
		return nil, citas.ErrEstadoNoEditable
	}

	var c models.Cita
	err = tx.QueryRow(ctx,
		`UPDATE Cita SET fecha = $1, hora = $2,
			id_personal_salud = COALESCE($3, id_personal_salud),
			updated_at = $4
		 WHERE id_cita = $5
		 RETURNING id_cita, id_usuario, id_nino, id_vacuna, id_centro,
			to_char(fecha, 'YYYY-MM-DD'), to_char(hora, 'HH24:MI:SS'),
			estado, id_personal_salud, created_at, updated_at`,
		fecha, hora, idPersonal, time.Now(), id).Scan(
		&c.ID, &c.IDUsuario, &c.IDNino, &c.IDVacuna, &c.IDCentro,
		&c.Fecha, &c.Hora, &c.Estado, &c.IDPersonalSalud, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

// CambiarEstado ejecuta la transición solo si la cita sigue en el estado
// de partida. Dos transiciones concurrentes sobre la misma cita no pueden
// tener éxito ambas: la segunda no encuentra el estado esperado.
func (s *CitasStore) CambiarEstado(ctx context.Context, id int, desde, hacia models.EstadoCita, idPersonal *int) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE Cita SET estado = $1,
			id_personal_salud = COALESCE($2, id_personal_salud),
			updated_at = $3
		 WHERE id_cita = $4 AND estado = $5`,
		hacia, idPersonal, time.Now(), id, desde)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AsignarPersonal asocia el médico sin tocar el estado
func (s *CitasStore) AsignarPersonal(ctx context.Context, id int, idPersonal int) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE Cita SET id_personal_salud = $1, updated_at = $2 WHERE id_cita = $3",
		idPersonal, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return citas.ErrCitaNoEncontrada
	}
	return nil
}
