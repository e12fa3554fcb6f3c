package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lizet96/vacunas-backend/models"
)

// CatalogoStore implementa citas.CatalogoStore: consultas de solo lectura
// sobre lotes, personal y dosis aplicadas.
type CatalogoStore struct {
	pool *pgxpool.Pool
}

func NewCatalogoStore(pool *pgxpool.Pool) *CatalogoStore {
	return &CatalogoStore{pool: pool}
}

// ObtenerLote busca un lote por id. Devuelve nil sin error si no existe.
func (s *CatalogoStore) ObtenerLote(ctx context.Context, idLote int) (*models.LoteVacuna, error) {
	var l models.LoteVacuna
	err := s.pool.QueryRow(ctx,
		`SELECT id_lote, numero_lote, id_vacuna, id_centro, nombre_fabricante,
			to_char(fecha_caducidad, 'YYYY-MM-DD'), cantidad_disponible, created_at
		 FROM LoteVacuna WHERE id_lote = $1`, idLote).Scan(
		&l.ID, &l.NumeroLote, &l.IDVacuna, &l.IDCentro, &l.NombreFabricante,
		&l.FechaCaducidad, &l.CantidadDisponible, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// ObtenerCentroDePersonal devuelve el centro asignado a un usuario de
// personal de salud; 0 si no tiene centro.
func (s *CatalogoStore) ObtenerCentroDePersonal(ctx context.Context, idPersonal int) (int, error) {
	var idCentro *int
	err := s.pool.QueryRow(ctx,
		"SELECT id_centro FROM Usuario WHERE id_usuario = $1", idPersonal).Scan(&idCentro)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	if idCentro == nil {
		return 0, nil
	}
	return *idCentro, nil
}

// ObtenerRolDePersonal devuelve el rol de un usuario; 0 si no existe
func (s *CatalogoStore) ObtenerRolDePersonal(ctx context.Context, idPersonal int) (models.Rol, error) {
	var rol models.Rol
	err := s.pool.QueryRow(ctx,
		"SELECT id_rol FROM Usuario WHERE id_usuario = $1", idPersonal).Scan(&rol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return rol, nil
}

// ContarDosisAplicadas cuenta las dosis registradas del par paciente y
// vacuna. El paciente es el niño cuando la cita tiene niño asociado; si
// no, el propio usuario.
func (s *CatalogoStore) ContarDosisAplicadas(ctx context.Context, idUsuario int, idNino *int, idVacuna int) (int, error) {
	var (
		total int
		err   error
	)
	if idNino != nil {
		err = s.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM RegistroVacunacion r
			 JOIN Cita c ON r.id_cita = c.id_cita
			 WHERE c.id_nino = $1 AND c.id_vacuna = $2`, *idNino, idVacuna).Scan(&total)
	} else {
		err = s.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM RegistroVacunacion r
			 JOIN Cita c ON r.id_cita = c.id_cita
			 WHERE c.id_usuario = $1 AND c.id_nino IS NULL AND c.id_vacuna = $2`, idUsuario, idVacuna).Scan(&total)
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListarMedicosPorCentro devuelve el personal con rol de médico de un centro
func (s *CatalogoStore) ListarMedicosPorCentro(ctx context.Context, idCentro int) ([]models.Medico, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_usuario, nombre, apellido, email, id_centro
		 FROM Usuario WHERE id_rol = $1 AND id_centro = $2
		 ORDER BY nombre, apellido`, models.RolMedico, idCentro)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medicos []models.Medico
	for rows.Next() {
		var m models.Medico
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Apellido, &m.Email, &m.IDCentro); err != nil {
			return nil, err
		}
		medicos = append(medicos, m)
	}
	return medicos, rows.Err()
}

// ListarCentros devuelve el catálogo de centros de vacunación
func (s *CatalogoStore) ListarCentros(ctx context.Context) ([]models.CentroVacunacion, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id_centro, nombre, direccion, telefono, provincia FROM CentroVacunacion ORDER BY nombre")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centros []models.CentroVacunacion
	for rows.Next() {
		var c models.CentroVacunacion
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Direccion, &c.Telefono, &c.Provincia); err != nil {
			return nil, err
		}
		centros = append(centros, c)
	}
	return centros, rows.Err()
}

// ListarVacunas devuelve el catálogo de vacunas
func (s *CatalogoStore) ListarVacunas(ctx context.Context) ([]models.Vacuna, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id_vacuna, nombre, descripcion, dosis_limite FROM Vacuna ORDER BY nombre")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vacunas []models.Vacuna
	for rows.Next() {
		var v models.Vacuna
		if err := rows.Scan(&v.ID, &v.Nombre, &v.Descripcion, &v.DosisLimite); err != nil {
			return nil, err
		}
		vacunas = append(vacunas, v)
	}
	return vacunas, rows.Err()
}

// ListarLotesDisponibles devuelve los lotes vigentes y con existencia de
// una vacuna en un centro, para el selector del personal médico.
func (s *CatalogoStore) ListarLotesDisponibles(ctx context.Context, idVacuna, idCentro int) ([]models.LoteVacuna, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id_lote, numero_lote, id_vacuna, id_centro, nombre_fabricante,
			to_char(fecha_caducidad, 'YYYY-MM-DD'), cantidad_disponible, created_at
		 FROM LoteVacuna
		 WHERE id_vacuna = $1 AND id_centro = $2
			AND fecha_caducidad >= CURRENT_DATE AND cantidad_disponible > 0
		 ORDER BY fecha_caducidad`, idVacuna, idCentro)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lotes []models.LoteVacuna
	for rows.Next() {
		var l models.LoteVacuna
		err := rows.Scan(&l.ID, &l.NumeroLote, &l.IDVacuna, &l.IDCentro, &l.NombreFabricante,
			&l.FechaCaducidad, &l.CantidadDisponible, &l.CreatedAt)
		if err != nil {
			return nil, err
		}
		lotes = append(lotes, l)
	}
	return lotes, rows.Err()
}
