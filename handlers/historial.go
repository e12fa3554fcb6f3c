package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/lizet96/vacunas-backend/database"
	"github.com/lizet96/vacunas-backend/models"
)

// ObtenerHistorialPorNino devuelve las dosis aplicadas a un niño. Un
// tutor solo consulta el historial de sus niños vinculados.
func ObtenerHistorialPorNino(c *fiber.Ctx) error {
	idNino, err := strconv.Atoi(c.Params("id_nino"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID de niño inválido",
		})
	}

	userID := c.Locals("user_id").(int)
	rol := c.Locals("user_rol").(models.Rol)

	if rol == models.RolTutor {
		var idTutor int
		err := database.GetDB().QueryRow(context.Background(),
			"SELECT id_tutor FROM Nino WHERE id_nino = $1", idNino).Scan(&idTutor)
		if err != nil || idTutor != userID {
			return c.Status(403).JSON(fiber.Map{
				"error": "No puedes ver el historial de un niño que no está vinculado a tu cuenta",
			})
		}
	}

	rows, err := database.GetDB().Query(context.Background(),
		`SELECT r.id_registro, r.id_cita, r.id_personal_salud, r.id_lote,
			r.nombre_personal, r.dosis_aplicada, r.numero_dosis,
			r.edad_al_momento, r.notas, r.alergias, r.created_at
		 FROM RegistroVacunacion r
		 JOIN Cita c ON r.id_cita = c.id_cita
		 WHERE c.id_nino = $1
		 ORDER BY r.created_at`, idNino)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener el historial de vacunación",
		})
	}
	defer rows.Close()

	registros, err := escanearRegistros(rows)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener el historial de vacunación",
		})
	}

	return c.JSON(fiber.Map{
		"historial": registros,
		"total":     len(registros),
	})
}

// ObtenerDosisAplicadas expone el conteo de dosis previas del par
// paciente y vacuna, el mismo que usa el registro para numerar la dosis.
func ObtenerDosisAplicadas(c *fiber.Ctx) error {
	idVacuna, err := strconv.Atoi(c.Params("id_vacuna"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID de vacuna inválido",
		})
	}

	idUsuario, _ := strconv.Atoi(c.Query("id_usuario"))
	var idNino *int
	if v, err := strconv.Atoi(c.Query("id_nino")); err == nil && v > 0 {
		idNino = &v
	}
	if idUsuario == 0 && idNino == nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Debe indicar el usuario o el niño a consultar",
		})
	}

	total, err := servicioCitas().ContarDosisAplicadas(c.Context(), idUsuario, idNino, idVacuna)
	if err != nil {
		return responderErrorCita(c, err)
	}

	return c.JSON(fiber.Map{
		"dosis_aplicadas": total,
	})
}

func escanearRegistros(rows pgx.Rows) ([]models.RegistroVacunacion, error) {
	var registros []models.RegistroVacunacion
	for rows.Next() {
		var r models.RegistroVacunacion
		err := rows.Scan(&r.ID, &r.IDCita, &r.IDPersonalSalud, &r.IDLote,
			&r.NombrePersonal, &r.DosisAplicada, &r.NumeroDosis,
			&r.EdadAlMomento, &r.Notas, &r.Alergias, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		registros = append(registros, r)
	}
	return registros, rows.Err()
}
