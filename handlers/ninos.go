package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/vacunas-backend/database"
	"github.com/lizet96/vacunas-backend/models"
)

// ObtenerNinos lista los niños vinculados al tutor autenticado. Los
// administradores ven todos los niños.
func ObtenerNinos(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)
	rol := c.Locals("user_rol").(models.Rol)

	query := `SELECT id_nino, nombre, apellido, to_char(fecha_nacimiento, 'YYYY-MM-DD'), id_tutor, created_at
		 FROM Nino`
	args := []interface{}{}

	if rol != models.RolAdministrador {
		query += " WHERE id_tutor = $1"
		args = append(args, userID)
	}
	query += " ORDER BY nombre, apellido"

	rows, err := database.GetDB().Query(context.Background(), query, args...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener los niños",
		})
	}
	defer rows.Close()

	var ninos []models.Nino
	for rows.Next() {
		var n models.Nino
		err := rows.Scan(&n.ID, &n.Nombre, &n.Apellido, &n.FechaNacimiento, &n.IDTutor, &n.CreatedAt)
		if err != nil {
			continue
		}
		ninos = append(ninos, n)
	}

	return c.JSON(fiber.Map{
		"ninos": ninos,
		"total": len(ninos),
	})
}

// ObtenerNinoPorID obtiene un niño específico. Un tutor solo puede ver
// sus propios niños vinculados.
func ObtenerNinoPorID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	userID := c.Locals("user_id").(int)
	rol := c.Locals("user_rol").(models.Rol)

	var n models.Nino
	err = database.GetDB().QueryRow(context.Background(),
		`SELECT id_nino, nombre, apellido, to_char(fecha_nacimiento, 'YYYY-MM-DD'), id_tutor, created_at
		 FROM Nino WHERE id_nino = $1`, id).Scan(
		&n.ID, &n.Nombre, &n.Apellido, &n.FechaNacimiento, &n.IDTutor, &n.CreatedAt)

	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Niño no encontrado",
		})
	}

	if rol == models.RolTutor && n.IDTutor != userID {
		return c.Status(403).JSON(fiber.Map{
			"error": "No puedes ver los datos de un niño que no está vinculado a tu cuenta",
		})
	}

	return c.JSON(n)
}
