package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/vacunas-backend/database"
	"github.com/lizet96/vacunas-backend/models"
)

// ObtenerCentros lista los centros de vacunación
func ObtenerCentros(c *fiber.Ctx) error {
	store := database.NewCatalogoStore(database.GetDB())

	centros, err := store.ListarCentros(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener los centros de vacunación",
		})
	}

	return c.JSON(fiber.Map{
		"centros": centros,
		"total":   len(centros),
	})
}

// ObtenerVacunas lista el catálogo de vacunas
func ObtenerVacunas(c *fiber.Ctx) error {
	store := database.NewCatalogoStore(database.GetDB())

	vacunas, err := store.ListarVacunas(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener las vacunas",
		})
	}

	return c.JSON(fiber.Map{
		"vacunas": vacunas,
		"total":   len(vacunas),
	})
}

// ObtenerLotesDisponibles lista los lotes vigentes de una vacuna en el
// centro del usuario, para el selector al registrar una dosis
func ObtenerLotesDisponibles(c *fiber.Ctx) error {
	idVacuna, err := strconv.Atoi(c.Params("id_vacuna"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID de vacuna inválido",
		})
	}

	idCentro, _ := c.Locals("user_centro").(int)
	if idCentro == 0 {
		// Los administradores indican el centro por query
		idCentro, _ = strconv.Atoi(c.Query("id_centro"))
	}
	if idCentro == 0 {
		return c.Status(400).JSON(fiber.Map{
			"error": "No se encontró el centro de vacunación asignado al usuario",
		})
	}

	store := database.NewCatalogoStore(database.GetDB())

	lotes, err := store.ListarLotesDisponibles(c.Context(), idVacuna, idCentro)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al obtener los lotes de vacuna",
		})
	}

	if lotes == nil {
		lotes = []models.LoteVacuna{}
	}

	return c.JSON(fiber.Map{
		"lotes": lotes,
		"total": len(lotes),
	})
}
