package handlers

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/lizet96/vacunas-backend/citas"
	"github.com/lizet96/vacunas-backend/database"
	"github.com/lizet96/vacunas-backend/middleware"
	"github.com/lizet96/vacunas-backend/models"
)

var (
	citasOnce sync.Once
	citasSvc  *citas.Service
)

// servicioCitas construye el núcleo de agendamiento sobre el pool global
func servicioCitas() *citas.Service {
	citasOnce.Do(func() {
		pool := database.GetDB()
		citasSvc = citas.NewService(
			database.NewCitasStore(pool),
			database.NewCatalogoStore(pool),
			database.NewRegistroStore(pool),
			nil,
		)
	})
	return citasSvc
}

// actorDesdeContexto arma el actor con los datos que dejó el middleware JWT
func actorDesdeContexto(c *fiber.Ctx) citas.Actor {
	var actor citas.Actor
	if id, ok := c.Locals("user_id").(int); ok {
		actor.IDUsuario = id
	}
	if rol, ok := c.Locals("user_rol").(models.Rol); ok {
		actor.Rol = rol
	}
	if centro, ok := c.Locals("user_centro").(int); ok {
		actor.IDCentro = centro
	}
	return actor
}

func emailDesdeContexto(c *fiber.Ctx) string {
	if email, ok := c.Locals("user_email").(string); ok {
		return email
	}
	return ""
}

// responderErrorCita traduce los errores estructurados del núcleo al
// código HTTP correspondiente. Los fallos de persistencia se registran
// con su detalle pero el cliente recibe un mensaje genérico.
func responderErrorCita(c *fiber.Ctx, err error) error {
	var e *citas.Error
	if !errors.As(err, &e) {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}

	switch e.Kind {
	case citas.KindValidacion:
		return c.Status(400).JSON(fiber.Map{"error": e.Mensaje})
	case citas.KindNoAutorizado:
		return c.Status(403).JSON(fiber.Map{"error": e.Mensaje})
	case citas.KindNoEncontrado:
		return c.Status(404).JSON(fiber.Map{"error": e.Mensaje})
	case citas.KindConflicto:
		return c.Status(400).JSON(fiber.Map{"error": e.Mensaje})
	default:
		middleware.LogCustomEvent(
			models.LogLevelError,
			e.Error(),
			emailDesdeContexto(c),
			"",
			map[string]interface{}{"path": c.Path(), "action": "cita_error"},
		)
		return c.Status(500).JSON(fiber.Map{"error": e.Mensaje})
	}
}

// ObtenerCitas devuelve las citas visibles para el usuario autenticado
func ObtenerCitas(c *fiber.Ctx) error {
	actor := actorDesdeContexto(c)

	listado, err := servicioCitas().ListarCitas(c.Context(), actor)
	if err != nil {
		return responderErrorCita(c, err)
	}

	return c.JSON(fiber.Map{
		"citas": listado,
		"total": len(listado),
	})
}

// CrearCita agenda una nueva cita de vacunación
func CrearCita(c *fiber.Ctx) error {
	var req models.CrearCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	actor := actorDesdeContexto(c)

	cita, err := servicioCitas().CrearCita(c.Context(), actor, req)
	if err != nil {
		return responderErrorCita(c, err)
	}

	middleware.LogCustomEvent(
		models.LogLevelSuccess,
		"Cita creada exitosamente",
		emailDesdeContexto(c),
		actor.Rol.Nombre(),
		map[string]interface{}{
			"cita_id":   cita.ID,
			"centro_id": cita.IDCentro,
			"vacuna_id": cita.IDVacuna,
			"action":    "cita_created",
		},
	)

	return c.Status(201).JSON(fiber.Map{
		"mensaje": "Cita creada exitosamente",
		"cita":    cita,
	})
}

// ActualizarCita sobrescribe una cita (administradores y digitadores)
func ActualizarCita(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var req models.ActualizarCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	actor := actorDesdeContexto(c)

	if err := servicioCitas().ActualizarCita(c.Context(), actor, id, req); err != nil {
		return responderErrorCita(c, err)
	}

	return c.JSON(fiber.Map{
		"mensaje": "Cita actualizada exitosamente",
	})
}

// EditarCita cambia fecha, hora y médico de una cita (personal del centro)
func EditarCita(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var req models.EditarCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	actor := actorDesdeContexto(c)

	cita, err := servicioCitas().EditarCita(c.Context(), actor, id, req)
	if err != nil {
		return responderErrorCita(c, err)
	}

	return c.JSON(fiber.Map{
		"mensaje": "Cita actualizada exitosamente",
		"cita":    cita,
	})
}

// AsignarMedico asocia un médico a una cita. Un rechazo de regla de
// negocio responde 400 con el motivo, no 500.
func AsignarMedico(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var req models.AsignarMedicoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	actor := actorDesdeContexto(c)

	resultado, err := servicioCitas().AsignarMedico(c.Context(), actor, id, req.IDPersonalSalud)
	if err != nil {
		return responderErrorCita(c, err)
	}

	if !resultado.Exito {
		return c.Status(400).JSON(fiber.Map{
			"mensaje": resultado.Mensaje,
		})
	}

	return c.JSON(fiber.Map{
		"mensaje": resultado.Mensaje,
	})
}

// ConfirmarCita transiciona la cita a Confirmada con el médico indicado
func ConfirmarCita(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var req models.ConfirmarCitaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	actor := actorDesdeContexto(c)

	cita, err := servicioCitas().ConfirmarCita(c.Context(), actor, id, req.IDPersonalSalud)
	if err != nil {
		return responderErrorCita(c, err)
	}

	return c.JSON(fiber.Map{
		"mensaje": "Cita confirmada exitosamente",
		"cita":    cita,
	})
}

// RegistrarVacunacion registra la dosis aplicada y marca la cita como Atendida
func RegistrarVacunacion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	var req models.RegistrarVacunacionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	actor := actorDesdeContexto(c)

	resultado, err := servicioCitas().RegistrarVacunacion(c.Context(), actor, id, req)
	if err != nil {
		return responderErrorCita(c, err)
	}

	middleware.LogCustomEvent(
		models.LogLevelSuccess,
		"Vacunación registrada",
		emailDesdeContexto(c),
		actor.Rol.Nombre(),
		map[string]interface{}{
			"cita_id":      id,
			"lote_id":      req.IDLote,
			"numero_dosis": resultado.NumeroDosis,
			"action":       "vacunacion_registrada",
		},
	)

	return c.JSON(fiber.Map{
		"mensaje":      resultado.Mensaje,
		"numero_dosis": resultado.NumeroDosis,
	})
}

// ObtenerMedicosPorCentro lista los médicos del centro del usuario
func ObtenerMedicosPorCentro(c *fiber.Ctx) error {
	actor := actorDesdeContexto(c)

	medicos, err := servicioCitas().ObtenerMedicosPorCentro(c.Context(), actor.IDCentro)
	if err != nil {
		return responderErrorCita(c, err)
	}

	return c.JSON(fiber.Map{
		"medicos": medicos,
		"total":   len(medicos),
	})
}
