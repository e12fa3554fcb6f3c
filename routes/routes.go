package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lizet96/vacunas-backend/handlers"
	"github.com/lizet96/vacunas-backend/middleware"
	"github.com/lizet96/vacunas-backend/models"
)

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App) {
	// Middleware global
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.BodySizeLimit(1024 * 1024))
	app.Use(middleware.DefaultRateLimiter())
	app.Use(middleware.LoggingMiddleware())

	// Ruta de salud del sistema
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Sistema de Vacunación API",
			"version": "1.0.0",
		})
	})

	// Grupo de API
	api := app.Group("/api/v1")

	// === RUTAS PÚBLICAS (Sin autenticación) ===
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", handlers.RegistrarUsuario)
	auth.Post("/login", handlers.Login)
	auth.Post("/refresh", handlers.RefreshToken)

	// === RUTAS PROTEGIDAS (Requieren autenticación) ===
	protected := api.Group("/", middleware.JWTMiddleware())

	// --- RUTAS DE USUARIOS ---
	usuarios := protected.Group("/usuarios")
	usuarios.Get("/perfil", handlers.ObtenerPerfil)
	usuarios.Get("/:id", handlers.ObtenerUsuarioPorID)

	// --- RUTAS MFA ---
	mfa := protected.Group("/mfa")
	mfa.Post("/setup", handlers.SetupMFA)
	mfa.Post("/verify", handlers.VerifyMFA)
	mfa.Post("/disable", handlers.DisableMFA)

	// --- RUTAS DE CITAS ---
	citas := protected.Group("/citas")
	citas.Get("/", handlers.ObtenerCitas)
	citas.Post("/", handlers.CrearCita)
	citas.Get("/medicos", middleware.RequireRoles(models.RolPersonalCentro), handlers.ObtenerMedicosPorCentro)
	citas.Put("/:id", middleware.RequireRoles(models.RolAdministrador, models.RolDigitador), handlers.ActualizarCita)
	citas.Put("/:id/editar", middleware.RequireRoles(models.RolPersonalCentro), handlers.EditarCita)
	citas.Put("/:id/asignar-medico", middleware.RequireRoles(models.RolPersonalCentro), handlers.AsignarMedico)
	citas.Put("/:id/confirmar", middleware.RequireRoles(models.RolPersonalCentro), handlers.ConfirmarCita)
	citas.Post("/:id/registrar", middleware.StrictRateLimiter(), middleware.RequireRoles(models.RolAdministrador, models.RolPersonalCentro), handlers.RegistrarVacunacion)

	// --- RUTAS DE CATÁLOGO ---
	catalogo := protected.Group("/catalogo")
	catalogo.Get("/centros", handlers.ObtenerCentros)
	catalogo.Get("/vacunas", handlers.ObtenerVacunas)
	catalogo.Get("/vacunas/:id_vacuna/lotes", middleware.RequireRoles(models.RolAdministrador, models.RolPersonalCentro), handlers.ObtenerLotesDisponibles)

	// --- RUTAS DE NIÑOS ---
	ninos := protected.Group("/ninos")
	ninos.Get("/", handlers.ObtenerNinos)
	ninos.Get("/:id", handlers.ObtenerNinoPorID)

	// --- RUTAS DE HISTORIAL ---
	historial := protected.Group("/historial")
	historial.Get("/nino/:id_nino", handlers.ObtenerHistorialPorNino)
	historial.Get("/dosis/:id_vacuna", middleware.RequireRoles(models.RolAdministrador, models.RolPersonalCentro), handlers.ObtenerDosisAplicadas)
}
