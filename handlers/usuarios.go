package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/lizet96/vacunas-backend/database"
	"github.com/lizet96/vacunas-backend/middleware"
	"github.com/lizet96/vacunas-backend/models"
)

// RegistrarUsuario crea un nuevo usuario en el sistema
func RegistrarUsuario(c *fiber.Ctx) error {
	var usuario models.Usuario
	if err := c.BodyParser(&usuario); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	if !usuario.IDRol.Valido() {
		return c.Status(400).JSON(fiber.Map{
			"error": "Rol de usuario inválido",
		})
	}

	if usuario.Nombre == "" || usuario.Apellido == "" || usuario.Email == "" || usuario.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Nombre, apellido, email y contraseña son requeridos",
		})
	}

	// El personal de centro necesita su centro asignado desde el registro
	if usuario.IDRol == models.RolPersonalCentro && usuario.IDCentro == nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "El personal del centro debe tener un centro de vacunación asignado",
		})
	}

	// Verificar si el email ya existe
	var existeEmail int
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT COUNT(*) FROM Usuario WHERE email = $1", usuario.Email).Scan(&existeEmail)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
	if existeEmail > 0 {
		return c.Status(409).JSON(fiber.Map{
			"error": "El email ya está registrado",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(usuario.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al procesar la contraseña",
		})
	}

	var nuevoID int
	err = database.GetDB().QueryRow(context.Background(),
		`INSERT INTO Usuario (nombre, apellido, fecha_nacimiento, id_rol, id_centro, email, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id_usuario`,
		usuario.Nombre, usuario.Apellido, usuario.FechaNacimiento, usuario.IDRol,
		usuario.IDCentro, usuario.Email, string(hashedPassword), time.Now(), time.Now()).Scan(&nuevoID)

	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al crear el usuario",
		})
	}

	respuesta := models.UsuarioResponse{
		ID:              nuevoID,
		Nombre:          usuario.Nombre,
		Apellido:        usuario.Apellido,
		FechaNacimiento: usuario.FechaNacimiento,
		IDRol:           usuario.IDRol,
		Rol:             usuario.IDRol.Nombre(),
		IDCentro:        usuario.IDCentro,
		Email:           usuario.Email,
		CreatedAt:       time.Now(),
	}

	return c.Status(201).JSON(fiber.Map{
		"mensaje": "Usuario creado exitosamente",
		"usuario": respuesta,
	})
}

// Login autentica un usuario y devuelve los tokens de acceso
func Login(c *fiber.Ctx) error {
	var loginReq models.LoginRequest
	if err := c.BodyParser(&loginReq); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	var usuario models.Usuario
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT id_usuario, nombre, apellido, id_rol, id_centro, email, password,
			mfa_enabled, COALESCE(mfa_secret, ''), created_at
		 FROM Usuario WHERE email = $1`,
		loginReq.Email).Scan(&usuario.ID, &usuario.Nombre, &usuario.Apellido,
		&usuario.IDRol, &usuario.IDCentro, &usuario.Email, &usuario.Password,
		&usuario.MFAEnabled, &usuario.MFASecret, &usuario.CreatedAt)

	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Credenciales inválidas",
		})
	}

	err = bcrypt.CompareHashAndPassword([]byte(usuario.Password), []byte(loginReq.Password))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Credenciales inválidas",
		})
	}

	// Con MFA habilitado, el código TOTP es obligatorio
	if usuario.MFAEnabled {
		if loginReq.MFACode == "" {
			return c.Status(401).JSON(fiber.Map{
				"error":        "Código MFA requerido",
				"requires_mfa": true,
			})
		}
		if !totp.Validate(loginReq.MFACode, usuario.MFASecret) {
			return c.Status(401).JSON(fiber.Map{
				"error": "Código MFA inválido",
			})
		}
	}

	centro := 0
	if usuario.IDCentro != nil {
		centro = *usuario.IDCentro
	}

	token, err := middleware.GenerateJWT(usuario.ID, usuario.IDRol, centro, usuario.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar token",
		})
	}

	refreshToken, err := crearRefreshToken(usuario.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar token de actualización",
		})
	}

	respuesta := models.LoginResponse{
		AccessToken:  token,
		RefreshToken: refreshToken,
		ExpiresIn:    int((24 * time.Hour).Seconds()),
		Usuario: models.UsuarioResponse{
			ID:        usuario.ID,
			Nombre:    usuario.Nombre,
			Apellido:  usuario.Apellido,
			IDRol:     usuario.IDRol,
			Rol:       usuario.IDRol.Nombre(),
			IDCentro:  usuario.IDCentro,
			Email:     usuario.Email,
			CreatedAt: usuario.CreatedAt,
		},
	}

	return c.JSON(respuesta)
}

// crearRefreshToken genera y persiste un refresh token opaco
func crearRefreshToken(userID int) (string, error) {
	token := uuid.NewString()
	_, err := database.GetDB().Exec(context.Background(),
		`INSERT INTO RefreshToken (user_id, token, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		userID, token, time.Now().Add(7*24*time.Hour), time.Now())
	if err != nil {
		return "", err
	}
	return token, nil
}

// RefreshToken renueva el token de acceso usando un refresh token vigente
func RefreshToken(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	var (
		userID    int
		expiresAt time.Time
	)
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT user_id, expires_at FROM RefreshToken
		 WHERE token = $1 AND is_revoked = false`, req.RefreshToken).Scan(&userID, &expiresAt)
	if err != nil || expiresAt.Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{
			"error": "Token de actualización inválido o expirado",
		})
	}

	var usuario models.Usuario
	err = database.GetDB().QueryRow(context.Background(),
		"SELECT id_usuario, id_rol, id_centro, email FROM Usuario WHERE id_usuario = $1",
		userID).Scan(&usuario.ID, &usuario.IDRol, &usuario.IDCentro, &usuario.Email)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Usuario no encontrado",
		})
	}

	centro := 0
	if usuario.IDCentro != nil {
		centro = *usuario.IDCentro
	}

	token, err := middleware.GenerateJWT(usuario.ID, usuario.IDRol, centro, usuario.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar token",
		})
	}

	// Rotar el refresh token
	_, _ = database.GetDB().Exec(context.Background(),
		"UPDATE RefreshToken SET is_revoked = true WHERE token = $1", req.RefreshToken)
	nuevoRefresh, err := crearRefreshToken(usuario.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar token de actualización",
		})
	}

	return c.JSON(models.RefreshResponse{
		AccessToken:  token,
		RefreshToken: nuevoRefresh,
		ExpiresIn:    int((24 * time.Hour).Seconds()),
	})
}

// ObtenerPerfil obtiene el perfil del usuario autenticado
func ObtenerPerfil(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(int)

	var usuario models.UsuarioResponse
	var idRol models.Rol
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT id_usuario, nombre, apellido, fecha_nacimiento, id_rol, id_centro, email, created_at
		 FROM Usuario WHERE id_usuario = $1`, userID).Scan(
		&usuario.ID, &usuario.Nombre, &usuario.Apellido, &usuario.FechaNacimiento,
		&idRol, &usuario.IDCentro, &usuario.Email, &usuario.CreatedAt)

	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Usuario no encontrado",
		})
	}

	usuario.IDRol = idRol
	usuario.Rol = idRol.Nombre()

	return c.JSON(usuario)
}

// ObtenerUsuarioPorID obtiene un usuario específico
func ObtenerUsuarioPorID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "ID inválido",
		})
	}

	// Admin puede ver cualquier usuario, otros solo su propio perfil
	userID := c.Locals("user_id").(int)
	rol := c.Locals("user_rol").(models.Rol)

	if rol != models.RolAdministrador && userID != id {
		return c.Status(403).JSON(fiber.Map{
			"error": "No tienes permisos para ver este usuario",
		})
	}

	var usuario models.UsuarioResponse
	var idRol models.Rol
	err = database.GetDB().QueryRow(context.Background(),
		`SELECT id_usuario, nombre, apellido, id_rol, id_centro, email, created_at
		 FROM Usuario WHERE id_usuario = $1`, id).Scan(
		&usuario.ID, &usuario.Nombre, &usuario.Apellido, &idRol,
		&usuario.IDCentro, &usuario.Email, &usuario.CreatedAt)

	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Usuario no encontrado",
		})
	}

	usuario.IDRol = idRol
	usuario.Rol = idRol.Nombre()

	return c.JSON(usuario)
}

// SetupMFA genera el secreto TOTP para el usuario autenticado
func SetupMFA(c *fiber.Ctx) error {
	var req models.MFASetupRequest
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	userID := c.Locals("user_id").(int)

	var email, password string
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT email, password FROM Usuario WHERE id_usuario = $1", userID).Scan(&email, &password)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Usuario no encontrado",
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)) != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Contraseña incorrecta",
		})
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Vacunas",
		AccountName: email,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al generar el secreto MFA",
		})
	}

	// El secreto queda pendiente hasta que el usuario verifique un código
	_, err = database.GetDB().Exec(context.Background(),
		"UPDATE Usuario SET mfa_secret = $1, updated_at = $2 WHERE id_usuario = $3",
		key.Secret(), time.Now(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al guardar el secreto MFA",
		})
	}

	return c.JSON(models.MFASetupResponse{
		Secret:    key.Secret(),
		QRCodeURL: key.URL(),
	})
}

// VerifyMFA valida el primer código TOTP y activa MFA
func VerifyMFA(c *fiber.Ctx) error {
	var req models.MFAVerifyRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	userID := c.Locals("user_id").(int)

	var secret string
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT COALESCE(mfa_secret, '') FROM Usuario WHERE id_usuario = $1", userID).Scan(&secret)
	if err != nil || secret == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "MFA no ha sido configurado",
		})
	}

	if !totp.Validate(req.Code, secret) {
		return c.Status(401).JSON(fiber.Map{
			"error": "Código MFA inválido",
		})
	}

	_, err = database.GetDB().Exec(context.Background(),
		"UPDATE Usuario SET mfa_enabled = true, updated_at = $1 WHERE id_usuario = $2",
		time.Now(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al activar MFA",
		})
	}

	return c.JSON(fiber.Map{
		"mensaje": "MFA activado exitosamente",
	})
}

// DisableMFA desactiva MFA para el usuario autenticado
func DisableMFA(c *fiber.Ctx) error {
	var req models.MFASetupRequest
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "Datos inválidos",
		})
	}

	userID := c.Locals("user_id").(int)

	var password string
	err := database.GetDB().QueryRow(context.Background(),
		"SELECT password FROM Usuario WHERE id_usuario = $1", userID).Scan(&password)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"error": "Usuario no encontrado",
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)) != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Contraseña incorrecta",
		})
	}

	_, err = database.GetDB().Exec(context.Background(),
		"UPDATE Usuario SET mfa_enabled = false, mfa_secret = NULL, updated_at = $1 WHERE id_usuario = $2",
		time.Now(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Error al desactivar MFA",
		})
	}

	return c.JSON(fiber.Map{
		"mensaje": "MFA desactivado exitosamente",
	})
}
