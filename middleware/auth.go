package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lizet96/vacunas-backend/models"
)

// jwtSecret firma los tokens. Se toma de JWT_SECRET; el valor por defecto
// solo sirve para desarrollo local.
var jwtSecret = []byte(secretDesdeEntorno())

func secretDesdeEntorno() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "clave_secreta_muy_segura_aqui"
}

// Claims personalizados para el JWT. El centro viaja solo para el
// personal asignado a uno.
type Claims struct {
	UserID   int    `json:"user_id"`
	IDRol    int    `json:"id_rol"`
	IDCentro int    `json:"id_centro,omitempty"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT genera un token JWT para un usuario
func GenerateJWT(userID int, rol models.Rol, idCentro int, email string) (string, error) {
	claims := Claims{
		UserID:   userID,
		IDRol:    int(rol),
		IDCentro: idCentro,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// JWTMiddleware middleware para validar tokens JWT
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token de autorización requerido",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(401).JSON(fiber.Map{
				"error": "Formato de token inválido",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})

		if err != nil || !token.Valid {
			return c.Status(401).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(401).JSON(fiber.Map{
				"error": "Claims inválidos",
			})
		}

		rol := models.Rol(claims.IDRol)
		if !rol.Valido() {
			return c.Status(401).JSON(fiber.Map{
				"error": "Rol de usuario inválido o ausente en el token",
			})
		}

		// Guardar información del usuario en el contexto
		c.Locals("user_id", claims.UserID)
		c.Locals("user_rol", rol)
		c.Locals("user_centro", claims.IDCentro)
		c.Locals("user_email", claims.Email)

		return c.Next()
	}
}

// RequireRoles middleware para requerir uno de los roles indicados
func RequireRoles(allowedRoles ...models.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol, ok := c.Locals("user_rol").(models.Rol)
		if !ok {
			return c.Status(403).JSON(fiber.Map{
				"error": "Rol de usuario no encontrado",
			})
		}

		for _, allowed := range allowedRoles {
			if rol == allowed {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Acceso denegado: permisos insuficientes",
		})
	}
}
