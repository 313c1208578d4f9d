package auth

import (
	"strings"

	"github.com/1bruno1512-wq/auto-socorro-apoio-dashboard/internal/common/config"
	"github.com/gofiber/fiber/v2"
)

// LocalsClaimsKey chave usada para guardar as claims no contexto da request.
const LocalsClaimsKey = "claims"

// Protected exige um bearer token válido e deixa as claims disponíveis em
// c.Locals(LocalsClaimsKey).
func Protected(cfg config.AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Não autorizado: token ausente"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Não autorizado: formato inválido"})
		}

		claims, err := ParseAccessToken(cfg, parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Não autorizado: token inválido"})
		}

		c.Locals(LocalsClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromCtx recupera as claims colocadas pelo middleware Protected.
func ClaimsFromCtx(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(LocalsClaimsKey).(*Claims)
	return claims, ok
}
