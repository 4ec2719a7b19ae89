package middleware

import (
	"github.com/gofiber/fiber/v2"
	authutils "noc-portal-backend/lib/utils/auth-utils"
	"noc-portal-backend/models"
	apimodels "noc-portal-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if stringSub, ok := sub.(string); ok {
			return stringSub
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func RoleRequired(roles ...models.UserRole) fiber.Handler {
	allowMap := map[models.UserRole]bool{}
	for _, role := range roles {
		allowMap[role] = true
	}
	return func(ctx *fiber.Ctx) (err error) {
		if !allowMap[GetUserRole(ctx)] {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
