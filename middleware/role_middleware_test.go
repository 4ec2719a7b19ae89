package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"noc-portal-backend/models"
)

// withClaims подкладывает разобранный токен так же, как это делает jwtware
func withClaims(userID string, role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
			"sub":  userID,
			"role": string(role),
		}})
		return ctx.Next()
	}
}

func TestRoleRequired(t *testing.T) {
	newApp := func(userRole models.UserRole, allowed ...models.UserRole) *fiber.App {
		app := fiber.New()
		app.Get("/guarded", withClaims("user-1", userRole), RoleRequired(allowed...), func(ctx *fiber.Ctx) error {
			return ctx.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run(`разрешённая роль проходит`, func(t *testing.T) {
		app := newApp(models.UserRoleFaculty, models.UserRoleFaculty)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`чужая роль получает 403`, func(t *testing.T) {
		app := newApp(models.UserRoleFaculty, models.UserRolePlacementOfficer)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run(`несколько разрешённых ролей`, func(t *testing.T) {
		app := newApp(models.UserRolePlacementOfficer, models.UserRolePlacementOfficer, models.UserRoleFaculty)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`запрос без токена отклоняется`, func(t *testing.T) {
		app := fiber.New()
		app.Get("/guarded", RoleRequired(models.UserRoleFaculty), func(ctx *fiber.Ctx) error {
			return ctx.SendStatus(fiber.StatusOK)
		})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/guarded", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run(`GetUserID и GetUserRole читают клеймы`, func(t *testing.T) {
		app := fiber.New()
		app.Get("/whoami", withClaims("user-42", models.UserRoleStudent), func(ctx *fiber.Ctx) error {
			require.Equal(t, "user-42", GetUserID(ctx))
			require.Equal(t, models.UserRoleStudent, GetUserRole(ctx))
			return ctx.SendStatus(fiber.StatusOK)
		})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/whoami", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
