package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"noc-portal-backend/models"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/noc/{id}/placement/approve [post]")
		require.Nil(t, err)
		require.Equal(t, POST, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/noc/123-321/placement/approve"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/noc/placement/approve"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/noc/{id}/documents/{docId} [get]")
		require.Nil(t, err)
		require.Equal(t, GET, method)
		r2 := pathToRegex(path)

		validUri = "/api/v1/noc/123-321/documents/qwe-ewr123-wr-12"
		isMatch = r2.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri = "/api/v1/noc/we-ewr123-wr-12/documents"
		isMatch = r2.MatchString(invalidUri)
		require.Equal(t, false, isMatch)
	})

	t.Run(`review endpoints gated by role`, func(t *testing.T) {
		i := &impl{
			rules:       map[HTTPMethod]*PathRule{},
			permissions: map[models.UserRole]map[models.Module][]models.Permission{},
		}
		i.initRules()

		handler, found := i.GetRuleFunc("POST", "/api/v1/noc/abc-123/placement/approve")
		require.True(t, found)
		require.True(t, handler("user", models.UserRolePlacementOfficer, "/api/v1/noc/abc-123/placement/approve"))
		require.False(t, handler("user", models.UserRoleFaculty, "/api/v1/noc/abc-123/placement/approve"))
		require.False(t, handler("user", models.UserRoleStudent, "/api/v1/noc/abc-123/placement/approve"))

		handler, found = i.GetRuleFunc("POST", "/api/v1/noc/abc-123/faculty/reject")
		require.True(t, found)
		require.True(t, handler("user", models.UserRoleFaculty, "/api/v1/noc/abc-123/faculty/reject"))
		require.False(t, handler("user", models.UserRolePlacementOfficer, "/api/v1/noc/abc-123/faculty/reject"))

		handler, found = i.GetRuleFunc("POST", "/api/v1/noc")
		require.True(t, found)
		require.True(t, handler("user", models.UserRoleStudent, "/api/v1/noc"))
		require.False(t, handler("user", models.UserRolePlacementOfficer, "/api/v1/noc"))

		_, found = i.GetRuleFunc("GET", "/api/v1/auth/me")
		require.False(t, found)
	})

	t.Run(`permissions filled per role`, func(t *testing.T) {
		i := &impl{
			rules:       map[HTTPMethod]*PathRule{},
			permissions: map[models.UserRole]map[models.Module][]models.Permission{},
		}
		i.initRules()

		officer := i.GetPermissions(models.UserRolePlacementOfficer)
		require.Contains(t, officer[models.NocReviewModule], models.FlowPermission)
		require.Contains(t, officer[models.ExportModule], models.ExportPermission)

		student := i.GetPermissions(models.UserRoleStudent)
		require.Contains(t, student[models.NocRequestModule], models.CreatePermission)
		require.NotContains(t, student[models.NocReviewModule], models.FlowPermission)
	})
}
