package rbac

import (
	"noc-portal-backend/models"
)

var (
	StudentRoleSet  = []models.UserRole{models.UserRoleStudent}
	OfficerRoleSet  = []models.UserRole{models.UserRolePlacementOfficer}
	FacultyRoleSet  = []models.UserRole{models.UserRoleFaculty}
	ReviewerRoleSet = []models.UserRole{models.UserRolePlacementOfficer, models.UserRoleFaculty}
	AllRoles        = []models.UserRole{models.UserRoleStudent, models.UserRolePlacementOfficer, models.UserRoleFaculty}
)

func (i *impl) initRules() {
	i.addNocRequestRbac()
	i.addNocReviewRbac()
	i.addCompanyDictRbac()
	i.addExportRbac()
}

func (i *impl) addNocRequestRbac() {
	// VIEW: списки отфильтрованы по роли уже в движке
	i.RegisterRule(models.NocRequestModule, models.ViewPermission, AllRoles, "/api/v1/noc/list [post]", nil)
	i.RegisterRule(models.NocRequestModule, models.ViewPermission, AllRoles, "/api/v1/noc/{id} [get]", nil)
	i.RegisterRule(models.NocRequestModule, models.ViewPermission, AllRoles, "/api/v1/noc/{id}/certificate [get]", nil)
	// CREATE
	i.RegisterRule(models.NocRequestModule, models.CreatePermission, StudentRoleSet, "/api/v1/noc [post]", nil)
	// FILES
	i.RegisterRule(models.NocRequestModule, models.FilesPermission, StudentRoleSet, "/api/v1/noc/documents [post]", nil)
	i.RegisterRule(models.NocRequestModule, models.FilesPermission, AllRoles, "/api/v1/noc/{id}/documents/{docId} [get]", nil)
}

func (i *impl) addNocReviewRbac() {
	// FLOW: роль дополнительно проверяется валидатором переходов
	i.RegisterRule(models.NocReviewModule, models.FlowPermission, OfficerRoleSet, "/api/v1/noc/{id}/placement/approve [post]", nil)
	i.RegisterRule(models.NocReviewModule, models.FlowPermission, OfficerRoleSet, "/api/v1/noc/{id}/placement/reject [post]", nil)
	i.RegisterRule(models.NocReviewModule, models.FlowPermission, FacultyRoleSet, "/api/v1/noc/{id}/faculty/approve [post]", nil)
	i.RegisterRule(models.NocReviewModule, models.FlowPermission, FacultyRoleSet, "/api/v1/noc/{id}/faculty/reject [post]", nil)
	// VIEW
	i.RegisterRule(models.NocReviewModule, models.ViewPermission, ReviewerRoleSet, "/api/v1/noc/{id}/history [get]", nil)
}

func (i *impl) addCompanyDictRbac() {
	// VIEW
	i.RegisterRule(models.CompanyDictModule, models.ViewPermission, AllRoles, "/api/v1/dict/company/find [post]", nil)
	i.RegisterRule(models.CompanyDictModule, models.ViewPermission, AllRoles, "/api/v1/dict/company/{id} [get]", nil)
	// EDIT
	i.RegisterRule(models.CompanyDictModule, models.EditPermission, OfficerRoleSet, "/api/v1/dict/company [post]", nil)
	i.RegisterRule(models.CompanyDictModule, models.EditPermission, OfficerRoleSet, "/api/v1/dict/company/{id} [put]", nil)
	i.RegisterRule(models.CompanyDictModule, models.EditPermission, OfficerRoleSet, "/api/v1/dict/company/{id}/verify [put]", nil)
}

func (i *impl) addExportRbac() {
	i.RegisterRule(models.ExportModule, models.ExportPermission, OfficerRoleSet, "/api/v1/noc/export [put]", nil)
}
