package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	NocRequestModule  Module = "NOC_REQUEST"
	NocReviewModule   Module = "NOC_REVIEW"
	CompanyDictModule Module = "COMPANY_DICT"
	ExportModule      Module = "EXPORT"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	FlowPermission   Permission = "FLOW"
	FilesPermission  Permission = "FILES"
	ExportPermission Permission = "EXPORT"
)
