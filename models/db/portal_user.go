package dbmodels

import (
	"fmt"
	"strings"

	"noc-portal-backend/models"
)

type PortalUser struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255)"`
	FirstName    string `gorm:"type:varchar(255)"`
	LastName     string `gorm:"type:varchar(255)"`
	Role         models.UserRole `gorm:"type:varchar(100);index"`
	IsActive     bool
}

func (u PortalUser) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%v %v", u.FirstName, u.LastName))
}
