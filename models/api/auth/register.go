package authapimodels

import (
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"noc-portal-backend/models"
	dbmodels "noc-portal-backend/models/db"
)

type RegisterRequest struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
}

func (r RegisterRequest) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("почта имеет неправильный формат")
	}
	if len(r.Password) < 8 {
		return errors.New("пароль должен быть не короче 8 символов")
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return errors.New("не указаны имя и фамилия")
	}
	return r.Role.Validate()
}

type UserView struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
	RoleName  string          `json:"role_name"`
}

func UserConvert(rec dbmodels.PortalUser) UserView {
	return UserView{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Role:      rec.Role,
		RoleName:  rec.Role.ToHuman(),
	}
}
