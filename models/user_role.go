package models

type UserRole string

const (
	UserRoleStudent          UserRole = "student"
	UserRolePlacementOfficer UserRole = "placement_officer"
	UserRoleFaculty          UserRole = "faculty"
)

var roleHumanName = map[UserRole]string{
	UserRoleStudent:          "Студент",
	UserRolePlacementOfficer: "Сотрудник отдела трудоустройства",
	UserRoleFaculty:          "Научный руководитель",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) Validate() error {
	switch r {
	case UserRoleStudent, UserRolePlacementOfficer, UserRoleFaculty:
		return nil
	}
	return NewValidationError("неизвестная роль пользователя")
}

func (r UserRole) IsReviewer() bool {
	return r == UserRolePlacementOfficer || r == UserRoleFaculty
}

const SystemUser = "Система"
