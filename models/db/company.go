package dbmodels

type Company struct {
	BaseModel
	Name       string `gorm:"type:varchar(255);uniqueIndex"`
	Website    string `gorm:"type:varchar(255)"`
	ContactFio string `gorm:"type:varchar(255)"`
	// Verified выставляется сотрудником отдела трудоустройства в справочнике,
	// ядро согласования флаг только читает
	Verified bool
}
