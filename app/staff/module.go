package staff

import (
	"autocomplete/app/models"
	"autocomplete/core/module"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB *gorm.DB
}

// Init creates the staff module owning employees and departments
func Init(deps module.Dependencies) module.Module {
	return &Module{DB: deps.DB}
}

func (m *Module) Migrate() error {
	return m.DB.AutoMigrate(&models.Department{}, &models.Employee{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.Department{},
		&models.Employee{},
	}
}
