package posts

import (
	"autocomplete/app/models"
	"autocomplete/core/module"

	"gorm.io/gorm"
)

type Module struct {
	module.DefaultModule
	DB *gorm.DB
}

// Init creates the Post module
func Init(deps module.Dependencies) module.Module {
	return &Module{DB: deps.DB}
}

func (m *Module) Migrate() error {
	return m.DB.AutoMigrate(&models.Post{})
}

func (m *Module) GetModels() []any {
	return []any{
		&models.Post{},
	}
}
