package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee represents an employee entity
type Employee struct {
	Id           uint           `json:"id" gorm:"primarykey"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	FirstName    string         `json:"first_name" gorm:"size:255"`
	LastName     string         `json:"last_name" gorm:"size:255"`
	Email        string         `json:"email" gorm:"size:255;unique;not null"`
	Phone        string         `json:"phone" gorm:"size:255"`
	Active       bool           `json:"active" gorm:"default:true"`
	DepartmentId *uint          `json:"department_id"`
	Department   *Department    `json:"department,omitempty" gorm:"foreignKey:DepartmentId;references:Id"`
}

// TableName returns the table name for the Employee model
func (m *Employee) TableName() string {
	return "employees"
}

// GetId returns the Id of the model
func (m *Employee) GetId() uint {
	return m.Id
}

// GetModelName returns the model name
func (m *Employee) GetModelName() string {
	return "employee"
}

// Department groups employees
type Department struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	Name      string         `json:"name" gorm:"size:255;unique;not null"`
	Code      string         `json:"code" gorm:"size:32"`
}

// TableName returns the table name for the Department model
func (m *Department) TableName() string {
	return "departments"
}

// GetModelName returns the model name
func (m *Department) GetModelName() string {
	return "department"
}
