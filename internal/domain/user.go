package domain

import (
	"time"
)

// Role - роль пользователя, неизменна после регистрации
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole проверяет строковое значение роли
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleManager, RoleEmployee:
		return Role(raw), nil
	default:
		return "", ErrInvalidRole
	}
}

// User представляет сотрудника или руководителя.
// Подчинённые не хранятся на записи, их список запрашивается по manager_id.
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         Role      `gorm:"type:varchar(16);not null"`
	ManagerID    *int64    `gorm:"index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	// Manager заполняется только при чтении из хранилища
	Manager *User `gorm:"foreignKey:ManagerID"`
}

// TableName задаёт имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

func (u *User) IsEmployee() bool {
	return u != nil && u.Role == RoleEmployee
}

// ReportsTo сообщает, является ли пользователь прямым подчинённым managerID
func (u *User) ReportsTo(managerID int64) bool {
	return u != nil && u.ManagerID != nil && *u.ManagerID == managerID
}
