package model

import "time"

// Role 用户角色，封闭集合
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValidRole 判断角色值是否合法
func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// Status 账号状态，封闭集合
type Status string

const (
	StatusActive Status = "active"
	StatusBanned Status = "banned"
)

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `json:"username" gorm:"unique;not null;index"`
	Password  string `json:"-" gorm:"not null"`
	Role      Role   `json:"role" gorm:"type:varchar(20);default:user;not null"`
	Status    Status `json:"status" gorm:"type:varchar(20);default:active;not null"`

	Files []File `json:"-"`
	Notes []Note `json:"-"`
	Tasks []Task `json:"-"`
}
