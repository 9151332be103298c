package model

import "time"

type Role struct {
	ID          uint64  `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(50);uniqueIndex:idx_role_name;not null"`
	Description *string `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
}

func (Role) TableName() string {
	return "roles"
}
