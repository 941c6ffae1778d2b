package model

import "time"

type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"size:200;not null"`
	IsDone    bool      `json:"is_done" gorm:"default:false"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
