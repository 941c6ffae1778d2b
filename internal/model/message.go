package model

import "time"

type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime;index"`
	Edited    bool      `json:"edited" gorm:"default:false"`
	// UserID 可空：作者被删除后消息保留，显示占位作者名
	UserID *uint `json:"user_id" gorm:"index"`
	User   *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL;"`
}
