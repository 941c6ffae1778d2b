package model

import "time"

type File struct {
	ID uint `json:"id" gorm:"primaryKey"`
	// Filename 存储的是对象存储返回的 URL，不是本地路径（命名沿用历史）
	Filename   string    `json:"filename" gorm:"size:255;not null"`
	Category   string    `json:"category" gorm:"size:50;default:general;index"`
	UploadDate time.Time `json:"upload_date" gorm:"autoCreateTime;index"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	User       User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
