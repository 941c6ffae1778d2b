package model

// Setting 站点级键值配置（如当前主题），每个 key 至多一行
type Setting struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Key   string `json:"key" gorm:"size:50;unique;not null"`
	Value string `json:"value" gorm:"size:255"`
}
