package service

import (
	"strconv"
	"sync"

	"nubenet/internal/consts"
	"nubenet/internal/db"
	"nubenet/internal/model"
)

var (
	// 内存缓存
	settingsCache sync.Map
)

const DefaultValueNotFound = "||__NOT_FOUND__||"

var DefaultSettings = []model.Setting{
	{Key: consts.ConfigCurrentTheme, Value: consts.DefaultTheme},
	{Key: consts.ConfigRateLimitEnabled, Value: "true"},
	{Key: consts.ConfigRateLimitAuthRPS, Value: "0.5"},
	{Key: consts.ConfigRateLimitAuthBurst, Value: "2"},
}

func ClearCache() {
	settingsCache.Range(func(key, value interface{}) bool {
		settingsCache.Delete(key)
		return true
	})
}

func InitializeSettings() {
	for _, def := range DefaultSettings {
		var count int64
		db.DB.Model(&model.Setting{}).Where("key = ?", def.Key).Count(&count)
		if count == 0 {
			db.DB.Create(&def)
		}
	}
}

func GetString(key string) string {
	if val, ok := settingsCache.Load(key); ok {
		strVal, ok := val.(string)
		if !ok {
			settingsCache.Delete(key)
		} else {
			if strVal == DefaultValueNotFound {
				return ""
			}
			return strVal
		}
	}

	var setting model.Setting
	if err := db.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		// 数据库没查到，尝试查找默认配置
		for _, def := range DefaultSettings {
			if def.Key == key {
				// 查到了默认值，写入数据库并写入缓存
				newSetting := def
				// 尝试写入数据库 (忽略错误，防止并发写入导致的主键冲突)
				db.DB.Create(&newSetting)

				settingsCache.Store(key, newSetting.Value)
				return newSetting.Value
			}
		}

		// 没查到，往缓存里存 DefaultValueNotFound 标记
		settingsCache.Store(key, DefaultValueNotFound)
		return ""
	}
	// 数据库查到，写入缓存
	settingsCache.Store(key, setting.Value)

	return setting.Value
}

func GetInt(key string) int {
	valStr := GetString(key)
	if valStr == "" {
		return 0
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0
	}
	return val
}

func GetFloat64(key string) float64 {
	valStr := GetString(key)
	if valStr == "" {
		return 0
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0
	}
	return val
}

func GetBool(key string) bool {
	valStr := GetString(key)
	if valStr == "" {
		return false
	}

	// ParseBool 支持 "1", "t", "T", "true", "TRUE", "True"
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false
	}
	return val
}

// SetSetting 写入或更新一个站点设置（key 懒创建，至多一行）
func SetSetting(key, value string) error {
	var setting model.Setting
	err := db.DB.Where("key = ?", key).First(&setting).Error
	if err != nil {
		setting = model.Setting{Key: key, Value: value}
		if err := db.DB.Create(&setting).Error; err != nil {
			return NewInternalError("保存设置失败")
		}
	} else {
		setting.Value = value
		if err := db.DB.Save(&setting).Error; err != nil {
			return NewInternalError("保存设置失败")
		}
	}

	settingsCache.Store(key, value)
	return nil
}

// GetCurrentTheme 返回当前站点主题，未设置时回退默认主题
func GetCurrentTheme() string {
	theme := GetString(consts.ConfigCurrentTheme)
	if theme == "" {
		return consts.DefaultTheme
	}
	return theme
}

// SetTheme 校验并更新站点主题；非法主题名拒绝且保持原值不变
func SetTheme(theme string) error {
	if !consts.IsValidTheme(theme) {
		return NewValidationError("主题不合法")
	}
	return SetSetting(consts.ConfigCurrentTheme, theme)
}
