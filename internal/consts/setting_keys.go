package consts

const (

	// ConfigCurrentTheme 当前站点主题
	ConfigCurrentTheme = "current_theme"

	// ConfigRateLimitEnabled 是否开启限流
	ConfigRateLimitEnabled = "rate_limit_enabled"

	// ConfigRateLimitAuthRPS 认证接口限流 RPS
	ConfigRateLimitAuthRPS = "rate_limit_auth_rps"

	// ConfigRateLimitAuthBurst 认证接口限流 Burst
	ConfigRateLimitAuthBurst = "rate_limit_auth_burst"
)

// ValidThemes 允许设置的主题集合
var ValidThemes = []string{"dark", "light", "christmas", "colombia", "halloween", "socialist"}

// DefaultTheme 未配置时的默认主题
const DefaultTheme = "dark"

// IsValidTheme 判断主题名是否在允许集合内
func IsValidTheme(theme string) bool {
	for _, t := range ValidThemes {
		if t == theme {
			return true
		}
	}
	return false
}
