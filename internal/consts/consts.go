package consts

const (
	ApplicationName    = "NubeNet Server"
	ApplicationVersion = "1.0.0"

	// AdminUsername 内置管理员账号，禁止封禁/删除/改角色
	AdminUsername = "ADMIN"

	// MinPasswordLength 密码最小长度
	MinPasswordLength = 4

	// ChatMessageLimit 聊天轮询每次返回的最大消息数
	ChatMessageLimit = 50

	// DefaultCategory 文件默认分类
	DefaultCategory = "general"

	// DeletedUserPlaceholder 作者被删除后聊天消息显示的占位名
	DeletedUserPlaceholder = "Usuario eliminado"

	// SessionCookieName 登录会话 Cookie 名称
	SessionCookieName = "nubenet_session"
)
