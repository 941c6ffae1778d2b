package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"nubenet/internal/config"
	"nubenet/internal/consts"
	"nubenet/internal/middleware"
	"nubenet/internal/model"
	"nubenet/internal/router"
	"nubenet/internal/service"
	"nubenet/internal/testutils"
	"nubenet/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var testConfigOnce sync.Once

// setupServer 启动一套带独立内存库和假对象存储的完整路由
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB, *testutils.FakeBlobStore) {
	t.Helper()

	testConfigOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		config.InitConfig("testdata")
	})

	gdb := testutils.SetupDB(t)
	service.ClearCache()

	// 测试中关闭认证限流，避免用例间互相影响
	if err := service.SetSetting(consts.ConfigRateLimitEnabled, "false"); err != nil {
		t.Fatalf("disable rate limit: %v", err)
	}

	// 状态缓存是包级共享的，清掉可能残留的条目
	for uid := uint(1); uid <= 32; uid++ {
		middleware.ClearUserStatusCache(uid)
	}

	fake := testutils.NewFakeBlobStore()
	prev := service.GetBlobStore()
	service.SetBlobStore(fake)
	t.Cleanup(func() { service.SetBlobStore(prev) })

	r := gin.New()
	router.InitRouter(r)
	return r, gdb, fake
}

// createUser 直接落库建用户并签发会话令牌
func createUser(t *testing.T, gdb *gorm.DB, username string, role model.Role) (*model.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1234"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := model.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
		Status:   model.StatusActive,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Username, user.Role, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return &user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, w.Body.String())
	}
	return body
}

func uploadMultipart(t *testing.T, r *gin.Engine, token, filename, category, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte(content))
	mw.WriteField("category", category)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：公开端点无需登录。
func TestPublicEndpoints(t *testing.T) {
	r, _, _ := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/ping", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ping 期望 200，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/theme", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("theme 期望 200，实际为 %d", w.Code)
	}
	if body := decodeBody(t, w); body["theme"] != consts.DefaultTheme {
		t.Fatalf("期望默认主题 %q，实际为 %v", consts.DefaultTheme, body["theme"])
	}
}

// 测试内容：未登录访问受保护端点一律 401。
func TestProtectedEndpointsRequireSession(t *testing.T) {
	r, _, _ := setupServer(t)

	for _, path := range []string{"/api/files", "/api/chat", "/api/tools/notes", "/api/admin/users"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s 期望 401，实际为 %d", path, w.Code)
		}
	}
}

// 测试内容：注册 → 上传 → 分类列表 → 删除 的完整文件流程。
func TestFileLifecycle(t *testing.T) {
	r, _, fake := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{"username": "alice", "password": "pass1"})
	if w.Code != http.StatusOK {
		t.Fatalf("注册期望 200，实际为 %d (body=%s)", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("注册响应缺少令牌")
	}

	w = uploadMultipart(t, r, token, "a.txt", "docs", "hello")
	if w.Code != http.StatusOK {
		t.Fatalf("上传期望 200，实际为 %d (body=%s)", w.Code, w.Body.String())
	}
	if fake.ObjectCount() != 1 {
		t.Fatalf("期望对象存储里有 1 个对象，实际为 %d", fake.ObjectCount())
	}

	w = doJSON(t, r, http.MethodGet, "/api/files?category=docs", token, nil)
	body := decodeBody(t, w)
	files, _ := body["files"].([]interface{})
	if len(files) != 1 {
		t.Fatalf("docs 分类期望 1 个文件，实际为 %d", len(files))
	}
	fileID := uint(files[0].(map[string]interface{})["id"].(float64))

	w = doJSON(t, r, http.MethodGet, "/api/files?category=all", token, nil)
	if all, _ := decodeBody(t, w)["files"].([]interface{}); len(all) != 1 {
		t.Fatalf("all 分类期望 1 个文件，实际为 %d", len(all))
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/files/%d/download", fileID), token, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("下载期望 302 重定向，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/files/%d", fileID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("删除期望 200，实际为 %d", w.Code)
	}
	if fake.ObjectCount() != 0 {
		t.Fatalf("删除后对象存储应为空")
	}
}

// 测试内容：聊天发送 → 管理员编辑 → 列表显示 edited 标记。
func TestChatFlow(t *testing.T) {
	r, gdb, _ := setupServer(t)
	_, userToken := createUser(t, gdb, "alice", model.RoleUser)
	_, adminToken := createUser(t, gdb, "root", model.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/chat", userToken, gin.H{"message": "hola"})
	if w.Code != http.StatusOK {
		t.Fatalf("发送期望 200，实际为 %d (body=%s)", w.Code, w.Body.String())
	}

	var msg model.Message
	if err := gdb.First(&msg).Error; err != nil {
		t.Fatalf("查询消息: %v", err)
	}

	// 普通用户编辑被拒
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/chat/%d/edit", msg.ID), userToken, gin.H{"new_text": "hacked"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("普通用户编辑期望 401，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/chat/%d/edit", msg.ID), adminToken, gin.H{"new_text": "hola!"})
	if w.Code != http.StatusOK {
		t.Fatalf("管理员编辑期望 200，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/chat", userToken, nil)
	var messages []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("期望 1 条消息，实际为 %d", len(messages))
	}
	if messages[0]["text"] != "hola!" || messages[0]["edited"] != true {
		t.Fatalf("期望编辑后的消息带 edited 标记，实际为 %v", messages[0])
	}
	if messages[0]["user"] != "alice" {
		t.Fatalf("期望作者 alice，实际为 %v", messages[0]["user"])
	}
}

// 测试内容：封禁立即生效，被封用户的现有会话下一次请求即被拦截。
func TestBanTakesEffectImmediately(t *testing.T) {
	r, gdb, _ := setupServer(t)
	target, targetToken := createUser(t, gdb, "bob", model.RoleUser)
	_, adminToken := createUser(t, gdb, "root", model.RoleAdmin)

	// 封禁前可正常访问（也让状态缓存先热起来）
	w := doJSON(t, r, http.MethodGet, "/api/files", targetToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("封禁前期望 200，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/ban", target.ID), adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("封禁期望 200，实际为 %d (body=%s)", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/files", targetToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("封禁后期望 403，实际为 %d", w.Code)
	}

	// 解封后恢复访问
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/unban", target.ID), adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("解封期望 200，实际为 %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/files", targetToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("解封后期望 200，实际为 %d", w.Code)
	}
}

// 测试内容：管理端点拒绝普通用户。
func TestAdminEndpointsRejectRegularUser(t *testing.T) {
	r, gdb, _ := setupServer(t)
	_, userToken := createUser(t, gdb, "alice", model.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/admin/users", userToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/theme", userToken, gin.H{"theme": "light"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d", w.Code)
	}
}

// 测试内容：主题设置走管理端点，非法值 400 且保持原值。
func TestThemeUpdate(t *testing.T) {
	r, gdb, _ := setupServer(t)
	_, adminToken := createUser(t, gdb, "root", model.RoleAdmin)

	w := doJSON(t, r, http.MethodPost, "/api/admin/theme", adminToken, gin.H{"theme": "christmas"})
	if w.Code != http.StatusOK {
		t.Fatalf("设置主题期望 200，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/theme", adminToken, gin.H{"theme": "neon"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法主题期望 400，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/theme", "", nil)
	if body := decodeBody(t, w); body["theme"] != "christmas" {
		t.Fatalf("非法主题不应改变存储值，实际为 %v", body["theme"])
	}
}

// 测试内容：笔记与待办端点的归属校验贯穿 HTTP 层。
func TestNotesAndTasksOwnership(t *testing.T) {
	r, gdb, _ := setupServer(t)
	_, aliceToken := createUser(t, gdb, "alice", model.RoleUser)
	_, bobToken := createUser(t, gdb, "bob", model.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/tools/notes", aliceToken, gin.H{"title": "n1", "content": "c1"})
	if w.Code != http.StatusOK {
		t.Fatalf("创建笔记期望 200，实际为 %d", w.Code)
	}
	note := decodeBody(t, w)["note"].(map[string]interface{})
	noteID := uint(note["id"].(float64))

	w = doJSON(t, r, http.MethodGet, "/api/tools/notes", bobToken, nil)
	if notes, _ := decodeBody(t, w)["notes"].([]interface{}); len(notes) != 0 {
		t.Fatalf("bob 不应看到 alice 的笔记，实际为 %d 条", len(notes))
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/tools/notes/%d", noteID), bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("陌生人删除笔记期望 403，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/tools/todo", aliceToken, gin.H{"content": "t1"})
	if w.Code != http.StatusOK {
		t.Fatalf("创建待办期望 200，实际为 %d", w.Code)
	}
	task := decodeBody(t, w)["task"].(map[string]interface{})
	taskID := uint(task["id"].(float64))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/tools/todo/%d/toggle", taskID), bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("陌生人翻转待办期望 403，实际为 %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/tools/todo/%d/toggle", taskID), aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("所有者翻转待办期望 200，实际为 %d", w.Code)
	}
}

// 测试内容：下载器拒绝不支持的来源并返回 400。
func TestDownloaderRejectsUnsupportedSource(t *testing.T) {
	r, gdb, fake := setupServer(t)
	_, token := createUser(t, gdb, "alice", model.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/tools/downloader", token, gin.H{"url": "https://vimeo.com/123"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d (body=%s)", w.Code, w.Body.String())
	}
	if fake.ObjectCount() != 0 {
		t.Fatalf("拒绝的链接不应写对象存储")
	}
}
