package service

import (
	"context"
	"testing"

	"nubenet/internal/consts"
	"nubenet/internal/model"
)

// 测试内容：封禁/解封普通用户正常生效。
func TestBanAndUnbanUser(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)

	if err := BanUser(user.ID); err != nil {
		t.Fatalf("ban: %v", err)
	}
	var saved model.User
	gdb.First(&saved, user.ID)
	if saved.Status != model.StatusBanned {
		t.Fatalf("期望 banned，实际为 %q", saved.Status)
	}

	if err := UnbanUser(user.ID); err != nil {
		t.Fatalf("unban: %v", err)
	}
	gdb.First(&saved, user.ID)
	if saved.Status != model.StatusActive {
		t.Fatalf("期望 active，实际为 %q", saved.Status)
	}
}

// 测试内容：ADMIN 账号免疫封禁、改角色和删除。
func TestAdminAccountImmunity(t *testing.T) {
	gdb := setupTestDB(t)
	admin := createTestUser(t, gdb, consts.AdminUsername, model.RoleAdmin, model.StatusActive)

	if err := BanUser(admin.ID); err == nil {
		t.Fatalf("期望封禁 ADMIN 被拒绝")
	}
	if err := ChangeRole(admin.ID, model.RoleUser); err == nil {
		t.Fatalf("期望修改 ADMIN 角色被拒绝")
	}
	if err := DeleteUser(context.Background(), admin.ID); err == nil {
		t.Fatalf("期望删除 ADMIN 被拒绝")
	}

	var saved model.User
	if err := gdb.First(&saved, admin.ID).Error; err != nil {
		t.Fatalf("ADMIN 账号不应被删除: %v", err)
	}
	if saved.Role != model.RoleAdmin || saved.Status != model.StatusActive {
		t.Fatalf("ADMIN 账号状态被改动: role=%q status=%q", saved.Role, saved.Status)
	}
}

// 测试内容：改角色校验角色合法性。
func TestChangeRole(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)

	err := ChangeRole(user.ID, model.Role("superuser"))
	serviceErr, ok := AsServiceError(err)
	if !ok || serviceErr.Code != ErrorCodeValidation {
		t.Fatalf("期望 validation 错误，实际为 %v", err)
	}

	if err := ChangeRole(user.ID, model.RoleAdmin); err != nil {
		t.Fatalf("change role: %v", err)
	}
	var saved model.User
	gdb.First(&saved, user.ID)
	if saved.Role != model.RoleAdmin {
		t.Fatalf("期望 admin，实际为 %q", saved.Role)
	}
}

// 测试内容：操作不存在的用户报 not_found。
func TestAdminOps_UserNotFound(t *testing.T) {
	setupTestDB(t)

	for name, err := range map[string]error{
		"ban":    BanUser(9999),
		"unban":  UnbanUser(9999),
		"role":   ChangeRole(9999, model.RoleAdmin),
		"delete": DeleteUser(context.Background(), 9999),
	} {
		serviceErr, ok := AsServiceError(err)
		if !ok || serviceErr.Code != ErrorCodeNotFound {
			t.Fatalf("%s: 期望 not_found，实际为 %v", name, err)
		}
	}
}

// 测试内容：删除用户级联清理文件/笔记/待办和存储对象，消息保留且作者置空。
func TestDeleteUser_CascadeAndMessageNullify(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)
	other := createTestUser(t, gdb, "bob", model.RoleUser, model.StatusActive)

	file := uploadTestFile(t, "a.txt", "docs", user.ID)
	if _, err := CreateNote("n", "c", false, user.ID); err != nil {
		t.Fatalf("create note: %v", err)
	}
	if _, err := CreateTask("t", user.ID); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := SendMessage("goodbye", user.ID); err != nil {
		t.Fatalf("send message: %v", err)
	}
	otherFile := uploadTestFile(t, "b.txt", "docs", other.ID)

	if err := DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	var count int64
	gdb.Model(&model.User{}).Where("id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("用户行应被删除")
	}
	gdb.Model(&model.File{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("文件行应被级联删除")
	}
	gdb.Model(&model.Note{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("笔记行应被级联删除")
	}
	gdb.Model(&model.Task{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Fatalf("待办行应被级联删除")
	}

	if fakeBlob(t).Has(file.Filename) {
		t.Fatalf("该用户的存储对象应被清理")
	}
	if !fakeBlob(t).Has(otherFile.Filename) {
		t.Fatalf("他人的存储对象不应被波及")
	}

	var messages []model.Message
	gdb.Find(&messages)
	if len(messages) != 1 {
		t.Fatalf("消息应保留，实际为 %d 条", len(messages))
	}
	if messages[0].UserID != nil {
		t.Fatalf("消息作者应被置空")
	}

	listed, err := ListMessages()
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if listed[0].User != consts.DeletedUserPlaceholder {
		t.Fatalf("期望占位作者 %q，实际为 %q", consts.DeletedUserPlaceholder, listed[0].User)
	}
}

// 测试内容：用户列表按 ID 升序返回全部用户。
func TestListUsers(t *testing.T) {
	gdb := setupTestDB(t)
	createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)
	createTestUser(t, gdb, "bob", model.RoleUser, model.StatusBanned)

	users, err := ListUsers()
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("期望 2 个用户，实际为 %d", len(users))
	}
	if users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("用户顺序不正确: %v", []string{users[0].Username, users[1].Username})
	}
}
