package service

import (
	"testing"

	"nubenet/internal/model"
)

// 测试内容：空白待办被拒绝。
func TestCreateTask_EmptyContent(t *testing.T) {
	gdb := setupTestDB(t)
	user := createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)

	_, err := CreateTask("  ", user.ID)
	serviceErr, ok := AsServiceError(err)
	if !ok || serviceErr.Code != ErrorCodeValidation {
		t.Fatalf("期望 validation 错误，实际为 %v", err)
	}
}

// 测试内容：翻转完成状态仅限所有者，管理员也不例外。
func TestToggleTask_OwnerOnly(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)
	admin := createTestUser(t, gdb, "root", model.RoleAdmin, model.StatusActive)

	task, err := CreateTask("buy milk", owner.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// 待办授权与笔记不同：管理员不可操作他人待办
	err = ToggleTask(task.ID, admin.ID)
	serviceErr, ok := AsServiceError(err)
	if !ok || serviceErr.Code != ErrorCodeForbidden {
		t.Fatalf("期望 forbidden，实际为 %v", err)
	}

	if err := ToggleTask(task.ID, owner.ID); err != nil {
		t.Fatalf("owner toggle: %v", err)
	}
	var saved model.Task
	gdb.First(&saved, task.ID)
	if !saved.IsDone {
		t.Fatalf("期望 is_done=true")
	}

	if err := ToggleTask(task.ID, owner.ID); err != nil {
		t.Fatalf("owner toggle back: %v", err)
	}
	gdb.First(&saved, task.ID)
	if saved.IsDone {
		t.Fatalf("期望 is_done 翻转回 false")
	}
}

// 测试内容：删除待办仅限所有者，管理员删除他人待办也被拒。
func TestDeleteTask_OwnerOnly(t *testing.T) {
	gdb := setupTestDB(t)
	owner := createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)
	admin := createTestUser(t, gdb, "root", model.RoleAdmin, model.StatusActive)

	task, err := CreateTask("write report", owner.ID)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	err = DeleteTask(task.ID, admin.ID)
	serviceErr, ok := AsServiceError(err)
	if !ok || serviceErr.Code != ErrorCodeForbidden {
		t.Fatalf("期望 forbidden，实际为 %v", err)
	}

	if err := DeleteTask(task.ID, owner.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	var count int64
	gdb.Model(&model.Task{}).Count(&count)
	if count != 0 {
		t.Fatalf("期望 0 条待办，实际为 %d", count)
	}
}

// 测试内容：待办列表只含本人，且按时间新→旧。
func TestListTasks_OwnerScoped(t *testing.T) {
	gdb := setupTestDB(t)
	alice := createTestUser(t, gdb, "alice", model.RoleUser, model.StatusActive)
	bob := createTestUser(t, gdb, "bob", model.RoleUser, model.StatusActive)

	if _, err := CreateTask("a1", alice.ID); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := CreateTask("b1", bob.ID); err != nil {
		t.Fatalf("create task: %v", err)
	}

	tasks, err := ListTasks(alice.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Content != "a1" {
		t.Fatalf("期望只看到自己的待办，实际为 %v", tasks)
	}
}
