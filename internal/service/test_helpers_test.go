package service

import (
	"sync"
	"testing"

	"nubenet/internal/config"
	"nubenet/internal/model"
	"nubenet/internal/testutils"

	"gorm.io/gorm"
)

var testConfigOnce sync.Once

// setupTestDB 建立独立内存库并重置设置缓存和对象存储假实现
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testConfigOnce.Do(func() {
		// 测试无配置文件，使用默认值（debug 模式自动补开发密钥）
		config.InitConfig("testdata")
	})

	gdb := testutils.SetupDB(t)
	ClearCache()

	fake := testutils.NewFakeBlobStore()
	prev := blobStore
	blobStore = fake
	t.Cleanup(func() { blobStore = prev })

	return gdb
}

// fakeBlob 取出当前注入的假对象存储
func fakeBlob(t *testing.T) *testutils.FakeBlobStore {
	t.Helper()
	fake, ok := blobStore.(*testutils.FakeBlobStore)
	if !ok {
		t.Fatalf("blobStore 不是 FakeBlobStore")
	}
	return fake
}

// createTestUser 建一个指定角色/状态的用户
func createTestUser(t *testing.T, gdb *gorm.DB, username string, role model.Role, status model.Status) *model.User {
	t.Helper()

	hashed, err := hashPassword("secret1234")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := model.User{
		Username: username,
		Password: hashed,
		Role:     role,
		Status:   status,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}
