package service

import (
	"nubenet/internal/storage"
)

// 对象存储客户端，由 main 在启动时注入；测试中注入假实现
var blobStore storage.BlobStore

func SetBlobStore(store storage.BlobStore) {
	blobStore = store
}

func GetBlobStore() storage.BlobStore {
	return blobStore
}
