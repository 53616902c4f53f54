package handler

import (
	"fmt"
	"mime/multipart"

	"Muze_Link/internal/pkg"
	"Muze_Link/internal/service"
)

// saveUpload 把表单文件写进对象存储（或本地目录），返回入库引用
func saveUpload(resolver pkg.MediaResolver, prefix string, userID uint64, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: unreadable file", service.ErrInvalidInput)
	}
	defer f.Close()

	key := pkg.UniqueUploadName(prefix, userID, fh.Filename)
	return resolver.Upload(key, pkg.ContentTypeByName(fh.Filename), f)
}
