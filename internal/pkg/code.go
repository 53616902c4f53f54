package pkg

import (
	cryptoRand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"path"
	"strings"
	"time"
)

func RandDigits(n int) (string, error) {
	var b strings.Builder
	for i := 0; i < n; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}

// UniqueUploadName 上传文件重命名：前缀 + 用户 + 时间戳 + 随机串，保留扩展名
func UniqueUploadName(prefix string, userID uint64, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	buf := make([]byte, 4)
	_, _ = cryptoRand.Read(buf)
	return fmt.Sprintf("%s_u%d_%d_%s%s", prefix, userID, time.Now().UTC().Unix(), hex.EncodeToString(buf), ext)
}
