package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// EncryptPassword 加盐摘要密码
func EncryptPassword(salt, password string) string {
	sum := md5.Sum([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
