package utils

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"runtime/debug"

	"github.com/charmbracelet/log"
)

func GetMd5(code string) string {
	hash := md5.New()
	_, _ = io.WriteString(hash, code)
	return hex.EncodeToString(hash.Sum(nil))
}

// SafeCall 并行安全调用
func SafeCall(call func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("SafeCall panic", "err", r, "stack", string(debug.Stack()))
		}
	}()
	call()
}
