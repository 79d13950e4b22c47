package utils

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var opChannelMap sync.Map

// OpLockedWait 单机锁一个操作字符串，等待
func OpLockedWait(key string) func() {
	// 避免竞态条件
	actual, _ := opChannelMap.LoadOrStore(key, make(chan struct{}, 1))
	kc := actual.(chan struct{})
	kc <- struct{}{}
	return func() {
		select {
		case <-kc:
		default:
		}
	}
}

// OpLockTimeout 单机锁一个操作字符串可超时
// 超时返回 false，调用方不得继续临界区
func OpLockTimeout(key string, timeout time.Duration) (func(), bool) {
	actual, _ := opChannelMap.LoadOrStore(key, make(chan struct{}, 1))
	kc := actual.(chan struct{})

	select {
	case kc <- struct{}{}:
		return func() {
			select {
			case <-kc:
			default:
			}
		}, true
	case <-time.After(timeout):
		log.Debug("lock wait timed out", "key", key)
		return func() {}, false
	}
}
