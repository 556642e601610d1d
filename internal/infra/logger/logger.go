package logger

import (
	"sync"

	"go.uber.org/zap"
)

var once sync.Once

// Init 初始化全局 zap logger，业务代码统一通过 zap.L() 使用
func Init() {
	once.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		zap.ReplaceGlobals(l)
	})
}
