// Package logging 定義專案共用的結構化 logger 介面，預設以 slog 實作
package logging

import "context"

// Logger 是帶 context 的結構化 logger，args 以 key-value 成對解讀：
//
//	log.Info(ctx, "user created", "user_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With 回傳一個固定帶上 args 的子 logger
	With(args ...any) Logger
}
