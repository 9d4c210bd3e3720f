package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/swapo-org/swapo-backend/internal/logger"
)

// Logger - то, что нужно для записи паники.
type Logger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
}

// RecoveryHandler перехватывает panic в фоновых горутинах.
type RecoveryHandler struct {
	logger Logger
}

func NewRecoveryHandler(logger Logger) *RecoveryHandler {
	return &RecoveryHandler{logger: logger}
}

// SafeGo запускает fn в горутине. Паника логируется и не роняет процесс.
func (rh *RecoveryHandler) SafeGo(name string, fn func()) {
	go func() {
		defer rh.recover(name)
		fn()
	}()
}

// SafeGoWithContext то же самое, но передаёт ctx в fn.
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer rh.recover(name)
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) recover(name string) {
	if r := recover(); r != nil {
		rh.logger.WithFields(logrus.Fields{
			"goroutine": name,
			"panic":     r,
			"stack":     string(debug.Stack()),
		}).Error("panic в горутине")
	}
}

// SafeGo запускает горутину с глобальным логгером.
func SafeGo(name string, fn func()) {
	NewRecoveryHandler(logger.Log).SafeGo(name, fn)
}

// SafeGoWithContext запускает горутину с контекстом и глобальным логгером.
func SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	NewRecoveryHandler(logger.Log).SafeGoWithContext(ctx, name, fn)
}
