package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Init инициализирует структурированный логгер.
// В production пишем JSON, в development - читаемый текст.
func Init(level string, development bool) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if development {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// Silence отключает вывод, используется в тестах.
func Silence() {
	Log.SetOutput(io.Discard)
}

// WithComponent возвращает запись лога с полем component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
