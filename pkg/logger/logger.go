package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в стандартный логгер logrus, поэтому пакеты
// генерации можно использовать и без явной инициализации.
var Log = logrus.StandardLogger()

// Init инициализирует глобальный логгер из переменных окружения LOG_LEVEL и LOG_FORMAT.
// Вызывается один раз при старте (main.go, TestMain).
func Init() {
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Configure пересоздает логгер с явными уровнем и форматом.
// Пустой или неизвестный уровень - "info"; формат "json" для продакшена, иначе текст.
func Configure(level, format string) {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	l.SetOutput(os.Stdout)
	Log = l
}

// Silence отключает вывод (для tools/mapview, который рисует в терминал).
func Silence() {
	Log.SetOutput(io.Discard)
}

// Component возвращает запись с полем component - так логируют все подсистемы.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
