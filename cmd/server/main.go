package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/agent"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/engine"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/server"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/version"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	var replayPath string
	var bots, botRounds int
	// Читаем флаг -seed. По умолчанию 0 (значит взять CD_SEED или случайный).
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for CD_SEED or random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .dgsl seed log to regenerate")
	flag.IntVar(&bots, "bots", 0, "Number of self-check bots to run at startup")
	flag.IntVar(&botRounds, "bot-rounds", 10, "Levels each bot walks through")
	flag.Parse()

	logger.Log.Info("Starting dungeon generator...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Seed log replay")

		reports, err := engine.Replay(replayPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to replay seed log")
		}

		diverged := 0
		for _, r := range reports {
			if !r.Deterministic {
				diverged++
			}
		}
		logger.Log.WithFields(logrus.Fields{
			"records":  len(reports),
			"diverged": diverged,
		}).Info("Replay finished")

		if diverged > 0 {
			os.Exit(1)
		}
		return
	}

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using Master Seed: %d", cfg.Seed)
	}

	// 2. Инициализация сервиса с конфигом
	service, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create service")
	}

	// Самопроверка: боты проходят уровни в собственных сессиях
	runBots(service, bots, botRounds)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(service, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("Server start error")
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown failed")
	}

	// Сохраняем журнал зерен, чтобы любую карту можно было воспроизвести
	if path, err := service.SaveSeedLog(); err != nil {
		logger.Log.WithError(err).Error("Failed to save seed log")
	} else if path != "" {
		logger.Log.Infof("Seed log written to %s", path)
	}

	logger.Log.Info("Done.")
}

func runBots(service *engine.Service, count, rounds int) {
	for i := 0; i < count; i++ {
		bot := agent.NewBot(fmt.Sprintf("bot_%d", i), service)
		go func() {
			defer bot.Close()
			defer service.CloseSession(bot.SessionID)

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			report, err := bot.Run(ctx, rounds)
			if err != nil {
				logger.Log.WithError(err).WithField("session", bot.SessionID).Error("Bot run failed")
				return
			}
			if report.Unreachable > 0 {
				logger.Log.WithField("session", bot.SessionID).Warnf("Bot found %d broken levels", report.Unreachable)
			}
		}()
	}
}
