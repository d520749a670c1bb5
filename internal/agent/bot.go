package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/engine"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/network"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/dungeon"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Bot - безголовый клиент, который проходит уровни сессии так же, как зритель
// по WebSocket: подписывается на снимки в хабе и шлет команды.
// Каждый полученный уровень он восстанавливает из DTO и проверяет,
// что цель достижима от старта.
//
// Жизненный цикл:
//  1. NewBot -> открытие сессии и подписка в хабе.
//  2. Run -> INIT, затем DESCEND, пока цель - выход, и RESET на последнем уровне.
//  3. Close -> отписка.
type Bot struct {
	SessionID string
	Service   *engine.Service

	sub *network.Subscription
	log *logrus.Entry
}

// Report - итог прогона бота
type Report struct {
	Levels      int // Проверено уровней
	Unreachable int // Уровней, где цель недостижима от старта
	Descents    int
	Resets      int
}

func NewBot(sessionID string, service *engine.Service) *Bot {
	service.OpenSession(sessionID)
	return &Bot{
		SessionID: sessionID,
		Service:   service,
		sub:       service.Hub.Register(sessionID),
		log:       logger.Component("bot").WithField("session", sessionID),
	}
}

// Close отписывает бота от хаба
func (b *Bot) Close() {
	b.Service.Hub.Unregister(b.sub)
}

// Run проходит rounds генераций (не считая стартовой) или до отмены ctx
func (b *Bot) Run(ctx context.Context, rounds int) (Report, error) {
	var report Report

	// INIT не рассылается: ответ приходит напрямую
	view, err := b.Service.ProcessCommand(b.SessionID, api.ClientCommand{Action: api.ActionInit})
	if err != nil {
		return report, fmt.Errorf("init: %w", err)
	}

	for i := 0; ; i++ {
		b.inspect(*view, &report)
		if i == rounds {
			break
		}

		action := api.ActionReset
		if view.GoalIsExit {
			action = api.ActionDescend
			report.Descents++
		} else {
			report.Resets++
		}

		if _, err := b.Service.ProcessCommand(b.SessionID, api.ClientCommand{Action: action}); err != nil {
			return report, fmt.Errorf("%s: %w", action, err)
		}

		// Новый уровень приходит через хаб, как и любому зрителю
		select {
		case msg, ok := <-b.sub.C:
			if !ok {
				return report, errors.New("subscription closed")
			}
			view = &msg
		case <-ctx.Done():
			return report, ctx.Err()
		}
	}

	b.log.WithFields(logrus.Fields{
		"levels":      report.Levels,
		"unreachable": report.Unreachable,
		"descents":    report.Descents,
		"resets":      report.Resets,
	}).Info("Bot run finished")

	return report, nil
}

func (b *Bot) inspect(view api.ServerResponse, report *Report) {
	report.Levels++
	if err := CheckLevel(view); err != nil {
		report.Unreachable++
		b.log.WithFields(logrus.Fields{"seed": view.Seed, "depth": view.Level}).WithError(err).Warn("Level check failed")
	}
}

// CheckLevel восстанавливает карту из снимка и проверяет, что старт проходим,
// а цель и все точки спавна достижимы от старта.
func CheckLevel(view api.ServerResponse) error {
	m, err := LocalMap(view)
	if err != nil {
		return err
	}
	if view.Start == nil || view.Goal == nil {
		return errors.New("snapshot without start or goal")
	}

	start := domain.Point{X: view.Start.X, Y: view.Start.Y}
	if !m.CanEnterTile(start) {
		return fmt.Errorf("start %v is not walkable", start)
	}

	field := dungeon.DistanceFrom(m, start, dungeon.MaxDepth)
	goal := domain.Point{X: view.Goal.X, Y: view.Goal.Y}
	if goal != start && field.AtPoint(goal) >= dungeon.ReachableCeiling {
		return fmt.Errorf("goal %v is unreachable from start %v", goal, start)
	}
	for _, s := range view.Spawns {
		p := domain.Point{X: s.X, Y: s.Y}
		if field.AtPoint(p) >= dungeon.ReachableCeiling {
			return fmt.Errorf("spawn %v is unreachable", p)
		}
	}
	return nil
}

// LocalMap строит доменную карту из DTO снимка
func LocalMap(view api.ServerResponse) (*domain.Map, error) {
	if view.Grid == nil {
		return nil, errors.New("snapshot without grid")
	}

	m := domain.NewMap(view.Grid.Width, view.Grid.Height)
	m.Fill(domain.TileWall)

	for _, tv := range view.Map {
		p := domain.Point{X: tv.X, Y: tv.Y}
		switch tv.Kind {
		case domain.TileFloor.String():
			m.SetTile(p, domain.TileFloor)
		case domain.TileExit.String():
			m.SetTile(p, domain.TileExit)
		}
	}
	return m, nil
}
