package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/infrastructure/storage"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/network"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/version"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/dungeon"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
	"github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

// Service - реестр сессий и журнал генераций
type Service struct {
	Config   Config
	Hub      *network.Broadcaster
	defaults GenerateOptions
	started  time.Time

	mu       sync.RWMutex
	seeds    *rand.Rand // Зерна для /generate без явного seed
	sessions map[string]*Session
	records  []domain.GenerationRecord
}

func NewService(cfg Config) (*Service, error) {
	defaults, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	return &Service{
		Config:   cfg,
		Hub:      network.NewBroadcaster(),
		defaults: defaults,
		started:  time.Now(),
		seeds:    utils.NewRand(cfg.Seed),
		sessions: make(map[string]*Session),
	}, nil
}

// OpenSession возвращает сессию по ID, создавая ее при первом обращении
func (s *Service) OpenSession(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess
	}

	sess := NewSession(id, s.Config.Seed, s.defaults, s.record)
	s.sessions[id] = sess
	logger.Log.WithFields(logrus.Fields{"component": "service", "session": id}).Info("Session opened")
	return sess
}

// GetSession возвращает существующую сессию
func (s *Service) GetSession(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// CloseSession удаляет сессию из реестра
func (s *Service) CloseSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// ProcessCommand выполняет команду клиента над сессией и рассылает новый
// снимок всем ее зрителям. Возвращает снимок для отправителя.
func (s *Service) ProcessCommand(sessionID string, cmd api.ClientCommand) (*api.ServerResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	switch cmd.Action {
	case api.ActionInit:
		// INIT не генерирует заново и не рассылается: это просто запрос текущего уровня
		return BuildView(sess.Current()), nil
	case api.ActionReset:
		snap = sess.Reset()
	case api.ActionDescend:
		snap, err = sess.Descend()
		if err != nil {
			return nil, err
		}
	}

	view := BuildView(snap)
	s.Hub.Publish(sessionID, *view)
	return view, nil
}

// Generate строит уровень вне сессий (GET /generate). Нулевое зерно - следующее
// зерно из потока сервиса (детерминирован мастер-зерном).
func (s *Service) Generate(p api.GeneratePayload) (*api.ServerResponse, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	opts, err := s.optionsFor(p)
	if err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		s.mu.Lock()
		seed = s.seeds.Int63()
		s.mu.Unlock()
	}

	res := GenerateLevel(seed, opts)
	s.record(opts.Record("", seed))

	return BuildView(&Snapshot{Seed: seed, Result: res}), nil
}

// optionsFor накладывает параметры запроса на умолчания сервиса
func (s *Service) optionsFor(p api.GeneratePayload) (GenerateOptions, error) {
	opts := s.defaults
	if p.Level > 0 {
		opts.Level = p.Level
	}
	if p.Width > 0 {
		opts.Width = p.Width
	}
	if p.Height > 0 {
		opts.Height = p.Height
	}
	if p.Architect != "" {
		kind, err := dungeon.ParseArchitect(p.Architect)
		if err != nil {
			return GenerateOptions{}, err
		}
		opts.Architect = kind
	}
	if p.Theme != "" {
		theme, err := dungeon.ThemeByName(p.Theme)
		if err != nil {
			return GenerateOptions{}, err
		}
		opts.Theme = theme
	}
	if p.NoPrefab {
		opts.Prefab = false
	}
	if p.Strict {
		opts.Strict = true
	}
	return opts, nil
}

func (s *Service) record(rec domain.GenerationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Records возвращает копию журнала генераций
func (s *Service) Records() []domain.GenerationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.GenerationRecord, len(s.records))
	copy(out, s.records)
	return out
}

// SessionSummary - краткие сведения о сессии для /debug/sessions
type SessionSummary struct {
	ID      string `json:"id"`
	Level   int    `json:"level"`
	Viewers bool   `json:"viewers"`
	Created string `json:"created"`
}

// Sessions возвращает сводку по сессиям, отсортированную по ID
func (s *Service) Sessions() []SessionSummary {
	s.mu.RLock()
	list := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	out := make([]SessionSummary, 0, len(list))
	for _, sess := range list {
		out = append(out, SessionSummary{
			ID:      sess.ID,
			Level:   sess.Level(),
			Viewers: s.Hub.HasSubscriber(sess.ID),
			Created: sess.created.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// SaveSeedLog пишет журнал генераций на диск. Пустой журнал не сохраняется.
func (s *Service) SaveSeedLog() (string, error) {
	records := s.Records()

	// Запись с таким ID формат не вместит; из-за нее не должен пропасть весь журнал
	kept := records[:0]
	for _, rec := range records {
		if len(rec.SessionID) > storage.MaxIDLength {
			logger.Log.WithFields(logrus.Fields{
				"component": "service",
				"seed":      rec.Seed,
				"id_length": len(rec.SessionID),
			}).Warn("Session id too long for seed log, record skipped")
			continue
		}
		kept = append(kept, rec)
	}
	records = kept

	if len(records) == 0 {
		return "", nil
	}

	log := &domain.SeedLog{
		MasterSeed: s.Config.Seed,
		Generator:  version.GeneratorRevision,
		Timestamp:  s.started.Unix(),
		Records:    records,
	}

	path, err := storage.NewSeedLogService(s.Config.ReplayDir).Save(log)
	if err != nil {
		return "", fmt.Errorf("save seed log: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "service",
		"path":      path,
		"records":   len(records),
	}).Info("Seed log saved")
	return path, nil
}

// ReplayReport - итог повторной генерации одной записи
type ReplayReport struct {
	Record        domain.GenerationRecord
	Start         domain.Point
	Goal          domain.Point
	Spawns        int
	Floor         int
	Deterministic bool
}

// Replay перегенерирует каждую запись журнала дважды и сверяет результаты
func Replay(path string) ([]ReplayReport, error) {
	log, err := storage.NewSeedLogService("").Load(path)
	if err != nil {
		return nil, fmt.Errorf("load seed log: %w", err)
	}
	if err := version.CheckGenerator(log.Generator); err != nil {
		logger.Log.WithField("component", "replay").WithError(err).Warn("Seed log was written by another generator")
	}

	reports := make([]ReplayReport, 0, len(log.Records))
	for _, rec := range log.Records {
		opts, err := OptionsFromRecord(rec)
		if err != nil {
			return nil, err
		}

		first := GenerateLevel(rec.Seed, opts)
		second := GenerateLevel(rec.Seed, opts)

		report := ReplayReport{
			Record: rec,
			Start:  first.PlayerStart,
			Goal:   first.AmuletStart,
			Spawns: len(first.MonsterSpawns),
			Floor:  first.Map.Count(domain.TileFloor),
			Deterministic: reflect.DeepEqual(first.Map.Tiles, second.Map.Tiles) &&
				first.PlayerStart == second.PlayerStart &&
				first.AmuletStart == second.AmuletStart &&
				reflect.DeepEqual(first.MonsterSpawns, second.MonsterSpawns),
		}
		reports = append(reports, report)

		entry := logger.Log.WithFields(logrus.Fields{
			"component": "replay",
			"session":   rec.SessionID,
			"seed":      rec.Seed,
			"depth":     rec.Level,
			"start":     report.Start,
			"goal":      report.Goal,
			"spawns":    report.Spawns,
		})
		if report.Deterministic {
			entry.Info("Record replayed")
		} else {
			entry.Error("Record replay diverged")
		}
	}

	return reports, nil
}
