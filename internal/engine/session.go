package engine

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ErrFinalLevel - спуск ниже последнего уровня невозможен
var ErrFinalLevel = errors.New("already on the final level")

// Session - одна независимая последовательность уровней (один зритель/игрок).
// Генерации внутри сессии сериализованы мьютексом: поток зерен общий.
type Session struct {
	ID string

	mu      sync.Mutex
	seeds   *rand.Rand // Поток зерен уровней
	opts    GenerateOptions
	current *Snapshot
	created time.Time

	// onGenerate вызывается после каждой генерации (журнал зерен)
	onGenerate func(domain.GenerationRecord)
}

// NewSession создает сессию. Поток зерен зависит от мастер-зерна и ID,
// так что одна и та же сессия после рестарта с тем же сидом повторяется.
func NewSession(id string, masterSeed int64, opts GenerateOptions, onGenerate func(domain.GenerationRecord)) *Session {
	return &Session{
		ID:         id,
		seeds:      utils.NewRand(masterSeed ^ utils.StringToSeed(id)),
		opts:       opts,
		created:    time.Now(),
		onGenerate: onGenerate,
	}
}

// Current возвращает текущий уровень, генерируя первый при необходимости
func (s *Session) Current() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		s.generateLocked(domain.FirstLevel)
	}
	return s.current
}

// Reset берет следующее зерно и строит первый уровень заново
func (s *Session) Reset() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generateLocked(domain.FirstLevel)
	return s.current
}

// Descend строит следующий уровень. На последнем уровне возвращает ErrFinalLevel,
// текущий уровень при этом не меняется.
func (s *Session) Descend() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		s.generateLocked(domain.FirstLevel)
	}

	level := s.current.Result.Level
	if level >= domain.FinalLevel {
		return s.current, ErrFinalLevel
	}

	s.generateLocked(level + 1)
	return s.current, nil
}

// Level - текущая глубина (0, если уровень еще не строился)
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return 0
	}
	return s.current.Result.Level
}

func (s *Session) generateLocked(level int) {
	opts := s.opts
	opts.Level = level
	seed := s.seeds.Int63()

	started := time.Now()
	res := GenerateLevel(seed, opts)
	s.current = &Snapshot{SessionID: s.ID, Seed: seed, Result: res}

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"session":   s.ID,
		"seed":      seed,
		"depth":     level,
		"architect": res.Architect.String(),
		"theme":     res.Theme.Name(),
		"took":      time.Since(started).String(),
	}).Info("Level generated")

	if s.onGenerate != nil {
		s.onGenerate(opts.Record(s.ID, seed))
	}
}
