package engine

import (
	"fmt"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/dungeon"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
)

// GenerateOptions - всё, кроме зерна, что влияет на результат генерации
type GenerateOptions struct {
	Level     int
	Width     int
	Height    int
	Architect dungeon.ArchitectKind
	Theme     dungeon.Theme // nil - выбирается через rng
	Prefab    bool
	Strict    bool
}

// Snapshot - сгенерированный уровень вместе с зерном, из которого он получен
type Snapshot struct {
	SessionID string
	Seed      int64
	Result    *dungeon.Result
}

// GenerateLevel строит уровень из зерна. Один вызов - один свежий генератор,
// поэтому одинаковые (seed, opts) всегда дают одинаковую карту.
func GenerateLevel(seed int64, opts GenerateOptions) *dungeon.Result {
	b := dungeon.NewLevel(opts.Level, utils.NewRand(seed)).
		WithSize(opts.Width, opts.Height).
		WithArchitect(opts.Architect).
		WithTheme(opts.Theme)

	if !opts.Prefab {
		b.WithPrefab(nil)
	}
	if opts.Strict {
		b.WithPlacementRule(dungeon.PlacementAll)
	}
	return b.Build()
}

// Record описывает генерацию для журнала зерен
func (o GenerateOptions) Record(sessionID string, seed int64) domain.GenerationRecord {
	theme := ""
	if o.Theme != nil {
		theme = o.Theme.Name()
	}
	return domain.GenerationRecord{
		SessionID: sessionID,
		Seed:      seed,
		Timestamp: time.Now().Unix(),
		Level:     o.Level,
		Architect: o.Architect.String(),
		Theme:     theme,
		Prefab:    o.Prefab,
		Strict:    o.Strict,
		Width:     o.Width,
		Height:    o.Height,
	}
}

// OptionsFromRecord восстанавливает параметры генерации из записи журнала
func OptionsFromRecord(rec domain.GenerationRecord) (GenerateOptions, error) {
	kind, err := dungeon.ParseArchitect(rec.Architect)
	if err != nil {
		return GenerateOptions{}, fmt.Errorf("record %d: %w", rec.Seed, err)
	}
	theme, err := dungeon.ThemeByName(rec.Theme)
	if err != nil {
		return GenerateOptions{}, fmt.Errorf("record %d: %w", rec.Seed, err)
	}
	return GenerateOptions{
		Level:     rec.Level,
		Width:     rec.Width,
		Height:    rec.Height,
		Architect: kind,
		Theme:     theme,
		Prefab:    rec.Prefab,
		Strict:    rec.Strict,
	}, nil
}
