package dungeon

import (
	"math/rand"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// LevelBuilder предоставляет fluent API для создания уровней.
// Генератор rng принадлежит билдеру эксклюзивно на время Build.
type LevelBuilder struct {
	level     int
	width     int
	height    int
	architect ArchitectKind
	prefab    *Prefab
	rule      PlacementRule
	theme     Theme
	rng       *rand.Rand
}

// NewLevel создает builder для уровня. По умолчанию: карта MapWidth x MapHeight,
// случайный архитектор, крепость-префаб, случайная тема.
func NewLevel(level int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		level:     level,
		width:     domain.MapWidth,
		height:    domain.MapHeight,
		architect: ArchitectRandom,
		prefab:    &Fortress,
		rule:      PlacementAny,
		rng:       rng,
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithArchitect фиксирует стратегию генерации (ArchitectRandom - выбрать через rng)
func (b *LevelBuilder) WithArchitect(kind ArchitectKind) *LevelBuilder {
	b.architect = kind
	return b
}

// WithPrefab задает префаб; nil отключает декоратор
func (b *LevelBuilder) WithPrefab(p *Prefab) *LevelBuilder {
	b.prefab = p
	return b
}

// WithPlacementRule задает правило приемки места под префаб
func (b *LevelBuilder) WithPlacementRule(rule PlacementRule) *LevelBuilder {
	b.rule = rule
	return b
}

// WithTheme фиксирует тему; nil - выбрать через rng
func (b *LevelBuilder) WithTheme(t Theme) *LevelBuilder {
	b.theme = t
	return b
}

// Build запускает архитектора, декоратор и собирает результат.
// Порядок обращений к rng фиксирован: архитектор -> генерация -> префаб -> тема.
func (b *LevelBuilder) Build() *Result {
	kind := b.architect
	if kind == ArchitectRandom {
		kind = []ArchitectKind{ArchitectAutomata, ArchitectDrunkard}[b.rng.Intn(2)]
	}

	res := NewArchitect(kind, b.width, b.height).Design(b.rng)
	res.Level = b.level

	if b.prefab != nil {
		ApplyPrefab(res, *b.prefab, b.rule, b.rng)
	}

	res.Theme = b.theme
	if res.Theme == nil {
		res.Theme = Themes[b.rng.Intn(len(Themes))]
	}

	// На промежуточных уровнях вместо амулета - лестница вниз
	if b.level < domain.FinalLevel && res.Map.CanEnterTile(res.AmuletStart) {
		res.Map.SetTile(res.AmuletStart, domain.TileExit)
		res.GoalIsExit = true
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "level_builder",
		"depth":     b.level,
		"architect": kind.String(),
		"theme":     res.Theme.Name(),
		"prefab":    res.PrefabPlaced,
		"spawns":    len(res.MonsterSpawns),
	}).Debug("Level built")

	return res
}
