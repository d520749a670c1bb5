package dungeon

import (
	"math/rand"
	"strings"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Параметры размещения префаба
const (
	PrefabAttempts      = 10
	PrefabMinSeparation = 20 // Клетки ближе к старту не считаются подходящими
	prefabGlyphWall     = '#'
	prefabGlyphFloor    = '-'
	prefabGlyphMonster  = 'M'
)

// Prefab - вручную нарисованный фрагмент карты
type Prefab struct {
	Name   string
	Width  int
	Height int
	Lines  []string
}

// Fortress - крепость с четырьмя стражами
var Fortress = NewPrefab("fortress", `
------------
---######---
---#----#---
---#-M--#---
-###----###-
--M------M--
-###----###-
---#----#---
---#----#---
---######---
------------
`)

// NewPrefab разбирает многострочный шаблон. Пустые строки по краям отбрасываются,
// ширина - длина самой длинной строки.
func NewPrefab(name, pattern string) Prefab {
	lines := strings.Split(strings.Trim(pattern, "\n"), "\n")
	width := 0
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \r\t")
		width = max(width, len(lines[i]))
	}
	return Prefab{Name: name, Width: width, Height: len(lines), Lines: lines}
}

// PlacementRule - правило приемки прямоугольника под префаб
type PlacementRule uint8

const (
	// PlacementAny: достаточно одной подходящей точки. В отличие от исторического
	// правила, прямоугольник все равно не может накрыть старт или цель (см. canPlace).
	PlacementAny PlacementRule = iota
	// PlacementAll: подходить должна каждая точка прямоугольника
	PlacementAll
)

func (r PlacementRule) String() string {
	if r == PlacementAll {
		return "all"
	}
	return "any"
}

// ApplyPrefab ищет место под префаб и впечатывает его в карту.
// При неудаче карта и список спавнов не меняются. Возвращает занятый прямоугольник и true при успехе.
func ApplyPrefab(res *Result, prefab Prefab, rule PlacementRule, rng *rand.Rand) (Rect, bool) {
	m := res.Map
	log := logger.Log.WithFields(logrus.Fields{
		"component": "prefab",
		"prefab":    prefab.Name,
		"rule":      rule.String(),
	})

	if prefab.Width > m.Width || prefab.Height > m.Height {
		log.Debug("Map too small for prefab, skipping")
		return Rect{}, false
	}

	field := DistanceFrom(m, res.PlayerStart, MaxDepth)

	var placement *Rect
	for attempt := 0; attempt < PrefabAttempts && placement == nil; attempt++ {
		candidate := Rect{
			X: utils.Range(rng, 0, m.Width-prefab.Width+1),
			Y: utils.Range(rng, 0, m.Height-prefab.Height+1),
			W: prefab.Width,
			H: prefab.Height,
		}
		if canPlace(candidate, res, field, rule) {
			placement = &candidate
			log.WithFields(logrus.Fields{"attempt": attempt, "x": candidate.X, "y": candidate.Y}).Debug("Prefab placement accepted")
		}
	}

	if placement == nil {
		log.Debug("No valid prefab placement found")
		return Rect{}, false
	}

	stampPrefab(res, prefab, *placement)
	res.PrefabPlaced = true
	return *placement, true
}

// canPlace проверяет прямоугольник по правилу приемки.
// Независимо от правила, префаб не может накрыть старт игрока или цель.
func canPlace(r Rect, res *Result, field *DistanceField, rule PlacementRule) bool {
	if r.Contains(res.PlayerStart) || r.Contains(res.AmuletStart) {
		return false
	}

	anyOK, allOK := false, true
	r.ForEach(func(p domain.Point) {
		d := field.AtPoint(p)
		ok := d < ReachableCeiling && d > PrefabMinSeparation && p != res.AmuletStart
		anyOK = anyOK || ok
		allOK = allOK && ok
	})

	if rule == PlacementAll {
		return allOK
	}
	return anyOK
}

// stampPrefab убирает старые спавны из-под префаба и рисует его клетку за клеткой
func stampPrefab(res *Result, prefab Prefab, at Rect) {
	covered := at.PointSet()
	kept := res.MonsterSpawns[:0]
	for _, spawn := range res.MonsterSpawns {
		if !covered.Has(spawn) {
			kept = append(kept, spawn)
		}
	}
	res.MonsterSpawns = kept

	for y, line := range prefab.Lines {
		for x, ch := range line {
			p := domain.Point{X: at.X + x, Y: at.Y + y}
			switch ch {
			case prefabGlyphWall:
				res.Map.SetTile(p, domain.TileWall)
			case prefabGlyphFloor:
				res.Map.SetTile(p, domain.TileFloor)
			case prefabGlyphMonster:
				res.Map.SetTile(p, domain.TileFloor)
				res.MonsterSpawns = append(res.MonsterSpawns, p)
			}
		}
	}
}
