package dungeon

import (
	"math/rand"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Параметры клеточного автомата
const (
	AutomataWallChance = 55 // % стен в начальном шуме
	AutomataIterations = 10
)

// CellularAutomataArchitect строит пещеры: случайный шум + сглаживание по соседям.
type CellularAutomataArchitect struct {
	Width, Height int
}

func (a *CellularAutomataArchitect) Kind() ArchitectKind { return ArchitectAutomata }

// Design генерирует пещерную карту
func (a *CellularAutomataArchitect) Design(rng *rand.Rand) *Result {
	res := newResult(a.Width, a.Height, ArchitectAutomata)
	m := res.Map

	// 1. Шум
	randomNoise(m, rng)

	// 2. Сглаживание: фиксированное число итераций, поэтому цикл всегда конечен
	for i := 0; i < AutomataIterations; i++ {
		relax(m)
	}

	// 3. Старт, цель, монстры
	res.PlayerStart = findStart(m)
	field := DistanceFrom(m, res.PlayerStart, MaxDepth)
	res.AmuletStart = field.FarthestPoint(m.Center())
	res.MonsterSpawns = SpawnMonsters(m, res.PlayerStart, rng)

	logger.Log.WithFields(logrus.Fields{
		"component": "architect",
		"architect": "automata",
		"floor":     m.Count(domain.TileFloor),
		"start":     res.PlayerStart,
		"goal":      res.AmuletStart,
	}).Debug("Cave designed")

	return res
}

// randomNoise: каждая клетка независимо становится стеной с вероятностью AutomataWallChance%
func randomNoise(m *domain.Map, rng *rand.Rand) {
	for i := range m.Tiles {
		if rng.Intn(100) < AutomataWallChance {
			m.Tiles[i] = domain.TileWall
		} else {
			m.Tiles[i] = domain.TileFloor
		}
	}
}

// countWallNeighbors считает стены среди 8 соседей клетки (x, y)
func countWallNeighbors(m *domain.Map, x, y int) int {
	count := 0
	for _, n := range neighbors8 {
		if m.Tiles[m.PointToIndex(x+n[0], y+n[1])] == domain.TileWall {
			count++
		}
	}
	return count
}

// relax выполняет одну итерацию автомата.
// Соседи считаются по снимку предыдущей итерации, рамка в 1 клетку не меняется.
// Клетка становится стеной при >4 соседях-стенах или при 0 (одинокий пятачок пола).
func relax(m *domain.Map) {
	snapshot := m.Clone()

	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			walls := countWallNeighbors(snapshot, x, y)
			idx := m.PointToIndex(x, y)
			if walls > 4 || walls == 0 {
				m.Tiles[idx] = domain.TileWall
			} else {
				m.Tiles[idx] = domain.TileFloor
			}
		}
	}
}

// findStart выбирает клетку пола, ближайшую к центру карты (по Евклиду).
// При равенстве побеждает первая в порядке row-major. Без пола - центр.
func findStart(m *domain.Map) domain.Point {
	center := m.Center()
	best, bestDist := center, -1

	for idx, tile := range m.Tiles {
		if tile != domain.TileFloor {
			continue
		}
		p := m.IndexToPoint(idx)
		d := p.DistanceSquaredTo(center)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}

	if bestDist < 0 {
		logger.Log.WithField("component", "architect").Warn("No floor tiles after relaxation, falling back to map center")
	}
	return best
}
