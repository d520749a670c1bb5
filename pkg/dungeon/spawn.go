package dungeon

import (
	"math/rand"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Параметры расстановки монстров
const (
	NumMonsters      = 50
	MinSpawnDistance = 10 // Ближе к старту монстров не ставим
)

// SpawnMonsters выбирает точки спавна: клетки пола на расстоянии
// (MinSpawnDistance, ReachableCeiling) от start. Выбор взвешенный (вес = расстояние,
// дальние клетки вероятнее), без возвращения, не больше NumMonsters точек.
func SpawnMonsters(m *domain.Map, start domain.Point, rng *rand.Rand) []domain.Point {
	field := DistanceFrom(m, start, MaxDepth)

	var candidates []domain.Point
	var weights []int
	for idx, tile := range m.Tiles {
		d := field.Dist[idx]
		if tile == domain.TileFloor && d > MinSpawnDistance && d < ReachableCeiling {
			candidates = append(candidates, m.IndexToPoint(idx))
			weights = append(weights, d)
		}
	}

	spawns := make([]domain.Point, 0, min(NumMonsters, len(candidates)))
	for len(spawns) < NumMonsters && len(candidates) > 0 {
		i := utils.WeightedPick(rng, weights)
		if i < 0 {
			break
		}
		spawns = append(spawns, candidates[i])

		// Удаляем выбранную точку, сохраняя порядок (детерминизм)
		candidates = append(candidates[:i], candidates[i+1:]...)
		weights = append(weights[:i], weights[i+1:]...)
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "spawner",
		"start":      start,
		"candidates": len(candidates) + len(spawns),
		"spawns":     len(spawns),
	}).Debug("Monster spawn points selected")

	return spawns
}
