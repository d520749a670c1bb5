package dungeon

import (
	"math/rand"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Параметры "пьяного" алгоритма
const (
	StaggerDistance = 400  // Максимум шагов одного пьяницы
	MaxDrunkards    = 5000 // Прогулок из случайных точек, дальше - только от уже связного пола
)

// DrunkardArchitect прокладывает пещеру случайными блужданиями из центра.
type DrunkardArchitect struct {
	Width, Height int
}

func (a *DrunkardArchitect) Kind() ArchitectKind { return ArchitectDrunkard }

// Design генерирует карту, пока пол не займет хотя бы треть клеток.
//
// Весь пол всегда связан с центром, поэтому прогулка, не задевшая
// существующий пол, целиком отрезана и сразу замуровывается обратно.
// Когда квота набрана, поле расстояний пересчитывается целиком и всё
// дальше ReachableCeiling срезается; если срезано что-то, прогулки продолжаются.
func (a *DrunkardArchitect) Design(rng *rand.Rand) *Result {
	res := newResult(a.Width, a.Height, ArchitectDrunkard)
	m := res.Map
	m.Fill(domain.TileWall)

	center := m.Center()
	desiredFloor := len(m.Tiles) / 3
	maxWalks := MaxDrunkards + len(m.Tiles)

	carved, _ := drunkardWalk(m, center, rng)
	floor := len(carved)
	walks, reverted, pruned := 1, 0, 0

	// Пол, связанный с центром: отсюда стартуют прогулки после исчерпания MaxDrunkards
	var anchors []domain.Point

	for {
		if floor >= desiredFloor {
			field := DistanceFrom(m, center, MaxDepth)
			n := PruneBeyond(m, field, ReachableCeiling)
			if n == 0 {
				break
			}
			floor -= n
			pruned += n
			anchors = nil
			continue
		}

		if walks >= maxWalks {
			logger.Log.WithFields(logrus.Fields{
				"component": "architect",
				"architect": "drunkard",
				"walks":     walks,
				"floor":     floor,
				"desired":   desiredFloor,
			}).Warn("Drunkard walk budget exhausted before reaching floor quota")
			break
		}

		var start domain.Point
		if walks < MaxDrunkards {
			start = domain.Point{X: rng.Intn(m.Width), Y: rng.Intn(m.Height)}
		} else {
			if anchors == nil {
				anchors = floorCells(m)
			}
			start = anchors[rng.Intn(len(anchors))]
		}

		carved, touched := drunkardWalk(m, start, rng)
		walks++

		if !touched {
			for _, p := range carved {
				m.SetTile(p, domain.TileWall)
			}
			reverted += len(carved)
			continue
		}

		floor += len(carved)
		if anchors != nil {
			anchors = append(anchors, carved...)
		}
	}

	res.PlayerStart = center
	res.MonsterSpawns = SpawnMonsters(m, center, rng)
	res.AmuletStart = DistanceFrom(m, center, MaxDepth).FarthestPoint(center)

	logger.Log.WithFields(logrus.Fields{
		"component": "architect",
		"architect": "drunkard",
		"walks":     walks,
		"reverted":  reverted,
		"pruned":    pruned,
		"floor":     floor,
		"goal":      res.AmuletStart,
	}).Debug("Cave designed")

	return res
}

// drunkardWalk ставит пол в текущей клетке и делает шаг в случайную из 4 сторон.
// Останавливается при выходе за карту или после StaggerDistance шагов.
// Возвращает клетки, которые были стенами до прогулки, и признак того,
// что прогулка прошла по старому полу или вплотную к нему (8-соседство).
func drunkardWalk(m *domain.Map, start domain.Point, rng *rand.Rand) ([]domain.Point, bool) {
	var carved []domain.Point
	fresh := mapset.New[int]()
	touched := false

	pos := start
	staggered := 0

	for {
		idx := m.Idx(pos)
		if m.Tiles[idx] == domain.TileFloor {
			touched = touched || !fresh.Has(idx)
		} else {
			m.Tiles[idx] = domain.TileFloor
			fresh.Put(idx)
			carved = append(carved, pos)
		}

		switch rng.Intn(4) {
		case 0:
			pos.X++
		case 1:
			pos.X--
		case 2:
			pos.Y++
		default:
			pos.Y--
		}

		if !m.InBounds(pos) {
			break
		}

		staggered++
		if staggered > StaggerDistance {
			break
		}
	}

	for _, p := range carved {
		if touched {
			break
		}
		for _, n := range neighbors8 {
			np := domain.Point{X: p.X + n[0], Y: p.Y + n[1]}
			if !m.InBounds(np) {
				continue
			}
			nIdx := m.Idx(np)
			if m.Tiles[nIdx] == domain.TileFloor && !fresh.Has(nIdx) {
				touched = true
				break
			}
		}
	}

	return carved, touched
}

func floorCells(m *domain.Map) []domain.Point {
	cells := make([]domain.Point, 0, len(m.Tiles)/3)
	for idx, t := range m.Tiles {
		if t == domain.TileFloor {
			cells = append(cells, m.IndexToPoint(idx))
		}
	}
	return cells
}
