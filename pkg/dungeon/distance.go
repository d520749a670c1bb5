package dungeon

import (
	"math"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
)

// Параметры поля расстояний
const (
	// Unreachable - значение для клеток, до которых нет пути в пределах MaxDepth.
	// Строго больше любого реального расстояния.
	Unreachable = math.MaxInt32

	// MaxDepth - глубина обхода по умолчанию. Ограничивает работу, а не корректность.
	MaxDepth = 1024

	// ReachableCeiling - порог "достижимости": всё, что дальше, считается недостижимым.
	ReachableCeiling = 2000
)

// соседи по 8 направлениям
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// DistanceField - результат многоисточникового обхода в ширину по карте.
// Dist[idx] - минимальное число шагов от ближайшего источника, либо Unreachable.
type DistanceField struct {
	Width, Height int
	Dist          []int
}

// NewDistanceField строит поле расстояний от набора источников.
// Шаг на стену запрещен, шаг на пол или выход стоит 1, соседство 8-связное.
// Клетки дальше maxDepth не раскрываются и остаются Unreachable.
// Индексы источников вне карты игнорируются; источник всегда получает 0, даже если это стена.
func NewDistanceField(m *domain.Map, sources []int, maxDepth int) *DistanceField {
	f := &DistanceField{
		Width:  m.Width,
		Height: m.Height,
		Dist:   make([]int, len(m.Tiles)),
	}
	for i := range f.Dist {
		f.Dist[i] = Unreachable
	}

	// Единичная стоимость шага: BFS эквивалентен Дейкстре
	queue := make([]int, 0, len(m.Tiles))
	for _, src := range sources {
		if src < 0 || src >= len(f.Dist) || f.Dist[src] == 0 {
			continue
		}
		f.Dist[src] = 0
		queue = append(queue, src)
	}

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		d := f.Dist[idx]
		if d >= maxDepth {
			continue
		}

		x, y := idx%m.Width, idx/m.Width
		for _, n := range neighbors8 {
			nx, ny := x+n[0], y+n[1]
			if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
				continue
			}
			nIdx := ny*m.Width + nx
			if !m.Tiles[nIdx].IsWalkable() || f.Dist[nIdx] <= d+1 {
				continue
			}
			f.Dist[nIdx] = d + 1
			queue = append(queue, nIdx)
		}
	}

	return f
}

// DistanceFrom - сокращение для поля с одним источником-точкой
func DistanceFrom(m *domain.Map, p domain.Point, maxDepth int) *DistanceField {
	if !m.InBounds(p) {
		return NewDistanceField(m, nil, maxDepth)
	}
	return NewDistanceField(m, []int{m.Idx(p)}, maxDepth)
}

// At возвращает расстояние для индекса (Unreachable для индексов вне поля)
func (f *DistanceField) At(idx int) int {
	if idx < 0 || idx >= len(f.Dist) {
		return Unreachable
	}
	return f.Dist[idx]
}

// AtPoint - то же, что At, но по координатам
func (f *DistanceField) AtPoint(p domain.Point) int {
	if p.X < 0 || p.X >= f.Width || p.Y < 0 || p.Y >= f.Height {
		return Unreachable
	}
	return f.Dist[p.Y*f.Width+p.X]
}

// Reachable - есть ли до клетки путь короче ReachableCeiling
func (f *DistanceField) Reachable(idx int) bool {
	return f.At(idx) < ReachableCeiling
}

// FarthestPoint возвращает клетку с максимальным конечным расстоянием.
// При равенстве побеждает последняя в порядке row-major (на открытом поле
// из угла (0,0) это противоположный угол).
// Если кроме источников достижимых клеток нет - возвращает fallback.
func (f *DistanceField) FarthestPoint(fallback domain.Point) domain.Point {
	best, bestIdx := 0, -1
	for idx, d := range f.Dist {
		if d == 0 || d >= ReachableCeiling {
			continue
		}
		if d >= best {
			best, bestIdx = d, idx
		}
	}
	if bestIdx < 0 {
		return fallback
	}
	return domain.Point{X: bestIdx % f.Width, Y: bestIdx / f.Width}
}

// PruneBeyond превращает в стены все клетки пола, чье расстояние больше threshold.
// Возвращает количество замурованных клеток.
func PruneBeyond(m *domain.Map, f *DistanceField, threshold int) int {
	pruned := 0
	for idx, d := range f.Dist {
		if d > threshold && m.Tiles[idx] == domain.TileFloor {
			m.Tiles[idx] = domain.TileWall
			pruned++
		}
	}
	return pruned
}
