package dungeon

import (
	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/zyedidia/generic/mapset"
)

// Rect - прямоугольная область карты (комната, место под префаб)
type Rect struct {
	X, Y, W, H int
}

// Contains - лежит ли точка внутри (правая и нижняя границы не включаются)
func (r Rect) Contains(p domain.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ForEach обходит все точки прямоугольника в порядке row-major
func (r Rect) ForEach(fn func(p domain.Point)) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			fn(domain.Point{X: x, Y: y})
		}
	}
}

// PointSet возвращает множество всех точек прямоугольника
func (r Rect) PointSet() mapset.Set[domain.Point] {
	set := mapset.New[domain.Point]()
	r.ForEach(func(p domain.Point) { set.Put(p) })
	return set
}
