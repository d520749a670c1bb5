package domain

// Point - координата клетки на карте
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceSquaredTo возвращает квадрат расстояния (int) для сравнения без корней
func (p Point) DistanceSquaredTo(other Point) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}
