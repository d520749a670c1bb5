package domain

// PointToIndex переводит координаты в индекс массива клеток.
// Вызывающий отвечает за проверку границ (см. InBounds).
func (m *Map) PointToIndex(x, y int) int {
	return y*m.Width + x
}

// IndexToPoint - обратное преобразование к PointToIndex
func (m *Map) IndexToPoint(idx int) Point {
	return Point{X: idx % m.Width, Y: idx / m.Width}
}

// Idx - то же, что PointToIndex, но для Point
func (m *Map) Idx(p Point) int {
	return m.PointToIndex(p.X, p.Y)
}

// InBounds проверяет, лежит ли точка внутри карты
func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// CanEnterTile - true, если точка внутри карты и клетка проходима (пол или выход)
func (m *Map) CanEnterTile(p Point) bool {
	return m.InBounds(p) && m.Tiles[m.Idx(p)].IsWalkable()
}

// TileAt возвращает тип клетки. Для точек вне карты - (TileWall, false).
func (m *Map) TileAt(p Point) (TileType, bool) {
	if !m.InBounds(p) {
		return TileWall, false
	}
	return m.Tiles[m.Idx(p)], true
}

// SetTile записывает клетку. Точки вне карты игнорируются.
func (m *Map) SetTile(p Point, t TileType) bool {
	if !m.InBounds(p) {
		return false
	}
	m.Tiles[m.Idx(p)] = t
	return true
}

// Fill заполняет всю карту одним типом клеток
func (m *Map) Fill(t TileType) {
	for i := range m.Tiles {
		m.Tiles[i] = t
	}
}

// Center - геометрический центр карты
func (m *Map) Center() Point {
	return Point{X: m.Width / 2, Y: m.Height / 2}
}

// Count считает клетки заданного типа
func (m *Map) Count(t TileType) int {
	n := 0
	for _, tile := range m.Tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Clone возвращает глубокую копию карты (свой массив клеток)
func (m *Map) Clone() *Map {
	tiles := make([]TileType, len(m.Tiles))
	copy(tiles, m.Tiles)
	return &Map{Width: m.Width, Height: m.Height, Tiles: tiles}
}
