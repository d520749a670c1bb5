package engine

import (
	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
)

// BuildView создает "снимок" уровня для клиента.
// Символы и цвета берутся из темы уровня.
func BuildView(snap *Snapshot) *api.ServerResponse {
	res := snap.Result
	m := res.Map

	// 1. Формирование карты (Map DTO)
	mapDTO := make([]api.TileView, 0, len(m.Tiles))
	for idx, tile := range m.Tiles {
		p := m.IndexToPoint(idx)
		glyph := res.Theme.TileToRender(tile)
		mapDTO = append(mapDTO, api.TileView{
			X: p.X, Y: p.Y,
			Symbol: glyph.Symbol(),
			Color:  glyph.HexColor(),
			Kind:   tile.String(),
			IsWall: tile == domain.TileWall,
		})
	}

	// 2. Точки интереса
	spawns := make([]api.PointView, 0, len(res.MonsterSpawns))
	for _, s := range res.MonsterSpawns {
		spawns = append(spawns, toPointView(s))
	}
	start := toPointView(res.PlayerStart)
	goal := toPointView(res.AmuletStart)

	return &api.ServerResponse{
		Type:         api.TypeLevel,
		SessionID:    snap.SessionID,
		Seed:         snap.Seed,
		Level:        res.Level,
		Architect:    res.Architect.String(),
		Theme:        res.Theme.Name(),
		Grid:         &api.GridMeta{Width: m.Width, Height: m.Height},
		Map:          mapDTO,
		Start:        &start,
		Goal:         &goal,
		GoalIsExit:   res.GoalIsExit,
		Spawns:       spawns,
		PrefabPlaced: res.PrefabPlaced,
	}
}

// ErrorView - ответ с ошибкой для клиента
func ErrorView(sessionID string, err error) *api.ServerResponse {
	return &api.ServerResponse{
		Type:      api.TypeError,
		SessionID: sessionID,
		Error:     err.Error(),
	}
}

func toPointView(p domain.Point) api.PointView {
	return api.PointView{X: p.X, Y: p.Y}
}
