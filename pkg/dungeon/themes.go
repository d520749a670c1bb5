package dungeon

import (
	"fmt"
	"strings"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/core/types"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
)

// Theme - чистое отображение типа клетки в глиф. В генерации не участвует,
// нужна только рендеру.
type Theme interface {
	Name() string
	TileToRender(tile domain.TileType) types.Glyph
}

// DungeonTheme - каменное подземелье
type DungeonTheme struct{}

func (DungeonTheme) Name() string { return "dungeon" }

func (DungeonTheme) TileToRender(tile domain.TileType) types.Glyph {
	switch tile {
	case domain.TileFloor:
		return types.MakeGlyph(0xFFFF00, '.')
	case domain.TileExit:
		return types.MakeGlyph(0xFFFFFF, '>')
	default:
		return types.MakeGlyph(0x00FF00, '#')
	}
}

// ForestTheme - лесная поляна
type ForestTheme struct{}

func (ForestTheme) Name() string { return "forest" }

func (ForestTheme) TileToRender(tile domain.TileType) types.Glyph {
	switch tile {
	case domain.TileFloor:
		return types.MakeGlyph(0x8FBC8F, ';')
	case domain.TileExit:
		return types.MakeGlyph(0xFFFFFF, '>')
	default:
		return types.MakeGlyph(0x228B22, '"')
	}
}

// Themes - все доступные темы в порядке случайного выбора
var Themes = []Theme{DungeonTheme{}, ForestTheme{}}

// ThemeByName ищет тему по имени; пустое имя - нет темы (выберется случайно)
func ThemeByName(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "random" {
		return nil, nil
	}
	for _, t := range Themes {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}
