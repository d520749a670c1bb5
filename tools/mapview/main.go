package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/engine"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/dungeon"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/gdamore/tcell/v2"
)

// Цвета маркеров поверх темы
const (
	colorPlayer  = 0x22D3EE
	colorAmulet  = 0xFFD700
	colorMonster = 0xFF4040
)

type viewer struct {
	seed int64
	opts engine.GenerateOptions
	res  *dungeon.Result
}

func main() {
	seed := flag.Int64("seed", 1, "Level seed")
	level := flag.Int("level", domain.FirstLevel, "Level depth")
	architect := flag.String("architect", "random", "automata, drunkard or random")
	width := flag.Int("width", domain.MapWidth, "Map width")
	height := flag.Int("height", domain.MapHeight, "Map height")
	flag.Parse()

	// Логи испортили бы экран
	logger.Silence()

	kind, err := dungeon.ParseArchitect(*architect)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	v := &viewer{
		seed: *seed,
		opts: engine.GenerateOptions{
			Level:     *level,
			Width:     *width,
			Height:    *height,
			Architect: kind,
			Prefab:    true,
		},
	}
	v.regenerate()

	if err := v.run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (v *viewer) regenerate() {
	v.res = engine.GenerateLevel(v.seed, v.opts)
}

func (v *viewer) run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	for {
		v.draw(screen)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'r':
				v.seed++
				v.regenerate()
			case ev.Rune() == 'p':
				v.opts.Prefab = !v.opts.Prefab
				v.regenerate()
			case ev.Rune() == 'd':
				if v.opts.Level < domain.FinalLevel {
					v.opts.Level++
				} else {
					v.opts.Level = domain.FirstLevel
				}
				v.regenerate()
			}
		}
	}
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	m := v.res.Map

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			ch, color := cellAt(v.res, domain.Point{X: x, Y: y})
			style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(color)))
			screen.SetContent(x, y, ch, nil, style)
		}
	}

	status := fmt.Sprintf("seed %d | level %d | %s | %s | prefab %v | spawns %d | r:next p:prefab d:depth q:quit",
		v.seed, v.res.Level, v.res.Architect, v.res.Theme.Name(), v.res.PrefabPlaced, len(v.res.MonsterSpawns))
	for i, r := range status {
		screen.SetContent(i, m.Height, r, nil, tcell.StyleDefault)
	}

	screen.Show()
}

// cellAt возвращает символ и цвет клетки: маркеры поверх глифа темы.
// Выход на месте цели рисуется темой, амулет - отдельным маркером.
func cellAt(res *dungeon.Result, p domain.Point) (rune, uint32) {
	switch {
	case p == res.PlayerStart:
		return '@', colorPlayer
	case p == res.AmuletStart && !res.GoalIsExit:
		return '|', colorAmulet
	}

	for _, s := range res.MonsterSpawns {
		if s == p {
			return 'M', colorMonster
		}
	}

	tile, _ := res.Map.TileAt(p)
	glyph := res.Theme.TileToRender(tile)
	return glyph.Rune(), glyph.Color()
}
