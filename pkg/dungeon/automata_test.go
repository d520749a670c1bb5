package dungeon

import (
	"reflect"
	"testing"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
)

func TestRelax_Rules(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want domain.TileType
	}{
		{"Isolated floor pocket becomes wall", []string{"...", "...", "..."}, domain.TileWall},
		{"Surrounded by walls", []string{"###", "#.#", "###"}, domain.TileWall},
		{"Five walls", []string{"###", "#..", "#.."}, domain.TileWall},
		{"Four walls", []string{"###", "#..", "..."}, domain.TileFloor},
		{"Single wall neighbour", []string{"#..", "...", "..."}, domain.TileFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mapFromRows(tt.rows...)
			relax(m)
			if got, _ := m.TileAt(domain.Point{X: 1, Y: 1}); got != tt.want {
				t.Errorf("Expected center %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRelax_UsesSnapshotAndKeepsBorder(t *testing.T) {
	m := domain.NewMap(30, 20)
	randomNoise(m, newTestRand(11))
	before := m.Clone()

	relax(m)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := domain.Point{X: x, Y: y}
			got, _ := m.TileAt(p)

			if x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1 {
				if want, _ := before.TileAt(p); got != want {
					t.Fatalf("Border cell %v changed from %v to %v", p, want, got)
				}
				continue
			}

			// Эталон: соседи считаются только по состоянию до итерации
			walls := 0
			for _, n := range neighbors8 {
				if tile, _ := before.TileAt(domain.Point{X: p.X + n[0], Y: p.Y + n[1]}); tile == domain.TileWall {
					walls++
				}
			}
			want := domain.TileFloor
			if walls > 4 || walls == 0 {
				want = domain.TileWall
			}
			if got != want {
				t.Fatalf("Cell %v: expected %v with %d wall neighbours, got %v", p, want, walls, got)
			}
		}
	}
}

func TestFindStart(t *testing.T) {
	// Обе клетки пола на одинаковом расстоянии от центра (2,2): побеждает первая
	m := mapFromRows(
		".####",
		"#####",
		"#####",
		"#####",
		"####.",
	)
	if got := findStart(m); got != (domain.Point{X: 0, Y: 0}) {
		t.Errorf("Expected (0,0), got %v", got)
	}

	m.SetTile(domain.Point{X: 3, Y: 2}, domain.TileFloor)
	if got := findStart(m); got != (domain.Point{X: 3, Y: 2}) {
		t.Errorf("Expected nearest floor (3,2), got %v", got)
	}

	m.Fill(domain.TileWall)
	if got := findStart(m); got != m.Center() {
		t.Errorf("Expected center fallback on a solid map, got %v", got)
	}
}

func TestCellularAutomata_Design(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		arch := &CellularAutomataArchitect{Width: domain.MapWidth, Height: domain.MapHeight}
		res := arch.Design(newTestRand(seed))
		m := res.Map

		if m.Width != domain.MapWidth || m.Height != domain.MapHeight || len(m.Tiles) != m.Width*m.Height {
			t.Fatalf("Seed %d: bad map size %dx%d (%d tiles)", seed, m.Width, m.Height, len(m.Tiles))
		}
		if res.Architect != ArchitectAutomata {
			t.Errorf("Seed %d: expected automata tag, got %v", seed, res.Architect)
		}
		if tile, _ := m.TileAt(res.PlayerStart); tile != domain.TileFloor {
			t.Errorf("Seed %d: start %v is not floor", seed, res.PlayerStart)
		}
		if !m.CanEnterTile(res.AmuletStart) {
			t.Errorf("Seed %d: goal %v is not walkable", seed, res.AmuletStart)
		}
		if len(res.MonsterSpawns) > NumMonsters {
			t.Errorf("Seed %d: too many spawns: %d", seed, len(res.MonsterSpawns))
		}
		for _, s := range res.MonsterSpawns {
			if tile, _ := m.TileAt(s); tile != domain.TileFloor {
				t.Errorf("Seed %d: spawn %v is not floor", seed, s)
			}
		}
	}
}

func TestCellularAutomata_Deterministic(t *testing.T) {
	arch := &CellularAutomataArchitect{Width: 60, Height: 40}
	a := arch.Design(newTestRand(42))
	b := arch.Design(newTestRand(42))

	if !reflect.DeepEqual(a.Map.Tiles, b.Map.Tiles) {
		t.Error("Same seed produced different tiles")
	}
	if a.PlayerStart != b.PlayerStart || a.AmuletStart != b.AmuletStart {
		t.Errorf("Same seed produced different start/goal: %v/%v vs %v/%v",
			a.PlayerStart, a.AmuletStart, b.PlayerStart, b.AmuletStart)
	}
	if !reflect.DeepEqual(a.MonsterSpawns, b.MonsterSpawns) {
		t.Error("Same seed produced different spawns")
	}
}

func TestCellularAutomata_TinyMaps(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 2}, {3, 1}} {
		arch := &CellularAutomataArchitect{Width: size[0], Height: size[1]}
		res := arch.Design(newTestRand(3))

		if !res.Map.InBounds(res.PlayerStart) || !res.Map.InBounds(res.AmuletStart) {
			t.Errorf("%dx%d: start %v or goal %v out of bounds", size[0], size[1], res.PlayerStart, res.AmuletStart)
		}
		if len(res.MonsterSpawns) != 0 {
			t.Errorf("%dx%d: expected no spawns, got %d", size[0], size[1], len(res.MonsterSpawns))
		}
	}
}
