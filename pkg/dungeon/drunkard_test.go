package dungeon

import (
	"reflect"
	"testing"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
)

func TestDrunkard_Design(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		arch := &DrunkardArchitect{Width: domain.MapWidth, Height: domain.MapHeight}
		res := arch.Design(newTestRand(seed))
		m := res.Map

		if res.Architect != ArchitectDrunkard {
			t.Errorf("Seed %d: expected drunkard tag, got %v", seed, res.Architect)
		}

		// 1. Квота пола
		floor := m.Count(domain.TileFloor)
		if floor < len(m.Tiles)/3 {
			t.Errorf("Seed %d: floor %d below quota %d", seed, floor, len(m.Tiles)/3)
		}

		// 2. Старт в центре
		if res.PlayerStart != m.Center() {
			t.Errorf("Seed %d: expected start at center %v, got %v", seed, m.Center(), res.PlayerStart)
		}
		if tile, _ := m.TileAt(res.PlayerStart); tile != domain.TileFloor {
			t.Errorf("Seed %d: center is not floor", seed)
		}

		// 3. Весь пол связан с центром
		field := DistanceFrom(m, m.Center(), MaxDepth)
		for idx, tile := range m.Tiles {
			if tile == domain.TileFloor && !field.Reachable(idx) {
				t.Fatalf("Seed %d: floor at %v is disconnected from center", seed, m.IndexToPoint(idx))
			}
		}

		if !m.CanEnterTile(res.AmuletStart) {
			t.Errorf("Seed %d: goal %v is not walkable", seed, res.AmuletStart)
		}
	}
}

func TestDrunkard_Deterministic(t *testing.T) {
	arch := &DrunkardArchitect{Width: 50, Height: 30}
	a := arch.Design(newTestRand(9))
	b := arch.Design(newTestRand(9))

	if !reflect.DeepEqual(a.Map.Tiles, b.Map.Tiles) {
		t.Error("Same seed produced different tiles")
	}
	if a.AmuletStart != b.AmuletStart || !reflect.DeepEqual(a.MonsterSpawns, b.MonsterSpawns) {
		t.Error("Same seed produced different goal or spawns")
	}
}

func TestDrunkard_TinyMapsTerminate(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 1}, {3, 3}} {
		arch := &DrunkardArchitect{Width: size[0], Height: size[1]}
		res := arch.Design(newTestRand(5))
		m := res.Map

		if m.Count(domain.TileFloor) < len(m.Tiles)/3 {
			t.Errorf("%dx%d: floor quota not reached", size[0], size[1])
		}
		if tile, _ := m.TileAt(m.Center()); tile != domain.TileFloor {
			t.Errorf("%dx%d: center is not floor", size[0], size[1])
		}
	}
}

func TestDrunkardWalk_StaysInBounds(t *testing.T) {
	m := domain.NewMap(20, 20)
	m.Fill(domain.TileWall)
	rng := newTestRand(1)

	for i := 0; i < 50; i++ {
		drunkardWalk(m, domain.Point{X: rng.Intn(20), Y: rng.Intn(20)}, rng)
	}

	if len(m.Tiles) != 400 {
		t.Fatalf("Map resized to %d tiles", len(m.Tiles))
	}
	if m.Count(domain.TileFloor) == 0 {
		t.Error("Walks should carve at least some floor")
	}
}

func TestDrunkardWalk_StaggerLimit(t *testing.T) {
	// Карта больше StaggerDistance во все стороны: пьяница не может выйти за край
	size := 2*StaggerDistance + 10
	m := domain.NewMap(size, size)
	m.Fill(domain.TileWall)

	drunkardWalk(m, m.Center(), newTestRand(2))

	carved := m.Count(domain.TileFloor)
	if carved < 1 || carved > StaggerDistance+1 {
		t.Errorf("Expected between 1 and %d carved cells, got %d", StaggerDistance+1, carved)
	}
}

func TestDrunkard_QuotaOnLargeAndNarrowMaps(t *testing.T) {
	sizes := []struct {
		name          string
		width, height int
		seeds         int64
	}{
		{"wide strip", 500, 3, 3},
		{"tall strip", 3, 500, 3},
		{"square 200", 200, 200, 2},
		{"square 500", 500, 500, 1},
	}

	for _, tt := range sizes {
		t.Run(tt.name, func(t *testing.T) {
			if testing.Short() && tt.width*tt.height > 100000 {
				t.Skip("large map")
			}
			for seed := int64(1); seed <= tt.seeds; seed++ {
				arch := &DrunkardArchitect{Width: tt.width, Height: tt.height}
				m := arch.Design(newTestRand(seed)).Map

				if floor := m.Count(domain.TileFloor); floor < len(m.Tiles)/3 {
					t.Errorf("Seed %d: floor %d below quota %d", seed, floor, len(m.Tiles)/3)
				}

				field := DistanceFrom(m, m.Center(), MaxDepth)
				for idx, tile := range m.Tiles {
					if tile == domain.TileFloor && !field.Reachable(idx) {
						t.Fatalf("Seed %d: floor at %v is cut off from center", seed, m.IndexToPoint(idx))
					}
				}
			}
		})
	}
}

func TestDrunkardWalk_ReportsContact(t *testing.T) {
	t.Run("isolated walk", func(t *testing.T) {
		m := domain.NewMap(30, 30)
		m.Fill(domain.TileWall)

		carved, touched := drunkardWalk(m, m.Center(), newTestRand(4))
		if touched {
			t.Error("Walk on a solid map cannot touch old floor")
		}
		if len(carved) != m.Count(domain.TileFloor) {
			t.Errorf("Expected %d carved cells, got %d", m.Count(domain.TileFloor), len(carved))
		}
	})

	t.Run("walk from old floor", func(t *testing.T) {
		m := domain.NewMap(30, 30)
		m.Fill(domain.TileWall)
		start := domain.Point{X: 15, Y: 15}
		m.SetTile(start, domain.TileFloor)

		carved, touched := drunkardWalk(m, start, newTestRand(4))
		if !touched {
			t.Error("Walk starting on old floor must report contact")
		}
		for _, p := range carved {
			if p == start {
				t.Error("Old floor must not be reported as carved")
			}
		}
	})

	t.Run("diagonal neighbour", func(t *testing.T) {
		m := domain.NewMap(3, 3)
		m.Fill(domain.TileWall)
		m.SetTile(domain.Point{X: 0, Y: 0}, domain.TileFloor)

		// Старт (1,1) касается (0,0) по диагонали
		_, touched := drunkardWalk(m, domain.Point{X: 1, Y: 1}, newTestRand(1))
		if !touched {
			t.Error("Diagonal contact with old floor must count")
		}
	})
}
