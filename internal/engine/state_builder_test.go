package engine

import (
	"errors"
	"testing"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/dungeon"
)

func TestBuildView(t *testing.T) {
	opts := testOptions()
	opts.Theme = dungeon.DungeonTheme{}
	res := GenerateLevel(11, opts)

	view := BuildView(&Snapshot{SessionID: "s1", Seed: 11, Result: res})

	if view.Type != api.TypeLevel || view.SessionID != "s1" || view.Seed != 11 {
		t.Errorf("Unexpected header: %s %s %d", view.Type, view.SessionID, view.Seed)
	}
	if len(view.Map) != len(res.Map.Tiles) {
		t.Fatalf("Expected %d tiles, got %d", len(res.Map.Tiles), len(view.Map))
	}
	if len(view.Spawns) != len(res.MonsterSpawns) {
		t.Errorf("Expected %d spawns, got %d", len(res.MonsterSpawns), len(view.Spawns))
	}

	for i, tv := range view.Map {
		tile := res.Map.Tiles[i]
		p := res.Map.IndexToPoint(i)
		if tv.X != p.X || tv.Y != p.Y {
			t.Fatalf("Tile %d has coordinates (%d,%d), expected %v", i, tv.X, tv.Y, p)
		}
		if tv.IsWall != (tile == domain.TileWall) || tv.Kind != tile.String() {
			t.Fatalf("Tile %v: kind mismatch %+v", p, tv)
		}
		want := map[domain.TileType]string{domain.TileWall: "#", domain.TileFloor: ".", domain.TileExit: ">"}[tile]
		if tv.Symbol != want {
			t.Fatalf("Tile %v: expected symbol %q, got %q", p, want, tv.Symbol)
		}
	}

	goalIdx := res.Map.Idx(res.AmuletStart)
	if view.Goal.X != res.AmuletStart.X || view.Map[goalIdx].Kind != "exit" {
		t.Errorf("Goal should be rendered as exit on level 1: %+v", view.Map[goalIdx])
	}
}

func TestErrorView(t *testing.T) {
	view := ErrorView("s1", errors.New("boom"))
	if view.Type != api.TypeError || view.Error != "boom" || view.SessionID != "s1" {
		t.Errorf("Unexpected error view: %+v", view)
	}
}
