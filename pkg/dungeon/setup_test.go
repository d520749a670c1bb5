package dungeon

import (
	"math/rand"
	"os"
	"testing"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
)

func TestMain(m *testing.M) {
	// Глобальный логгер нужен архитекторам и префабу
	logger.Init()

	os.Exit(m.Run())
}

// Helper: карта из строк, '#' - стена, '>' - выход, всё остальное - пол
func mapFromRows(rows ...string) *domain.Map {
	m := domain.NewMap(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			tile := domain.TileFloor
			switch ch {
			case '#':
				tile = domain.TileWall
			case '>':
				tile = domain.TileExit
			}
			m.SetTile(domain.Point{X: x, Y: y}, tile)
		}
	}
	return m
}

// Helper: открытая карта без стен
func openMap(w, h int) *domain.Map {
	m := domain.NewMap(w, h)
	m.Fill(domain.TileFloor)
	return m
}

func newTestRand(seed int64) *rand.Rand {
	return utils.NewRand(seed)
}
