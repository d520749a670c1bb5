package dungeon

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
)

// Result - готовый пакет генерации: карта, старт, цель, точки спавна, тема.
// Создается архитектором, дополняется префабом, затем передается сессии.
type Result struct {
	Map           *domain.Map
	Rooms         []Rect // Пусто для пещерных архитекторов
	MonsterSpawns []domain.Point
	PlayerStart   domain.Point
	AmuletStart   domain.Point // Цель: амулет или выход вниз
	GoalIsExit    bool
	Theme         Theme
	Architect     ArchitectKind
	PrefabPlaced  bool
	Level         int
}

// newResult создает пустой результат с картой нужного размера
func newResult(width, height int, kind ArchitectKind) *Result {
	return &Result{
		Map:           domain.NewMap(width, height),
		Rooms:         []Rect{},
		MonsterSpawns: []domain.Point{},
		Architect:     kind,
	}
}

// Architect - стратегия генерации карты.
// Design обязан быть детерминированным для фиксированного потока rng и
// вернуть полностью заполненный Result.
type Architect interface {
	Kind() ArchitectKind
	Design(rng *rand.Rand) *Result
}

// ArchitectKind - тег стратегии
type ArchitectKind uint8

const (
	ArchitectRandom ArchitectKind = iota
	ArchitectAutomata
	ArchitectDrunkard
)

func (k ArchitectKind) String() string {
	switch k {
	case ArchitectAutomata:
		return "automata"
	case ArchitectDrunkard:
		return "drunkard"
	default:
		return "random"
	}
}

// ParseArchitect разбирает имя архитектора из конфига или запроса
func ParseArchitect(name string) (ArchitectKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "random":
		return ArchitectRandom, nil
	case "automata", "cellular":
		return ArchitectAutomata, nil
	case "drunkard":
		return ArchitectDrunkard, nil
	default:
		return ArchitectRandom, fmt.Errorf("unknown architect %q", name)
	}
}

// NewArchitect создает архитектора заданного вида. Random здесь не допускается:
// случайный выбор делает LevelBuilder, потребляя rng.
func NewArchitect(kind ArchitectKind, width, height int) Architect {
	switch kind {
	case ArchitectDrunkard:
		return &DrunkardArchitect{Width: width, Height: height}
	default:
		return &CellularAutomataArchitect{Width: width, Height: height}
	}
}
