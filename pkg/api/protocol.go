package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" сгенерированного уровня.
// Отправляется после каждой генерации (INIT, RESET, DESCEND, /generate).
type ServerResponse struct {
	// Type тип сообщения: "LEVEL" или "ERROR".
	Type string `json:"type"`

	// SessionID сессия, к которой относится уровень. Пусто для /generate.
	SessionID string `json:"sessionId,omitempty"`

	// Seed зерно, из которого уровень воспроизводится байт в байт.
	Seed int64 `json:"seed"`

	// Level глубина (1 - первый уровень).
	Level int `json:"level"`

	// Architect стратегия, которая строила карту ("automata", "drunkard").
	Architect string `json:"architect"`

	// Theme имя темы отрисовки ("dungeon", "forest").
	Theme string `json:"theme"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map все тайлы карты в порядке row-major.
	Map []TileView `json:"map,omitempty"`

	// Start стартовая клетка игрока, Goal - амулет или выход вниз.
	Start *PointView `json:"start,omitempty"`
	Goal  *PointView `json:"goal,omitempty"`

	// GoalIsExit true, если на месте цели стоит выход на следующий уровень.
	GoalIsExit bool `json:"goalIsExit"`

	// Spawns точки появления монстров.
	Spawns []PointView `json:"spawns,omitempty"`

	// PrefabPlaced true, если на карту впечатан префаб.
	PrefabPlaced bool `json:"prefabPlaced"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
// Содержит всю необходимую информацию для его рендеринга.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление тайла в текущей теме (e.g. "#" для стены).
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// Kind - тип клетки: "wall", "floor", "exit".
	Kind string `json:"kind"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`
}

// PointView - координаты на карте
type PointView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии. Обязателен только для первого сообщения.
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, RESET, DESCEND.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Действия клиента
const (
	ActionInit    = "INIT"
	ActionReset   = "RESET"
	ActionDescend = "DESCEND"
)

// Типы ответов
const (
	TypeLevel = "LEVEL"
	TypeError = "ERROR"
)

// --- Payloads ---

// GeneratePayload - параметры генерации (INIT по websocket, query-параметры /generate).
// Нулевые значения означают "по умолчанию".
type GeneratePayload struct {
	Seed      int64  `json:"seed,omitempty"`
	Level     int    `json:"level,omitempty"`
	Architect string `json:"architect,omitempty"`
	Theme     string `json:"theme,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	NoPrefab  bool   `json:"noPrefab,omitempty"`
	Strict    bool   `json:"strict,omitempty"`
}
