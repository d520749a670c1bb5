package domain

// GenerationRecord - запись об одной генерации уровня.
// Самой карты тут нет: по сиду и параметрам она детерминированно восстанавливается.
type GenerationRecord struct {
	SessionID string `json:"sessionId"`
	Seed      int64  `json:"seed"`
	Timestamp int64  `json:"timestamp"`
	Level     int    `json:"level"`
	Architect string `json:"architect"` // "automata", "drunkard" или "random"
	Theme     string `json:"theme"`     // Пусто - тема выбиралась через rng
	Prefab    bool   `json:"prefab"`
	Strict    bool   `json:"strict"` // Строгое правило размещения префаба
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// SeedLog - журнал генераций одного запуска сервера
type SeedLog struct {
	MasterSeed int64
	Generator  int // Ревизия алгоритмов, которыми строились карты
	Timestamp  int64
	Records    []GenerationRecord
}
