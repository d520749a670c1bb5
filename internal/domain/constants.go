package domain

// Размеры карты по умолчанию
const (
	MapWidth  = 80
	MapHeight = 50
)

// Глубина подземелья: на последнем уровне лежит амулет, на остальных - выход вниз
const (
	FirstLevel = 1
	FinalLevel = 2
)
