package types

import (
	"fmt"
)

// Glyph - упакованное представление цветного символа клетки.
// 32 бита (uint32):
//
//	[0:8]  - ASCII-символ (маска 0xFF)
//	[8:32] - RGB-цвет (маска 0xFFFFFF)
//
// Темы карты возвращают Glyph, а не пару (символ, цвет): так тайл
// помещается в одно слово и дешево сравнивается.
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// MakeGlyph создает Glyph из RGB-цвета (0xRRGGBB) и символа.
// Старшие биты цвета отбрасываются.
//
//	glyph := MakeGlyph(0xFFA500, '#') // оранжевая стена
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color извлекает 24-битный RGB-цвет.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

// Char извлекает символ.
func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// Rune - символ как rune (для терминального рендера)
func (g Glyph) Rune() rune {
	return rune(g.Char())
}

// Symbol - символ как строка (для JSON DTO)
func (g Glyph) Symbol() string {
	return string([]byte{g.Char()})
}

// HexColor возвращает цвет в виде "#RRGGBB".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// String реализует fmt.Stringer: "Glyph{char='#', color=#00FF00}".
// Непечатаемые символы выводятся как \xNN.
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}
