package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
)

const (
	MagicHeader string = `DGSL` // 4 байта
	Version1    uint32 = 1

	MaxIDLength = 255 // ID сессии хранится с длиной в одном байте
)

var (
	ErrInvalidMagic       = errors.New("invalid magic")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Флаги записи
const (
	flagPrefab uint8 = 1 << 0
	flagStrict uint8 = 1 << 1
	themeShift       = 2 // Биты 2-3: индекс темы в themeCodes
	themeMask  uint8 = 0b11 << themeShift
)

// Коды архитекторов и тем в файле. Порядок менять нельзя: он часть формата.
var (
	architectCodes = []string{"random", "automata", "drunkard"}
	themeCodes     = []string{"", "dungeon", "forest"}
)

// SeedLogHeader — это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type SeedLogHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Generator   uint32  // 4 байта, ревизия генератора
	MasterSeed  int64   // 8 байт
	Timestamp   int64   // 8 байт
	RecordCount int32   // 4 байта
}

// RecordHeader — заголовок каждой записи генерации.
type RecordHeader struct {
	Seed      int64  // 8
	Timestamp int64  // 8
	Level     int32  // 4
	Architect uint8  // 1
	Flags     uint8  // 1
	Width     uint16 // 2
	Height    uint16 // 2
	IDLen     uint8  // 1
}

type SeedLogService struct {
	SaveDir string
}

func NewSeedLogService(dir string) *SeedLogService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &SeedLogService{SaveDir: dir}
}

// Save пишет журнал в файл seeds_<master>_<unix>.dgsl и возвращает путь
func (s *SeedLogService) Save(log *domain.SeedLog) (string, error) {
	filename := fmt.Sprintf("seeds_%d_%d.dgsl", log.MasterSeed, log.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := writeBinary(f, log); err != nil {
		f.Close()
		// Недописанный журнал не читается, оставлять его нельзя
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

func writeBinary(w io.Writer, log *domain.SeedLog) error {
	// 1. Глобальный заголовок
	header := SeedLogHeader{
		Version:     Version1,
		Generator:   uint32(log.Generator),
		MasterSeed:  log.MasterSeed,
		Timestamp:   log.Timestamp,
		RecordCount: int32(len(log.Records)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Записи
	for _, rec := range log.Records {
		idBytes := []byte(rec.SessionID)
		if len(idBytes) > MaxIDLength {
			return fmt.Errorf("session id too long: %d", len(idBytes))
		}
		if rec.Width < 0 || rec.Width > 65535 || rec.Height < 0 || rec.Height > 65535 {
			return fmt.Errorf("map size out of range: %dx%d", rec.Width, rec.Height)
		}

		architect, err := encode(architectCodes, rec.Architect)
		if err != nil {
			return fmt.Errorf("architect: %w", err)
		}
		theme, err := encode(themeCodes, rec.Theme)
		if err != nil {
			return fmt.Errorf("theme: %w", err)
		}

		flags := theme << themeShift
		if rec.Prefab {
			flags |= flagPrefab
		}
		if rec.Strict {
			flags |= flagStrict
		}

		rh := RecordHeader{
			Seed:      rec.Seed,
			Timestamp: rec.Timestamp,
			Level:     int32(rec.Level),
			Architect: architect,
			Flags:     flags,
			Width:     uint16(rec.Width),
			Height:    uint16(rec.Height),
			IDLen:     uint8(len(idBytes)),
		}

		if err := binary.Write(w, binary.LittleEndian, &rh); err != nil {
			return err
		}
		if _, err := w.Write(idBytes); err != nil {
			return err
		}
	}

	return nil
}

func encode(codes []string, name string) (uint8, error) {
	for i, c := range codes {
		if c == name {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown name %q", name)
}
