package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/domain"
)

func (s *SeedLogService) Load(path string) (*domain.SeedLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.SeedLog, error) {
	// 1. Читаем заголовок целиком
	var header SeedLogHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, header.Magic[:])
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}
	if header.RecordCount < 0 {
		return nil, fmt.Errorf("negative record count: %d", header.RecordCount)
	}

	log := &domain.SeedLog{
		MasterSeed: header.MasterSeed,
		Generator:  int(header.Generator),
		Timestamp:  header.Timestamp,
		Records:    make([]domain.GenerationRecord, 0, header.RecordCount),
	}

	// 2. Читаем записи
	for i := 0; i < int(header.RecordCount); i++ {
		var rh RecordHeader
		if err := binary.Read(r, binary.LittleEndian, &rh); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		idBuf := make([]byte, rh.IDLen)
		if _, err := io.ReadFull(r, idBuf); err != nil {
			return nil, fmt.Errorf("record %d id: %w", i, err)
		}

		if int(rh.Architect) >= len(architectCodes) {
			return nil, fmt.Errorf("record %d: unknown architect code %d", i, rh.Architect)
		}
		themeIdx := int((rh.Flags & themeMask) >> themeShift)
		if themeIdx >= len(themeCodes) {
			return nil, fmt.Errorf("record %d: unknown theme code %d", i, themeIdx)
		}

		log.Records = append(log.Records, domain.GenerationRecord{
			SessionID: string(idBuf),
			Seed:      rh.Seed,
			Timestamp: rh.Timestamp,
			Level:     int(rh.Level),
			Architect: architectCodes[rh.Architect],
			Theme:     themeCodes[themeIdx],
			Prefab:    rh.Flags&flagPrefab != 0,
			Strict:    rh.Flags&flagStrict != 0,
			Width:     int(rh.Width),
			Height:    int(rh.Height),
		})
	}

	return log, nil
}
