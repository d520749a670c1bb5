package version

import (
	"errors"
	"fmt"
	"time"
)

// Заполняются через -ldflags "-X .../internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// GeneratorRevision увеличивается при любом изменении алгоритмов генерации,
// после которого старые зерна дают другие карты. Пишется в журнал зерен.
const GeneratorRevision = 2

var ErrGeneratorMismatch = errors.New("generator revision mismatch")

// Номер сборки - число дней от этой даты
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки, отдаются на /version
type VersionInfo struct {
	BuildID           int    `json:"buildId"`
	BuildDate         string `json:"buildDate"`
	Commit            string `json:"commit"`
	Branch            string `json:"branch"`
	CI                string `json:"ci"`
	GeneratorRevision int    `json:"generatorRevision"`
	Calculated        bool   `json:"calculated"`
	Error             string `json:"error,omitempty"`
}

// CalculateBuildID переводит BuildDate в номер сборки
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, errors.New("build date is not set")
	}

	t, err := time.ParseInLocation(time.DateOnly, BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", BuildDate)
	}

	// Обе даты в UTC, так что деление часов на 24 точное
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// CheckGenerator сверяет ревизию из журнала зерен с текущей.
// Несовпадение значит, что зерна журнала дадут уже другие карты.
func CheckGenerator(revision int) error {
	if revision != GeneratorRevision {
		return fmt.Errorf("%w: log r%d, running r%d", ErrGeneratorMismatch, revision, GeneratorRevision)
	}
	return nil
}

func Info() VersionInfo {
	info := VersionInfo{
		BuildDate:         BuildDate,
		Commit:            BuildCommit,
		Branch:            BuildBranch,
		CI:                BuildCI,
		GeneratorRevision: GeneratorRevision,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String - строка для лога при старте
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("dungeon generator r%d, build unknown (%s)", info.GeneratorRevision, info.Error)
	}

	return fmt.Sprintf("dungeon generator r%d, build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.GeneratorRevision,
		info.BuildID,
		info.BuildDate,
		orDefault(info.Commit, "unknown"),
		orDefault(info.Branch, "unknown"),
		orDefault(info.CI, "local"),
	)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
