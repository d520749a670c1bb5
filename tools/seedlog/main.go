package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/infrastructure/storage"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "list":
		if len(os.Args) < 3 {
			fmt.Println("Usage: seedlog list <file.dgsl>")
			return
		}
		if err := list(os.Args[2]); err != nil {
			fmt.Printf("Failed to read seed log: %v\n", err)
			os.Exit(1)
		}
	case "seed":
		if len(os.Args) < 3 {
			fmt.Println("Usage: seedlog seed <session_id>")
			return
		}
		fmt.Println(utils.StringToSeed(os.Args[2]))
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: seedlog format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(formatUnix(ts))
	default:
		printHelp()
	}
}

func list(path string) error {
	log, err := storage.NewSeedLogService("").Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("master seed %d, generator r%d, started %s, %d records\n", log.MasterSeed, log.Generator, formatUnix(log.Timestamp), len(log.Records))
	for i, rec := range log.Records {
		session := rec.SessionID
		if session == "" {
			session = "-"
		}
		theme := rec.Theme
		if theme == "" {
			theme = "random"
		}
		fmt.Printf("%4d  %s  %-16s seed=%-20d lvl=%d %dx%d %-8s %-7s prefab=%v strict=%v\n",
			i, formatUnix(rec.Timestamp), session, rec.Seed, rec.Level, rec.Width, rec.Height,
			rec.Architect, theme, rec.Prefab, rec.Strict)
	}
	return nil
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

func printHelp() {
	fmt.Println(`Seed Log Utility - просмотр журналов генерации (.dgsl)
Commands:
  list <file.dgsl>       - вывести все записи журнала
  seed <session_id>      - показать, какое зерно дает ID сессии (до XOR с мастер-зерном)
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
