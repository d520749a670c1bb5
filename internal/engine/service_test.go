package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
)

func TestService_ProcessCommand(t *testing.T) {
	svc := newTestService(t)
	svc.OpenSession("alice")
	viewer := svc.Hub.Register("alice")
	defer svc.Hub.Unregister(viewer)

	// INIT отвечает текущим уровнем, но не рассылает его
	initView, err := svc.ProcessCommand("alice", api.ClientCommand{Action: api.ActionInit})
	if err != nil {
		t.Fatalf("INIT failed: %v", err)
	}
	if initView.Type != api.TypeLevel || initView.Level != 1 || initView.SessionID != "alice" {
		t.Errorf("Unexpected INIT view: type=%s level=%d session=%s", initView.Type, initView.Level, initView.SessionID)
	}
	select {
	case <-viewer.C:
		t.Error("INIT should not be broadcast")
	default:
	}

	// DESCEND рассылается всем зрителям
	view, err := svc.ProcessCommand("alice", api.ClientCommand{Action: api.ActionDescend})
	if err != nil {
		t.Fatalf("DESCEND failed: %v", err)
	}
	pushed := <-viewer.C
	if pushed.Seed != view.Seed || pushed.Level != 2 {
		t.Errorf("Viewer got seed %d level %d, expected seed %d level 2", pushed.Seed, pushed.Level, view.Seed)
	}

	if _, err := svc.ProcessCommand("alice", api.ClientCommand{Action: api.ActionDescend}); !errors.Is(err, ErrFinalLevel) {
		t.Errorf("Expected ErrFinalLevel, got %v", err)
	}

	if _, err := svc.ProcessCommand("alice", api.ClientCommand{Action: "MOVE"}); err == nil {
		t.Error("Unknown action should fail validation")
	}
	if _, err := svc.ProcessCommand("ghost", api.ClientCommand{Action: api.ActionReset}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestService_Generate(t *testing.T) {
	svc := newTestService(t)

	view, err := svc.Generate(api.GeneratePayload{Seed: 77, Architect: "drunkard", Theme: "forest", Level: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if view.Seed != 77 || view.Architect != "drunkard" || view.Theme != "forest" || view.Level != 2 {
		t.Errorf("Request parameters not applied: %+v", view.Grid)
	}
	if view.Grid.Width != 40 || view.Grid.Height != 30 || len(view.Map) != 40*30 {
		t.Errorf("Expected config size 40x30, got %dx%d with %d tiles", view.Grid.Width, view.Grid.Height, len(view.Map))
	}

	again, _ := svc.Generate(api.GeneratePayload{Seed: 77, Architect: "drunkard", Theme: "forest", Level: 2})
	if *again.Start != *view.Start || *again.Goal != *view.Goal || len(again.Spawns) != len(view.Spawns) {
		t.Error("Same request should return the same level")
	}

	random, err := svc.Generate(api.GeneratePayload{})
	if err != nil {
		t.Fatalf("Generate with defaults failed: %v", err)
	}
	if random.Seed == 0 {
		t.Error("Zero seed should be replaced with a drawn seed")
	}

	if _, err := svc.Generate(api.GeneratePayload{Architect: "rooms"}); err == nil {
		t.Error("Unknown architect should fail")
	}
	if _, err := svc.Generate(api.GeneratePayload{Width: -3}); err == nil {
		t.Error("Negative width should fail")
	}

	if got := len(svc.Records()); got != 3 {
		t.Errorf("Expected 3 records, got %d", got)
	}
}

func TestService_Sessions(t *testing.T) {
	svc := newTestService(t)
	svc.OpenSession("b").Current()
	svc.OpenSession("a")

	if svc.OpenSession("a") != svc.OpenSession("a") {
		t.Error("OpenSession should reuse existing sessions")
	}

	list := svc.Sessions()
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("Unexpected sessions: %+v", list)
	}
	if list[0].Level != 0 || list[1].Level != 1 {
		t.Errorf("Unexpected levels: %+v", list)
	}

	svc.CloseSession("a")
	if _, err := svc.GetSession("a"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after close, got %v", err)
	}
}

func TestService_SaveSeedLogAndReplay(t *testing.T) {
	svc := newTestService(t)

	if path, err := svc.SaveSeedLog(); err != nil || path != "" {
		t.Errorf("Empty log should not be saved, got %q, %v", path, err)
	}

	sess := svc.OpenSession("alice")
	sess.Current()
	_, _ = sess.Descend()
	if _, err := svc.Generate(api.GeneratePayload{Seed: 5, Strict: true, NoPrefab: true}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	path, err := svc.SaveSeedLog()
	if err != nil {
		t.Fatalf("SaveSeedLog failed: %v", err)
	}

	reports, err := Replay(path)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(reports))
	}
	for _, r := range reports {
		if !r.Deterministic {
			t.Errorf("Record %+v did not replay deterministically", r.Record)
		}
	}

	// Реплей совпадает с тем, что видел клиент
	first := GenerateLevel(reports[0].Record.Seed, mustOptions(t, reports[0]))
	if first.PlayerStart != reports[0].Start || first.AmuletStart != reports[0].Goal {
		t.Error("Replay report disagrees with regeneration")
	}
	if reports[2].Record.Prefab || !reports[2].Record.Strict {
		t.Errorf("Flags lost in seed log: %+v", reports[2].Record)
	}

	if _, err := Replay(path + ".missing"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestService_SaveSeedLogSkipsOversizedSessionID(t *testing.T) {
	svc := newTestService(t)

	svc.OpenSession("alice").Current()
	svc.OpenSession(strings.Repeat("x", 300)).Current()
	if got := len(svc.Records()); got != 2 {
		t.Fatalf("Expected 2 records, got %d", got)
	}

	path, err := svc.SaveSeedLog()
	if err != nil || path == "" {
		t.Fatalf("SaveSeedLog should keep the valid records, got %q, %v", path, err)
	}

	reports, err := Replay(path)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if len(reports) != 1 || reports[0].Record.SessionID != "alice" {
		t.Errorf("Expected only alice's record, got %+v", reports)
	}
}

func mustOptions(t *testing.T, r ReplayReport) GenerateOptions {
	t.Helper()
	opts, err := OptionsFromRecord(r.Record)
	if err != nil {
		t.Fatalf("OptionsFromRecord failed: %v", err)
	}
	return opts
}
