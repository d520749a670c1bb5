package server

import (
	"encoding/json"
	"net/http"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сервиса
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/records", h.handleDumpRecords)
}

// /debug/sessions - список сессий, их глубина и наличие зрителей
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	type SessionsView struct {
		MasterSeed  int64                   `json:"master_seed"`
		Subscribers int                     `json:"subscribers"`
		Sessions    []engine.SessionSummary `json:"sessions"`
	}

	writeJSON(w, SessionsView{
		MasterSeed:  h.Service.Config.Seed,
		Subscribers: h.Service.Hub.SubscriberCount(),
		Sessions:    h.Service.Sessions(),
	})
}

// /debug/records?session=alice - журнал генераций (опционально по одной сессии)
func (h *DebugHandler) handleDumpRecords(w http.ResponseWriter, r *http.Request) {
	records := h.Service.Records()

	if id := r.URL.Query().Get("session"); id != "" {
		filtered := records[:0]
		for _, rec := range records {
			if rec.SessionID == id {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, records)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустой журнал), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
