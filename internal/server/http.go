package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof" // Profiling
	"strconv"
	"strings"
	"time"

	"github.com/MRGRAVITY817/dungeon-crawler/internal/engine"
	"github.com/MRGRAVITY817/dungeon-crawler/internal/version"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/api"
	"github.com/MRGRAVITY817/dungeon-crawler/pkg/logger"
)

type Server struct {
	Service *engine.Service
	Port    string

	httpServer *http.Server
}

func New(service *engine.Service, port string) *Server {
	return &Server{
		Service: service,
		Port:    port,
	}
}

// Handler собирает все роуты сервера
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/generate", enableCORS(s.handleGenerate))

	debugHandler := NewDebugHandler(s.Service)
	debugHandler.RegisterRoutes(mux)

	// pprof регистрируется в DefaultServeMux
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	return mux
}

// Run запускает HTTP сервер. После Shutdown возвращает nil.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Log.Infof("🗺️  Dungeon generator running on :%s", s.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s.Service, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// handleGenerate - одна генерация без сессии:
// /generate?seed=&level=&architect=&theme=&width=&height=&prefab=&strict=
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := parseGenerateQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := s.Service.Generate(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, view)
}

func parseGenerateQuery(r *http.Request) (api.GeneratePayload, error) {
	q := r.URL.Query()
	p := api.GeneratePayload{
		Architect: q.Get("architect"),
		Theme:     q.Get("theme"),
	}

	var err error
	if v := q.Get("seed"); v != "" {
		if p.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return p, errors.New("invalid seed")
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"level", &p.Level},
		{"width", &p.Width},
		{"height", &p.Height},
	}
	for _, f := range ints {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		if *f.dst, err = strconv.Atoi(v); err != nil {
			return p, errors.New("invalid " + f.key)
		}
	}

	if v := q.Get("prefab"); v != "" {
		on, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return p, errors.New("invalid prefab")
		}
		p.NoPrefab = !on
	}
	if v := q.Get("strict"); v != "" {
		if p.Strict, err = strconv.ParseBool(strings.ToLower(v)); err != nil {
			return p, errors.New("invalid strict")
		}
	}

	return p, nil
}
