// Command corvid-analyze exposes the search engine over HTTP: a REST
// surface for one-shot analysis/evaluation, and a websocket that streams
// iterative-deepening progress for a running search.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/arnoldlazare/corvidchess/board"
	"github.com/arnoldlazare/corvidchess/search"
)

const defaultPort = 8080

func stdoutLogger(next http.Handler) http.Handler {
	return handlers.LoggingHandler(os.Stdout, next)
}

// Application wires the HTTP router to a single shared Engine. The engine
// itself is not safe for concurrent searches (single-threaded model), so
// Application serializes access with a mutex rather than one engine per
// request.
type Application struct {
	router   *mux.Router
	engine   *search.Engine
	engineMu sync.Mutex

	clients     map[*websocketClient]struct{}
	clientsLock sync.RWMutex
	upgrader    websocket.Upgrader
}

type websocketClient struct {
	conn *websocket.Conn
}

func NewApplication() *Application {
	app := &Application{
		router:  mux.NewRouter(),
		engine:  search.NewEngine(),
		clients: make(map[*websocketClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	app.router.NotFoundHandler = stdoutLogger(http.HandlerFunc(notFoundHandler))
	app.router.Use(stdoutLogger)

	app.router.HandleFunc("/analyze", app.analyzeHandler).Methods(http.MethodPost)
	app.router.HandleFunc("/evaluate", app.evaluateHandler).Methods(http.MethodPost)
	app.router.HandleFunc("/pv", app.pvHandler).Methods(http.MethodPost)
	app.router.HandleFunc("/ws", app.wsHandler)
	return app
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

type positionRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

func loadPosition(r *http.Request) (*board.Board, int, error) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, 0, fmt.Errorf("decoding request body: %w", err)
	}
	b := board.NewBoard()
	fen := req.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	if err := b.LoadFEN(fen); err != nil {
		return nil, 0, err
	}
	depth := req.Depth
	if depth <= 0 {
		depth = 4
	}
	return b, depth, nil
}

type analyzeResponse struct {
	BestMove string   `json:"best_move"`
	Score    int      `json:"score"`
	Depth    int      `json:"depth"`
	PV       []string `json:"pv"`
}

func (app *Application) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	b, depth, err := loadPosition(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app.engineMu.Lock()
	result := app.engine.Analyze(b, depth)
	app.engineMu.Unlock()

	pv := make([]string, len(result.PV))
	for i, m := range result.PV {
		pv[i] = m.String()
	}
	writeJSON(w, analyzeResponse{
		BestMove: result.BestMove.String(),
		Score:    result.Score,
		Depth:    result.Depth,
		PV:       pv,
	})
}

type evaluateResponse struct {
	Score int `json:"score"`
}

func (app *Application) evaluateHandler(w http.ResponseWriter, r *http.Request) {
	b, _, err := loadPosition(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app.engineMu.Lock()
	score := app.engine.Evaluate(b)
	app.engineMu.Unlock()

	writeJSON(w, evaluateResponse{Score: score})
}

type pvResponse struct {
	PV []string `json:"pv"`
}

func (app *Application) pvHandler(w http.ResponseWriter, r *http.Request) {
	b, depth, err := loadPosition(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	app.engineMu.Lock()
	moves := app.engine.GetPrincipalVariation(b, depth)
	app.engineMu.Unlock()

	pv := make([]string, len(moves))
	for i, m := range moves {
		pv[i] = m.String()
	}
	writeJSON(w, pvResponse{PV: pv})
}

func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	fmt.Printf("new websocket connection from %s\n", conn.RemoteAddr())
	client := &websocketClient{conn: conn}
	app.clientsLock.Lock()
	app.clients[client] = struct{}{}
	app.clientsLock.Unlock()

	go func() {
		defer func() {
			app.clientsLock.Lock()
			delete(app.clients, client)
			app.clientsLock.Unlock()
			conn.Close()
		}()
		for {
			var req positionRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			b := board.NewBoard()
			fen := req.FEN
			if fen == "" {
				fen = board.StartFEN
			}
			if err := b.LoadFEN(fen); err != nil {
				conn.WriteJSON(map[string]string{"error": err.Error()})
				continue
			}
			depth := req.Depth
			if depth <= 0 {
				depth = 6
			}

			app.engineMu.Lock()
			app.engine.SetProgressCallback(func(info search.ProgressInfo) {
				pv := make([]string, len(info.PV))
				for i, m := range info.PV {
					pv[i] = m.String()
				}
				conn.WriteJSON(map[string]interface{}{
					"depth": info.Depth,
					"score": info.Score,
					"nodes": info.Nodes,
					"pv":    pv,
				})
			})
			move, score, reached := app.engine.FindBestMoveByDepth(b, depth)
			app.engine.SetProgressCallback(nil)
			app.engineMu.Unlock()

			conn.WriteJSON(map[string]interface{}{
				"done":      true,
				"best_move": move.String(),
				"score":     score,
				"depth":     reached,
			})
		}
	}()
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func main() {
	var port uint
	flag.UintVar(&port, "port", defaultPort, "port to listen on")
	flag.Parse()
	if port == 0 || port > 65535 {
		fmt.Println("invalid port number")
		os.Exit(1)
	}
	fmt.Printf("starting corvid-analyze on :%d\n", port)
	app := NewApplication()
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), app); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
