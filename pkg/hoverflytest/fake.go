package hoverflytest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bwilczek/hoverfly-client-go/pkg/client"
	"github.com/bwilczek/hoverfly-client-go/pkg/journal"
	"github.com/bwilczek/hoverfly-client-go/pkg/middleware"
	"github.com/bwilczek/hoverfly-client-go/pkg/mode"
	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

// DefaultJournalLimit is the page size FakeAdmin uses when none is requested.
const DefaultJournalLimit = 25

// FakeAdmin is an in-memory implementation of the Hoverfly admin endpoints
// used by this module. It stores what it is given and never proxies traffic.
type FakeAdmin struct {
	mu         sync.Mutex
	mode       mode.Payload
	middleware middleware.Payload
	simulation *simulation.Simulation
	journal    []journal.Entry
	handler    http.Handler
}

// NewFakeAdmin returns a fake in simulate mode with an empty simulation.
func NewFakeAdmin() *FakeAdmin {
	f := &FakeAdmin{
		mode:       mode.Payload{Mode: mode.Simulate, Arguments: mode.Arguments{MatchingStrategy: "strongest"}},
		simulation: simulation.Build(nil),
		journal:    []journal.Entry{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+client.ModePath, f.getMode)
	mux.HandleFunc("PUT "+client.ModePath, f.putMode)
	mux.HandleFunc("GET "+client.MiddlewarePath, f.getMiddleware)
	mux.HandleFunc("PUT "+client.MiddlewarePath, f.putMiddleware)
	mux.HandleFunc("GET "+client.JournalPath, f.getJournal)
	mux.HandleFunc("POST "+client.JournalPath, f.searchJournal)
	mux.HandleFunc("DELETE "+client.JournalPath, f.deleteJournal)
	mux.HandleFunc("GET "+client.SimulationPath, f.getSimulation)
	mux.HandleFunc("PUT "+client.SimulationPath, f.putSimulation)
	mux.HandleFunc("DELETE "+client.SimulationPath, f.deleteSimulation)
	f.handler = mux
	return f
}

// Start serves f on a local httptest server closed at the end of the test and
// returns a client pointed at it.
func Start(t testing.TB, opts ...client.Option) (*FakeAdmin, *client.Client) {
	t.Helper()
	f := NewFakeAdmin()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, client.New(srv.URL, opts...)
}

// ServeHTTP implements http.Handler.
func (f *FakeAdmin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.handler.ServeHTTP(w, r)
}

// Mode returns the current mode.
func (f *FakeAdmin) Mode() mode.Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode.Mode
}

// Simulation returns a copy of the stored simulation.
func (f *FakeAdmin) Simulation() *simulation.Simulation {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.simulation
	cp.Data.Pairs = append([]simulation.Pair{}, f.simulation.Data.Pairs...)
	return &cp
}

// Middleware returns the stored middleware.
func (f *FakeAdmin) Middleware() middleware.Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.middleware
}

// RecordRequest appends a journal entry as if Hoverfly had served req.
func (f *FakeAdmin) RecordRequest(req journal.Request, resp journal.Response) journal.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := journal.Entry{
		Request:     req,
		Response:    resp,
		Mode:        string(f.mode.Mode),
		TimeStarted: time.Now().UTC().Format(time.RFC3339Nano),
		ID:          uuid.New().String(),
	}
	f.journal = append(f.journal, entry)
	return entry
}

// Journal returns a copy of the recorded entries.
func (f *FakeAdmin) Journal() []journal.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]journal.Entry{}, f.journal...)
}

func (f *FakeAdmin) getMode(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.mode)
}

func (f *FakeAdmin) putMode(w http.ResponseWriter, r *http.Request) {
	var payload mode.SetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	if !payload.Mode.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "Not a valid mode")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode.Mode = payload.Mode
	writeJSON(w, http.StatusOK, f.mode)
}

func (f *FakeAdmin) getMiddleware(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.middleware)
}

func (f *FakeAdmin) putMiddleware(w http.ResponseWriter, r *http.Request) {
	var payload middleware.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON")
		return
	}
	if payload.Script != "" && payload.Binary == "" {
		writeError(w, http.StatusUnprocessableEntity, "Invalid middleware: Cannot run script with no binary")
		return
	}
	if payload.Remote != "" && (payload.Binary != "" || payload.Script != "") {
		writeError(w, http.StatusUnprocessableEntity, "Invalid middleware: Cannot combine remote with binary")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.middleware = payload
	writeJSON(w, http.StatusOK, f.middleware)
}

func (f *FakeAdmin) getJournal(w http.ResponseWriter, r *http.Request) {
	offset, limit := 0, DefaultJournalLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, page(f.journal, offset, limit))
}

func (f *FakeAdmin) searchJournal(w http.ResponseWriter, r *http.Request) {
	var payload journal.SearchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []journal.Entry{}
	for _, e := range f.journal {
		if matchesExact(payload.Request.Destination, e.Request.Destination) &&
			matchesExact(payload.Request.Path, e.Request.Path) &&
			matchesExact(payload.Request.Method, e.Request.Method) &&
			matchesExact(payload.Request.Scheme, e.Request.Scheme) {
			matched = append(matched, e)
		}
	}
	writeJSON(w, http.StatusOK, page(matched, 0, len(matched)))
}

func (f *FakeAdmin) deleteJournal(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.journal = []journal.Entry{}
	w.WriteHeader(http.StatusOK)
}

func (f *FakeAdmin) getSimulation(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.simulation)
}

func (f *FakeAdmin) putSimulation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sim, err := simulation.ParseJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sim.Data.Pairs == nil {
		sim.Data.Pairs = []simulation.Pair{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulation = sim
	writeJSON(w, http.StatusOK, f.simulation)
}

func (f *FakeAdmin) deleteSimulation(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulation = simulation.Build(nil)
	writeJSON(w, http.StatusOK, f.simulation)
}

func page(entries []journal.Entry, offset, limit int) journal.Journal {
	start := min(offset, len(entries))
	end := min(start+limit, len(entries))
	return journal.Journal{
		Journal: append([]journal.Entry{}, entries[start:end]...),
		Offset:  offset,
		Limit:   limit,
		Total:   len(entries),
	}
}

// matchesExact supports only exact matchers; a field without matchers
// matches anything.
func matchesExact(matchers []simulation.Matcher, value string) bool {
	for _, m := range matchers {
		if m.Matcher != simulation.MatcherExact {
			return false
		}
		if s, _ := m.Value.(string); s != value {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
