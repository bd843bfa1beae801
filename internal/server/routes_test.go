package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cogsnet/cogsnet/internal/cogsnet"
	"github.com/cogsnet/cogsnet/internal/store"
)

func testServer(t *testing.T) (*Server, *store.DB) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, "test-version"), db
}

// seedRun stores one computed run: 2 nodes, 3 events, snapshots at 5, 10, 15.
func seedRun(t *testing.T, db *store.DB) *store.Run {
	t.Helper()
	params := cogsnet.Params{
		Forgetting:       cogsnet.Linear,
		SnapshotInterval: 5,
		EdgeLifetime:     10,
		Mu:               0.5,
		Theta:            0.1,
		Units:            1,
	}
	events := []cogsnet.Event{
		{Sender: 0, Receiver: 1, Time: 0},
		{Sender: 0, Receiver: 1, Time: 4},
		{Sender: 0, Receiver: 1, Time: 13},
	}
	snapshots, err := cogsnet.Run(params, events, []int64{100, 200})
	if err != nil {
		t.Fatalf("cogsnet.Run: %v", err)
	}

	run := &store.Run{
		Source:           "seed.csv",
		Forgetting:       string(params.Forgetting),
		SnapshotInterval: params.SnapshotInterval,
		EdgeLifetime:     params.EdgeLifetime,
		Mu:               params.Mu,
		Theta:            params.Theta,
		Units:            params.Units,
		NodeCount:        2,
		EventCount:       len(events),
	}
	if err := db.SaveRun(run, snapshots); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	return run
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv, db := testServer(t)
	seedRun(t, db)

	w := get(t, srv, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["version"] != "test-version" {
		t.Errorf("version = %v, want test-version", body["version"])
	}
	if body["db"] != true {
		t.Errorf("db = %v, want true", body["db"])
	}
	if body["runs"] != float64(1) {
		t.Errorf("runs = %v, want 1", body["runs"])
	}
}

func TestHealthEndpointDegradedDB(t *testing.T) {
	srv, db := testServer(t)
	db.Close()

	w := get(t, srv, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}
	if body["db"] != false {
		t.Errorf("db = %v, want false", body["db"])
	}
}

func TestListRunsEndpoint(t *testing.T) {
	srv, db := testServer(t)
	run := seedRun(t, db)

	w := get(t, srv, "/api/runs")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Runs []store.Run `json:"runs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(body.Runs))
	}
	if body.Runs[0].ID != run.ID {
		t.Errorf("run ID = %q, want %q", body.Runs[0].ID, run.ID)
	}
	if body.Runs[0].Forgetting != "linear" {
		t.Errorf("forgetting = %q, want linear", body.Runs[0].Forgetting)
	}
}

func TestGetRunEndpoint(t *testing.T) {
	srv, db := testServer(t)
	run := seedRun(t, db)

	w := get(t, srv, "/api/runs/"+run.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Run           store.Run `json:"run"`
		SnapshotTimes []int64   `json:"snapshot_times"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Run.ID != run.ID {
		t.Errorf("run ID = %q, want %q", body.Run.ID, run.ID)
	}
	if len(body.SnapshotTimes) != run.SnapshotCount {
		t.Errorf("snapshot times = %d, want %d", len(body.SnapshotTimes), run.SnapshotCount)
	}
}

func TestGetRunNotFound(t *testing.T) {
	srv, _ := testServer(t)

	w := get(t, srv, "/api/runs/nope")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetSnapshotEndpoint(t *testing.T) {
	srv, db := testServer(t)
	run := seedRun(t, db)

	w := get(t, srv, fmt.Sprintf("/api/runs/%s/snapshots/0", run.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		RunID    string           `json:"run_id"`
		Idx      int              `json:"idx"`
		Snapshot cogsnet.Snapshot `json:"snapshot"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.RunID != run.ID || body.Idx != 0 {
		t.Errorf("run_id/idx = %q/%d, want %q/0", body.RunID, body.Idx, run.ID)
	}
	// Dense 2x2 snapshot.
	if len(body.Snapshot.Edges) != 4 {
		t.Errorf("edges = %d, want 4", len(body.Snapshot.Edges))
	}
}

func TestGetSnapshotBadIndex(t *testing.T) {
	srv, db := testServer(t)
	run := seedRun(t, db)

	w := get(t, srv, fmt.Sprintf("/api/runs/%s/snapshots/banana", run.ID))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = get(t, srv, fmt.Sprintf("/api/runs/%s/snapshots/999", run.ID))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteRunEndpoint(t *testing.T) {
	srv, db := testServer(t)
	run := seedRun(t, db)

	req := httptest.NewRequest("DELETE", "/api/runs/"+run.ID, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	w = get(t, srv, "/api/runs/"+run.ID)
	if w.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want %d", w.Code, http.StatusNotFound)
	}

	req = httptest.NewRequest("DELETE", "/api/runs/"+run.ID, nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
