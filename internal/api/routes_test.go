package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/cuesim/internal/admin"
	"github.com/playmatatu/cuesim/internal/config"
	"github.com/playmatatu/cuesim/internal/game"
	"github.com/playmatatu/cuesim/internal/ws"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := admin.HashAdminToken("admin-secret")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		Environment:          "development",
		JWTSecret:            "secret",
		ShooterTokenHours:    1,
		AdminTokenHash:       hash,
		TickIntervalMS:       5,
		SessionExpiryMinutes: 30,
		Physics:              config.DefaultPhysics(),
	}
	mgr := game.NewSessionManager(nil, nil, cfg)
	hub := ws.NewHub()
	go hub.Run()
	mgr.SetSink(hub)

	router := gin.New()
	SetupRoutes(router, nil, mgr, hub, cfg)
	return router
}

func do(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type createResponse struct {
	ID           string            `json:"id"`
	ShooterToken string            `json:"shooter_token"`
	State        game.SessionState `json:"state"`
}

func createTable(t *testing.T, r *gin.Engine) createResponse {
	t.Helper()
	w := do(r, http.MethodPost, "/api/v1/tables", nil, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var resp createResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/api/v1/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestCreateAndGetTable(t *testing.T) {
	r := newTestRouter(t)
	created := createTable(t, r)
	if created.ID == "" || created.ShooterToken == "" {
		t.Fatalf("create response = %+v", created)
	}
	if len(created.State.Balls) != game.NumBalls || created.State.Status != game.StatusIdle {
		t.Errorf("initial state = %+v", created.State)
	}

	w := do(r, http.MethodGet, "/api/v1/tables/"+created.ID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/v1/tables/table_missing", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("missing table status = %d", w.Code)
	}
}

func TestShotAdmissionOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	created := createTable(t, r)
	cue := created.State.Balls[0]
	path := "/api/v1/tables/" + created.ID + "/shot"
	shot := map[string]float64{"x": cue.X - 1, "y": cue.Y}
	bearer := map[string]string{"Authorization": "Bearer " + created.ShooterToken}

	if w := do(r, http.MethodPost, path, shot, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("shot without token status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, path, map[string]float64{"x": 1}, bearer); w.Code != http.StatusBadRequest {
		t.Errorf("shot without y status = %d", w.Code)
	}

	w := do(r, http.MethodPost, path, shot, bearer)
	if w.Code != http.StatusAccepted {
		t.Fatalf("shot status = %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, path, shot, bearer)
	if w.Code != http.StatusConflict {
		t.Fatalf("shot while rolling status = %d", w.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["accepted"] != false {
		t.Errorf("rejected body = %v", body)
	}
}

func TestSnapshotPNG(t *testing.T) {
	r := newTestRouter(t)
	created := createTable(t, r)

	w := do(r, http.MethodGet, "/api/v1/tables/"+created.ID+"/snapshot.png", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
}

func TestListShotsWithoutDatabase(t *testing.T) {
	r := newTestRouter(t)
	created := createTable(t, r)

	w := do(r, http.MethodGet, "/api/v1/tables/"+created.ID+"/shots", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Count != 0 {
		t.Errorf("count = %d", body.Count)
	}
}

func TestAdminRoutes(t *testing.T) {
	r := newTestRouter(t)
	created := createTable(t, r)
	adminHeader := map[string]string{"X-Admin-Token": "admin-secret"}

	if w := do(r, http.MethodGet, "/api/v1/admin/tables", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("admin without token status = %d", w.Code)
	}

	w := do(r, http.MethodGet, "/api/v1/admin/tables", nil, adminHeader)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list status = %d", w.Code)
	}
	var list struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if list.Count != 1 {
		t.Errorf("count = %d, want 1", list.Count)
	}

	path := "/api/v1/admin/tables/" + created.ID
	if w := do(r, http.MethodDelete, path, nil, adminHeader); w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := do(r, http.MethodDelete, path, nil, adminHeader); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}
