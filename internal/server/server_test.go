package server

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapmark/mapmark/internal/gateway"
)

type remote struct {
	mu      sync.Mutex
	points  []gateway.Point
	shapes  []gateway.Shape
	created []gateway.ShapeDraft
}

func remoteToken() string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"none"}`)) + "." + enc([]byte(`{"UserId":"9"}`)) + ".x"
}

func (b *remote) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch {
		case r.URL.Path == "/api/Auth/login":
			var creds struct {
				Email    string `json:"userEmail"`
				Password string `json:"userPassword"`
			}
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "hunter2" {
				json.NewEncoder(w).Encode(gateway.LoginResult{Success: false, Message: "bad credentials"})
				return
			}
			json.NewEncoder(w).Encode(gateway.LoginResult{Token: remoteToken(), Success: true})
		case r.URL.Path == "/api/Auth/logout":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/api/Values/9/getAll":
			json.NewEncoder(w).Encode(gateway.PointResponse{Points: b.points, Success: true})
		case r.URL.Path == "/api/Values/9/wkt/all":
			json.NewEncoder(w).Encode(gateway.ShapeResponse{Shapes: b.shapes, Success: true})
		case r.URL.Path == "/api/Values/9/wkt/create":
			var draft gateway.ShapeDraft
			json.NewDecoder(r.Body).Decode(&draft)
			b.created = append(b.created, draft)
			json.NewEncoder(w).Encode(gateway.ShapeResponse{Success: true})
		case r.URL.Path == "/api/Values/9/count":
			json.NewEncoder(w).Encode(gateway.CountResponse{Count: len(b.points)})
		default:
			http.NotFound(w, r)
		}
	})
}

func testServer(t *testing.T, b *remote) *Server {
	t.Helper()
	backend := httptest.NewServer(b.handler())
	t.Cleanup(backend.Close)

	s, err := New(Config{
		Host:         "localhost",
		Port:         "0",
		APIBase:      backend.URL + "/api",
		DataDir:      t.TempDir(),
		WebDir:       "../../web",
		PreviewToken: "test",
	}, nil)
	require.NoError(t, err)
	return s
}

func login(t *testing.T, s *Server) {
	t.Helper()
	form := url.Values{"email": {"a@b.c"}, "password": {"hunter2"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestMapPageRequiresCredential(t *testing.T) {
	s := testServer(t, &remote{})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginFailureReRendersForm(t *testing.T) {
	s := testServer(t, &remote{})

	form := url.Values{"email": {"a@b.c"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad credentials")
}

func TestLoginThenMapPage(t *testing.T) {
	b := &remote{points: []gateway.Point{{ID: 1, X: 5, Y: 5, Name: "A"}}}
	s := testServer(t, b)

	login(t, s)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "marker-1")
	assert.Contains(t, body, "A")
}

func TestModeToggleStreamsControls(t *testing.T) {
	s := testServer(t, &remote{})
	login(t, s)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ui/mode/add-point", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "side-controls")
	assert.Contains(t, string(body), "add-point")
}

func TestUnknownModeRejected(t *testing.T) {
	s := testServer(t, &remote{})
	login(t, s)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ui/mode/fly", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDrawEndPersistsPolygon(t *testing.T) {
	b := &remote{}
	s := testServer(t, b)
	login(t, s)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ui/mode/draw-polygon", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	payload := `{"type":"Polygon","vertices":[[0,0],[0,10],[10,10],[10,0]]}`
	req := httptest.NewRequest(http.MethodPost, "/ui/map/drawend", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	b.mu.Lock()
	require.Len(t, b.created, 1)
	assert.Equal(t, "POLYGON((0 0,0 10,10 10,10 0,0 0))", b.created[0].WKT)
	b.mu.Unlock()
}

func TestPaletteCountSignals(t *testing.T) {
	b := &remote{points: []gateway.Point{{ID: 1}, {ID: 2}}}
	s := testServer(t, b)
	login(t, s)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ui/palette/count", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pointcount")
}

func TestLogoutClearsCredential(t *testing.T) {
	s := testServer(t, &remote{})
	login(t, s)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
