package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/dstoolbox/server"
	"github.com/katalvlaran/dstoolbox/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const cascade = `name: cascade
equations:
  - "x1. = a + b*x1*x2 - c*x1"
  - "x2. = c*x1 - x2"
dependent: [x1, x2]
point:
  - {name: a, value: 1}
  - {name: b, value: 1}
  - {name: c, value: 1}
`

func newServer(t *testing.T) (*store.Store, http.Handler) {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, server.New(st).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func create(t *testing.T, h http.Handler) string {
	t.Helper()
	w := do(t, h, http.MethodPost, "/v1/designspaces", []byte(cascade))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[server.DesignSpaceResponse](t, w)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	e := decode[server.ErrorResponse](t, w)
	assert.Equal(t, code, e.Code)
	assert.NotEmpty(t, e.Error)
}

func TestCreateAndDescribe(t *testing.T) {
	_, h := newServer(t)

	w := do(t, h, http.MethodPost, "/v1/designspaces", []byte(cascade))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	created := decode[server.DesignSpaceResponse](t, w)
	assert.Equal(t, "cascade", created.Name)
	assert.Equal(t, 2, created.NumberOfCases)
	assert.Equal(t, []string{"x1", "x2"}, created.Xd)
	assert.Equal(t, []string{"a", "b", "c"}, created.Xi)
	assert.Equal(t, []int{2, 1, 1, 1}, created.Signature)

	w = do(t, h, http.MethodGet, "/v1/designspaces/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[server.DesignSpaceResponse](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.False(t, got.Created.IsZero())

	w = do(t, h, http.MethodGet, "/v1/designspaces", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[server.ListResponse](t, w)
	require.Len(t, list.DesignSpaces, 1)
	assert.Equal(t, created.ID, list.DesignSpaces[0].ID)
}

func TestCreateRejects(t *testing.T) {
	_, h := newServer(t)

	requireError(t, do(t, h, http.MethodPost, "/v1/designspaces", []byte("name: [")), http.StatusBadRequest, "INVALID_REQUEST")
	requireError(t, do(t, h, http.MethodPost, "/v1/designspaces", []byte(`{"equations": ["x. = a - x"]}`)),
		http.StatusBadRequest, "INVALID_MODEL")
	requireError(t, do(t, h, http.MethodPost, "/v1/designspaces", []byte(`{"name": "m", "equations": ["x. = a"]}`)),
		http.StatusUnprocessableEntity, "INVALID_EQUATIONS")
}

func TestCase(t *testing.T) {
	_, h := newServer(t)
	id := create(t, h)

	w := do(t, h, http.MethodGet, "/v1/designspaces/"+id+"/cases/1?log=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	c := decode[server.CaseResponse](t, w)
	assert.Equal(t, 1, c.Number)
	assert.Equal(t, "1111", c.Signature)
	assert.Len(t, c.Equations, 2)
	assert.Contains(t, c.Conditions, "log(a)-log(b)-log(x1)-log(x2) > 0")
	assert.Equal(t, []string{"-log(a)-log(b)+log(c) > 0"}, c.Boundaries)
	assert.Len(t, c.Solution, 2)
	assert.True(t, c.Valid)

	requireError(t, do(t, h, http.MethodGet, "/v1/designspaces/"+id+"/cases/9", nil), http.StatusNotFound, "CASE_NOT_FOUND")
	requireError(t, do(t, h, http.MethodGet, "/v1/designspaces/"+id+"/cases/one", nil), http.StatusBadRequest, "INVALID_REQUEST")
	requireError(t, do(t, h, http.MethodGet, "/v1/designspaces/nope/cases/1", nil), http.StatusNotFound, "NOT_FOUND")
}

func TestValid(t *testing.T) {
	st, h := newServer(t)
	id := create(t, h)
	path := "/v1/designspaces/" + id + "/valid"

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := do(t, h, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	w := do(t, h, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	v := decode[server.ValidResponse](t, w)
	assert.Equal(t, []int{1, 2}, v.Cases)
	assert.Equal(t, 2, v.Count)

	stored, err := st.GetValidCases(id)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, stored)

	// Both cases need c > a·b.
	q := url.Values{"lower": {"a=1, b=1, c=10"}}
	w = do(t, h, http.MethodGet, path+"?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []int{1, 2}, decode[server.ValidResponse](t, w).Cases)

	q = url.Values{"lower": {"a=1, b=1, c=0.1"}}
	w = do(t, h, http.MethodGet, path+"?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode[server.ValidResponse](t, w).Cases)

	q = url.Values{"lower": {"a=="}}
	requireError(t, do(t, h, http.MethodGet, path+"?"+q.Encode(), nil), http.StatusBadRequest, "INVALID_REQUEST")
}

// TestValidSurvivesCancelledRequest checks that enumeration shared between
// requests is not cut short by the context of the request that started it.
func TestValidSurvivesCancelledRequest(t *testing.T) {
	_, h := newServer(t)
	id := create(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, path := range []string{
		"/v1/designspaces/" + id + "/valid",
		"/v1/designspaces/" + id + "/valid?" + url.Values{"lower": {"a=1, b=1, c=10"}}.Encode(),
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[server.ValidResponse](t, w)
		assert.Equal(t, []int{1, 2}, got.Cases, path)
	}
}

func TestSteadyState(t *testing.T) {
	_, h := newServer(t)
	id := create(t, h)
	path := "/v1/designspaces/" + id + "/cases/1/steady-state"

	body := []byte(`{"point": [{"name": "a", "value": 1}, {"name": "b", "value": 1}, {"name": "c", "value": 10}]}`)
	w := do(t, h, http.MethodPost, path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[server.SteadyStateResponse](t, w)
	assert.Equal(t, 1, resp.Case)
	assert.True(t, resp.Valid)

	// x1 = a/c, x2 = c·x1; V_x1 = a, V_x2 = c·x1.
	x1, err := resp.SteadyState.Value("x1")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, x1, 1e-12)
	x2, err := resp.SteadyState.Value("x2")
	require.NoError(t, err)
	assert.InDelta(t, 1, x2, 1e-12)
	v1, err := resp.Fluxes.Value("V_x1")
	require.NoError(t, err)
	assert.InDelta(t, 1, v1, 1e-12)

	requireError(t, do(t, h, http.MethodPost, path, []byte(`{}`)), http.StatusBadRequest, "INVALID_REQUEST")
	requireError(t, do(t, h, http.MethodPost, path, []byte(`{"point": [{"name": "a", "value": 1}]}`)),
		http.StatusUnprocessableEntity, "MISSING_VARIABLE")
}

func TestPlot(t *testing.T) {
	_, h := newServer(t)
	id := create(t, h)
	path := "/v1/designspaces/" + id + "/plot"

	w := do(t, h, http.MethodPost, path, []byte(`{"plot": {"x": "b", "y": "c", "xlim": [0.01, 100], "ylim": [0.01, 100]}}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var scene struct {
		Mode    string `json:"mode"`
		Regions []struct {
			Key string `json:"key"`
		} `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scene))
	assert.Equal(t, "slice", scene.Mode)
	require.Len(t, scene.Regions, 3)
	assert.Equal(t, "1,2", scene.Regions[2].Key)

	w = do(t, h, http.MethodPost, path, []byte(`{"case": 2, "point": [{"name": "a", "value": 1}],
		"plot": {"x": "b", "y": "c", "xlim": [0.01, 100], "ylim": [0.01, 100], "mode": "function", "function": "x2"}}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.Contains(w.Body.String(), `"cells"`))

	requireError(t, do(t, h, http.MethodPost, path, []byte(`{"plot": {"x": "b", "y": "c", "xlim": [0.01, 100], "ylim": [0.01, 100], "mode": "function"}}`)),
		http.StatusBadRequest, "INVALID_MODEL")
	requireError(t, do(t, h, http.MethodPost, path, []byte(`{"plot": {"x": "x1", "y": "c", "xlim": [0.01, 100], "ylim": [0.01, 100]}}`)),
		http.StatusUnprocessableEntity, "INVALID_PLOT")
	requireError(t, do(t, h, http.MethodPost, path, []byte(`{"plot": {"x": "b", "y": "c", "xlim": [0.01, 100], "ylim": [0.01, 100], "mode": "routh", "resolution": 100000}}`)),
		http.StatusBadRequest, "INVALID_MODEL")
	requireError(t, do(t, h, http.MethodPost, path, []byte(`{"plot": {"x": "b", "y": "c", "xlim": [1, 1], "ylim": [0.01, 100]}}`)),
		http.StatusUnprocessableEntity, "INVALID_PLOT")
}

func TestDeleteAndReload(t *testing.T) {
	st, h := newServer(t)
	id := create(t, h)

	// A second server over the same store parses the model lazily.
	other := server.New(st).Handler()
	w := do(t, other, http.MethodGet, "/v1/designspaces/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cascade", decode[server.DesignSpaceResponse](t, w).Name)

	w = do(t, h, http.MethodDelete, "/v1/designspaces/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	requireError(t, do(t, h, http.MethodGet, "/v1/designspaces/"+id, nil), http.StatusNotFound, "NOT_FOUND")
	requireError(t, do(t, h, http.MethodDelete, "/v1/designspaces/"+id, nil), http.StatusNotFound, "NOT_FOUND")
}

func TestOperationalRoutes(t *testing.T) {
	_, h := newServer(t)

	w := do(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "designspace_http_requests_total")
}
