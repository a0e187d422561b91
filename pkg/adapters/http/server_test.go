package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/entitystore/internal/logging"
	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type book struct {
	ISBN  string `mapstructure:"isbn" json:"isbn"`
	Title string `mapstructure:"title" json:"title"`
}

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *container.Container) {
	t.Helper()
	c := container.New()
	s, err := entity.New("library.books", "isbn", entity.Overlay[book]())
	require.NoError(t, err)
	require.NoError(t, s.Register(c))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h, err := NewHandler(ctx, c, opts...)
	require.NoError(t, err)
	return h, c
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/dispatch"))
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, w.Code)
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.Equal(t, "entitystore-http", info["app"])

	w = do(t, h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestDispatchAndSelect(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/dispatch",
		`{"type":"[library.books] addAll","payload":[{"isbn":"2","title":"B"},{"isbn":"1","title":"A"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/collections/library.books/size", "")
	assert.JSONEq(t, `{"size":2}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/collections/library.books/keys", "")
	assert.JSONEq(t, `["1","2"]`, w.Body.String())

	w = do(t, h, http.MethodGet, "/collections/library.books/entities", "")
	assert.JSONEq(t, `[{"isbn":"1","title":"A"},{"isbn":"2","title":"B"}]`, w.Body.String())

	w = do(t, h, http.MethodGet, "/collections/library.books/active", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/dispatch", `{"type":"[library.books] setActive","payload":"2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, http.MethodGet, "/collections/library.books/active", "")
	assert.JSONEq(t, `{"isbn":"2","title":"B"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/collections/library.books", "")
	assert.JSONEq(t, `{
		"entities": {"1": {"isbn":"1","title":"A"}, "2": {"isbn":"2","title":"B"}},
		"loading": false,
		"active": "2"
	}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/state", "")
	assert.Contains(t, w.Body.String(), `"library.books"`)

	w = do(t, h, http.MethodGet, "/collections/", "")
	assert.JSONEq(t, `["library.books"]`, w.Body.String())
}

func TestDispatchErrors(t *testing.T) {
	h, c := newTestHandler(t)
	before := c.State()

	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "bad body", body: `{"type":`, code: http.StatusBadRequest},
		{name: "bad type", body: `{"type":"add"}`, code: http.StatusBadRequest},
		{name: "unknown action", body: `{"type":"[library.books] explode"}`, code: http.StatusNotFound},
		{name: "unknown path", body: `{"type":"[nope] add","payload":{}}`, code: http.StatusNotFound},
		{name: "invalid id", body: `{"type":"[library.books] update","payload":{"title":"x"}}`, code: http.StatusBadRequest},
		{name: "payload shape", body: `{"type":"[library.books] setLoading","payload":"yes"}`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/dispatch", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
	assert.Equal(t, before, c.State())
}

func TestCollectionNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, target := range []string{
		"/collections/missing",
		"/collections/missing/keys",
		"/collections/missing/entities",
		"/collections/missing/active",
		"/collections/missing/size",
		"/events?path=missing",
	} {
		w := do(t, h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()

	h, _ := newTestHandler(t, WithGatherer(reg))
	w := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "probe_total 1")

	h, _ = newTestHandler(t)
	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func readUntil(t *testing.T, r *bufio.Reader, needle string) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err, "stream ended before %q", needle)
		if strings.Contains(line, needle) {
			return line
		}
	}
}

func TestSubscribeEvents(t *testing.T) {
	h, c := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(srv.URL + "/events?path=library.books")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readUntil(t, reader, "data: connected")

	require.NoError(t, c.Dispatch(context.Background(), entity.AddOrReplace(entity.Path("library.books"), book{ISBN: "9", Title: "Z"})))

	idLine := readUntil(t, reader, "id: ")
	assert.NotEmpty(t, strings.TrimSpace(strings.TrimPrefix(idLine, "id: ")))
	data := readUntil(t, reader, "data: ")
	assert.Contains(t, data, `"path":"library.books"`)
	assert.Contains(t, data, `"upserted":{"9":{"isbn":"9","title":"Z"}}`)
}

func TestStreamManager_DropsForSlowClient(t *testing.T) {
	sm := NewStreamManager(newNopLogger())
	ch, cancel := sm.Subscribe("p")
	all, cancelAll := sm.Subscribe(allPaths)
	defer cancelAll()

	for i := 0; i < 20; i++ {
		sm.Broadcast("p", Event{ID: "x", Data: "{}"})
	}
	assert.Len(t, ch, 10)
	assert.Len(t, all, 10)

	cancel()
	cancel()
}

func newNopLogger() *slog.Logger {
	return logging.NewNop()
}
