package middleware_test

import (
	"compress/flate"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devsurvey/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestRequestIDAndRealIP(t *testing.T) {
	var rid, remote string
	h := chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		rid, remote = chimw.GetReqID(r.Context()), r.RemoteAddr
	}), middleware.RequestID(), middleware.RealIP())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/survey/filters", nil)
	req.Header.Set("X-Request-ID", "dash-42")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if rid != "dash-42" || remote != "203.0.113.7" {
		t.Fatalf("request id = %q remote = %q", rid, remote)
	}
}

func TestCompress_LargeTabPayload(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rows":[` + strings.Repeat(`{"label":"JavaScript","count":500},`, 200) + `{}]}`))
	}), middleware.Compress(flate.BestSpeed))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/survey/tabs/tech-used", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("content encoding = %q", rr.Header().Get("Content-Encoding"))
	}
}

func TestSlashesAndHeartbeat(t *testing.T) {
	var path string
	h := chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { path = r.URL.Path }),
		middleware.Heartbeat("/health"), middleware.StripSlashes())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/survey/tabs/", nil))
	if path != "/survey/tabs" {
		t.Fatalf("stripped path = %q", path)
	}

	rr := httptest.NewRecorder()
	chain(http.NotFoundHandler(), middleware.RedirectSlashes()).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/survey/tabs/", nil))
	if rr.Code != http.StatusMovedPermanently {
		t.Fatalf("redirect = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "." {
		t.Fatalf("heartbeat = %d %q", rr.Code, rr.Body.String())
	}
}

func TestTimeoutAndNoCache(t *testing.T) {
	var deadline bool
	h := chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	}), middleware.NoCache(), middleware.Timeout(time.Second))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/survey/filters", nil).WithContext(context.Background()))
	if !deadline {
		t.Fatal("Timeout should set a context deadline")
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatal("NoCache headers missing")
	}
}

func TestAllowContentType(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }),
		middleware.AllowContentType("application/json"))

	for ct, want := range map[string]int{
		"application/json":                  http.StatusNoContent,
		"application/json; charset=utf-8":   http.StatusNoContent,
		"text/csv":                          http.StatusUnsupportedMediaType,
		"application/x-www-form-urlencoded": http.StatusUnsupportedMediaType,
	} {
		req := httptest.NewRequest(http.MethodPost, "/survey/count", strings.NewReader(`{"ages":[]}`))
		req.Header.Set("Content-Type", ct)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("%s = %d, want %d", ct, rr.Code, want)
		}
	}
}

func TestCORS_DashboardPreflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"http://localhost:8050"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/survey/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:8050")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8050" {
		t.Fatalf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Fatalf("allow methods = %q", rr.Header().Get("Access-Control-Allow-Methods"))
	}

	// DELETE is not in the default method set
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("DELETE preflight should not be allowed")
	}
}
