package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devsurvey/internal/core/survey"
	phttp "devsurvey/internal/platform/net/http"
	surveydomain "devsurvey/internal/services/api/survey/domain"

	"github.com/go-chi/chi/v5"
)

type fakeDataset struct{ rows int }

func (f fakeDataset) Dataset(context.Context) surveydomain.DatasetResult {
	return surveydomain.DatasetResult{Info: survey.Info{ID: "ds-1", Source: "mem", Rows: f.rows}, Ages: 3}
}

func serve(t *testing.T, d Deps, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), d)

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var env map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return rr, env
}

func TestHealthAndService(t *testing.T) {
	d := Deps{ServiceName: "devsurvey-api", StartedAt: time.Now().Add(-time.Minute)}

	rr, env := serve(t, d, "/health")
	if rr.Code != 200 {
		t.Fatalf("health status = %d", rr.Code)
	}
	data := env["data"].(map[string]any)
	if data["ok"] != true || data["service"] != "devsurvey-api" {
		t.Fatalf("health = %v", data)
	}

	_, env = serve(t, d, "/service")
	data = env["data"].(map[string]any)
	if up, _ := data["uptime"].(float64); up < 59 {
		t.Fatalf("uptime = %v", data["uptime"])
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name string
		ds   surveydomain.DatasetPort
		want int
	}{
		{"loaded", fakeDataset{rows: 10}, 200},
		{"empty", fakeDataset{rows: 0}, 503},
		{"missing", nil, 503},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, env := serve(t, Deps{Dataset: tc.ds}, "/ready")
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			data := env["data"].(map[string]any)
			wantStatus := "ok"
			if tc.want != 200 {
				wantStatus = "fail"
			}
			if data["status"] != wantStatus {
				t.Fatalf("ready status = %v", data["status"])
			}
		})
	}
}

func TestDataset(t *testing.T) {
	rr, env := serve(t, Deps{Dataset: fakeDataset{rows: 42}}, "/dataset")
	if rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}
	data := env["data"].(map[string]any)
	if data["id"] != "ds-1" || data["rows"] != float64(42) || data["ages"] != float64(3) {
		t.Fatalf("dataset = %v", data)
	}

	rr, _ = serve(t, Deps{}, "/dataset")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("unloaded status = %d", rr.Code)
	}
}

func TestVersion(t *testing.T) {
	rr, env := serve(t, Deps{}, "/version")
	if rr.Code != 200 || env["data"] == nil {
		t.Fatalf("version status = %d body = %v", rr.Code, env)
	}
}
