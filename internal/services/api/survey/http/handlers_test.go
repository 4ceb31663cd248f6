package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devsurvey/internal/core/survey"
	perr "devsurvey/internal/platform/errors"
	phttp "devsurvey/internal/platform/net/http"
	"devsurvey/internal/services/api/survey/domain"
	svc "devsurvey/internal/services/api/survey/service"

	"github.com/go-chi/chi/v5"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func newRouter(t *testing.T) stdhttp.Handler {
	t.Helper()
	tbl, err := survey.Open("../../../../core/survey/testdata/survey.csv")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), svc.New(tbl, nil))
	return m
}

func do(t *testing.T, h stdhttp.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad envelope %q: %v", method, path, rr.Body.String(), err)
	}
	return rr.Code, env
}

func TestFilters(t *testing.T) {
	code, env := do(t, newRouter(t), stdhttp.MethodGet, "/filters", "")
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	var out domain.FiltersResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Vocabulary.Ages) == 0 || !strings.HasPrefix(out.Vocabulary.Ages[0], "Under") {
		t.Fatalf("ages = %v", out.Vocabulary.Ages)
	}
	if out.Vocabulary.Years.Max != 50 {
		t.Fatalf("years = %+v", out.Vocabulary.Years)
	}
}

func TestTab_EmptyBodyAcceptsAll(t *testing.T) {
	code, env := do(t, newRouter(t), stdhttp.MethodPost, "/tabs/demographics", "")
	if code != 200 {
		t.Fatalf("status = %d err = %s", code, env.Error)
	}
	var out domain.TabResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Records != 4 || len(out.Metrics) != 5 {
		t.Fatalf("records = %d metrics = %d", out.Records, len(out.Metrics))
	}
}

func TestTab_UnknownTabIs422(t *testing.T) {
	code, env := do(t, newRouter(t), stdhttp.MethodPost, "/tabs/settings", "{}")
	if code != stdhttp.StatusUnprocessableEntity || env.Code != perr.ErrorCodeInvalidArgument {
		t.Fatalf("status = %d code = %d", code, env.Code)
	}
}

func TestTab_BadBodies(t *testing.T) {
	h := newRouter(t)
	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"ages":`, 400},
		{"unknown field", `{"colour":"blue"}`, 400},
		{"inverted years", `{"years":{"min":10,"max":5}}`, 400},
		{"unknown age", `{"ages":["99-100 years old"]}`, 422},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, h, stdhttp.MethodPost, "/tabs/tech-used", tc.body)
			if code != tc.want {
				t.Fatalf("status = %d, want %d (%s)", code, tc.want, env.Error)
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	body := `{"filters":{"ed_levels":[]},"tabs":["tech-used","demographics"]}`
	code, env := do(t, newRouter(t), stdhttp.MethodPost, "/dashboard", body)
	if code != 200 {
		t.Fatalf("status = %d err = %s", code, env.Error)
	}
	var out domain.DashboardResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Records != 0 || len(out.Tabs) != 2 {
		t.Fatalf("records = %d tabs = %d", out.Records, len(out.Tabs))
	}
	for _, tab := range out.Tabs {
		for _, m := range tab.Metrics {
			if len(m.Rows) != 0 || m.Total != 0 {
				t.Fatalf("%s/%s should be empty, got %v", tab.Tab, m.ID, m.Rows)
			}
		}
	}
}

func TestDashboard_TooManyTabs(t *testing.T) {
	body := `{"tabs":["tech-used","tech-want","demographics","tech-used"]}`
	code, _ := do(t, newRouter(t), stdhttp.MethodPost, "/dashboard", body)
	if code != 400 {
		t.Fatalf("status = %d, want 400", code)
	}
}

func TestAggregate(t *testing.T) {
	h := newRouter(t)

	code, env := do(t, h, stdhttp.MethodPost, "/aggregate", `{"column":"LanguageHaveWorkedWith","split":true,"limit":1}`)
	if code != 200 {
		t.Fatalf("status = %d err = %s", code, env.Error)
	}
	var out domain.AggregateResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Rows) != 1 || out.Rows[0].Label != "Python" || out.Rows[0].Count != 3 {
		t.Fatalf("rows = %v", out.Rows)
	}

	if code, _ := do(t, h, stdhttp.MethodPost, "/aggregate", `{}`); code != 400 {
		t.Fatalf("missing column: status = %d, want 400", code)
	}
	if code, _ := do(t, h, stdhttp.MethodPost, "/aggregate", `{"column":"Age","limit":-1}`); code != 400 {
		t.Fatalf("negative limit: status = %d, want 400", code)
	}
	if code, _ := do(t, h, stdhttp.MethodPost, "/aggregate", `{"column":"Age","split":true}`); code != 422 {
		t.Fatalf("split single value column: status = %d, want 422", code)
	}
}

func TestCount(t *testing.T) {
	code, env := do(t, newRouter(t), stdhttp.MethodPost, "/count", `{"years":{"min":7,"max":10}}`)
	if code != 200 {
		t.Fatalf("status = %d err = %s", code, env.Error)
	}
	var out domain.CountResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Records != 2 || out.DatasetRows != 6 {
		t.Fatalf("count = %+v", out)
	}
}
