package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devsurvey/internal/core/survey"
	perr "devsurvey/internal/platform/errors"
	"devsurvey/internal/platform/net/http/bind"
)

var surveyBody = bind.JSONOptions{DisallowUnknown: true, AllowEmptyBody: true}

func post(t *testing.T, h Handler, body string) (int, Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/count", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)

	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return rr.Code, env
}

func TestJSONHandler_DecodesFilterSpec(t *testing.T) {
	var got survey.FilterSpec
	h := JSONHandler(surveyBody, func(_ *http.Request, in survey.FilterSpec) (any, error) {
		got = in
		return map[string]int{"records": len(in.Ages)}, nil
	})

	code, env := post(t, h, `{"ages":["25-34 years old"],"years":{"min":2,"max":10}}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	if len(got.Ages) != 1 || got.Years == nil || got.Years.Max != 10 || got.Employment != nil {
		t.Fatalf("spec = %+v", got)
	}
	if env.Data.(map[string]any)["records"] != float64(1) {
		t.Fatalf("data = %v", env.Data)
	}
}

func TestJSONHandler_EmptyBodyIsAcceptAll(t *testing.T) {
	called := false
	h := JSONHandler(surveyBody, func(_ *http.Request, in survey.FilterSpec) (any, error) {
		called = true
		if in.Ages != nil || in.Years != nil {
			t.Fatalf("empty body should give the zero spec, got %+v", in)
		}
		return nil, nil
	})
	if code, _ := post(t, h, ""); code != http.StatusOK || !called {
		t.Fatalf("status = %d called = %v", code, called)
	}
}

func TestJSONHandler_RejectsBeforeCalling(t *testing.T) {
	h := JSONHandler(surveyBody, func(*http.Request, survey.FilterSpec) (any, error) {
		t.Fatal("handler should not run")
		return nil, nil
	})
	cases := []struct {
		name  string
		body  string
		code  perr.ErrorCode
		field string
	}{
		{"malformed", `{"ages":`, perr.ErrorCodeJSON, ""},
		{"unknown field", `{"country":["Germany"]}`, perr.ErrorCodeJSON, ""},
		{"inverted years", `{"years":{"min":20,"max":5}}`, perr.ErrorCodeValidation, "years.max"},
		{"years past range", `{"years":{"min":0,"max":60}}`, perr.ErrorCodeValidation, "years.max"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := post(t, h, tc.body)
			if status != http.StatusBadRequest || env.Code != tc.code || env.Field != tc.field {
				t.Fatalf("status = %d envelope = %+v", status, env)
			}
		})
	}
}

func TestJSONHandler_ServiceErrorsAndResponses(t *testing.T) {
	failing := JSONHandler(surveyBody, func(*http.Request, survey.FilterSpec) (any, error) {
		return nil, perr.WithField(perr.InvalidArgf(`unknown age "99 years old"`), "ages")
	})
	if status, env := post(t, failing, `{}`); status != http.StatusUnprocessableEntity || env.Field != "ages" {
		t.Fatalf("status = %d envelope = %+v", status, env)
	}

	custom := JSONHandlerNoBody(func(*http.Request) (any, error) {
		return Response{Status: http.StatusServiceUnavailable, Body: "not ready"}, nil
	})
	if status, env := post(t, custom, `ignored`); status != http.StatusServiceUnavailable || env.Data != "not ready" {
		t.Fatalf("status = %d envelope = %+v", status, env)
	}
}
