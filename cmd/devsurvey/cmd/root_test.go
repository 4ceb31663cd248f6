package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"devsurvey/internal/core/survey"
	perr "devsurvey/internal/platform/errors"
	"devsurvey/internal/platform/testkit"
	"devsurvey/internal/services/api/survey/domain"
)

const fixture = "../../../internal/core/survey/testdata/survey.csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := RootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data", fixture}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVocab_Table(t *testing.T) {
	out, err := run(t, "vocab")
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	testkit.MustContain(t, out, "Under 18 years old")
	testkit.MustContain(t, out, "Independent contractor, freelancer, or self-employed")
	testkit.MustContain(t, out, "0 - 50")
}

func TestTab_JSONWithFilters(t *testing.T) {
	out, err := run(t, "tab", "tech-used", "-o", "json",
		"--employment", "Independent contractor, freelancer, or self-employed")
	if err != nil {
		t.Fatalf("tab: %v", err)
	}
	var res domain.TabResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Tab != survey.TabTechUsed || res.Records != 1 {
		t.Fatalf("tab = %s records = %d", res.Tab, res.Records)
	}
}

func TestTab_DefaultsToOpeningTab(t *testing.T) {
	out, err := run(t, "tab")
	if err != nil {
		t.Fatalf("tab: %v", err)
	}
	testkit.MustContain(t, out, "Technologies Used (4 records)")
	testkit.MustContain(t, out, "Top 10 Languages Used")
}

func TestTop_YAML(t *testing.T) {
	out, err := run(t, "top", "Country", "--display-names", "--limit", "1", "--output", "yaml",
		"--years-min", "5")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	var res struct {
		Records int `yaml:"records"`
		Rows    []struct {
			Label string `yaml:"label"`
			Count int    `yaml:"count"`
		} `yaml:"rows"`
	}
	if err := yaml.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Records != 3 || len(res.Rows) != 1 || res.Rows[0].Label != "USA" || res.Rows[0].Count != 2 {
		t.Fatalf("top = %+v", res)
	}
}

func TestVocab_YAMLKeysFollowJSONNames(t *testing.T) {
	out, err := run(t, "vocab", "-o", "yaml")
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	for _, key := range []string{"dataset_id:", "ed_levels:", "dev_status:", "years:"} {
		testkit.MustContain(t, out, key)
	}
	if strings.Contains(out, "datasetid") || strings.Contains(out, "edlevels") {
		t.Fatalf("go field names leaked into yaml:\n%s", out)
	}
	if strings.Contains(out, "{") {
		t.Fatalf("expected block style yaml:\n%s", out)
	}
}

func TestOutput_DefaultFromEnv(t *testing.T) {
	t.Setenv("DEVSURVEY_OUTPUT", "JSON")
	out, err := run(t, "vocab")
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	var res domain.FiltersResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("env default should select json, got %q: %v", out, err)
	}

	t.Setenv("DEVSURVEY_OUTPUT", "xml")
	testkit.MustPanic(t, func() { RootCmd() })
}

func TestFilterFlags_BlankAndEmptyRange(t *testing.T) {
	out, err := run(t, "top", "Age", "--age", "", "-o", "json")
	if err == nil {
		t.Fatalf("blank age should be rejected, got %s", out)
	}

	out, err = run(t, "top", "EdLevel", "--years-min", "30", "--years-max", "40")
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if strings.Contains(out, "Bachelor") {
		t.Fatalf("no record has 30-40 years, got\n%s", out)
	}
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{"tab", "settings"},
		{"top", "YearsCode"},
		{"top", "Age", "--split"},
		{"vocab", "--output", "xml"},
		{"tab", "--years-min", "20", "--years-max", "10"},
	}
	for _, args := range cases {
		_, err := run(t, args...)
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("%v: got %v, want invalid argument", args, err)
		}
	}
}
