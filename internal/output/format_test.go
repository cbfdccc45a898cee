package output

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"

	"todo/internal/service"
	"todo/internal/testutil"
	"todo/internal/viewstate"
)

func sampleState(filter viewstate.Filter) viewstate.State {
	return viewstate.State{
		Tasks: []service.Task{
			{ID: "1", Text: "buy milk", Completed: false},
			{ID: "2", Text: "walk dog", Completed: true},
			{ID: "3", Text: "write report", Completed: false},
		},
		Filter: filter,
	}
}

func TestFormatView_All(t *testing.T) {
	var buf bytes.Buffer
	FormatView(&buf, viewstate.Derive(sampleState(viewstate.FilterAll)), false)

	testutil.Golden(t, "view_all", buf.Bytes())
}

func TestFormatView_EmptyActive(t *testing.T) {
	s := viewstate.State{
		Tasks:  []service.Task{{ID: "2", Text: "walk dog", Completed: true}},
		Filter: viewstate.FilterActive,
	}
	var buf bytes.Buffer
	FormatView(&buf, viewstate.Derive(s), false)

	testutil.Golden(t, "view_active_empty", buf.Bytes())
}

func TestFormatView_Quiet(t *testing.T) {
	var buf bytes.Buffer
	FormatView(&buf, viewstate.Derive(sampleState(viewstate.FilterCompleted)), true)

	expected := "   1  [x] walk dog\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}

	buf.Reset()
	FormatView(&buf, viewstate.Derive(viewstate.State{Filter: viewstate.FilterAll}), true)
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty quiet view, got %q", buf.String())
	}
}

func TestWrite_JSON(t *testing.T) {
	s := viewstate.State{
		Tasks:  []service.Task{{ID: "1", Text: "buy milk", Completed: false}},
		Filter: viewstate.FilterAll,
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, viewstate.Derive(s), false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	testutil.Golden(t, "view_json", buf.Bytes())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, viewstate.Derive(sampleState(viewstate.FilterActive)), false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got struct {
		Tasks []struct {
			ID        string `yaml:"id"`
			Text      string `yaml:"text"`
			Completed bool   `yaml:"completed"`
		} `yaml:"tasks"`
		Filter string          `yaml:"filter"`
		Stats  viewstate.Stats `yaml:"stats"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if got.Filter != "active" {
		t.Errorf("filter = %q, want active", got.Filter)
	}
	if len(got.Tasks) != 2 || got.Tasks[0].ID != "1" || got.Tasks[1].Text != "write report" {
		t.Errorf("tasks = %+v", got.Tasks)
	}
	if got.Stats != (viewstate.Stats{Total: 3, Active: 2, Completed: 1}) {
		t.Errorf("stats = %+v", got.Stats)
	}
}

func TestFormatTask_NormalizesText(t *testing.T) {
	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{"plain", service.Task{Text: "buy milk"}, "   7  [ ] buy milk\n"},
		{"completed", service.Task{Text: "done", Completed: true}, "   7  [x] done\n"},
		{"newlines", service.Task{Text: "line one\nline two"}, "   7  [ ] line one line two\n"},
		{"blank", service.Task{Text: "   "}, "   7  [ ] (untitled)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, 7, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"text", "JSON", " yaml "} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", in, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
