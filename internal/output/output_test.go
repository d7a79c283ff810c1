package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/mj1618/focusd/internal/model"
	"gopkg.in/yaml.v3"
)

func capture(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	result := WindowsResult{
		TS:    1707500000,
		Count: 1,
		Windows: []model.Window{
			{ID: 42, PID: 1234, App: "Safari", Title: "GitHub",
				Bounds: model.Bounds{X: 10, Y: 20, Width: 800, Height: 600},
				DisplayID: 1, Visible: true, Standard: true},
		},
	}

	out := capture(t, func() error { return PrintYAML(result) })

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded WindowsResult
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Windows) != 1 || decoded.Windows[0].App != "Safari" {
		t.Errorf("roundtrip mismatch: %+v", decoded)
	}
}

func TestPrintJSONCompact(t *testing.T) {
	result := DisplaysResult{
		TS: 123,
		Displays: []model.Display{
			{ID: 1, Bounds: model.Bounds{Width: 1920, Height: 1080}, Primary: true},
		},
	}

	out := capture(t, func() error { return PrintJSON(result) })

	// Compact JSON is a single line plus the trailing newline.
	if bytes.Count([]byte(out), []byte("\n")) != 1 {
		t.Errorf("compact JSON should be single-line, got:\n%s", out)
	}
}

func TestDisplaysResult_OmitEmptyPointer(t *testing.T) {
	data, err := yaml.Marshal(DisplaysResult{TS: 1})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["pointer"]; ok {
		t.Error("nil pointer should be omitted")
	}
	if _, ok := m["ts"]; !ok {
		t.Error("ts should always be present")
	}
}

func TestPrintRespectsFormat(t *testing.T) {
	defer func() { OutputFormat = FormatYAML }()

	OutputFormat = FormatJSON
	out := capture(t, func() error { return Print(DisplaysResult{TS: 9}) })
	if out[0] != '{' {
		t.Errorf("json format expected, got: %s", out)
	}

	OutputFormat = Format("xml")
	if err := Print(DisplaysResult{}); err == nil {
		t.Error("unsupported format must error")
	}
}
