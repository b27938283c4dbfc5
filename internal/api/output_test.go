package api

import (
	"bytes"
	"strings"
	"testing"
)

func TestOutputToJSON(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]string{"status": "ok"}

	if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
		t.Fatalf("OutputTo failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "ok"`) {
		t.Errorf("unexpected JSON output: %s", buf.String())
	}
}

func TestOutputToYAML(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]string{"status": "ok"}

	if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
		t.Fatalf("OutputTo failed: %v", err)
	}
	if !strings.Contains(buf.String(), "status: ok") {
		t.Errorf("unexpected YAML output: %s", buf.String())
	}
}

func TestSetOutputFormat(t *testing.T) {
	t.Cleanup(func() { SetOutputFormat("yaml") })

	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Errorf("format not set to json: %s", GetOutputFormat())
	}

	SetOutputFormat("bogus")
	if GetOutputFormat() != DefaultOutput {
		t.Errorf("unknown format should fall back to default: %s", GetOutputFormat())
	}
}
