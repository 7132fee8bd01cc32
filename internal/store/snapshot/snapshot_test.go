package snapshot

import (
	"bytes"
	"testing"

	"github.com/idilsaglam/tasks/internal/model"
)

func TestWriteEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWriteTasks(t *testing.T) {
	var buf bytes.Buffer
	tasks := []model.Task{{ID: 7, Title: "Buy milk", Done: true}}
	if err := Write(&buf, tasks); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	want := "[\n  {\n    \"id\": 7,\n    \"title\": \"Buy milk\",\n    \"done\": true\n  }\n]\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output\n got: %q\nwant: %q", got, want)
	}
}
