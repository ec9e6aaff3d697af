package format

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type sample struct {
	ID              string   `json:"id"`
	LongDescription string   `json:"longDescription"`
	Count           int      `json:"count"`
	Ratio           float64  `json:"ratio"`
	Tools           []string `json:"tools"`
	Missing         *string  `json:"missing"`
	Open            bool     `json:"open"`
}

func TestWriteEDN_Compact(t *testing.T) {
	var buf bytes.Buffer
	v := sample{ID: "p1", LongDescription: "x", Count: 3, Ratio: 2.5, Tools: []string{"Blender"}}
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:count 3 :id "p1" :long-description "x" :missing nil :open false :ratio 2.5 :tools ["Blender"]}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("edn mismatch:\nwant: %s\ngot:  %s", want, got)
	}
}

func TestWriteEDN_PrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": []string{}, "b": map[string]int{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :a []\n  :b {}\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("edn mismatch:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestWriteYAML_UsesJSONKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{ID: "p1", Count: 7}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"id: p1", "count: 7", "longDescription: \"\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, 1, "xml", false)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat; got %v", err)
	}
	if Valid("xml") || !Valid("") || !Valid(" EDN ") {
		t.Fatalf("Valid() disagrees with Write")
	}
}

func TestEDNKeyword(t *testing.T) {
	cases := map[string]string{
		"id":                "id",
		"longDescription":   "long-description",
		"selectedProjectId": "selected-project-id",
		"image2x":           "image2x",
		"snake_case":        "snake-case",
	}
	for in, want := range cases {
		if got := ednKeyword(in); got != want {
			t.Errorf("ednKeyword(%q) = %q, want %q", in, got, want)
		}
	}
}
