package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/aout"
)

func writeExec(t *testing.T, h *aout.Header, body []byte) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := h.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	buf.Write(body)
	path := filepath.Join(t.TempDir(), "a.out")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func helloHeader() *aout.Header {
	h := aout.NewHeader(aout.CPUI8086, aout.FlagSEP)
	h.Text = 4
	h.Data = 2
	h.BSS = 0x42
	h.Total = 0x10000
	return h
}

func TestRunText(t *testing.T) {
	path := writeExec(t, helloHeader(), make([]byte, 6))

	var out bytes.Buffer
	invalid, err := run(&out, []string{path}, options{format: "text", validate: true, segments: true, width: 120})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if invalid {
		t.Error("valid header reported invalid")
	}

	got := out.String()
	for _, want := range []string{"a_magic", "01 03", "a_cpu", "i8086", "SEP", "short form", "a_syms", "66 bytes", "segments", "text", "valid"} {
		if !strings.Contains(got, want) {
			t.Errorf("text output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "a_trsize") {
		t.Error("short form output lists long-form fields")
	}
}

func TestRunTextNarrow(t *testing.T) {
	path := writeExec(t, helloHeader(), make([]byte, 6))

	var out bytes.Buffer
	if _, err := run(&out, []string{path}, options{format: "text", width: 40}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), "offset") {
		t.Errorf("narrow output has offset column:\n%s", out.String())
	}
}

func TestRunValidateFailure(t *testing.T) {
	h := helloHeader()
	h.CPU = 0x99
	path := writeExec(t, h, make([]byte, 6))

	var out bytes.Buffer
	invalid, err := run(&out, []string{path}, options{format: "text", validate: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !invalid {
		t.Error("expected invalid")
	}
	if !strings.Contains(out.String(), "unknown_cpu") {
		t.Errorf("output missing problem:\n%s", out.String())
	}
}

func TestRunJSON(t *testing.T) {
	h := helloHeader()
	h.SetForm(aout.FormLong)
	h.TextBase = 0x1000
	a := writeExec(t, h, make([]byte, 6))
	b := writeExec(t, helloHeader(), make([]byte, 6))

	var out bytes.Buffer
	if _, err := run(&out, []string{a, b}, options{format: "json", segments: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var reps []report
	if err := json.Unmarshal(out.Bytes(), &reps); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out.String())
	}
	if len(reps) != 2 {
		t.Fatalf("got %d reports, want 2", len(reps))
	}
	if reps[0].Form != "long" || reps[1].Form != "short" {
		t.Errorf("forms: got %s, %s", reps[0].Form, reps[1].Form)
	}
	if reps[0].Header.TextBase != 0x1000 {
		t.Errorf("TextBase = %#x, want 0x1000", reps[0].Header.TextBase)
	}
	if reps[0].CPU != "i8086" || reps[0].Magic != "0103" {
		t.Errorf("cpu/magic: got %s/%s", reps[0].CPU, reps[0].Magic)
	}
	if len(reps[0].Segments) != 5 || len(reps[1].Segments) != 3 {
		t.Errorf("segments: got %d and %d, want 5 and 3", len(reps[0].Segments), len(reps[1].Segments))
	}
}

func TestRunJSONLongFormZeroWords(t *testing.T) {
	h := helloHeader()
	h.SetForm(aout.FormLong)
	path := writeExec(t, h, make([]byte, 6))

	var out bytes.Buffer
	if _, err := run(&out, []string{path}, options{format: "json"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var reps []struct {
		Form   string         `json:"form"`
		Header map[string]any `json:"header"`
	}
	if err := json.Unmarshal(out.Bytes(), &reps); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out.String())
	}
	if len(reps) != 1 || reps[0].Form != "long" {
		t.Fatalf("reports: %+v", reps)
	}
	if len(reps[0].Header) != 16 {
		t.Errorf("header: got %d fields, want 16", len(reps[0].Header))
	}
	for _, k := range []string{"a_trsize", "a_drsize", "a_tbase", "a_dbase"} {
		if _, ok := reps[0].Header[k]; !ok {
			t.Errorf("header missing %s", k)
		}
	}
}

func TestRunYAML(t *testing.T) {
	path := writeExec(t, helloHeader(), make([]byte, 6))

	var out bytes.Buffer
	if _, err := run(&out, []string{path}, options{format: "yaml"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var rep report
	if err := yaml.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, out.String())
	}
	if rep.Header == nil {
		t.Fatal("missing header")
	}
	if *rep.Header != *helloHeader() {
		t.Errorf("header:\n got %+v\nwant %+v", *rep.Header, *helloHeader())
	}
	if rep.Flags != "SEP" {
		t.Errorf("Flags = %q, want SEP", rep.Flags)
	}
}

func TestRunHex(t *testing.T) {
	path := writeExec(t, helloHeader(), make([]byte, 6))

	var out bytes.Buffer
	if _, err := run(&out, []string{path}, options{format: "hex"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "00000000  01 03 20 04 20 00 00 00") {
		t.Errorf("hex output:\n%s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := run(&bytes.Buffer{}, nil, options{format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}

	missing := filepath.Join(t.TempDir(), "missing")
	_, err := run(&bytes.Buffer{}, []string{missing}, options{format: "text"})
	if err == nil || !strings.Contains(err.Error(), missing) {
		t.Errorf("expected error naming %s, got %v", missing, err)
	}

	short := filepath.Join(t.TempDir(), "short")
	if err := os.WriteFile(short, []byte{0x01, 0x03, 0x20, 0x04}, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = run(&bytes.Buffer{}, []string{short}, options{format: "text"})
	if err == nil || !strings.Contains(err.Error(), "a_hdrlen") {
		t.Errorf("expected truncation at a_hdrlen, got %v", err)
	}
}

func TestInteractiveModel(t *testing.T) {
	path := writeExec(t, helloHeader(), []byte{0xb8, 0x01, 0x00, 0xcd, 0x20, 0xc3})
	m := newInteractiveModel(path)

	if !strings.Contains(m.View(), "Loading") {
		t.Errorf("initial view: %q", m.View())
	}

	msg := m.loadFile()
	m.Update(msg)
	if !m.ready {
		t.Fatalf("model not ready after load: %v", m.err)
	}
	if len(m.fields) != 12 {
		t.Errorf("fields: got %d, want 12", len(m.fields))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2", m.selected)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}

	view := m.View()
	if !strings.Contains(view, "segment text") || !strings.Contains(view, "b8 01 00 cd") {
		t.Errorf("view missing text segment dump:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.segment != 1 {
		t.Errorf("segment = %d, want 1", m.segment)
	}
	if !strings.Contains(m.View(), "segment data") {
		t.Errorf("view after tab:\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestInteractiveModelLoadError(t *testing.T) {
	m := newInteractiveModel(filepath.Join(t.TempDir(), "missing"))
	m.Update(m.loadFile())
	if m.err == nil {
		t.Fatal("expected load error")
	}
	if !strings.Contains(m.View(), "Error") {
		t.Errorf("view: %q", m.View())
	}
}
