package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.bytecodealliance.org/wit"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		opts     options
		input    string
		wantOut  string
		wantDiag []string
	}{
		{
			name:     "growable",
			opts:     options{kind: "growable", initial: 4},
			input:    "hello, growable world",
			wantOut:  "hello, growable world",
			wantDiag: []string{"growable: pos=21 len=21", "grows="},
		},
		{
			name:     "fixed fits",
			opts:     options{kind: "fixed", capacity: 64, fmode: "w+"},
			input:    "short",
			wantOut:  "short",
			wantDiag: []string{"fixed: pos=5 len=5 cap=64"},
		},
		{
			name:     "fixed truncates",
			opts:     options{kind: "fixed", capacity: 4, fmode: "w"},
			input:    "truncated",
			wantOut:  "trun",
			wantDiag: []string{"dropped 5 of 9 bytes", "cap=4"},
		},
		{
			name:     "fixed write only",
			opts:     options{kind: "fixed", capacity: 8, fmode: "a"},
			input:    "abc",
			wantOut:  "",
			wantDiag: []string{"fixed: pos=0 len=3 cap=8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, diag bytes.Buffer
			if err := run(tt.opts, strings.NewReader(tt.input), &out, &diag); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if out.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
			for _, want := range tt.wantDiag {
				if !strings.Contains(diag.String(), want) {
					t.Errorf("diagnostics %q missing %q", diag.String(), want)
				}
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"unknown kind", options{kind: "ring"}},
		{"bad mode", options{kind: "fixed", capacity: 8, fmode: "x"}},
		{"negative capacity", options{kind: "fixed", capacity: -1, fmode: "w+"}},
		{"limit below initial", options{kind: "growable", initial: 128, limit: 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.opts, strings.NewReader("x"), io.Discard, io.Discard); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConvertArg(t *testing.T) {
	tests := []struct {
		value   string
		typ     wit.Type
		want    any
		wantErr bool
	}{
		{"text", wit.String{}, "text", false},
		{"42", wit.U32{}, uint32(42), false},
		{"-7", wit.S64{}, int64(-7), false},
		{"end", whenceType, uint32(2), false},
		{"middle", whenceType, nil, true},
		{"-1", wit.U32{}, nil, true},
		{"1", wit.Bool{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := convertArg(tt.value, tt.typ)
			if tt.wantErr {
				if err == nil {
					t.Errorf("convertArg(%q) = %v, want error", tt.value, got)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("convertArg(%q) = %v (%T), %v; want %v", tt.value, got, got, err, tt.want)
			}
		})
	}
}

func TestInteractiveModel_Calls(t *testing.T) {
	sess, err := openSession(options{kind: "fixed", capacity: 16, fmode: "w"})
	if err != nil {
		t.Fatalf("openSession failed: %v", err)
	}
	m := newInteractiveModel(sess)

	call := func(name string, values ...string) callResultMsg {
		t.Helper()
		for i, f := range m.funcs {
			if f.name == name {
				m.selected = i
			}
		}
		m.prepareInputs()
		for i, v := range values {
			m.inputs[i].SetValue(v)
		}
		return m.callFunction().(callResultMsg)
	}

	if res := call("write", "hello"); res.err != nil || res.result != "wrote 5 bytes" {
		t.Fatalf("write: %+v", res)
	}
	if res := call("seek", "-5", "end"); res.err != nil || res.result != "position 0" {
		t.Fatalf("seek: %+v", res)
	}
	if res := call("read", "3"); res.err != nil || res.result != `"hel"` {
		t.Fatalf("read: %+v", res)
	}
	if res := call("read", "4294967295"); res.err != nil || res.result != `"lo"` {
		t.Fatalf("read with huge len: %+v", res)
	}
	if res := call("read", "4294967295"); res.err != nil || res.result != "end of stream" {
		t.Fatalf("read at end: %+v", res)
	}
	if res := call("seek", "0", "sideways"); res.err == nil {
		t.Fatal("seek with bad whence should fail")
	}
	if res := call("close"); res.err != nil {
		t.Fatalf("close: %+v", res)
	}
	if res := call("write", "x"); res.err == nil {
		t.Fatal("write after close should fail")
	}

	view := m.View()
	if !strings.Contains(view, "closed") || !strings.Contains(view, "hello") {
		t.Errorf("view missing state:\n%s", view)
	}
}

func TestInteractiveModel_Reopen(t *testing.T) {
	sess, _ := openSession(options{kind: "growable", initial: 8})
	m := newInteractiveModel(sess)
	_, _ = sess.s.Write([]byte("data"))

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = model.(*interactiveModel)
	if m.sess == sess {
		t.Fatal("reopen kept the old session")
	}
	if !sess.closed && !sess.s.Closed() {
		t.Error("old stream left open")
	}
	if m.sess.stats().length != 0 {
		t.Errorf("new session length = %d", m.sess.stats().length)
	}
}
