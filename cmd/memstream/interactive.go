package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.bytecodealliance.org/wit"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

var whenceName = "whence"

// whenceType orders its cases like io.SeekStart, io.SeekCurrent and
// io.SeekEnd, so a case index is a whence value.
var whenceType = &wit.TypeDef{
	Name: &whenceName,
	Kind: &wit.Enum{Cases: []wit.EnumCase{
		{Name: "start"},
		{Name: "current"},
		{Name: "end"},
	}},
}

type funcInfo struct {
	name       string
	resultType string
	params     []paramInfo
	call       func(ss *session, args []any) (string, error)
}

type paramInfo struct {
	name    string
	witType wit.Type
	typeStr string
}

func param(name string, t wit.Type) paramInfo {
	return paramInfo{name: name, witType: t, typeStr: witTypeStr(t)}
}

// maxRead caps the buffer one read call allocates.
const maxRead = 4096

// streamFuncs lists the operations offered on the open stream.
var streamFuncs = []funcInfo{
	{
		name:       "write",
		params:     []paramInfo{param("data", wit.String{})},
		resultType: witTypeStr(wit.U64{}),
		call: func(ss *session, args []any) (string, error) {
			n, err := ss.s.Write([]byte(args[0].(string)))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("wrote %d bytes", n), nil
		},
	},
	{
		name:       "read",
		params:     []paramInfo{param("len", wit.U32{})},
		resultType: witTypeStr(wit.String{}),
		call: func(ss *session, args []any) (string, error) {
			buf := make([]byte, min(args[0].(uint32), maxRead))
			n, err := ss.s.Read(buf)
			if err == io.EOF {
				return "end of stream", nil
			}
			if err != nil {
				return "", err
			}
			return strconv.Quote(string(buf[:n])), nil
		},
	},
	{
		name:       "seek",
		params:     []paramInfo{param("offset", wit.S64{}), param("whence", whenceType)},
		resultType: witTypeStr(wit.U64{}),
		call: func(ss *session, args []any) (string, error) {
			pos, err := ss.s.Seek(args[0].(int64), int(args[1].(uint32)))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("position %d", pos), nil
		},
	},
	{
		name: "close",
		call: func(ss *session, _ []any) (string, error) {
			if err := ss.close(); err != nil {
				return "", err
			}
			return "closed; content stays in the caller's buffer", nil
		},
	},
}

type interactiveModel struct {
	err      error
	sess     *session
	result   string
	funcs    []funcInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(sess *session) *interactiveModel {
	return &interactiveModel{
		sess:  sess,
		funcs: streamFuncs,
		state: stateSelectFunc,
	}
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			_ = m.sess.close()
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				_ = m.sess.close()
				return m, tea.Quit
			}

		case "r":
			if m.state == stateSelectFunc {
				sess, err := m.sess.reopen()
				if err != nil {
					m.err = err
					m.state = stateShowResult
					return m, nil
				}
				m.sess = sess
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	f := m.funcs[m.selected]
	m.inputs = make([]textinput.Model, len(f.params))
	for i, p := range f.params {
		ti := textinput.New()
		ti.Placeholder = p.typeStr
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callFunction() tea.Msg {
	f := m.funcs[m.selected]
	args := make([]any, len(m.inputs))
	for i, input := range m.inputs {
		v, err := convertArg(input.Value(), f.params[i].witType)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("%s: %w", f.params[i].name, err)}
		}
		args[i] = v
	}

	result, err := f.call(m.sess, args)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: result}
}

// convertArg parses a text field into the Go value for t.
func convertArg(value string, t wit.Type) (any, error) {
	switch v := t.(type) {
	case wit.String:
		return value, nil
	case wit.U32:
		n, err := strconv.ParseUint(value, 10, 32)
		return uint32(n), err
	case wit.U64:
		return strconv.ParseUint(value, 10, 64)
	case wit.S64:
		return strconv.ParseInt(value, 10, 64)
	case *wit.TypeDef:
		if e, ok := v.Kind.(*wit.Enum); ok {
			for i, c := range e.Cases {
				if c.Name == value {
					return uint32(i), nil
				}
			}
			return nil, fmt.Errorf("%q is not one of %s", value, enumCases(e))
		}
	}
	return nil, fmt.Errorf("unsupported parameter type %s", witTypeStr(t))
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("memstream"))
	b.WriteString(" ")
	b.WriteString(m.sess.opts.kind)
	if m.sess.fixed != nil {
		b.WriteString(" ")
		b.WriteString(typeStyle.Render(m.sess.fixed.Mode().String()))
	}
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(m.panel()))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select an operation:\n\n")
		for i, f := range m.funcs {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatFunc(f)))
			} else {
				b.WriteString(cursor + m.formatFunc(f))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • r reopen • q quit"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(f.params[i].typeStr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

// panel renders the stream state and a hex dump of its first bytes.
func (m *interactiveModel) panel() string {
	st := m.sess.stats()
	var b strings.Builder
	b.WriteString(st.String())
	if m.sess.closed {
		b.WriteString(errorStyle.Render("  closed"))
	}
	b.WriteString("\n\n")

	content := m.sess.content()
	if len(content) > 128 {
		content = content[:128]
	}
	if len(content) == 0 {
		b.WriteString(helpStyle.Render("(empty)"))
	} else {
		b.WriteString(strings.TrimRight(hex.Dump(content), "\n"))
	}
	return b.String()
}

func (m *interactiveModel) formatFunc(f funcInfo) string {
	var params []string
	for _, p := range f.params {
		params = append(params, p.name+": "+typeStyle.Render(p.typeStr))
	}
	result := ""
	if f.resultType != "" {
		result = " -> " + typeStyle.Render(f.resultType)
	}
	return funcStyle.Render(f.name) + "(" + strings.Join(params, ", ") + ")" + result
}

func enumCases(e *wit.Enum) string {
	names := make([]string, len(e.Cases))
	for i, c := range e.Cases {
		names[i] = c.Name
	}
	return strings.Join(names, "|")
}

func witTypeStr(t wit.Type) string {
	switch v := t.(type) {
	case wit.U32:
		return "u32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func runInteractive(opts options) error {
	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newInteractiveModel(sess), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
