// Command enigma-tui is an interactive Enigma I: type on the keyboard and
// watch the rotors turn and the lamps light.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-enigma/pkg/config"
	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/metrics"
	"github.com/dd0wney/cluso-enigma/pkg/operator"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFBF00")).
			MarginLeft(2).
			MarginTop(1)

	windowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#888888")).
			Padding(0, 1)

	lampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Padding(0, 1)

	litLampStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFD700")).
			Padding(0, 1)

	tapeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1).
			MarginLeft(2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

// Lampboard rows as laid out on the machine.
var lampRows = []string{"QWERTZUIO", "ASDFGHJK", "PYXCVBNML"}

// defaultSheet is where ctrl+s saves when no sheet was loaded.
const defaultSheet = "enigma-key.yaml"

// tapeWidth caps how much of the tapes is shown.
const tapeWidth = 60

type mode int

const (
	typingMode mode = iota
	setupMode
)

type keyMap struct {
	Setup key.Binding
	Enter key.Binding
	Reset key.Binding
	Save  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Setup: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "set start positions"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset rotors"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save key sheet"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Setup, k.Reset, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Setup, k.Enter},
		{k.Reset, k.Save, k.Quit},
	}
}

type model struct {
	sheet      *config.Config
	sheetPath  string
	settings   enigma.Settings
	clerk      *operator.Operator
	session    *operator.Session
	mode       mode
	input      textinput.Model
	help       help.Model
	keys       keyMap
	plain      []rune
	cipher     []rune
	lamp       rune
	width      int
	message    string
	messageErr bool
	logger     logging.Logger
	metrics    *metrics.Registry
}

func initialModel(sheet *config.Config, sheetPath string, logger logging.Logger, reg *metrics.Registry) (model, error) {
	ti := textinput.New()
	ti.Placeholder = "AAA"
	ti.CharLimit = len(sheet.Machine.Rotors)
	ti.Width = 20

	m := model{
		sheet:     sheet,
		sheetPath: sheetPath,
		input:     ti,
		help:      help.New(),
		keys:      keys,
		logger:    logger,
		metrics:   reg,
	}
	if err := m.setKey(sheet.Machine); err != nil {
		return model{}, err
	}
	return m, nil
}

// setKey builds a fresh operator and session for settings and clears the
// tapes.
func (m *model) setKey(settings enigma.Settings) error {
	clerk, err := operator.New(settings, operator.WithLogger(m.logger), operator.WithMetrics(m.metrics))
	if err != nil {
		return err
	}
	m.settings = settings
	m.clerk = clerk
	m.session = clerk.NewSession()
	m.clearTapes()
	return nil
}

func (m *model) clearTapes() {
	m.plain = m.plain[:0]
	m.cipher = m.cipher[:0]
	m.lamp = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Setup):
			if m.mode == typingMode {
				m.mode = setupMode
				m.input.SetValue("")
				return m, m.input.Focus()
			}
			m.mode = typingMode
			m.input.Blur()
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.session.Reset()
			m.clearTapes()
			m.message = "Rotors reset to " + m.windows()
			m.messageErr = false
			return m, nil

		case key.Matches(msg, m.keys.Save):
			m.save()
			return m, nil

		case m.mode == setupMode && key.Matches(msg, m.keys.Enter):
			m.applyPositions(m.input.Value())
			return m, nil

		case m.mode == typingMode:
			m.press(msg)
			return m, nil
		}
	}

	if m.mode == setupMode {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// press enciphers the runes of a key event onto the tapes.
func (m *model) press(msg tea.KeyMsg) {
	var runes []rune
	switch msg.Type {
	case tea.KeyRunes:
		runes = msg.Runes
	case tea.KeySpace:
		runes = []rune{' '}
	default:
		return
	}

	for _, r := range runes {
		out := m.session.Press(r)
		m.plain = append(m.plain, enigma.Normalize(r))
		m.cipher = append(m.cipher, out)
		if _, ok := enigma.IndexOf(out); ok {
			m.lamp = out
		} else {
			m.lamp = 0
		}
	}
	m.message = ""
}

// applyPositions sets new start positions, entered slowest first as they
// read in the windows.
func (m *model) applyPositions(value string) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if n := utf8.RuneCountInString(value); n != len(m.settings.Rotors) {
		m.message = fmt.Sprintf("Need %d letters, got %d", len(m.settings.Rotors), n)
		m.messageErr = true
		return
	}

	next := m.settings
	next.Rotors = append([]enigma.RotorSetting(nil), m.settings.Rotors...)
	letters := []rune(value)
	for i := range next.Rotors {
		next.Rotors[i].Position = string(letters[len(letters)-1-i])
	}

	if err := m.setKey(next); err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}
	m.mode = typingMode
	m.input.Blur()
	m.message = "Start positions set to " + m.windows()
	m.messageErr = false
}

// save writes the current key back to the sheet.
func (m *model) save() {
	sheet := *m.sheet
	sheet.Machine = m.settings
	if err := config.Save(m.sheetPath, &sheet); err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}
	m.logger.Info("key sheet saved", logging.Path(m.sheetPath))
	m.message = "Key saved to " + m.sheetPath
	m.messageErr = false
}

// windows returns the rotor windows slowest first, as seen on the machine.
func (m model) windows() string {
	pos := []rune(m.session.Positions())
	for i, j := 0, len(pos)-1; i < j; i, j = i+1, j-1 {
		pos[i], pos[j] = pos[j], pos[i]
	}
	return string(pos)
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Enigma I"))
	s.WriteString("\n")
	s.WriteString(contentStyle.Render(m.renderRotors()))
	s.WriteString("\n")
	s.WriteString(contentStyle.Render(m.renderLamps()))
	s.WriteString("\n\n")
	s.WriteString(m.renderTapes())

	if m.mode == setupMode {
		s.WriteString("\n")
		s.WriteString(contentStyle.Render("Start positions: " + m.input.View()))
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("  ✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("  ✓ " + m.message))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

func (m model) renderRotors() string {
	n := len(m.settings.Rotors)
	boxes := make([]string, 0, n+1)
	boxes = append(boxes, windowStyle.Render("UKW-"+m.settings.Reflector))
	win := m.windows()
	for i, r := range win {
		wheel := m.settings.Rotors[n-1-i].Model
		boxes = append(boxes, windowStyle.Render(fmt.Sprintf("%s %c", wheel, r)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m model) renderLamps() string {
	rows := make([]string, len(lampRows))
	for i, row := range lampRows {
		lamps := make([]string, 0, len(row))
		for _, r := range row {
			if r == m.lamp {
				lamps = append(lamps, litLampStyle.Render(string(r)))
			} else {
				lamps = append(lamps, lampStyle.Render(string(r)))
			}
		}
		rows[i] = strings.Repeat(" ", i) + lipgloss.JoinHorizontal(lipgloss.Top, lamps...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) renderTapes() string {
	plugs := m.settings.Plugboard
	if plugs == "" {
		plugs = "none"
	}
	content := fmt.Sprintf("Plugs:  %s\nPlain:  %s\nCipher: %s",
		plugs, tail(m.plain), tail(m.cipher))
	return tapeStyle.Render(content)
}

func tail(r []rune) string {
	if len(r) > tapeWidth {
		r = r[len(r)-tapeWidth:]
	}
	return string(r)
}

func main() {
	configPath := flag.String("config", "", "Key sheet (YAML); ctrl+s saves back to it")
	logPath := flag.String("log", "", "Write JSON logs to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load key sheet: %v", err)
	}

	// The terminal belongs to the UI, so logs only go to a file.
	logging.SetDefaultLogger(logging.NewNopLogger())
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logging.SetDefaultLogger(logging.NewJSONLogger(f, cfg.Level()))
	}
	logger := logging.With(logging.Component("tui"))

	reg := metrics.NewRegistry()
	sheetPath := *configPath
	if sheetPath == "" {
		sheetPath = defaultSheet
	}
	logging.Info("simulator started", logging.Path(sheetPath), logging.Reflector(cfg.Machine.Reflector))

	m, err := initialModel(cfg, sheetPath, logger, reg)
	if err != nil {
		log.Fatalf("Failed to set up machine: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
	logging.Debug("simulator stopped")

	if cfg.MetricsFile != "" {
		if err := reg.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Printf("Failed to write metrics: %v", err)
		}
	}
}
