package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"hc08re/internal/analysis"
	"hc08re/internal/config"
	"hc08re/internal/hc08re/styles"
	"hc08re/internal/report"
	"hc08re/internal/ui/colorize"
)

type viewMode int

const (
	viewSummary viewMode = iota
	viewSubroutines
	viewDetails
)

// routineCap bounds the listing shown for one subroutine.
const routineCap = 256

// detailSections are rendered in the details view.
var detailSections = []string{"vectors", "io", "ram", "strings", "constants"}

type subItem struct {
	address    uint32
	first      string // first instruction
	filterTerm string
}

func (i subItem) Title() string       { return fmt.Sprintf("sub_%04X", i.address) }
func (i subItem) Description() string { return "" }
func (i subItem) FilterValue() string { return i.filterTerm }

// Custom item delegate for the subroutine list
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(subItem)
	if !ok {
		return
	}

	indicator := " "
	addrStyle := styles.Dim
	if index == m.Index() {
		indicator = ">"
		addrStyle = styles.Selected
	}

	fmt.Fprintf(w, " %s  %s  %s",
		indicator,
		addrStyle.Render(fmt.Sprintf("%04X", i.address)),
		styles.Label.Render(i.first))
}

type model struct {
	viewport        viewport.Model
	subsList        list.Model
	detailsView     viewport.Model
	spinner         spinner.Model
	mode            viewMode
	filepath        string
	cfg             config.Config
	binary          bool
	logger          *log.Logger
	digest          string
	report          *report.Report
	result          *analysis.Result
	err             error
	loadingDigest   bool
	loadingAnalysis bool
	showingRoutine  bool
	width           int
	height          int
}

// Message types
type digestCalculatedMsg struct {
	digest string
}

type analysisMsg struct {
	report *report.Report
	result *analysis.Result
	err    error
}

// Commands
func calculateDigestCmd(filepath string) tea.Cmd {
	return func() tea.Msg {
		digest, err := report.DigestFile(filepath)
		if err != nil {
			return digestCalculatedMsg{digest: fmt.Sprintf("error: %v", err)}
		}
		return digestCalculatedMsg{digest: digest}
	}
}

func analyzeCmd(filepath string, cfg config.Config, binary bool, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		rep, res, err := analyze(filepath, cfg, binary, logger)
		return analysisMsg{report: rep, result: res, err: err}
	}
}

func NewModel(filepath string, cfg config.Config, binary bool, logger *log.Logger) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	subsList := list.New([]list.Item{}, itemDelegate{}, 80, 24)
	subsList.SetShowStatusBar(false)
	subsList.SetFilteringEnabled(true)
	subsList.Title = "Subroutines"
	subsList.Styles.Title = styles.Title
	subsList.SetShowHelp(true)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	dvp := viewport.New()
	dvp.SetWidth(80)
	dvp.SetHeight(24)

	m := model{
		viewport:        vp,
		subsList:        subsList,
		detailsView:     dvp,
		spinner:         s,
		mode:            viewSummary,
		filepath:        filepath,
		cfg:             cfg,
		binary:          binary,
		logger:          logger,
		loadingDigest:   true,
		loadingAnalysis: true,
		width:           80,
		height:          24,
	}
	m.updateContent()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		calculateDigestCmd(m.filepath),
		analyzeCmd(m.filepath, m.cfg, m.binary, m.logger),
		m.spinner.Tick,
	)
}

func (m model) hasSubroutines() bool {
	return m.result != nil && len(m.result.Subroutines) > 0
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case digestCalculatedMsg:
		m.digest = msg.digest
		m.loadingDigest = false
		m.updateContent()
		return m, nil

	case analysisMsg:
		m.loadingAnalysis = false
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
			m.result = msg.result
			m.updateSubroutinesList()
			m.updateDetails()
		}
		m.updateContent()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		// Only continue spinner if we're still loading something
		if m.loadingDigest || m.loadingAnalysis {
			m.updateContent()
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.viewport.SetWidth(msg.Width)
			m.viewport.SetHeight(msg.Height - 2)
			m.subsList.SetWidth(msg.Width)
			m.subsList.SetHeight(msg.Height - 2)
			m.detailsView.SetWidth(msg.Width)
			m.detailsView.SetHeight(msg.Height - 2)

			if !m.showingRoutine {
				m.updateContent()
			}
			m.updateDetails()
		}

	case tea.KeyMsg:
		// Let the list handle keys while filtering
		if m.mode == viewSubroutines && m.subsList.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.mode = viewSummary
			if m.showingRoutine {
				m.showingRoutine = false
				m.updateContent()
			}
			return m, nil
		case "s":
			if m.hasSubroutines() {
				m.mode = viewSubroutines
			}
			return m, nil
		case "d":
			if m.report != nil {
				m.mode = viewDetails
			}
			return m, nil
		case "enter":
			if m.mode == viewSubroutines {
				if item, ok := m.subsList.SelectedItem().(subItem); ok {
					m.showRoutine(item.address)
				}
				return m, nil
			}
		case "tab":
			m.mode = m.cycle(1)
			return m, nil
		case "shift+tab":
			m.mode = m.cycle(-1)
			return m, nil
		}
	}

	// Update the active view
	switch m.mode {
	case viewSubroutines:
		m.subsList, cmd = m.subsList.Update(msg)
	case viewDetails:
		m.detailsView, cmd = m.detailsView.Update(msg)
	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// cycle steps through the views that currently have content.
func (m model) cycle(step int) viewMode {
	available := []viewMode{viewSummary}
	if m.hasSubroutines() {
		available = append(available, viewSubroutines)
	}
	if m.report != nil {
		available = append(available, viewDetails)
	}
	for i, v := range available {
		if v == m.mode {
			return available[(i+step+len(available))%len(available)]
		}
	}
	return viewSummary
}

func (m model) View() string {
	var content string
	switch m.mode {
	case viewSubroutines:
		content = m.subsList.View()
	case viewDetails:
		content = m.detailsView.View()
	default:
		content = m.viewport.View()
	}

	var menu string
	switch {
	case m.mode == viewSubroutines:
		menu = " Enter: view listing • R: summary • D: details • Tab: cycle • Q: quit "
	case m.mode == viewDetails:
		menu = " R: summary • S: subroutines • Tab: cycle • Q: quit "
	case m.showingRoutine:
		menu = " R: summary • S: subroutines • D: details • Q: quit "
	case m.report != nil:
		menu = " S: subroutines • D: details • Tab: cycle • Q: quit "
	default:
		menu = " Q: quit "
	}

	return content + "\n" + styles.MenuBar(menu, m.width)
}

func (m model) renderWidth() int {
	if m.width == 0 {
		return 78
	}
	return m.width - 2
}

func (m *model) updateContent() {
	var markdown string
	if m.report != nil {
		markdown = m.report.Markdown(false)
	} else {
		lines := []string{fmt.Sprintf("; %s", relativePath(m.filepath))}
		if m.digest != "" {
			lines = append(lines, fmt.Sprintf("; %s", m.digest))
		} else if m.loadingDigest {
			lines = append(lines, "; Calculating digest...")
		}
		markdown = fmt.Sprintf("# hc08re\n\n```\n%s\n```", strings.Join(lines, "\n"))
	}

	if m.loadingAnalysis {
		markdown += fmt.Sprintf("\n\n%s Analyzing...", m.spinner.View())
	}
	if m.err != nil {
		markdown += "\n\n" + styles.Error.Render(m.err.Error())
	}

	rendered := styles.Render(markdown, m.renderWidth())
	m.viewport.SetContent(strings.TrimSuffix(rendered, "\n"))
}

func (m *model) updateDetails() {
	if m.report == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString("# Details\n")
	for _, name := range detailSections {
		if text, ok := m.report.Section(name); ok && text != "" {
			sb.WriteString("\n")
			sb.WriteString(text)
		}
	}
	rendered := styles.Render(sb.String(), m.renderWidth())
	m.detailsView.SetContent(strings.TrimSuffix(rendered, "\n"))
}

func (m *model) updateSubroutinesList() {
	items := make([]list.Item, 0, len(m.result.Subroutines))
	for _, addr := range m.result.Subroutines {
		item := subItem{address: addr}
		if i, ok := m.result.Stream.IndexOf(addr); ok {
			in := m.result.Stream[i]
			item.first = strings.TrimSpace(in.Mnemonic + " " + in.Operand)
		}
		item.filterTerm = fmt.Sprintf("%04X sub_%04X %s", addr, addr, item.first)
		items = append(items, item)
	}
	m.subsList.SetItems(items)
}

// showRoutine swaps the summary viewport for the listing of one subroutine.
func (m *model) showRoutine(addr uint32) {
	routine := m.result.Stream.Routine(addr, routineCap)
	if routine == nil {
		// Target lands inside another instruction of the linear sweep.
		routine = m.result.Stream[m.result.Stream.Seek(addr):]
		if len(routine) > routineCap {
			routine = routine[:routineCap]
		}
	}
	listing := fmt.Sprintf("; sub_%04X\n%s", addr, routine.Listing())
	if colored, err := colorize.Listing(listing); err == nil {
		listing = colored
	}

	m.mode = viewSummary
	m.showingRoutine = true
	m.viewport.SetContent(strings.TrimSuffix(listing, "\n"))
	m.viewport.GotoTop()
}
