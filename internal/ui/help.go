package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("ModelGrip Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Home View"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("ctrl+p"), descStyle.Render("Switch model (provider → model → thinking)")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("ctrl+f"), descStyle.Render("Favourites quick pick")))
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("space"), descStyle.Render("Command palette")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("?"), descStyle.Render("This help")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("q"), descStyle.Render("Quit")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Searchable Lists"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s         %s\n", keyStyle.Render("type"), descStyle.Render("Filter candidates (fuzzy)")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("backspace"), descStyle.Render("Delete last query character")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, ^p/^n"), descStyle.Render("Move highlight")))
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("enter"), descStyle.Render("Confirm highlighted candidate")))
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("esc"), descStyle.Render("Cancel the whole flow")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Command Palette"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("key"), descStyle.Render("Press a chord key to select or run")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("backspace"), descStyle.Render("Back to root, or close from root")))
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("esc"), descStyle.Render("Close from anywhere")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Favourites"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s          %s\n", keyStyle.Render("key"), descStyle.Render("Apply the preset bound to that key")))
	help.WriteString(fmt.Sprintf("  %s  %s", keyStyle.Render("↑/↓ + enter"), descStyle.Render("Navigate and apply")))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	reader := strings.NewReader(helpContent)

	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false

	root.SetConfig(config)

	return root.Run()
}
