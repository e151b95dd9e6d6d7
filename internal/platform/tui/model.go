package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazegen/internal/core"
	"github.com/vovakirdan/tui-mazegen/internal/registry"
	"github.com/vovakirdan/tui-mazegen/internal/storage"
)

// Model is the Bubble Tea model that drives a scene one step per tick.
type Model struct {
	scene      registry.Scene
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	sceneState core.SceneState
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given scene.
// store and logger may be nil.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the scene.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	m.logger.Debug("scene started", "scene", m.scene.ID(), "seed", m.config.Seed, "fps", m.config.TickRate)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
	case action == core.ActionBack:
		m.backToMenu = true
	case action != core.ActionNone:
		m.inputFrame.Set(action)
		return m, nil
	default:
		return m, nil
	}

	return m, tea.Quit
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The grid is fitted to the window, so a resize starts a new maze
	m.scene.Reset(m.config)
	m.sceneState = m.scene.State()

	return m, nil
}

// handleTick runs one frame and persists finished generations.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.scene.Step(m.inputFrame)
	m.sceneState = result.State

	for _, c := range result.Completions {
		m.logger.Info("maze complete",
			"scene", c.SceneID,
			"generation", c.Generation,
			"n", c.Dimension,
			"backtracks", c.BacktrackSteps,
			"max_depth", c.MaxStackDepth,
			"ticks", c.Ticks,
		)
		if m.store == nil {
			continue
		}
		if _, err := m.store.SaveCompletion(c); err != nil {
			m.logger.Warn("could not save run", "error", err)
		}
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.scene.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".mazegen", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.scene.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the scene state after the last frame.
func (m Model) State() core.SceneState {
	return m.sceneState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a scene.
// It returns true when the user asked to go back to the menu rather than quit.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (backToMenu bool, err error) {
	model := NewModel(scene, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
