package wall

import (
	"context"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/boothlab/photowall/internal/config"
	"github.com/boothlab/photowall/internal/media"
	"github.com/boothlab/photowall/internal/wall/input"
	"github.com/boothlab/photowall/internal/wall/physics"
	"github.com/boothlab/photowall/internal/wall/syncer"
)

// Hooks carry wall events out to the surrounding application.
type Hooks struct {
	OnSelect func(media.Record)
	OnExit   func()
}

type frameMsg time.Time
type syncTickMsg time.Time

type recordsMsg struct {
	records []media.Record
	err     error
}

const statsHistory = 60

type model struct {
	cfg   *config.Config
	world *physics.World
	ctrl  *input.Controller
	sync  *syncer.Syncer
	log   *zap.SugaredLogger
	hooks Hooks

	tileW, tileH float64

	selected  *media.Record
	showStats bool
	countHist []float64
	lastFrame time.Time
	frameMs   float64

	width, height int
	ready         bool
}

func newModel(cfg *config.Config, src media.Source, log *zap.SugaredLogger, hooks Hooks) *model {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tileW, tileH := cfg.TileSize()
	world := physics.NewWorld(80, 23, physics.Params{
		Damping:           cfg.Physics.Damping,
		Restitution:       cfg.Physics.Restitution,
		SeparationImpulse: cfg.Physics.SeparationImpulse,
		JitterEpsilon:     cfg.Physics.JitterEpsilon,
		JitterSpeed:       cfg.Physics.JitterSpeed,
		SpawnSpeed:        cfg.Physics.SpawnSpeed,
	}, rng)
	return &model{
		cfg:   cfg,
		world: world,
		ctrl: input.New(world, input.Params{
			ClickDistance:   cfg.Input.ClickDistance,
			ClickTime:       cfg.Input.ClickTime(),
			ThrowMultiplier: cfg.Input.ThrowMultiplier,
			MaxThrowSpeed:   cfg.Input.MaxThrowSpeed,
		}),
		sync:      syncer.New(src, cfg.SyncEvery(), log),
		log:       log,
		hooks:     hooks,
		tileW:     tileW,
		tileH:     tileH,
		countHist: make([]float64, 0, statsHistory),
	}
}

func (m *model) frameTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FrameRate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *model) syncTick() tea.Cmd {
	return tea.Tick(m.sync.Interval(), func(t time.Time) tea.Msg {
		return syncTickMsg(t)
	})
}

// fetchCmd runs the record fetch off the update loop; the result message is
// applied back on it, so reconciliation never interleaves with a world step.
func (m *model) fetchCmd() tea.Cmd {
	s := m.sync
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.sync.Interval())
		defer cancel()
		records, err := s.Fetch(ctx)
		return recordsMsg{records: records, err: err}
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.frameTick(), m.syncTick())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Bottom row is the status bar; the wall gets the rest.
		m.world.Resize(float64(msg.Width), float64(max(msg.Height-1, 1)))
		if !m.ready {
			m.log.Infow("wall ready", "width", msg.Width, "height", msg.Height)
		}
		m.ready = true
		return m, nil

	case frameMsg:
		if m.ready {
			m.world.Step()
		}
		now := time.Now()
		if !m.lastFrame.IsZero() {
			m.frameMs = float64(now.Sub(m.lastFrame).Microseconds()) / 1000
		}
		m.lastFrame = now
		m.countHist = append(m.countHist, float64(m.world.Len()))
		if len(m.countHist) > statsHistory {
			m.countHist = m.countHist[1:]
		}
		return m, m.frameTick()

	case syncTickMsg:
		return m, tea.Batch(m.fetchCmd(), m.syncTick())

	case recordsMsg:
		if msg.err != nil {
			// Fetch already logged it; keep the previous object set.
			return m, nil
		}
		m.sync.Apply(m.world, msg.records, m.tileW, m.tileH)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.hooks.OnExit != nil {
			m.hooks.OnExit()
		}
		return m, tea.Quit
	case "esc":
		if m.selected != nil {
			m.selected = nil
			return m, nil
		}
		if m.hooks.OnExit != nil {
			m.hooks.OnExit()
		}
		return m, tea.Quit
	case "s":
		m.showStats = !m.showStats
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.selected != nil {
		// Any press dismisses the lightbox.
		if msg.Action == tea.MouseActionPress {
			m.selected = nil
		}
		return m, nil
	}

	x, y := float64(msg.X), float64(msg.Y)
	now := time.Now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.PointerDown(x, y, now)
		}
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(x, y, now)
	case tea.MouseActionRelease:
		action, rec := m.ctrl.PointerUp(x, y, now)
		if action == input.ActionSelect {
			// Keep a copy so the lightbox survives the record's object being
			// destroyed by a later sync.
			sel := rec
			m.selected = &sel
			if m.hooks.OnSelect != nil {
				m.hooks.OnSelect(rec)
			}
		}
	}
	return m, nil
}

// Run starts the gallery wall and blocks until the user exits.
func Run(cfg *config.Config, src media.Source, log *zap.SugaredLogger, hooks Hooks) error {
	p := tea.NewProgram(
		newModel(cfg, src, log, hooks),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
