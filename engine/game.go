// Package engine runs the game: session state, periodic tasks, phases and
// the frame loop that owns the physics world
package engine

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/config"
	"github.com/lixenwraith/crabcut/core"
	"github.com/lixenwraith/crabcut/parameter"
	"github.com/lixenwraith/crabcut/physics"
	"github.com/lixenwraith/crabcut/render"
	"github.com/lixenwraith/crabcut/scene"
	"github.com/lixenwraith/crabcut/severance"
	"github.com/lixenwraith/crabcut/strand"
)

// Sound is the audio surface the game drives
type Sound interface {
	PlayCut() bool
	PlayMusic(critical bool)
	StopMusic()
	PlayGameOver()
}

type silent struct{}

func (silent) PlayCut() bool  { return false }
func (silent) PlayMusic(bool) {}
func (silent) StopMusic()     {}
func (silent) PlayGameOver()  {}

// Game owns every piece of state mutated by the frame loop
type Game struct {
	cfg      *config.Config
	screen   tcell.Screen
	renderer *render.Renderer
	clock    *PausableClock
	sched    *Scheduler
	sound    Sound
	seed     int64
	rng      *rand.Rand

	phase   Phase
	round   int
	world   *physics.World
	scene   *scene.Scene
	tracker *severance.Tracker
	session *Session
	sway    *TaskHandle

	trail      render.Trail
	lastFrame  time.Time
	flashUntil time.Time

	pointer     cp.Vector
	pointerX    int
	pointerY    int
	havePointer bool
	buttonDown  bool
}

// NewGame creates a game on screen in the title phase
// A nil sound plays nothing; a nil clock uses the monotonic clock
func NewGame(screen tcell.Screen, cfg *config.Config, sound Sound, clock TimeProvider) (*Game, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sound == nil {
		sound = silent{}
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	pc := NewPausableClock(clock)
	g := &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: render.NewRenderer(screen, int(time.Second/parameter.FrameInterval)),
		clock:    pc,
		sched:    NewScheduler(pc),
		sound:    sound,
		seed:     seed,
		rng:      rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		phase:    PhaseTitle,
	}
	g.lastFrame = pc.Now()
	return g, nil
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Session returns the running or last session, nil before the first game
func (g *Game) Session() *Session {
	return g.session
}

// Tracker returns the current session's tracker
func (g *Game) Tracker() *severance.Tracker {
	return g.tracker
}

// World returns the current session's physics world
func (g *Game) World() *physics.World {
	return g.world
}

// Scheduler returns the task scheduler
func (g *Game) Scheduler() *Scheduler {
	return g.sched
}

// Paused reports whether play is paused
func (g *Game) Paused() bool {
	return g.clock.IsPaused()
}

// View returns the current viewport
func (g *Game) View() render.Viewport {
	return g.renderer.View()
}

// StartSession discards any previous session and starts a new one
func (g *Game) StartSession() error {
	next, err := Transition(g.phase, PhasePlaying)
	if err != nil {
		return err
	}

	// Previous session's countdown and sway stop here
	g.sway.Cancel()
	g.sched.Reset()
	if g.session != nil {
		g.session.StopTimer()
	}
	if g.clock.IsPaused() {
		g.clock.Resume()
	}

	g.round++
	view := g.renderer.Resize()
	world := physics.NewWorld(g.seed + int64(g.round))

	pool, err := strand.NewCollisionGroupPool(1, g.cfg.Follicles.Groups)
	if err != nil {
		return fmt.Errorf("collision groups: %w", err)
	}
	builder := strand.NewBuilder(world, pool, g.rng)
	if err := builder.SetRadiusRange(g.cfg.Follicles.RadiusMin, g.cfg.Follicles.RadiusMax); err != nil {
		return fmt.Errorf("anchor radius: %w", err)
	}

	layout := scene.DefaultLayout(view.Center())
	layout.Count = g.cfg.Follicles.Count
	layout.ArcStart = g.cfg.Follicles.ArcStart
	layout.ArcEnd = g.cfg.Follicles.ArcEnd
	layout.AngleJitter = g.cfg.Follicles.AngleJitter
	layout.LengthJitter = g.cfg.Follicles.LengthJitter
	layout.KinkinessJitter = g.cfg.Follicles.KinkinessJitter
	layout.Base = g.cfg.StrandParams()

	sc, err := scene.Build(world, builder, layout, g.rng)
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	session, err := NewSession(g.clock, g.cfg.SessionDuration(), g.cfg.Session.CriticalFraction)
	if err != nil {
		return err
	}

	tracker := severance.NewTracker(world, session, parameter.PointerRadius)
	for _, s := range sc.Strands {
		tracker.Track(s)
	}
	tracker.OnCut(g.onCut)

	err = session.StartTimer(g.sched, parameter.SessionTimerInterval, TimerHooks{
		OnCritical: func() {
			log.Printf("session %s: critical", session.ID)
			g.sound.PlayMusic(true)
		},
		OnExpire: func(score int) {
			g.endSession(score)
		},
	})
	if err != nil {
		return err
	}

	sway, err := g.sched.Every(parameter.GravitySwayInterval, func(time.Time) bool {
		world.Sway(world.Elapsed())
		return true
	})
	if err != nil {
		return err
	}

	g.world, g.scene, g.tracker, g.session, g.sway = world, sc, tracker, session, sway
	g.phase = next
	g.trail.Clear()
	g.havePointer = false
	g.flashUntil = time.Time{}
	g.lastFrame = g.clock.Now()

	g.renderer.ResetFade()
	g.sound.PlayMusic(false)
	log.Printf("session %s: started with %d strands", session.ID, len(sc.Strands))
	return nil
}

func (g *Game) onCut(ev severance.CutEvent) {
	g.flashUntil = g.clock.Now().Add(parameter.CutFlashDuration)
	g.sound.PlayCut()
	log.Printf("cut segment %d, %d joints, score %d", ev.Segment, ev.Removed, ev.Score)
}

func (g *Game) endSession(score int) {
	next, err := Transition(g.phase, PhaseGameOver)
	if err != nil {
		log.Printf("end session: %v", err)
		return
	}
	g.phase = next
	g.sway.Cancel()
	g.sched.Reset()
	g.sound.PlayGameOver()
	log.Printf("session %s: over, score %d", g.session.ID, score)
}

// toTitle returns to the title screen, dropping the session
func (g *Game) toTitle() {
	next, err := Transition(g.phase, PhaseTitle)
	if err != nil {
		return
	}
	g.sway.Cancel()
	g.sched.Reset()
	if g.session != nil {
		g.session.StopTimer()
	}
	if g.clock.IsPaused() {
		g.clock.Resume()
	}
	g.phase = next
	g.sound.StopMusic()
	g.renderer.ResetFade()
}

// HandleEvent processes one input event, returning false to quit
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ev)

	case *tcell.EventMouse:
		g.handleMouse(ev)

	case *tcell.EventResize:
		g.handleResize()
	}
	return true
}

func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		if g.phase == PhaseTitle {
			g.start()
		}
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'p':
		if g.phase == PhasePlaying {
			g.clock.Toggle()
		}
	case 'r':
		if g.phase == PhaseGameOver || g.phase == PhasePlaying {
			g.start()
		}
	case 't':
		if g.phase != PhaseTitle {
			g.toTitle()
		}
	}
	return true
}

func (g *Game) start() {
	if g.phase == PhasePlaying {
		// Restart mid-game goes through the title phase
		g.phase = PhaseTitle
	}
	if err := g.StartSession(); err != nil {
		log.Printf("start session: %v", err)
	}
}

func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	justPressed := pressed && !g.buttonDown
	g.buttonDown = pressed

	view := g.renderer.View()
	p := view.ToWorld(x, y)

	switch g.phase {
	case PhaseTitle:
		if justPressed {
			g.start()
		}
		return
	case PhaseGameOver:
		return
	}
	if g.clock.IsPaused() {
		g.havePointer = false
		return
	}

	now := g.clock.Now()
	if justPressed {
		g.tracker.Poke(g.world, p)
	}
	if g.havePointer && (x != g.pointerX || y != g.pointerY) {
		g.tracker.Slash(g.world, g.pointer, p)
		g.trail.Add(g.pointerX, g.pointerY, x, y, now)
	}
	g.pointer, g.pointerX, g.pointerY, g.havePointer = p, x, y, true
}

func (g *Game) handleResize() {
	g.screen.Sync()
	view := g.renderer.Resize()
	if g.scene != nil {
		g.scene.Host.Body().SetPosition(view.Center())
	}
	g.havePointer = false
}

// bounds is the world rectangle outside which detached hair is pruned
func (g *Game) bounds() severance.Bounds {
	w, h := g.renderer.View().WorldSize()
	m := parameter.PruneMargin
	return severance.Bounds{MinX: -m, MinY: -m, MaxX: w + m, MaxY: h + m}
}

// Update advances the world to the current clock time
func (g *Game) Update() {
	now := g.clock.Now()
	dt := now.Sub(g.lastFrame)
	g.lastFrame = now

	if g.phase == PhasePlaying && !g.clock.IsPaused() {
		g.scene.Host.Wobble(g.world.Elapsed())
		g.world.Advance(dt)
		g.sched.Run()
		if n := g.tracker.Prune(g.bounds()); n > 0 {
			log.Printf("pruned %d segments", n)
		}
	}
	g.trail.Update(now)
}

// Draw renders the current phase
func (g *Game) Draw() {
	switch g.phase {
	case PhaseTitle:
		g.renderer.DrawTitle()
	case PhasePlaying:
		g.renderer.DrawGame(g.frame())
	case PhaseGameOver:
		g.renderer.DrawGameOver(g.frame())
	}
}

func (g *Game) frame() render.Frame {
	now := g.clock.Now()
	return render.Frame{
		Host:      g.scene.Host,
		Strands:   g.tracker.Strands(),
		Score:     g.session.Score(),
		TimeLeft:  g.session.Fraction(now),
		Remaining: g.session.Remaining(now),
		Critical:  g.session.Critical(),
		Flash:     now.Before(g.flashUntil),
		Paused:    g.clock.IsPaused(),
		Trail:     g.trail.Points(),
	}
}

// Run drives the frame loop until the player quits
func (g *Game) Run() {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, parameter.InputQueueSize)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if !g.HandleEvent(ev) {
				return
			}

		case <-ticker.C:
			g.Update()
			g.Draw()
		}
	}
}
