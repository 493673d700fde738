package game

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/Garsondee/Park-Sleuth/internal/sim"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap between the window edge and the park.
const borderWidth = 16

// frameDT is the simulated time per Update call; ebiten runs Update at a
// fixed 60 TPS regardless of the display refresh rate.
const frameDT = 1.0 / 60

// statusLifetime is how many frames a transient status line stays up.
const statusLifetime = 150

// command is one decoded player intent. Input handling only produces
// commands; execute applies them to the session.
type command uint8

const (
	cmdNone command = iota
	cmdStart
	cmdNext
	cmdMenu
	cmdArrest
	cmdRescueBomb
	cmdRescuePoison
	cmdRescueStash
	cmdRescueAny
	cmdToggleDebug
	cmdCopyReport
)

// keyCommands maps edge-triggered keys to commands. Several keys may share a
// command; execute ignores commands the current phase does not accept.
var keyCommands = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyEnter, cmdStart},
	{ebiten.KeySpace, cmdStart},
	{ebiten.KeyN, cmdNext},
	{ebiten.KeyEscape, cmdMenu},
	{ebiten.KeyA, cmdArrest},
	{ebiten.Key1, cmdRescueBomb},
	{ebiten.Key2, cmdRescuePoison},
	{ebiten.Key3, cmdRescueStash},
	{ebiten.KeyR, cmdRescueAny},
	{ebiten.KeyF1, cmdToggleDebug},
	{ebiten.KeyTab, cmdToggleDebug},
	{ebiten.KeyC, cmdCopyReport},
}

// Game is the ebiten host. It owns no game rules: every frame it reads a
// View from the session and every click is forwarded as an entity id.
type Game struct {
	session *sim.Session
	clock   *sim.Clock
	ctx     context.Context
	cancel  context.CancelFunc
	log     *slog.Logger

	width      int
	height     int
	gameWidth  int // park width in pixels (feed panel takes the rest)
	gameHeight int
	offX       int
	offY       int

	fonts   *fontSet
	bubbles []*speechBubble
	frame   int

	// Transient status line, e.g. "report copied".
	status    string
	statusAge int

	// Debug inspector.
	inspBuf  *ebiten.Image
	hoverID  string
	copyText func(string) error
}

// New builds the host around s and starts the one-second game clock. The
// clock stops when ctx is cancelled or Close is called.
func New(ctx context.Context, s *sim.Session, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.Default()
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	cfg := s.Config()
	ww, wh := cfg.WorldSize()
	g := &Game{
		session:    s,
		log:        log,
		gameWidth:  int(ww),
		gameHeight: int(wh),
		offX:       borderWidth,
		offY:       borderWidth,
		fonts:      fonts,
		copyText:   clipboard.WriteAll,
	}
	g.width = g.offX*2 + g.gameWidth + feedPanelWidth
	g.height = g.offY*2 + g.gameHeight

	g.ctx, g.cancel = context.WithCancel(ctx)
	g.clock = sim.NewClock(s, time.Second)
	g.clock.Start(g.ctx)
	return g, nil
}

// Close stops the game clock.
func (g *Game) Close() {
	g.cancel()
	g.clock.Stop()
}

// Size returns the window size the host wants.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.frame++
	for _, c := range g.pollKeys() {
		g.execute(c)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.clickAt(mx, my)
	}
	mx, my := ebiten.CursorPosition()
	g.hoverID = g.pickAt(g.session.View(), mx, my)

	g.session.Update(frameDT)
	g.tickBubbles()
	if g.status != "" {
		g.statusAge++
		if g.statusAge >= statusLifetime {
			g.status = ""
		}
	}
	return nil
}

// pollKeys returns the commands whose key went down this frame.
func (g *Game) pollKeys() []command {
	var cmds []command
	for _, kc := range keyCommands {
		if inpututil.IsKeyJustPressed(kc.key) {
			cmds = append(cmds, kc.cmd)
		}
	}
	return cmds
}

// execute applies one command. It returns whether the session accepted it.
func (g *Game) execute(c command) bool {
	s := g.session
	switch c {
	case cmdStart:
		if s.View().State.Phase == sim.PhaseLevelComplete {
			return s.NextLevel()
		}
		return s.StartGame()
	case cmdNext:
		return s.NextLevel()
	case cmdMenu:
		if s.ReturnToMenu() {
			g.bubbles = nil
			return true
		}
		return false
	case cmdArrest:
		return s.ResolveConfrontation(sim.ChoiceArrest, sim.ScenarioNone)
	case cmdRescueBomb:
		return s.ResolveConfrontation(sim.ChoiceRescue, sim.ScenarioBomb)
	case cmdRescuePoison:
		return s.ResolveConfrontation(sim.ChoiceRescue, sim.ScenarioPoison)
	case cmdRescueStash:
		return s.ResolveConfrontation(sim.ChoiceRescue, sim.ScenarioRescue)
	case cmdRescueAny:
		return s.ResolveConfrontation(sim.ChoiceRescue, sim.ScenarioNone)
	case cmdToggleDebug:
		s.ToggleDebug()
		g.log.Debug("inspector toggled", "on", s.View().State.Debug)
		return true
	case cmdCopyReport:
		if err := g.copyText(s.DebugReport()); err != nil {
			g.log.Warn("copy debug report", "error", err)
			g.setStatus("clipboard unavailable")
			return false
		}
		g.setStatus("debug report copied")
		return true
	default:
		return false
	}
}

// clickAt presses an overlay button or forwards the click to the session as
// an entity id.
func (g *Game) clickAt(mx, my int) {
	v := g.session.View()
	for _, b := range g.overlayButtons(v.State) {
		if b.hit(mx, my) {
			g.execute(b.cmd)
			return
		}
	}
	id := g.pickAt(v, mx, my)
	if id == "" {
		return
	}
	in := g.session.Click(id)
	if in.Line != nil {
		g.say(in.EntityID, in.Line.Text)
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusAge = 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	v := g.session.View()

	if v.Layout != nil {
		g.drawWorld(screen, v)
		g.drawSpeechBubbles(screen, v)
	}

	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	borderCol := color.RGBA{R: 65, G: 90, B: 65, A: 255}
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, borderCol, false)

	g.drawFeed(screen, v, g.offX*2+g.gameWidth, g.height)
	g.drawStatusBar(screen, v)
	g.drawPhaseOverlay(screen, v)

	if v.State.Debug {
		g.drawInspector(screen, v)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
