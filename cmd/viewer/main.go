package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/physbind/config"
	"github.com/milk9111/physbind/debug"
	"github.com/milk9111/physbind/debug/draw"
	"github.com/milk9111/physbind/loader"
	"github.com/milk9111/physbind/physics"
	"github.com/milk9111/physbind/physics/body"
	"github.com/milk9111/physbind/scene"
	"github.com/milk9111/physbind/worker"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	panSpeed   = 0.2
)

type Game struct {
	frames int
	paused bool
	space  bool

	cfg       config.World
	scene     string
	logger    *slog.Logger
	worker    *worker.Worker
	ctx       *physics.Context
	collector *debug.Collector
	mounted   *loader.Mounted
	spawned   []*body.Body
	cam       draw.Camera
}

func NewGame(cfg config.World, sceneName string, logger *slog.Logger) (*Game, error) {
	w, err := worker.New(cfg, worker.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	collector := debug.NewCollector()
	g := &Game{
		cfg:       cfg,
		scene:     sceneName,
		logger:    logger,
		worker:    w,
		collector: collector,
		ctx:       physics.NewContext(physics.WithWorker(w), physics.WithDebugger(collector), physics.WithLogger(logger)),
		cam:       draw.Camera{Y: 4, Zoom: 40},
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) load() error {
	spec, err := loader.LoadScene(g.scene)
	if err != nil {
		return err
	}
	g.mounted.Unmount()
	for _, b := range g.spawned {
		b.Destroy()
	}
	g.spawned = nil
	m, err := loader.Mount(g.ctx, spec)
	if err != nil {
		return err
	}
	g.mounted = m
	return nil
}

func (g *Game) Update() error {
	g.frames++

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.space = !g.space
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.load(); err != nil {
			g.logger.Warn("reload failed", "scene", g.scene, "err", err)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.cam.X -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.cam.X += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.cam.Y += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.cam.Y -= panSpeed
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.cam.Zoom = max(5, g.cam.Zoom*(1+dy*0.1))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.spawn(ebiten.CursorPosition())
	}

	if !g.paused {
		g.worker.Step(g.cfg.Dt())
	}
	g.ctx.Update()
	return nil
}

// spawn drops a ball at the clicked screen position.
func (g *Game) spawn(sx, sy int) {
	x := g.cam.X + (float64(sx)-baseWidth/2)/g.cam.Zoom
	y := g.cam.Y - (float64(sy)-baseHeight/2)/g.cam.Zoom
	obj := scene.NewObject3D(fmt.Sprintf("ball-%d", len(g.spawned)))
	props := physics.Props{BodyProps: physics.BodyProps{
		Mass:     1,
		Args:     []any{0.4},
		Position: physics.Vec(x, y, 0),
	}}
	props.OnCollideBegin = func(e physics.CollideEvent) {
		g.logger.Debug("spawned ball hit", "uuid", e.Body, "other", e.Target)
	}
	g.spawned = append(g.spawned, body.Sphere(g.ctx, body.Uniform(props), body.FromObject(obj)))
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.space {
		g.worker.View(func(space *cp.Space) {
			draw.Space(screen, space, g.cam)
		})
	} else {
		draw.Draw(screen, g.collector, g.ctx.Registry().State, g.cam)
	}
	draw.Overlay(screen, g.collector, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  steps: %d  paused: %v  [P]ause [R]eload [Tab] space view", ebiten.ActualFPS(), g.worker.Steps(), g.paused), 10, baseHeight-20)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func main() {
	configPath := flag.String("config", "", "world config yaml (defaults are used when empty)")
	sceneName := flag.String("scene", "stack.yaml", "scene file, embedded name or path")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	logger := cfg.NewLogger()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("physbind viewer")

	game, err := NewGame(cfg, *sceneName, logger)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
