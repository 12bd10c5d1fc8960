package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/fixedstep/event"
	"github.com/lixenwraith/fixedstep/sched"
	"github.com/lixenwraith/fixedstep/sim"
	"github.com/lixenwraith/fixedstep/status"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the bouncing-particle demo",
	Long: `Render a deterministic particle simulation in the terminal.

The simulation steps at the configured tick rate regardless of how fast
frames render; positions are interpolated between steps when enabled.

Controls:
  P/Space    - Pause/resume the simulation
  I          - Toggle interpolated vs snapped rendering
  R          - Reset to the initial state
  Q/Esc      - Quit`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("demo: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("demo: init screen: %w", err)
	}
	defer screen.Fini()

	width, height := screen.Size()
	if width < 4 || height < 4 {
		width, height = cfg.Demo.Width, cfg.Demo.Height
	}
	// Reserve the bottom row for the status line
	world := sim.NewWorld(width, height-1, cfg.Demo.Seed, cfg.Demo.Particles)

	reg := status.NewRegistry()
	queue := event.NewQueue()

	interpolate := cfg.Timestep.Interpolation
	render := func(prev, curr *sim.World, alpha float64) {
		if !interpolate {
			alpha = 0
		}
		screen.Clear()
		for i := range curr.Particles {
			x, y := sim.BlendCell(prev.Particles[i], curr.Particles[i], alpha)
			if x >= 0 && x < width && y >= 0 && y < height-1 {
				screen.SetContent(x, y, '●', nil,
					tcell.StyleDefault.Foreground(tcell.ColorGreen))
			}
		}
	}

	opts := []sched.Option[*sim.World]{
		sched.WithRender(render),
		sched.WithStatus[*sim.World](reg),
	}
	if cfg.Timestep.DiagnosticQueue {
		opts = append(opts, sched.WithEvents[*sim.World](queue))
	}

	s, err := sched.New(cfg.Sched(), world.Clone(), world, sim.Step, opts...)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune:
					switch ev.Rune() {
					case 'q':
						return nil
					case 'p', ' ':
						if s.IsPaused() {
							s.Resume()
						} else {
							s.Pause()
						}
					case 'i':
						interpolate = !interpolate
					case 'r':
						fresh := sim.NewWorld(width, height-1, cfg.Demo.Seed, cfg.Demo.Particles)
						prev, curr := s.Snapshots()
						*prev = *fresh.Clone()
						*curr = *fresh
						s.Reset()
					}
				}
			case *tcell.EventResize:
				screen.Sync()
				width, height = screen.Size()
			}

		case <-ticker.C:
			s.Frame()
			drawStatusLine(screen, s, width, height)
			if cfg.Timestep.DiagnosticQueue {
				drainDiagnostics(queue)
			}
			screen.Show()
		}
	}
}

func drawStatusLine(screen tcell.Screen, s *sched.Scheduler[*sim.World], width, height int) {
	state := "running"
	if s.IsPaused() {
		state = "paused"
	}
	line := fmt.Sprintf(" tick %d  alpha %.2f  %s  [p]ause [i]nterp [r]eset [q]uit",
		s.CurrentTick(), s.Alpha(), state)

	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		screen.SetContent(x, height-1, r, nil, style)
	}
}

// drainDiagnostics consumes scheduler events and logs the notable ones
func drainDiagnostics(queue *event.Queue) {
	for _, ev := range queue.Consume() {
		switch ev.Type {
		case event.TypeFrameTimeExceeded:
			if p, ok := ev.Payload.(*event.FrameTimeExceededPayload); ok {
				logger.Warn("frame time clamped", "raw", p.Raw, "clamped", p.Clamped, "tick", ev.Tick)
			}
		case event.TypePaused, event.TypeResumed, event.TypeSessionReset:
			logger.Debug("scheduler event", "type", ev.Type.String(), "tick", ev.Tick)
		}
	}
}
