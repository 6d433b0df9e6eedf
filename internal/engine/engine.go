package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scrollwave/internal/config"
	"github.com/ivlev/scrollwave/internal/controller"
	"github.com/ivlev/scrollwave/internal/deck"
	"github.com/ivlev/scrollwave/internal/motif"
	"github.com/ivlev/scrollwave/internal/sched"
	"github.com/ivlev/scrollwave/internal/script"
	"github.com/ivlev/scrollwave/internal/system"
	"github.com/ivlev/scrollwave/internal/video"
	"github.com/ivlev/scrollwave/internal/view"
)

// Project renders a scripted scroll session through a deck into a video:
// slides are prerendered concurrently, a canvas view plus the transition
// controller replay the session on a stepped clock, and every frame is
// streamed to the encoder.
type Project struct {
	Cfg     config.Config
	Deck    deck.Deck
	Script  *script.Script
	Preset  motif.Preset
	Canvas  view.CanvasOptions
	Encoder video.Encoder

	DPI        int
	Workers    int
	OutputPath string
	ShowStats  bool
	BuildVer   string
}

// Run executes the whole pipeline.
func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()

	slideCount := p.Deck.SlideCount()
	if slideCount == 0 {
		return fmt.Errorf("deck contains no slides")
	}

	fps := p.Cfg.FPS
	if fps <= 0 {
		fps = 30
	}

	fmt.Println("--- [PROJECT: SCROLL PREVIEW] ---")
	fmt.Printf("[*] Slides: %d | Gestures: %d\n", slideCount, len(p.Script.Gestures))
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | DPI: %d\n", p.Canvas.Width, p.Canvas.Height, fps, p.DPI)
	fmt.Println("-----------------------------")

	renderStart := time.Now()
	slides, err := p.prerenderSlides(ctx, slideCount)
	if err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	canvas := view.NewCanvas(p.Canvas, slides, motif.New(p.Cfg, p.Preset).ElementCount())

	clock := sched.NewManualClock(time.Unix(0, 0))
	scheduler := sched.NewManualScheduler(clock)

	ctl := controller.New(p.Cfg, canvas, p.Preset, clock, scheduler)
	if err := ctl.Init(); err != nil {
		return err
	}
	defer ctl.Destroy()

	encodeStart := time.Now()
	frames, err := p.replay(ctx, canvas, scheduler, fps)
	if err != nil {
		return err
	}
	encodeTime := time.Since(encodeStart)

	if err := p.Encoder.Close(); err != nil {
		return err
	}

	totalTime := time.Since(startTime)
	if p.ShowStats {
		p.report(slideCount, frames, totalTime, renderTime, encodeTime)
	}

	fmt.Printf("[+++] Done! Video saved: %s\n", p.OutputPath)
	return nil
}

// prerenderSlides rasterizes every deck page with a bounded worker pool.
func (p *Project) prerenderSlides(ctx context.Context, slideCount int) ([]image.Image, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = system.RenderWorkers(p.pageBytes())
	}
	if workers > slideCount {
		workers = slideCount
	}

	slides := make([]image.Image, slideCount)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < slideCount; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := p.Deck.RenderSlide(i, p.DPI)
			if err != nil {
				return fmt.Errorf("rendering slide %d: %w", i, err)
			}
			slides[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slides, nil
}

// pageBytes estimates the RGBA footprint of one rendered page.
func (p *Project) pageBytes() uint64 {
	w, h, err := p.Deck.Dimensions(0)
	if err != nil || w <= 0 || h <= 0 {
		return 0
	}
	scale := float64(p.DPI) / 72.0
	return uint64(w*scale) * uint64(h*scale) * 4
}

// drag tracks one in-flight drag gesture during replay.
type drag struct {
	start    float64 // scroll offset when the drag began
	target   float64 // scroll offset to reach
	begun    float64 // session second the drag began
	duration float64
}

// replay steps the session clock frame by frame, fires script gestures at
// their times, and streams each composited frame to the encoder. Returns
// the frame count.
func (p *Project) replay(ctx context.Context, canvas *view.Canvas, scheduler *sched.ManualScheduler, fps int) (int, error) {
	if err := p.Encoder.Start(ctx, p.OutputPath); err != nil {
		return 0, err
	}

	settle := (p.Cfg.GravityIdleDelay + p.Cfg.GravityDuration).Seconds() + 1.0
	total := p.Script.Duration(settle)
	frameCount := int(total*float64(fps)) + 1
	dt := time.Second / time.Duration(fps)

	maxScroll := view.MaxScroll(canvas)
	bounds := image.Rect(0, 0, p.Canvas.Width, p.Canvas.Height)

	var active *drag
	next := 0

	for f := 0; f < frameCount; f++ {
		if err := ctx.Err(); err != nil {
			return f, err
		}
		now := float64(f) / float64(fps)

		for next < len(p.Script.Gestures) && p.Script.Gestures[next].At <= now {
			g := p.Script.Gestures[next]
			next++
			switch g.Kind {
			case script.KindDrag:
				// A drag holds a press for its duration.
				canvas.Dispatch(view.Event{Kind: view.EventMouseDown})
				active = &drag{
					start:    canvas.ScrollTop(),
					target:   g.To * maxScroll,
					begun:    now,
					duration: g.Duration,
				}
			case script.KindWheel:
				canvas.Dispatch(view.Event{Kind: view.EventWheel})
			case script.KindPress:
				canvas.Dispatch(view.Event{Kind: view.EventMouseDown})
			case script.KindRelease:
				canvas.Dispatch(view.Event{Kind: view.EventMouseUp})
			}
		}

		if active != nil {
			frac := (now - active.begun) / active.duration
			if frac >= 1 {
				canvas.SetScrollTop(active.target)
				canvas.Dispatch(view.Event{Kind: view.EventMouseUp})
				active = nil
			} else {
				canvas.SetScrollTop(active.start + (active.target-active.start)*frac)
			}
		}

		scheduler.Step(dt)

		frame := system.GetImage(bounds)
		canvas.Render(frame)
		err := p.Encoder.WriteFrame(frame)
		system.PutImage(frame)
		if err != nil {
			return f, err
		}
	}

	return frameCount, nil
}

func (p *Project) report(slideCount, frames int, totalTime, renderTime, encodeTime time.Duration) {
	fps := float64(frames) / totalTime.Seconds()
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Slide Rendering (CPU): %.2fs\n"+
			"Replay + Encoding: %.2fs\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.BuildVer, totalTime.Seconds(), renderTime.Seconds(), encodeTime.Seconds(), frames, fps,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Slides: %d | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.BuildVer,
		slideCount,
		frames,
		totalTime.Seconds(),
		renderTime.Seconds(),
		encodeTime.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Failed to write benchmark.log: %v\n", err)
	}
}

// DefaultOutputPath returns a timestamped mp4 path in dir.
func DefaultOutputPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("preview_%s.mp4", timestamp))
}
