package gui

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/loop"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

const (
	maxWindow    = 900
	maxTelemetry = 200
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

type App struct {
	Name      string
	Driver    *loop.Driver
	Sketch    loop.Sketch
	Target    rl.RenderTexture2D
	Font      rl.Font
	ShowHUD   bool
	Telemetry []float64

	canvasW  int32
	canvasH  int32
	surf     *surface
	viewport canvas.Viewport
	pressed  bool
	logger   *slog.Logger
}

// windowSize fits the canvas into maxWindow while keeping its aspect.
func windowSize(w, h float64) (int32, int32) {
	scale := math.Min(1, maxWindow/math.Max(w, h))
	return int32(w * scale), int32(h * scale)
}

func initWindow(name string, w, h int32, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w, h, name)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont uses Liberation Mono when installed and the raylib default font
// otherwise.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(name string, sk loop.Sketch, fps int, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w, h := sk.Size()
	app := &App{
		Name:      name,
		Sketch:    sk,
		Driver:    loop.New(sk, fps),
		Font:      loadFont(),
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		canvasW:   int32(w),
		canvasH:   int32(h),
		surf:      &surface{},
		viewport:  canvas.Identity(w, h),
		logger:    logger.With("host", "raylib"),
	}
	app.Target = rl.LoadRenderTexture(app.canvasW, app.canvasH)
	rl.SetTextureFilter(app.Target.Texture, rl.FilterBilinear)
	app.resize()
	return app
}

// Run opens a window for sk and blocks until it is closed.
func Run(name string, sk loop.Sketch, fps int, logger *slog.Logger) error {
	w, h := windowSize(sk.Size())
	initWindow(name, w, h, fps)
	defer rl.CloseWindow()

	app := NewApp(name, sk, fps, logger)
	defer app.Close()
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return nil
		}
		if err := a.Draw(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) Close() {
	a.surf.unload()
	rl.UnloadRenderTexture(a.Target)
}

func (a *App) resize() {
	a.viewport.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	a.Sketch.SetViewport(a.viewport)
	a.logger.Debug("viewport", "w", a.viewport.DisplayW, "h", a.viewport.DisplayH)
}

// Update handles keys. It reports whether the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsWindowResized() {
		a.resize()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sketch.Reset()
		a.Telemetry = a.Telemetry[:0]
		a.pressed = false
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	return false
}

// pointerEvents turns this frame's mouse state into sketch events in window
// pixels; the sketch maps them through its viewport.
func (a *App) pointerEvents() []canvas.Event {
	m := rl.GetMousePosition()
	x, y := float64(m.X), float64(m.Y)

	var evs []canvas.Event
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.pressed = true
		evs = append(evs, canvas.Event{Kind: canvas.Press, X: x, Y: y})
	}
	if d := rl.GetMouseDelta(); a.pressed && (d.X != 0 || d.Y != 0) {
		evs = append(evs, canvas.Event{Kind: canvas.Move, X: x, Y: y})
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.pressed = false
		evs = append(evs, canvas.Event{Kind: canvas.Release, X: x, Y: y})
	}
	return evs
}

func (a *App) Draw() error {
	rl.BeginTextureMode(a.Target)
	err := a.Driver.Step(a.surf, a.pointerEvents()...)
	rl.EndTextureMode()
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name, err)
	}

	if t, ok := a.Sketch.(loop.Telemeter); ok {
		if len(a.Telemetry) == maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
		a.Telemetry = append(a.Telemetry, t.Telemetry())
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(a.canvasW), -float32(a.canvasH))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(a.Target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)

	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
	return nil
}

func (a *App) DrawHUD() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

	rl.DrawRectangle(0, 0, int32(w), 30, rl.NewColor(0, 0, 0, 140))
	a.drawText("sketches", 10, 6, 18, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 110, 8, 14, ColText)
	if s, ok := a.Sketch.(loop.Statuser); ok {
		a.drawText(s.Status(), 240, 8, 14, ColAccent)
	}

	a.DrawTelemetry(10, h-80, 240, 40)

	rl.DrawRectangle(0, int32(h-24), int32(w), 24, rl.NewColor(0, 0, 0, 140))
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 10, h-20, 14, ColTextDim)
	a.drawText("[R] RESET  [H] HUD  [Q] QUIT", w-260, h-20, 14, ColTextDim)
}

func (a *App) DrawTelemetry(rectX, rectY, width, height int) {
	if len(a.Telemetry) < 2 {
		return
	}

	// Normalize Data
	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
