// Command vantage-viewer opens a window, renders the reference scene with an
// orbit camera, and maps mouse input to camera gestures. Drag with the left
// button to rotate, middle or right button to pan, scroll to zoom. An
// optional HTTP/WebSocket remote control server exposes the same gestures to
// external tools.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/vantage3d/vantage/engine/camera"
	"github.com/vantage3d/vantage/engine/remote"
	"github.com/vantage3d/vantage/engine/renderer"
	"github.com/vantage3d/vantage/engine/window"
	"github.com/vantage3d/vantage/internal/config"
	"github.com/vantage3d/vantage/internal/log"
)

// historyLag is how far behind the current time the pose history is kept.
// Older waypoints are flushed each frame.
const historyLag = 1.0

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := log.New(os.Stderr, cfg.Log.Level, cfg.Log.Text)

	controllerOptions := []camera.OrbitCameraControllerOption{
		camera.WithCenter(cfg.Camera.Center[0], cfg.Camera.Center[1], cfg.Camera.Center[2]),
		camera.WithRadius(cfg.Camera.Radius),
		camera.WithLogger(logger),
	}
	if len(cfg.Camera.Eye) == 3 {
		controllerOptions = append(controllerOptions,
			camera.WithEye(cfg.Camera.Eye[0], cfg.Camera.Eye[1], cfg.Camera.Eye[2]))
	}
	controller := camera.NewOrbitCameraController(controllerOptions...)

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	defer win.Close()

	cam := camera.NewCamera(
		camera.WithController(controller),
		camera.WithFov(cfg.Camera.FovDegrees*math.Pi/180.0),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
	)

	rend := renderer.NewRenderer(win.SurfaceDescriptor())
	defer rend.Release()
	rend.ConfigureSurface(win.Width(), win.Height())

	if cfg.Remote.Enabled {
		server := remote.NewServer(controller, logger, remote.WithListenAddr(cfg.Remote.Listen))
		if err := server.Start(); err != nil {
			logger.Error("failed to start remote server", "error", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		}()
	}

	start := time.Now()
	now := func() float32 { return float32(time.Since(start).Seconds()) }

	// Drag state for mapping mouse movement to gestures.
	var (
		rotating bool
		panning  bool
		lastX    int32
		lastY    int32
	)

	win.SetResizeCallback(func(width, height int) {
		if width == 0 || height == 0 {
			return
		}
		rend.ConfigureSurface(width, height)
		cam.SetAspect(float32(width) / float32(height))
	})

	win.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y int32) {
		switch button {
		case window.MouseButtonLeft:
			rotating = pressed
		case window.MouseButtonMiddle, window.MouseButtonRight:
			panning = pressed
		}
		lastX, lastY = x, y
	})

	win.SetMouseMoveCallback(func(x, y int32) {
		dx := float32(x - lastX)
		dy := float32(y - lastY)
		lastX, lastY = x, y
		if !rotating && !panning {
			return
		}
		t := now()
		height := float32(win.Height())
		if rotating {
			// Pixel deltas scaled so a full-height drag rotates half a turn.
			scale := float32(math.Pi) / height
			controller.Rotate(t, dx*scale, dy*scale)
		}
		if panning {
			// Pan in world units proportional to the view height at the center.
			scale := 2.0 * controller.Radius() * float32(math.Tan(float64(cfg.Camera.FovDegrees)*math.Pi/360.0)) / height
			controller.Pan(t, -dx*scale, dy*scale)
		}
	})

	win.SetScrollCallback(func(delta float32) {
		// Each scroll notch scales the orbit distance by a constant factor.
		controller.Zoom(now(), float32(math.Pow(0.9, float64(delta))))
	})

	win.SetUpdateCallback(func() {
		t := now()
		cam.Update(t)
		controller.Flush(t - historyLag)

		frustum := cam.Frustum()
		visible := frustum.ContainsSphere(0, 0, 0, 14.0)

		viewProjection := cam.ViewProjectionMatrix()
		if err := rend.RenderFrame(viewProjection[:], visible); err != nil {
			logger.Warn("dropped frame", "error", err)
		}
	})

	logger.Info("viewer started",
		"size", fmt.Sprintf("%dx%d", win.Width(), win.Height()),
		"radius", controller.Radius())
	win.ProcessMessages()
}
