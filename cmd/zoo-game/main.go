package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"zoo-game/assets"
	"zoo-game/internal/config"
	"zoo-game/internal/entity"
	"zoo-game/internal/game"
	"zoo-game/internal/graphics"
	"zoo-game/internal/graphics/model"
	"zoo-game/internal/graphics/opengl"
	"zoo-game/internal/graphics/renderer"
	"zoo-game/internal/ui/menu"
	"zoo-game/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

// GL calls must come from the thread that owns the context
func init() {
	runtime.LockOSThread()
}

func main() {
	closer.Bind(glfw.Terminate)
	closer.Checked(run, true)
	closer.Close()
}

func run() error {
	cfg, err := config.LoadFile(config.DefaultFile)
	if err != nil {
		return err
	}

	if err := window.Init(); err != nil {
		return err
	}
	win, err := window.New(cfg.Window)
	if err != nil {
		return err
	}

	device, err := opengl.NewDevice()
	if err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL %s", device.Version())

	width, height := win.Size()
	camera := graphics.NewCamera(width, height,
		cfg.Camera.X, cfg.Camera.Y, cfg.Camera.Z, cfg.Camera.Zoom,
		graphics.WithProjectionMode(cfg.ProjectionMode()))

	// shaders are always embedded; textures may come from disk
	var opts []renderer.Option
	if cfg.AssetsDir != "" {
		opts = append(opts, renderer.WithTextureFS(os.DirFS(cfg.AssetsDir)))
	}
	r, err := renderer.New(device, assets.FS, camera, opts...)
	if err != nil {
		return err
	}
	models := model.NewRegistry(r, nil)
	win.OnDestroy(func() {
		models.Close()
		r.Close()
	})

	if _, err := models.CreateQuad("quad", 0, 0, 0); err != nil {
		return err
	}

	mainMenu := menu.NewMainMenu(nil, models)
	// logo is optional; the menu is still usable without it
	if err := r.LoadTexture("logo"); err == nil {
		mainMenu.AddProp(entity.New(0, 0, entity.Box{Left: -0.5, Bottom: -0.5, Right: 0.5, Top: 0.5}, "quad"), "logo")
	}

	app := game.NewApp(win, r, mainMenu, cfg.FPS)
	win.SetHandler(app)
	app.Run()
	return nil
}
