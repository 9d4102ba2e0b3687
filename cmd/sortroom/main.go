// SortRoom - waste sorting room planner
//
// A cross-platform desktop application for drawing a waste sorting room,
// placing bins, doors and fixtures in it, and exporting the result as a
// floor plan PDF, bin signs, DXF and an Excel object list.
//
// Build:
//   go build -o sortroom ./cmd/sortroom
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"flag"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/SortRoom/internal/config"
	"github.com/piwi3910/SortRoom/internal/importer"
	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/objects"
	"github.com/piwi3910/SortRoom/internal/observability"
	"github.com/piwi3910/SortRoom/internal/session"
	"github.com/piwi3910/SortRoom/internal/ui"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/sortroom.yaml", "path to configuration file")
	planPath := flag.String("plan", "", "plan file to open at startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	catalog := loadCatalog(cfg.Catalog.Path, logger)

	planner := session.New(cfg.InitialRoom(), session.Options{
		Limits:        cfg.Limits(),
		Scale:         cfg.Room.Scale,
		WallTolerance: cfg.Orientation.WallTolerance,
		HistoryDepth:  cfg.History.MaxDepth,
		DefaultSizes: map[model.Kind]objects.Size{
			model.KindBin: {Width: cfg.Objects.BinWidth, Height: cfg.Objects.BinHeight},
		},
	}, logger)

	application := app.NewWithID("com.piwi3910.sortroom")
	application.Settings().SetTheme(ui.NewSortRoomThemeNamed(cfg.UI.Theme))

	window := application.NewWindow("SortRoom - Waste Sorting Room Planner")

	appUI := ui.NewApp(application, window, ui.Deps{
		Config:  cfg,
		Planner: planner,
		Catalog: catalog,
		Logger:  logger,
	})
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()

	if *planPath != "" {
		appUI.OpenPlan(*planPath)
	}

	logger.Info("sortroom started",
		zap.Float64("stage_width", cfg.Stage.Width),
		zap.Float64("stage_height", cfg.Stage.Height),
		zap.Float64("scale", cfg.Room.Scale),
		zap.Duration("elapsed", time.Since(start)),
	)
	window.ShowAndRun()
}

// loadCatalog reads the configured catalog, falling back to the built-in
// one when no path is set or nothing usable could be imported.
func loadCatalog(path string, logger *zap.Logger) model.Catalog {
	if path == "" {
		return model.DefaultCatalog()
	}
	res := importer.ImportCatalog(path)
	for _, w := range res.Warnings {
		logger.Warn("catalog warning", zap.String("path", path), zap.String("warning", w))
	}
	for _, e := range res.Errors {
		logger.Error("catalog error", zap.String("path", path), zap.String("error", e))
	}
	n := res.Catalog.Len()
	if n == 0 {
		logger.Warn("no usable catalog entries, using built-in catalog", zap.String("path", path))
		return model.DefaultCatalog()
	}
	logger.Info("catalog loaded", zap.String("path", path), zap.Int("types", n))
	return res.Catalog
}
