package numspiral

import (
	"github.com/gogpu/numspiral/classify"
	"github.com/gogpu/numspiral/walk"
)

// DriverOption configures a Driver during creation.
// Use functional options to replace the components derived from Config.
//
// Example:
//
//	// Defaults: Pixmap raster, path and classifier from Config
//	d, err := numspiral.NewDriver(cfg)
//
//	// Custom presenter (dependency injection)
//	d, err := numspiral.NewDriver(cfg, numspiral.WithPresenter(canvas))
type DriverOption func(*driverOptions)

// driverOptions holds optional components for Driver creation.
type driverOptions struct {
	surface    Surface
	path       walk.Path
	classifier classify.Classifier
	palette    Palette
	presenter  Presenter
	observer   Observer
}

// WithSurface sets the raster the driver draws into. The raster size is taken
// from the surface bounds instead of Config.
//
// Example:
//
//	pm := numspiral.NewPixmap(512, 512)
//	d, err := numspiral.NewDriver(cfg, numspiral.WithSurface(pm))
func WithSurface(s Surface) DriverOption {
	return func(o *driverOptions) {
		o.surface = s
	}
}

// WithPath sets a custom path policy. Its Capacity still clamps the ceiling.
func WithPath(p walk.Path) DriverOption {
	return func(o *driverOptions) {
		o.path = p
	}
}

// WithClassifier sets a custom classifier.
func WithClassifier(c classify.Classifier) DriverOption {
	return func(o *driverOptions) {
		o.classifier = c
	}
}

// WithPalette sets a custom palette.
func WithPalette(p Palette) DriverOption {
	return func(o *driverOptions) {
		o.palette = p
	}
}

// WithPresenter sets the collaborator that blits the raster after each batch.
// Without one the raster is drawn but never presented.
func WithPresenter(p Presenter) DriverOption {
	return func(o *driverOptions) {
		o.presenter = p
	}
}

// WithObserver sets a receiver for per-tick statistics.
func WithObserver(obs Observer) DriverOption {
	return func(o *driverOptions) {
		o.observer = obs
	}
}
