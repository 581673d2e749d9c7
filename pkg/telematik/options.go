// Package telematik turns a telematik xlsx export into the annotated
// dispatch workbook and its clipboard extract.
package telematik

import (
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
)

// Options configures processing behavior.
type Options struct {
	// Layout is the column schema of the export. If zero, layout.Default
	// is used.
	Layout layout.Layout
	// Now supplies the processing time used for dates and file names.
	// If nil, time.Now is used.
	Now func() time.Time
	// Logger receives step skips and warnings. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns options with the default layout.
func DefaultOptions() Options {
	return Options{
		Layout: layout.Default(),
		Now:    time.Now,
		Logger: zap.NewNop(),
	}
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) layout() layout.Layout {
	if reflect.ValueOf(o.Layout).IsZero() {
		return layout.Default()
	}
	return o.Layout
}
