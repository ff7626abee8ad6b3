// Package d2fnapi is the library entry point for the deduplicator: it
// wires a logger, scan options, and the dup engine together behind a
// single Instance so callers embedding d2fn (rather than driving it
// through cmd/d2fn) don't need to reach into internal/ packages.
package d2fnapi

import (
	"context"

	"github.com/nastools/d2fn/internal/dup"
	"github.com/nastools/d2fn/pkg/logging"
	"github.com/nastools/d2fn/pkg/scanopts"
	"go.uber.org/zap"
)

// Instance is one configured scan run over a directory tree.
type Instance struct {
	engine *dup.Engine
	opts   scanopts.Options
	log    *zap.SugaredLogger
}

// NewInstance builds an Instance ready to scan root. service names the
// logger's component tag (e.g. "scan", "dedup"); status, if non-nil,
// receives progress snapshots as Discover runs.
func NewInstance(service, root string, status chan<- dup.StatusReport, opts ...scanopts.OptionFunc) (*Instance, error) {
	log := logging.New(service)

	options := scanopts.NewDefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	eng, err := dup.New(&dup.Config{
		Root:    root,
		Options: options,
		Logger:  log,
		Status:  status,
	})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, opts: options, log: log}, nil
}

// Discover walks the configured root and populates the dedup index.
func (i *Instance) Discover(ctx context.Context) error {
	return i.engine.Discover(ctx)
}

// Push hands a single already-known file to the dedup index without
// walking, e.g. when a caller already has its own directory listing.
func (i *Instance) Push(record dup.FileRecord) error {
	return i.engine.Push(record)
}

// Result returns the duplicate groups found so far (§4.5's verify pass
// runs here, if enabled).
func (i *Instance) Result() ([]dup.Group, error) {
	return i.engine.Result()
}

// ConflictCount reports how many full-hash groups the most recent Result()
// verify pass produced while splitting a partial-hash entry that did not
// actually share full content. Always zero unless scanopts.WithVerify was
// set.
func (i *Instance) ConflictCount() uint64 {
	return i.engine.ConflictCount()
}

// Records returns every file the engine has accepted, in discovery order.
func (i *Instance) Records() []dup.FileRecord {
	return i.engine.Records()
}

// Close releases the Instance. The engine holds no external resources,
// so this chiefly guards against further use.
func (i *Instance) Close() error {
	return i.engine.Close()
}
