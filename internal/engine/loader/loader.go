// Package loader loads point clouds in the background and reports back
// through callbacks run on the caller's goroutine.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/pcdview/internal/engine/pointcloud"
	"github.com/Faultbox/pcdview/internal/logger"
)

var (
	// ErrUnknownLocator is returned for a locator no source understands.
	ErrUnknownLocator = errors.New("unknown locator")
	// ErrNoDecoder is returned when no decoder is registered for a file extension.
	ErrNoDecoder = errors.New("no decoder registered")
)

// DefaultCubeSize is the edge length of a procedural cube when the locator omits it.
const DefaultCubeSize = 50

// Progress reports how much of a resource has been processed.
// Total is -1 when unknown.
type Progress struct {
	Loaded int64
	Total  int64
}

// Percent returns the completed share in [0,100], or -1 when Total is unknown.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return -1
	}
	return float64(p.Loaded) / float64(p.Total) * 100
}

// Callbacks receive the outcome of a Load. Nil callbacks are skipped.
type Callbacks struct {
	OnLoad     func(c *pointcloud.Cloud)
	OnProgress func(p Progress)
	OnError    func(err error)
}

// Decoder turns a file stream into a point cloud.
type Decoder interface {
	Decode(r io.Reader) (*pointcloud.Cloud, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (*pointcloud.Cloud, error)

// Decode calls f(r).
func (f DecoderFunc) Decode(r io.Reader) (*pointcloud.Cloud, error) {
	return f(r)
}

// Loader runs loads in goroutines and queues their callbacks until Drain.
type Loader struct {
	log *zap.Logger
	wg  sync.WaitGroup

	mu       sync.Mutex
	decoders map[string]Decoder
	pending  []func()
}

// New creates a loader with no decoders registered.
func New() *Loader {
	return &Loader{
		log:      logger.Named("loader"),
		decoders: make(map[string]Decoder),
	}
}

// Register associates a decoder with a file extension such as ".pcd".
func (l *Loader) Register(ext string, d Decoder) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decoders[strings.ToLower(ext)] = d
}

// Extensions returns the registered file extensions without the leading dot, sorted.
func (l *Loader) Extensions() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	sort.Strings(exts)
	return exts
}

// Load starts loading locator. Locators are either "cube:<n>[:<size>]" for a
// generated lattice cube or a file path handled by a registered decoder.
func (l *Loader) Load(ctx context.Context, locator string, cb Callbacks) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		cloud, err := l.load(ctx, locator, cb)
		if err != nil {
			l.log.Warn("load failed", zap.String("locator", locator), zap.Error(err))
			if cb.OnError != nil {
				l.post(func() { cb.OnError(err) })
			}
			return
		}

		l.log.Info("point cloud loaded",
			zap.String("locator", locator),
			zap.Int("points", cloud.Len()),
		)
		if cb.OnLoad != nil {
			l.post(func() { cb.OnLoad(cloud) })
		}
	}()
}

// Drain runs every queued callback on the calling goroutine.
func (l *Loader) Drain() int {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Wait blocks until all started loads have finished queuing callbacks.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

func (l *Loader) progress(cb Callbacks, p Progress) {
	if cb.OnProgress != nil {
		l.post(func() { cb.OnProgress(p) })
	}
}

func (l *Loader) load(ctx context.Context, locator string, cb Callbacks) (*pointcloud.Cloud, error) {
	if rest, ok := strings.CutPrefix(locator, "cube:"); ok {
		n, size, err := parseCube(rest)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", locator, err)
		}
		return l.loadCube(ctx, n, size, cb)
	}
	if locator == "" {
		return nil, ErrUnknownLocator
	}
	return l.loadFile(ctx, locator, cb)
}

func parseCube(spec string) (n int, size float32, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) > 2 {
		return 0, 0, ErrUnknownLocator
	}
	n, err = strconv.Atoi(parts[0])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("cube resolution %q: %w", parts[0], ErrUnknownLocator)
	}
	size = DefaultCubeSize
	if len(parts) == 2 {
		s, err := strconv.ParseFloat(parts[1], 32)
		if err != nil || s <= 0 {
			return 0, 0, fmt.Errorf("cube size %q: %w", parts[1], ErrUnknownLocator)
		}
		size = float32(s)
	}
	return n, size, nil
}

func (l *Loader) loadCube(ctx context.Context, n int, size float32, cb Callbacks) (*pointcloud.Cloud, error) {
	cloud := &pointcloud.Cloud{Name: fmt.Sprintf("cube-%d", n)}
	total := int64(n)
	for z := 0; z < n; z++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, c := pointcloud.CubeSlice(n, z, size)
		cloud.Positions = append(cloud.Positions, p...)
		cloud.Colors = append(cloud.Colors, c...)
		l.progress(cb, Progress{Loaded: int64(z + 1), Total: total})
	}
	return cloud, nil
}

func (l *Loader) loadFile(ctx context.Context, path string, cb Callbacks) (*pointcloud.Cloud, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l.mu.Lock()
	dec, ok := l.decoders[ext]
	l.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w for %q", path, ErrNoDecoder, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening point cloud: %w", err)
	}
	defer f.Close()

	total := int64(-1)
	if info, err := f.Stat(); err == nil {
		total = info.Size()
	}

	r := &progressReader{ctx: ctx, r: f, total: total, report: func(p Progress) { l.progress(cb, p) }}
	cloud, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if cloud.Name == "" {
		cloud.Name = filepath.Base(path)
	}
	return cloud, nil
}

// progressReader reports bytes read and stops once ctx is done.
type progressReader struct {
	ctx    context.Context
	r      io.Reader
	loaded int64
	total  int64
	report func(Progress)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(buf)
	if n > 0 {
		p.loaded += int64(n)
		p.report(Progress{Loaded: p.loaded, Total: p.total})
	}
	return n, err
}
