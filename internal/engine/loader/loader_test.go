package loader

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/pcdview/internal/engine/pointcloud"
	"github.com/Faultbox/pcdview/pkg/math"
)

type result struct {
	cloud    *pointcloud.Cloud
	progress []Progress
	err      error
}

func (r *result) callbacks() Callbacks {
	return Callbacks{
		OnLoad:     func(c *pointcloud.Cloud) { r.cloud = c },
		OnProgress: func(p Progress) { r.progress = append(r.progress, p) },
		OnError:    func(err error) { r.err = err },
	}
}

func run(t *testing.T, l *Loader, ctx context.Context, locator string) *result {
	t.Helper()
	var r result
	l.Load(ctx, locator, r.callbacks())
	l.Wait()
	l.Drain()
	return &r
}

func TestLoadCube(t *testing.T) {
	l := New()
	r := run(t, l, context.Background(), "cube:4")

	require.NoError(t, r.err)
	require.NotNil(t, r.cloud)
	assert.Equal(t, 64, r.cloud.Len())
	assert.Equal(t, "cube-4", r.cloud.Name)

	require.Len(t, r.progress, 4)
	assert.Equal(t, Progress{Loaded: 4, Total: 4}, r.progress[3])
	assert.Equal(t, float64(100), r.progress[3].Percent())

	_, max, _ := r.cloud.Bounds()
	assert.Equal(t, float32(DefaultCubeSize/2), max.X)
}

func TestLoadCubeWithSize(t *testing.T) {
	r := run(t, New(), context.Background(), "cube:2:8")
	require.NoError(t, r.err)
	_, max, _ := r.cloud.Bounds()
	assert.Equal(t, math.Vec3{X: 4, Y: 4, Z: 4}, max)
}

func TestCallbacksWaitForDrain(t *testing.T) {
	l := New()
	var r result
	l.Load(context.Background(), "cube:3", r.callbacks())
	l.Wait()

	assert.Nil(t, r.cloud, "callbacks must not run before Drain")
	assert.Equal(t, 4, l.Drain())
	assert.NotNil(t, r.cloud)
	assert.Equal(t, 0, l.Drain())
}

func TestBadLocators(t *testing.T) {
	for _, loc := range []string{"cube:", "cube:0", "cube:x", "cube:3:-1", "cube:1:2:3", ""} {
		r := run(t, New(), context.Background(), loc)
		assert.ErrorIs(t, r.err, ErrUnknownLocator, "locator %q", loc)
		assert.Nil(t, r.cloud)
	}
}

func TestCancelledLoad(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := run(t, New(), ctx, "cube:10")
	assert.ErrorIs(t, r.err, context.Canceled)
	assert.Nil(t, r.cloud)
}

func TestFileWithoutDecoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pcd")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	r := run(t, New(), context.Background(), path)
	assert.ErrorIs(t, r.err, ErrNoDecoder)
}

// xyzLines reads one "x y z" triple per line.
func xyzLines(r io.Reader) (*pointcloud.Cloud, error) {
	c := &pointcloud.Cloud{}
	s := bufio.NewScanner(r)
	for s.Scan() {
		f := strings.Fields(s.Text())
		if len(f) != 3 {
			return nil, errors.New("bad line")
		}
		var v [3]float32
		for i := range f {
			x, err := strconv.ParseFloat(f[i], 32)
			if err != nil {
				return nil, err
			}
			v[i] = float32(x)
		}
		c.Positions = append(c.Positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	return c, s.Err()
}

func TestFileWithRegisteredDecoder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.XYZ")
	data := "1 2 3\n4 5 6\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	l := New()
	l.Register(".xyz", DecoderFunc(xyzLines))
	r := run(t, l, context.Background(), path)

	require.NoError(t, r.err)
	assert.Equal(t, 2, r.cloud.Len())
	assert.Equal(t, "scan.XYZ", r.cloud.Name)
	require.NotEmpty(t, r.progress)
	last := r.progress[len(r.progress)-1]
	assert.Equal(t, Progress{Loaded: int64(len(data)), Total: int64(len(data))}, last)
}

func TestDecoderErrorReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xyz")
	require.NoError(t, os.WriteFile(path, []byte("1 2\n"), 0644))

	l := New()
	l.Register(".xyz", DecoderFunc(xyzLines))
	r := run(t, l, context.Background(), path)

	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "decoding")
}

func TestMissingFile(t *testing.T) {
	l := New()
	l.Register(".xyz", DecoderFunc(xyzLines))
	r := run(t, l, context.Background(), filepath.Join(t.TempDir(), "nope.xyz"))
	assert.ErrorIs(t, r.err, os.ErrNotExist)
}

func TestExtensions(t *testing.T) {
	l := New()
	assert.Empty(t, l.Extensions())

	l.Register(".XYZ", DecoderFunc(xyzLines))
	l.Register(".pts", DecoderFunc(xyzLines))
	assert.Equal(t, []string{"pts", "xyz"}, l.Extensions())
}

func TestProgressPercentUnknown(t *testing.T) {
	assert.Equal(t, float64(-1), Progress{Loaded: 10, Total: -1}.Percent())
}
