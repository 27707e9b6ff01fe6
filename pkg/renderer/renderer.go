package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-mesh-pathtracer/pkg/core"
	"github.com/df07/go-mesh-pathtracer/pkg/integrator"
	"github.com/df07/go-mesh-pathtracer/pkg/log"
	"github.com/df07/go-mesh-pathtracer/pkg/scene"
)

// ErrInvalidConfig is returned for renders with a non-positive size or sample count
var ErrInvalidConfig = errors.New("renderer: invalid config")

// Config contains rendering configuration
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int    // Number of camera paths averaged per pixel
	NumWorkers      int    // Number of goroutines; values below 1 mean 1
	Seed            uint64 // Base seed; every pixel draws from stream y*Width+x
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           256,
		Height:          256,
		SamplesPerPixel: 16,
		NumWorkers:      1,
		Seed:            42,
	}
}

// Validate checks that the image size and sample count are usable
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	}
	return nil
}

// Renderer partitions the image into row blocks and renders each block on
// its own goroutine. The scene is shared read-only between workers.
type Renderer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     Config
	logger     log.Logger
}

// NewRenderer creates a renderer after validating the configuration
func NewRenderer(s *scene.Scene, camera *Camera, integ integrator.Integrator, config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.NumWorkers < 1 {
		config.NumWorkers = 1
	}
	return &Renderer{
		scene:      s,
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     log.New("renderer"),
	}, nil
}

// Config returns the effective render configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render allocates an image and renders into it
func (r *Renderer) Render() (*Image, Stats, error) {
	img := NewImage(r.config.Width, r.config.Height)
	stats, err := r.RenderInto(img)
	if err != nil {
		return nil, stats, err
	}
	return img, stats, nil
}

// RenderInto overwrites every pixel of img, which must match the configured size
func (r *Renderer) RenderInto(img *Image) (Stats, error) {
	if img.Width != r.config.Width || img.Height != r.config.Height || len(img.Pix) != img.Width*img.Height {
		return Stats{}, fmt.Errorf("%w: image is %dx%d, expected %dx%d",
			ErrInvalidConfig, img.Width, img.Height, r.config.Width, r.config.Height)
	}

	startTime := time.Now()
	regions := Partition(r.config.Height, r.config.NumWorkers)
	r.logger.Noticef("rendering %dx%d at %d spp with %d workers",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, len(regions))

	workerStats := make([]WorkerStats, len(regions))
	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		go func(i int, region Region) {
			defer wg.Done()
			workerStats[i] = r.renderRegion(region, img)
		}(i, region)
	}
	wg.Wait()

	stats := Stats{
		Workers:          workerStats,
		AverageLuminance: CalculateAverageLuminance(img),
		RenderTime:       time.Since(startTime),
	}
	for _, ws := range workerStats {
		stats.TotalPixels += ws.Pixels
		stats.TotalSamples += ws.Samples
		stats.TotalBounces += ws.Bounces
	}

	r.logger.Noticef("render complete in %v (%d samples, %.2f bounces/path)",
		stats.RenderTime, stats.TotalSamples, stats.AverageBounces())
	return stats, nil
}

// renderRegion renders the rows of one region into its own slice of the
// image buffer. Each worker owns its sampler.
func (r *Renderer) renderRegion(region Region, img *Image) WorkerStats {
	startTime := time.Now()
	ws := WorkerStats{Worker: region.Index, Region: region}
	sampler := core.NewRandomSampler(r.config.Seed, 0)
	spp := float32(r.config.SamplesPerPixel)

	rows := img.Rows(region.Y0, region.Y1)
	for y := region.Y0; y < region.Y1; y++ {
		row := rows[(y-region.Y0)*img.Width:]
		for x := 0; x < img.Width; x++ {
			sampler.Reseed(r.config.Seed, uint64(y*img.Width+x))

			accum := core.Black
			for s := 0; s < r.config.SamplesPerPixel; s++ {
				ray := r.camera.GetRay(x, y, sampler.Get2D())
				radiance, pathStats := r.integrator.Radiance(ray, r.scene, sampler)
				accum = accum.Add(radiance)
				ws.addPath(pathStats)
			}

			row[x] = accum.Divide(spp)
			ws.Pixels++
		}
	}

	ws.RenderTime = time.Since(startTime)
	if !region.Empty() {
		r.logger.Debugf("worker %d finished rows %d-%d in %v", region.Index, region.Y0, region.Y1, ws.RenderTime)
	}
	return ws
}
