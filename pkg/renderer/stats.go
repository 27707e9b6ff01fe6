package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-mesh-pathtracer/pkg/integrator"
)

// WorkerStats contains statistics gathered by one render worker
type WorkerStats struct {
	Worker       int
	Region       Region
	Pixels       int // Pixels written
	Samples      int // Camera paths traced
	Bounces      int // Total bounces over all paths
	Terminations [integrator.NumTerminations]int
	RenderTime   time.Duration
}

// addPath folds the outcome of one traced path into the worker totals
func (ws *WorkerStats) addPath(ps integrator.PathStats) {
	ws.Samples++
	ws.Bounces += ps.Bounces
	if int(ps.Termination) < len(ws.Terminations) {
		ws.Terminations[ps.Termination]++
	}
}

// Stats contains statistics about a complete render
type Stats struct {
	Workers          []WorkerStats
	TotalPixels      int
	TotalSamples     int
	TotalBounces     int
	AverageLuminance float64 // Mean linear luminance of the finished image
	RenderTime       time.Duration
}

// AverageBounces returns the mean path length over all samples
func (s Stats) AverageBounces() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.TotalBounces) / float64(s.TotalSamples)
}

// Terminations sums the termination counters of all workers
func (s Stats) Terminations() [integrator.NumTerminations]int {
	var total [integrator.NumTerminations]int
	for _, ws := range s.Workers {
		for i, n := range ws.Terminations {
			total[i] += n
		}
	}
	return total
}

// Table renders the per-worker statistics as a text table
func (s Stats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Pixels", "Samples", "Avg bounces", "Roulette", "Render time"})
	for _, ws := range s.Workers {
		avg := 0.0
		if ws.Samples > 0 {
			avg = float64(ws.Bounces) / float64(ws.Samples)
		}
		table.Append([]string{
			fmt.Sprintf("%d", ws.Worker),
			fmt.Sprintf("%d-%d", ws.Region.Y0, ws.Region.Y1),
			fmt.Sprintf("%d", ws.Pixels),
			fmt.Sprintf("%d", ws.Samples),
			fmt.Sprintf("%.2f", avg),
			fmt.Sprintf("%d", ws.Terminations[integrator.TerminatedRoulette]),
			ws.RenderTime.String(),
		})
	}
	totals := s.Terminations()
	table.SetFooter([]string{
		"Total",
		"",
		fmt.Sprintf("%d", s.TotalPixels),
		fmt.Sprintf("%d", s.TotalSamples),
		fmt.Sprintf("%.2f", s.AverageBounces()),
		fmt.Sprintf("%d", totals[integrator.TerminatedRoulette]),
		s.RenderTime.String(),
	})

	table.Render()
	return buf.String()
}

// CalculateAverageLuminance returns the mean linear luminance of an image
func CalculateAverageLuminance(img *Image) float64 {
	if len(img.Pix) == 0 {
		return 0
	}
	var total float64
	for _, c := range img.Pix {
		total += float64(c.Luminance())
	}
	return total / float64(len(img.Pix))
}
