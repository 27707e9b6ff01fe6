package renderer

// Region is a contiguous block of image rows [Y0, Y1) owned by one worker
type Region struct {
	Index int
	Y0    int
	Y1    int
}

// Empty reports whether the region covers no rows
func (r Region) Empty() bool {
	return r.Y1 <= r.Y0
}

// Rows returns the number of rows in the region
func (r Region) Rows() int {
	return max(0, r.Y1-r.Y0)
}

// Partition splits height rows into exactly workers regions of ceil(height/workers)
// rows each. Trailing regions are shortened or empty when the rows run out.
// Regions are disjoint and together cover [0, height).
func Partition(height, workers int) []Region {
	if workers < 1 {
		workers = 1
	}
	blockSize := (height + workers - 1) / workers

	regions := make([]Region, workers)
	for i := range regions {
		y0 := min(i*blockSize, height)
		y1 := min(y0+blockSize, height)
		regions[i] = Region{Index: i, Y0: y0, Y1: y1}
	}
	return regions
}
