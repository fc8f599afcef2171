package metastable

// Grid returns n capacities evenly spaced over [0, maxCapacity], both ends
// included.
func Grid(n int, maxCapacity float64) []float64 {
	var g = make([]float64, n)
	if n <= 1 {
		return g
	}
	var step = maxCapacity / float64(n-1)
	var i int
	for i = 0; i < n; i++ {
		g[i] = float64(i) * step
	}
	g[n-1] = maxCapacity

	return g
}

// StepInterp resamples the samples (xs[k], ys[k]) onto the increasing grid as a step
// function: samples are applied in the given order and each assigns ys[k]
// to every grid point ≤ xs[k], overwriting earlier samples. Grid points
// above every sample stay 0.
//
// Given in walk order (decreasing capacity), each voltage holds on the
// interval between its own capacity and the next sample's.
//
// Complexity: O(len(xs)·len(grid)).
func StepInterp(grid, xs, ys []float64) []float64 {
	var out = make([]float64, len(grid))
	var k, i int
	for k = 0; k < len(xs) && k < len(ys); k++ {
		for i = 0; i < len(grid) && grid[i] <= xs[k]; i++ {
			out[i] = ys[k]
		}
	}

	return out
}
