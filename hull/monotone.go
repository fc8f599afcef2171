package hull

import "sort"

// cross returns the z-component of (a−o)×(b−o): > 0 for a counter-clockwise
// turn o→a→b, < 0 for clockwise, 0 for collinear.
func cross(o, a, b [2]float64) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// sortedOrder returns the indices of pts sorted by (x, y, index).
func sortedOrder(pts [][2]float64) []int {
	var idx = make([]int, len(pts))
	var i int
	for i = range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		var pa, pb = pts[idx[a]], pts[idx[b]]
		if pa[0] != pb[0] {
			return pa[0] < pb[0]
		}
		return pa[1] < pb[1]
	})

	return idx
}

// chain runs one pass of the monotone chain over order and returns the
// retained indices. Collinear and duplicate points are dropped.
func chain(pts [][2]float64, order []int) []int {
	var out = make([]int, 0, len(order))
	for _, i := range order {
		for len(out) >= 2 && cross(pts[out[len(out)-2]], pts[out[len(out)-1]], pts[i]) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, i)
	}

	return out
}

// ConvexHull returns the vertex indices of the convex hull of pts in
// counter-clockwise order, starting from the lowest point of the smallest
// x. Points lying on a hull edge are not vertices; a collinear input
// yields its two extreme points.
//
// Algorithm: Andrew's monotone chain.
//
// Complexity: O(N log N) time, O(N) memory.
func ConvexHull(pts [][2]float64) []int {
	if len(pts) == 0 {
		return nil
	}
	var order = sortedOrder(pts)
	var lower = chain(pts, order)

	var rev = make([]int, len(order))
	var i int
	for i = range order {
		rev[i] = order[len(order)-1-i]
	}
	var upper = chain(pts, rev)

	// Each chain ends where the other starts.
	var out = append(lower[:len(lower)-1:len(lower)-1], upper[:len(upper)-1]...)
	if len(out) == 0 {
		out = []int{lower[0]}
	}

	return out
}

// LowerHull returns the vertex indices of the lower convex hull of pts,
// strictly increasing in x. Where several points share the largest x only
// the lowest is kept, so the chain never turns vertically upward.
//
// Complexity: O(N log N) time, O(N) memory.
func LowerHull(pts [][2]float64) []int {
	if len(pts) == 0 {
		return nil
	}
	var lower = chain(pts, sortedOrder(pts))
	for len(lower) >= 2 && pts[lower[len(lower)-1]][0] == pts[lower[len(lower)-2]][0] {
		lower = lower[:len(lower)-1]
	}

	return lower
}
