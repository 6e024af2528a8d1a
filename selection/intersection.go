// Package selection ranks hit-test candidates. Geometry is clipped to the
// pick volume and reduced to an Intersection, which selectors collect per
// candidate.
package selection

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Intersection is the best hit of one candidate: the NDC depth of the hit
// and its squared distance from the pick centre in the pick volume's x/y
// plane. The zero value is invalid.
type Intersection struct {
	depth    float32
	distance float32
	valid    bool
}

// NewIntersection returns an intersection that is valid when both values are
// finite, depth lies in [-1, 1] and distance is not negative.
func NewIntersection(depth, distance float32) Intersection {
	return Intersection{
		depth:    depth,
		distance: distance,
		valid:    finite(depth) && finite(distance) && depth >= -1 && depth <= 1 && distance >= 0,
	}
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func (i Intersection) Depth() float32    { return i.depth }
func (i Intersection) Distance() float32 { return i.distance }
func (i Intersection) Valid() bool       { return i.valid }

// Less orders by depth then by distance. Invalid intersections are never
// less than anything and every valid intersection is less than an invalid one.
func (i Intersection) Less(other Intersection) bool {
	if !i.valid {
		return false
	}
	if !other.valid {
		return true
	}
	if i.depth != other.depth {
		return i.depth < other.depth
	}
	return i.distance < other.distance
}

// EqualEpsilon reports whether two valid intersections are within the given
// tolerances of each other.
func (i Intersection) EqualEpsilon(other Intersection, depthEpsilon, distanceEpsilon float32) bool {
	if !i.valid || !other.valid {
		return false
	}
	return math32.Abs(i.depth-other.depth) <= depthEpsilon &&
		math32.Abs(i.distance-other.distance) <= distanceEpsilon
}

func (i Intersection) String() string {
	if !i.valid {
		return "Intersection(invalid)"
	}
	return fmt.Sprintf("Intersection(depth=%g, distance=%g)", i.depth, i.distance)
}

// AssignIfCloser replaces *best with other when other is less.
func AssignIfCloser(best *Intersection, other Intersection) {
	if other.Less(*best) {
		*best = other
	}
}
