package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameOrder(t *testing.T, want, got []Selectable, msgAndArgs ...any) {
	t.Helper()
	if !assert.Len(t, got, len(want), msgAndArgs...) {
		return
	}
	for i := range want {
		assert.True(t, want[i] == got[i], "element %d differs", i)
	}
}

func TestSortedPool_OrderAndEmpty(t *testing.T) {
	pool := NewSortedPool()
	assert.True(t, pool.Empty())
	_, _, ok := pool.Best()
	assert.False(t, ok)

	a, b, c := &BasicSelectable{}, &BasicSelectable{}, &BasicSelectable{}
	pool.AddSelectable(NewIntersection(0.5, 0), a)
	pool.AddSelectable(NewIntersection(-0.2, 0), b)
	pool.AddSelectable(Intersection{}, c)

	require.Equal(t, 2, pool.Len(), "invalid intersections are dropped")
	assertSameOrder(t, []Selectable{b, a}, pool.Selectables())

	best, i, ok := pool.Best()
	require.True(t, ok)
	assert.Same(t, b, best)
	assert.Equal(t, float32(-0.2), i.Depth())
}

func TestSortedPool_DedupKeepsBest(t *testing.T) {
	worse := NewIntersection(0.4, 0.1)
	better := NewIntersection(0.1, 0.1)

	orders := map[string][]Intersection{
		"worse then better": {worse, better},
		"better then worse": {better, worse},
	}
	for name, order := range orders {
		pool := NewSortedPool()
		face := &BasicSelectable{}
		other := &BasicSelectable{}
		pool.AddSelectable(NewIntersection(0.2, 0), other)
		for _, i := range order {
			pool.PushSelectable(face)
			pool.AddIntersection(i)
			pool.PopSelectable()
		}

		assert.Equal(t, 2, pool.Len(), name)
		got, ok := pool.Intersection(face)
		require.True(t, ok, name)
		assert.Equal(t, better, got, name)
		assertSameOrder(t, []Selectable{face, other}, pool.Selectables(), name)
	}
}

func TestSortedPool_AccumulatesPerCandidate(t *testing.T) {
	pool := NewSortedPool()
	s := &BasicSelectable{}

	pool.PushSelectable(s)
	pool.AddIntersection(NewIntersection(0.3, 0.5))
	pool.AddIntersection(NewIntersection(0.3, 0.1))
	pool.AddIntersection(Intersection{})
	pool.PopSelectable()

	got, ok := pool.Intersection(s)
	require.True(t, ok)
	assert.Equal(t, NewIntersection(0.3, 0.1), got)
}

func TestSortedPool_EachStopsEarly(t *testing.T) {
	pool := NewSortedPool()
	for i := 0; i < 4; i++ {
		pool.AddSelectable(NewIntersection(float32(i)*0.1, 0), &BasicSelectable{})
	}
	visited := 0
	pool.Each(func(i Intersection, s Selectable) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

func TestBestSelector_TieGrouping(t *testing.T) {
	sel := NewBestSelector(0.01, 0.01)
	assert.True(t, sel.Failed())

	first, second, third := &BasicSelectable{}, &BasicSelectable{}, &BasicSelectable{}
	for _, c := range []struct {
		s        Selectable
		distance float32
	}{
		{first, 1.00},
		{second, 1.001},
		{third, 1.3},
	} {
		sel.PushSelectable(c.s)
		sel.AddIntersection(NewIntersection(0, c.distance))
		sel.PopSelectable()
	}

	assert.False(t, sel.Failed())
	assertSameOrder(t, []Selectable{first, second}, sel.Best())
	assert.Equal(t, NewIntersection(0, 1.0), sel.Intersection())
}

func TestBestSelector_BetterResetsGroup(t *testing.T) {
	sel := NewBestSelector(0.01, 0.01)
	a, b, c := &BasicSelectable{}, &BasicSelectable{}, &BasicSelectable{}

	sel.PushSelectable(a)
	sel.AddIntersection(NewIntersection(0, 1.3))
	sel.PopSelectable()
	sel.PushSelectable(b)
	sel.AddIntersection(NewIntersection(0, 1.0))
	sel.PopSelectable()
	sel.PushSelectable(c)
	sel.PopSelectable()

	assertSameOrder(t, []Selectable{b}, sel.Best())
}

func TestBestSelector_CloserTieDropsDistantMembers(t *testing.T) {
	sel := NewBestSelector(0.01, 0.01)
	a, b, c := &BasicSelectable{}, &BasicSelectable{}, &BasicSelectable{}
	for _, hit := range []struct {
		s        Selectable
		distance float32
	}{
		{a, 1.0},
		{b, 0.992},
		{c, 0.985},
	} {
		sel.PushSelectable(hit.s)
		sel.AddIntersection(NewIntersection(0, hit.distance))
		sel.PopSelectable()
	}

	// a is 0.015 from the final best and no longer tied
	assertSameOrder(t, []Selectable{b, c}, sel.Best())
	assert.Equal(t, NewIntersection(0, 0.985), sel.Intersection())
}

func TestBooleanSelector_OnlySelectedCount(t *testing.T) {
	unselected := &BasicSelectable{}
	selected := &BasicSelectable{}
	selected.SetSelected(true)

	sel := &BooleanSelector{}
	sel.PushSelectable(unselected)
	sel.AddIntersection(NewIntersection(0, 0))
	sel.PopSelectable()
	assert.False(t, sel.IsSelected())

	sel.PushSelectable(selected)
	sel.AddIntersection(NewIntersection(0, 0))
	sel.PopSelectable()
	assert.True(t, sel.IsSelected())
}

func TestBasicSelectableHelpers(t *testing.T) {
	handles := make([]BasicSelectable, 3)
	assert.False(t, AnySelected(handles))
	handles[1].SetSelected(true)
	assert.True(t, AnySelected(handles))
	Deselect(handles)
	assert.False(t, AnySelected(handles))
}
