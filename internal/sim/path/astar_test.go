package path

import (
	"testing"

	"brickton.sim/internal/sim/voxel"
)

// stackGrid is flat ground at y<0 plus explicit solid cells.
type stackGrid struct {
	solid map[voxel.Vec3i]bool
}

func newGrid() *stackGrid { return &stackGrid{solid: map[voxel.Vec3i]bool{}} }

func (g *stackGrid) Solid(c voxel.Vec3i) bool {
	if g.solid[c] {
		return true
	}
	return c.Y < 0
}

func (g *stackGrid) Transparent(voxel.Vec3i) bool { return false }

func (g *stackGrid) wall(x int, zFrom, zTo, height int) {
	for z := zFrom; z <= zTo; z++ {
		for y := 0; y < height; y++ {
			g.solid[voxel.Vec3i{X: x, Y: y, Z: z}] = true
		}
	}
}

func at(x, z int) voxel.Vec3 {
	return voxel.Vec3i{X: x, Y: 0, Z: z}.Center()
}

func TestFind_FlatGround_StraightLine(t *testing.T) {
	g := newGrid()
	wps := Find(g, DefaultOptions(), at(0, 0), at(8, 0))
	if wps == nil {
		t.Fatalf("no route on open flat ground")
	}
	if len(wps) != 8 {
		t.Fatalf("straight 8-cell trip produced %d waypoints, want 8", len(wps))
	}
	last := wps[len(wps)-1]
	if last.Cell() != (voxel.Vec3i{X: 8, Y: 0, Z: 0}) {
		t.Fatalf("route ends at %v, want cell (8,0,0)", last.Cell())
	}
}

func TestFind_SameCell_SingleWaypoint(t *testing.T) {
	g := newGrid()
	wps := Find(g, DefaultOptions(), at(2, 2), voxel.Vec3{X: 2.9, Y: 0, Z: 2.1})
	if len(wps) != 1 {
		t.Fatalf("same-cell trip produced %d waypoints, want 1", len(wps))
	}
}

func TestFind_DetoursAroundWall(t *testing.T) {
	g := newGrid()
	g.wall(5, -3, 3, 3)
	wps := Find(g, DefaultOptions(), at(0, 0), at(10, 0))
	if wps == nil {
		t.Fatalf("no route around finite wall")
	}
	for _, wp := range wps {
		c := wp.Cell()
		if g.solid[c] {
			t.Fatalf("route passes through wall cell %v", c)
		}
		if !voxel.Standable(g, c) {
			t.Fatalf("waypoint %v is not standable", c)
		}
	}
	if wps[len(wps)-1].Cell() != (voxel.Vec3i{X: 10, Y: 0, Z: 0}) {
		t.Fatalf("route does not reach goal")
	}
}

func TestFind_ClimbsSingleStep(t *testing.T) {
	g := newGrid()
	// One-block step across the whole route width.
	for z := -20; z <= 20; z++ {
		for x := 5; x <= 20; x++ {
			g.solid[voxel.Vec3i{X: x, Y: 0, Z: z}] = true
		}
	}
	wps := Find(g, DefaultOptions(), at(0, 0), voxel.Vec3i{X: 8, Y: 1, Z: 0}.Center())
	if wps == nil {
		t.Fatalf("single-step climb should be routable")
	}
	if got := wps[len(wps)-1].Cell(); got != (voxel.Vec3i{X: 8, Y: 1, Z: 0}) {
		t.Fatalf("route ends at %v, want (8,1,0)", got)
	}
}

func TestFind_WalledGoal_NilWithinBudget(t *testing.T) {
	g := newGrid()
	// Box the goal in completely, tall enough that stepTo cannot hop it.
	for x := 8; x <= 12; x++ {
		for z := 8; z <= 12; z++ {
			if x == 10 && z == 10 {
				continue
			}
			for y := 0; y < 4; y++ {
				g.solid[voxel.Vec3i{X: x, Y: y, Z: z}] = true
			}
		}
	}
	opts := DefaultOptions()
	opts.NodeCap = 400
	if wps := Find(g, opts, at(0, 0), at(10, 10)); wps != nil {
		t.Fatalf("walled-in goal should yield no route, got %d waypoints", len(wps))
	}
}

func TestFind_GoalInsideSolid_Nil(t *testing.T) {
	g := newGrid()
	if wps := Find(g, DefaultOptions(), at(0, 0), voxel.Vec3{X: 5.5, Y: -3, Z: 5.5}); wps != nil {
		t.Fatalf("unsettleable goal should yield nil")
	}
}

func TestFindApproach_StopsShortOfBlockedGoal(t *testing.T) {
	g := newGrid()
	// Goal cell and its ring are walled; halfway points are open.
	for x := 18; x <= 22; x++ {
		for z := -2; z <= 2; z++ {
			for y := 0; y < 4; y++ {
				g.solid[voxel.Vec3i{X: x, Y: y, Z: z}] = true
			}
		}
	}
	opts := DefaultOptions()
	opts.NodeCap = 600
	wps := FindApproach(g, opts, at(0, 0), at(20, 0), 4)
	if wps == nil {
		t.Fatalf("approach should find a closer reachable point")
	}
	end := wps[len(wps)-1].Cell()
	if end.X >= 18 {
		t.Fatalf("approach ended inside the blocked region at %v", end)
	}
}

func TestFind_FastPathAgreesWithSearch(t *testing.T) {
	g := newGrid()
	start, goal := at(0, 0), at(6, 4)

	fast := Find(g, DefaultOptions(), start, goal)

	opts := DefaultOptions()
	opts.FastPathMaxXZ = 0 // force full search
	slow := Find(g, opts, start, goal)

	if fast == nil || slow == nil {
		t.Fatalf("both strategies should route on open ground")
	}
	if fast[len(fast)-1].Cell() != slow[len(slow)-1].Cell() {
		t.Fatalf("fast and search routes end at different cells: %v vs %v",
			fast[len(fast)-1].Cell(), slow[len(slow)-1].Cell())
	}
}
