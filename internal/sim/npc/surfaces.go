package npc

import "brickton.sim/internal/sim/voxel"

// BlockKind classifies blocks for the structure scanner. Only the notable
// player-placed kinds provoke civilian reactions and council attention.
type BlockKind uint8

const (
	KindAir BlockKind = iota
	KindWood
	KindBrick
	KindStone
	KindGlass
	KindCardboard
	KindOther
)

func (k BlockKind) Notable() bool {
	switch k {
	case KindWood, KindBrick, KindStone, KindGlass, KindCardboard:
		return true
	}
	return false
}

// World is the block-storage surface consumed by the core. All mutations
// must be safe to call on already-cleared state.
type World interface {
	voxel.Grid

	KindAt(c voxel.Vec3i) BlockKind
	// CollidesAABB reports whether the box [min,max] intersects any solid
	// block.
	CollidesAABB(min, max voxel.Vec3) bool

	RemoveBlock(c voxel.Vec3i)
	// ClearHitCount drops any external damage counter tracked for the cell.
	ClearHitCount(c voxel.Vec3i)

	AddPoliceTape(c voxel.Vec3i)
	RemovePoliceTape(c voxel.Vec3i)
	AddPlanningNotice(c voxel.Vec3i)
	RemovePlanningNotice(c voxel.Vec3i)
}

type Reputation uint8

const (
	RepClean Reputation = iota
	RepFlagged
	RepNotorious
)

// Player is the read/write surface onto the player character.
type Player interface {
	Pos() voxel.Vec3
	Reputation() Reputation
	// Noise is the player's current noise output (0 = silent, 1 = sprinting
	// or smashing).
	Noise() float64
	Disguised() bool
	HiVis() bool
	Crouching() bool
	// Sheltered reports the stealth safe-zone: inside, all pursuit cancels.
	Sheltered() bool

	Damage(hp int)
	Push(v voxel.Vec3)
}

type Item string

const (
	ItemCash      Item = "CASH"
	ItemTools     Item = "TOOLS"
	ItemBricks    Item = "BRICKS"
	ItemWood      Item = "WOOD"
	ItemCardboard Item = "CARDBOARD"
)

// stealPriority orders what a gang pickpocket grabs first.
var stealPriority = []Item{ItemCash, ItemTools, ItemBricks, ItemWood, ItemCardboard}

// Inventory is the player's item surface.
type Inventory interface {
	Count(it Item) int
	// Remove takes n of it, reporting false if there were fewer than n.
	Remove(it Item, n int) bool
	Add(it Item, n int)
	// NonEmpty lists item types with a positive count, for the random
	// fallback when nothing on the priority list is held.
	NonEmpty() []Item
}

// Notifier receives fire-and-forget UI trigger keys. May be nil.
type Notifier interface {
	Notify(key string)
}
