package types

import "time"

// DefaultPlayerColor is the ARGB color given to players created by a rename
// before they ever joined.
const DefaultPlayerColor uint32 = 0xFFE74C3C

// Player is a participant in the world. Gold is the only currency balance and
// is mutated exclusively by economy operations.
type Player struct {
	ID             string    // Opaque identity from the transport layer.
	Name           string    // Display name.
	X, Y           float32   // World position.
	FacingAngle    float32   // Radians.
	IsCasting      bool      // True while a line is out.
	CastTargetX    *float32  // Set while casting.
	CastTargetY    *float32  // Set while casting.
	Color          uint32    // ARGB.
	IsOnline       bool      // Presence flag.
	Gold           uint32    // Currency balance.
	EquippedPoleID *string   // Item ID of the equipped pole, if any.
	LastUpdated    time.Time // Last field replication or economy touch.
}

// Validate checks the fields a store requires before insert or update.
func (p *Player) Validate() error {
	if p.ID == "" {
		return ErrInvalidID
	}
	return nil
}

// Equip sets the equipped pole. It reports whether the value changed.
func (p *Player) Equip(poleID string) bool {
	if p.EquippedPoleID != nil && *p.EquippedPoleID == poleID {
		return false
	}
	p.EquippedPoleID = &poleID
	return true
}

// Unequip clears the equipped pole and returns what was equipped, or nil.
func (p *Player) Unequip() *string {
	prev := p.EquippedPoleID
	p.EquippedPoleID = nil
	return prev
}

// HasEquipped reports whether itemID is the equipped pole.
func (p *Player) HasEquipped(itemID string) bool {
	return p.EquippedPoleID != nil && *p.EquippedPoleID == itemID
}
