package sim

import (
	"math/rand"

	"github.com/google/uuid"
)

// EntityKind is the closed set of things that can exist in a level.
type EntityKind uint8

const (
	KindCivilian   EntityKind = iota // wandering bystander
	KindKiller                       // the culprit, exactly one per level
	KindClue                         // evidence decal from a vignette
	KindAmbiance                     // inert flavour decal
	KindDebris                       // bomb crisis: pile that may hide a part
	KindDevicePart                   // bomb crisis: part to defuse
	KindStash                        // rescue crisis: evidence to recover
	KindDecoy                        // rescue crisis: planted fake
	entityKindCount                  // sentinel
)

// EntityCategory separates mobile actors from static decals.
type EntityCategory uint8

const (
	CategoryActor EntityCategory = iota
	CategoryDecal
)

// kindInfo is the per-kind mapping table. Indexed by EntityKind so a missing
// entry shows up as a zero value in TestKindTableComplete.
type kindInfo struct {
	name     string
	category EntityCategory
	visual   string // default visual key when the instance has none
}

var kindTable = [entityKindCount]kindInfo{
	KindCivilian:   {"civilian", CategoryActor, "civ_default"},
	KindKiller:     {"killer", CategoryActor, "civ_default"},
	KindClue:       {"clue", CategoryDecal, "clue_generic"},
	KindAmbiance:   {"ambiance", CategoryDecal, "amb_leaves"},
	KindDebris:     {"debris", CategoryDecal, "crisis_debris"},
	KindDevicePart: {"device_part", CategoryDecal, "crisis_device"},
	KindStash:      {"stash", CategoryDecal, "crisis_stash"},
	KindDecoy:      {"decoy", CategoryDecal, "crisis_decoy"},
}

func (k EntityKind) String() string {
	if k >= entityKindCount {
		return "unknown"
	}
	return kindTable[k].name
}

// Category returns whether the kind is an actor or a decal.
func (k EntityKind) Category() EntityCategory {
	if k >= entityKindCount {
		return CategoryDecal
	}
	return kindTable[k].category
}

// DefaultVisual returns the visual key used when an entity has none.
func (k EntityKind) DefaultVisual() string {
	if k >= entityKindCount {
		return ""
	}
	return kindTable[k].visual
}

// Quality is the evidence tag carried by a decal.
type Quality uint8

const (
	QualityNone Quality = iota
	QualityCrime
	QualityHerring
	QualityAmbiance
)

func (q Quality) String() string {
	switch q {
	case QualityCrime:
		return "crime"
	case QualityHerring:
		return "herring"
	case QualityAmbiance:
		return "ambiance"
	default:
		return "none"
	}
}

// Actor is a mobile entity: a civilian or the killer.
type Actor struct {
	ID        string
	Kind      EntityKind
	Archetype Archetype
	Visual    string
	Pos       Point
	Speed     float64 // px/s, 0 = stationary
	Dest      *Point  // current wander target, nil while idle
	Wait      float64 // seconds left idling before picking a new Dest
	Infected  bool    // poison crisis victim
}

// Label returns a short human label for logs.
func (a *Actor) Label() string {
	return shortID(a.ID)
}

// clone returns a deep copy safe to hand to readers.
func (a *Actor) clone() Actor {
	c := *a
	if a.Dest != nil {
		d := *a.Dest
		c.Dest = &d
	}
	return c
}

// Decal is a static interactable: clue, crisis object or flavour.
type Decal struct {
	ID      string
	Kind    EntityKind
	Visual  string
	Pos     Point
	Quality Quality
	Hidden  bool   // under debris; not clickable until revealed
	Covers  string // debris only: id of the part hidden beneath
	Source  string // vignette name that produced it, empty for crisis objects
}

// Label returns a short human label for logs.
func (d *Decal) Label() string {
	return shortID(d.ID)
}

// newEntityID draws a UUID from rng so seeded runs produce stable ids.
func newEntityID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand.Read never fails; keep a valid id regardless.
		return uuid.NewString()
	}
	return id.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
