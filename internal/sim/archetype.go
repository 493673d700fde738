package sim

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Archetype is a look a park visitor can have. The killer is drawn from the
// same roster, so a civilian never shares the killer's exact variant.
type Archetype struct {
	Key    string  // visual key, e.g. "jogger_red"
	Speed  float64 // multiplier on the base walking speed
	Height int     // silhouette height hint for renderers, pixels
}

// DisplayName turns the visual key into a readable name: "jogger_red" → "Jogger Red".
func (a Archetype) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(a.Key, "_", " "))
}

// roster is the full set of visitor looks. Keep at least BaseCivilians+1.
var roster = []Archetype{
	{Key: "jogger_red", Speed: 1.35, Height: 22},
	{Key: "jogger_blue", Speed: 1.30, Height: 22},
	{Key: "businessman_grey", Speed: 1.00, Height: 24},
	{Key: "businesswoman_navy", Speed: 1.00, Height: 23},
	{Key: "student_backpack", Speed: 1.10, Height: 21},
	{Key: "pensioner_cane", Speed: 0.60, Height: 20},
	{Key: "tourist_camera", Speed: 0.80, Height: 22},
	{Key: "gardener_overalls", Speed: 0.85, Height: 23},
	{Key: "busker_guitar", Speed: 0.70, Height: 22},
	{Key: "nanny_pram", Speed: 0.75, Height: 22},
	{Key: "skater_hoodie", Speed: 1.25, Height: 21},
	{Key: "artist_beret", Speed: 0.90, Height: 22},
	{Key: "vendor_apron", Speed: 0.80, Height: 23},
	{Key: "courier_cap", Speed: 1.20, Height: 22},
	{Key: "birdwatcher_hat", Speed: 0.65, Height: 22},
	{Key: "chess_player_scarf", Speed: 0.70, Height: 21},
}

// Roster returns a copy of the archetype roster.
func Roster() []Archetype {
	out := make([]Archetype, len(roster))
	copy(out, roster)
	return out
}
