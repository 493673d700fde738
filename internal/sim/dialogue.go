package sim

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
)

// Tone is a bystander's speaking style, fixed per actor id.
type Tone uint8

const (
	ToneNervous Tone = iota
	ToneChatty
	ToneGrumpy
	ToneFormal
	toneCount
)

func (t Tone) String() string {
	switch t {
	case ToneNervous:
		return "nervous"
	case ToneChatty:
		return "chatty"
	case ToneGrumpy:
		return "grumpy"
	case ToneFormal:
		return "formal"
	default:
		return "unknown"
	}
}

// PersonalityOf hashes an actor id to its tone.
func PersonalityOf(id string) Tone {
	h := fnv.New32a()
	h.Write([]byte(id))
	return Tone(h.Sum32() % uint32(toneCount))
}

// hintLines take one %s: the compass direction.
var hintLines = [toneCount][]string{
	ToneNervous: {
		"I-I saw someone creeping off to the %s...",
		"Don't tell anyone I said so, but check the %s side.",
	},
	ToneChatty: {
		"Funny thing, a shifty type just wandered %s. Right past the pigeons!",
		"Oh, you'd want the %s end of the park, trust me.",
	},
	ToneGrumpy: {
		"Go %s and leave me alone.",
		"Some lunatic was lurking %s. Not my problem.",
	},
	ToneFormal: {
		"I observed a suspicious individual heading %s, officer.",
		"If I may, the person you seek went %s.",
	},
}

var idleLines = [toneCount][]string{
	ToneNervous: {
		"Is it safe here? It doesn't feel safe.",
		"I really should get home.",
	},
	ToneChatty: {
		"Lovely day for it, isn't it? Well, apart from the murder.",
		"Have you tried the kebab van by the gates?",
	},
	ToneGrumpy: {
		"I didn't see anything.",
		"Do I look like a witness to you?",
	},
	ToneFormal: {
		"I'm afraid I cannot assist you, officer.",
		"Good afternoon. I have nothing to report.",
	},
}

// Compass returns the dominant cardinal direction from "from" to "to".
// Screen y grows downwards, so positive dy is south.
func Compass(from, to Point) string {
	dx, dy := to.X-from.X, to.Y-from.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return "east"
		}
		return "west"
	}
	if dy > 0 {
		return "south"
	}
	return "north"
}

// DialogueLine is what a clicked bystander says.
type DialogueLine struct {
	Tone      Tone
	Text      string
	Hint      bool
	Direction string // set when Hint
}

// Speak produces a line for speaker. killer is the killer's position at the
// moment of the click; nil disables hints.
func Speak(speaker *Actor, killer *Point, rng *rand.Rand, hintChance float64) DialogueLine {
	tone := PersonalityOf(speaker.ID)
	if killer != nil && rng.Float64() < hintChance {
		dir := Compass(speaker.Pos, *killer)
		lines := hintLines[tone]
		return DialogueLine{
			Tone:      tone,
			Text:      fmt.Sprintf(lines[rng.Intn(len(lines))], dir),
			Hint:      true,
			Direction: dir,
		}
	}
	lines := idleLines[tone]
	return DialogueLine{Tone: tone, Text: lines[rng.Intn(len(lines))]}
}
