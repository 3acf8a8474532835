// Package tier maps a prestige score to its display tier.
package tier

// Tier is a display label derived from a score
type Tier struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Class string `json:"class"`
}

var (
	Overlord      = Tier{Name: "Prestige Overlord", Icon: "🏆", Class: "tier-overlord"}
	MainCharacter = Tier{Name: "Main Character", Icon: "⭐", Class: "tier-main"}
	NPC           = Tier{Name: "NPC", Icon: "🤖", Class: "tier-npc"}
	Cooked        = Tier{Name: "Literally Cooked", Icon: "💀", Class: "tier-cooked"}
)

// Classify evaluates the fixed breakpoints, highest threshold first.
// Total over all integers.
func Classify(score int) Tier {
	switch {
	case score >= 1000:
		return Overlord
	case score >= 500:
		return MainCharacter
	case score >= 0:
		return NPC
	default:
		return Cooked
	}
}
