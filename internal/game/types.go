package game

import "fmt"

// --- Enums ---

type Element int

const (
	ElementFire Element = iota
	ElementWater
	ElementEarth
	ElementAir
)

func (e Element) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementWater:
		return "water"
	case ElementEarth:
		return "earth"
	case ElementAir:
		return "air"
	default:
		return "unknown"
	}
}

// ParseElement converts a catalog-file string into an Element.
func ParseElement(s string) (Element, error) {
	switch s {
	case "fire":
		return ElementFire, nil
	case "water":
		return ElementWater, nil
	case "earth":
		return ElementEarth, nil
	case "air":
		return ElementAir, nil
	default:
		return 0, fmt.Errorf("unknown element %q", s)
	}
}

type CardType int

const (
	TypeAttack CardType = iota
	TypeDefense
	TypeMiner
)

func (ct CardType) String() string {
	switch ct {
	case TypeAttack:
		return "Attack"
	case TypeDefense:
		return "Defense"
	case TypeMiner:
		return "Miner"
	default:
		return "Unknown"
	}
}

type Subtype int

const (
	SubtypeWall Subtype = iota
	SubtypeDeflection
	SubtypeContinuous
	SubtypeProjectile
	SubtypeDeflectionMiner
	SubtypeProjectileMiner
	SubtypeContinuousMiner
	SubtypeRepairMiner
)

func (s Subtype) String() string {
	switch s {
	case SubtypeWall:
		return "wall"
	case SubtypeDeflection:
		return "deflection"
	case SubtypeContinuous:
		return "continuous"
	case SubtypeProjectile:
		return "projectile"
	case SubtypeDeflectionMiner:
		return "deflection-miner"
	case SubtypeProjectileMiner:
		return "projectile-miner"
	case SubtypeContinuousMiner:
		return "continuous-miner"
	case SubtypeRepairMiner:
		return "repair-miner"
	default:
		return "unknown"
	}
}

// ParseSubtype converts a catalog-file string into a Subtype.
func ParseSubtype(s string) (Subtype, error) {
	switch s {
	case "wall":
		return SubtypeWall, nil
	case "deflection":
		return SubtypeDeflection, nil
	case "continuous":
		return SubtypeContinuous, nil
	case "projectile":
		return SubtypeProjectile, nil
	case "deflection-miner":
		return SubtypeDeflectionMiner, nil
	case "projectile-miner":
		return SubtypeProjectileMiner, nil
	case "continuous-miner":
		return SubtypeContinuousMiner, nil
	case "repair-miner":
		return SubtypeRepairMiner, nil
	default:
		return 0, fmt.Errorf("unknown subtype %q", s)
	}
}

// CardType returns the card type a subtype belongs to.
func (s Subtype) CardType() CardType {
	switch s {
	case SubtypeWall, SubtypeDeflection:
		return TypeDefense
	case SubtypeContinuous, SubtypeProjectile:
		return TypeAttack
	default:
		return TypeMiner
	}
}

// IsMiner reports whether the subtype is one of the four miner kinds.
func (s Subtype) IsMiner() bool {
	return s.CardType() == TypeMiner
}

// MinerInterval returns the payout interval in turns for a miner subtype,
// or 0 for non-miners. Each kind has a distinct interval.
func (s Subtype) MinerInterval() int {
	switch s {
	case SubtypeDeflectionMiner:
		return 2
	case SubtypeRepairMiner:
		return 3
	case SubtypeProjectileMiner:
		return 4
	case SubtypeContinuousMiner:
		return 5
	default:
		return 0
	}
}

type TurnPhase int

const (
	PhaseSelection TurnPhase = iota
	PhaseReveal
	PhaseResolution
	PhaseTurnEnd
)

func (p TurnPhase) String() string {
	switch p {
	case PhaseSelection:
		return "Selection"
	case PhaseReveal:
		return "Reveal"
	case PhaseResolution:
		return "Resolution"
	case PhaseTurnEnd:
		return "Turn End"
	default:
		return "None"
	}
}

type GamePhase int

const (
	GamePhaseMenu GamePhase = iota
	GamePhaseDraft
	GamePhasePlaying
	GamePhaseOver
)

func (g GamePhase) String() string {
	switch g {
	case GamePhaseMenu:
		return "menu"
	case GamePhaseDraft:
		return "draft"
	case GamePhasePlaying:
		return "playing"
	case GamePhaseOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// --- Card definition (static, from the catalog) ---

// Card is an immutable catalog entry. Instances on the board (walls,
// miners) reference cards by ID and carry their own mutable state.
type Card struct {
	ID          string
	Name        string
	Element     Element
	Type        CardType
	Subtype     Subtype
	Cost        int
	Power       int
	Description string
}

func (c *Card) String() string {
	return c.Name
}

// DisplayString returns a human-readable description for menus and logs.
func (c *Card) DisplayString() string {
	switch c.Type {
	case TypeAttack:
		return fmt.Sprintf("%s (%s %s, cost %d, power %d)", c.Name, c.Element, c.Subtype, c.Cost, c.Power)
	case TypeDefense:
		if c.Subtype == SubtypeWall {
			return fmt.Sprintf("%s (%s wall, cost %d, %d HP)", c.Name, c.Element, c.Cost, c.Power)
		}
		return fmt.Sprintf("%s (%s deflection, cost %d)", c.Name, c.Element, c.Cost)
	default:
		return fmt.Sprintf("%s (%s %s, cost %d, every %d turns)", c.Name, c.Element, c.Subtype, c.Cost, c.Subtype.MinerInterval())
	}
}
