package game

// The standard catalog: four walls, four deflections, four continuous
// attacks, four projectiles, and the four miner kinds. Card IDs are stable
// and appear in saved games and on the wire; names are display-only.

// --- Walls (defense) ---

// MagmaRampart — fire wall. Cost 2, 10 HP.
func MagmaRampart() *Card {
	return &Card{
		ID:          "fire-wall",
		Name:        "Magma Rampart",
		Element:     ElementFire,
		Type:        TypeDefense,
		Subtype:     SubtypeWall,
		Cost:        2,
		Power:       10,
		Description: "A rampart of cooling magma. Absorbs up to 10 damage before crumbling.",
	}
}

// TidalBulwark — water wall. Cost 2, 10 HP.
func TidalBulwark() *Card {
	return &Card{
		ID:          "water-wall",
		Name:        "Tidal Bulwark",
		Element:     ElementWater,
		Type:        TypeDefense,
		Subtype:     SubtypeWall,
		Cost:        2,
		Power:       10,
		Description: "A standing wave held in place. Absorbs up to 10 damage before collapsing.",
	}
}

// GranitePalisade — earth wall. Cost 2, 10 HP.
func GranitePalisade() *Card {
	return &Card{
		ID:          "earth-wall",
		Name:        "Granite Palisade",
		Element:     ElementEarth,
		Type:        TypeDefense,
		Subtype:     SubtypeWall,
		Cost:        2,
		Power:       10,
		Description: "Raised bedrock. Absorbs up to 10 damage before shattering.",
	}
}

// CycloneBarrier — air wall. Cost 2, 10 HP.
func CycloneBarrier() *Card {
	return &Card{
		ID:          "air-wall",
		Name:        "Cyclone Barrier",
		Element:     ElementAir,
		Type:        TypeDefense,
		Subtype:     SubtypeWall,
		Cost:        2,
		Power:       10,
		Description: "A ring of compressed wind. Absorbs up to 10 damage before dispersing.",
	}
}

// --- Deflections (defense) ---

// EmberVeil — fire deflection. Cost 2.
func EmberVeil() *Card {
	return &Card{
		ID:          "fire-deflection",
		Name:        "Ember Veil",
		Element:     ElementFire,
		Type:        TypeDefense,
		Subtype:     SubtypeDeflection,
		Cost:        2,
		Power:       0,
		Description: "A shimmering heat haze. Negates projectiles and blunts continuous attacks this turn.",
	}
}

// MistScreen — water deflection. Cost 2.
func MistScreen() *Card {
	return &Card{
		ID:          "water-deflection",
		Name:        "Mist Screen",
		Element:     ElementWater,
		Type:        TypeDefense,
		Subtype:     SubtypeDeflection,
		Cost:        2,
		Power:       0,
		Description: "A bank of dense fog. Negates projectiles and blunts continuous attacks this turn.",
	}
}

// Dustcloak — earth deflection. Cost 2.
func Dustcloak() *Card {
	return &Card{
		ID:          "earth-deflection",
		Name:        "Dustcloak",
		Element:     ElementEarth,
		Type:        TypeDefense,
		Subtype:     SubtypeDeflection,
		Cost:        2,
		Power:       0,
		Description: "A whirl of grit and sand. Negates projectiles and blunts continuous attacks this turn.",
	}
}

// UpdraftWard — air deflection. Cost 2.
func UpdraftWard() *Card {
	return &Card{
		ID:          "air-deflection",
		Name:        "Updraft Ward",
		Element:     ElementAir,
		Type:        TypeDefense,
		Subtype:     SubtypeDeflection,
		Cost:        2,
		Power:       0,
		Description: "A sudden vertical gust. Negates projectiles and blunts continuous attacks this turn.",
	}
}

// --- Continuous attacks ---

// InfernoRay — fire continuous attack. Cost 3, power 8.
func InfernoRay() *Card {
	return &Card{
		ID:          "fire-continuous",
		Name:        "Inferno Ray",
		Element:     ElementFire,
		Type:        TypeAttack,
		Subtype:     SubtypeContinuous,
		Cost:        3,
		Power:       8,
		Description: "A sustained beam of flame. Walls absorb it; deflections blunt it by 5.",
	}
}

// MaelstromJet — water continuous attack. Cost 3, power 6.
func MaelstromJet() *Card {
	return &Card{
		ID:          "water-continuous",
		Name:        "Maelstrom Jet",
		Element:     ElementWater,
		Type:        TypeAttack,
		Subtype:     SubtypeContinuous,
		Cost:        3,
		Power:       6,
		Description: "A pressurized torrent. Walls absorb it; deflections blunt it by 5.",
	}
}

// SandblastStream — earth continuous attack. Cost 2, power 5.
func SandblastStream() *Card {
	return &Card{
		ID:          "earth-continuous",
		Name:        "Sandblast Stream",
		Element:     ElementEarth,
		Type:        TypeAttack,
		Subtype:     SubtypeContinuous,
		Cost:        2,
		Power:       5,
		Description: "A grinding jet of sand. Walls absorb it; deflections blunt it by 5.",
	}
}

// ShearGale — air continuous attack. Cost 4, power 7.
func ShearGale() *Card {
	return &Card{
		ID:          "air-continuous",
		Name:        "Shear Gale",
		Element:     ElementAir,
		Type:        TypeAttack,
		Subtype:     SubtypeContinuous,
		Cost:        4,
		Power:       7,
		Description: "A cutting crosswind. Walls absorb it; deflections blunt it by 5.",
	}
}

// --- Projectile attacks ---

// CinderBolt — fire projectile. Cost 3, power 5.
func CinderBolt() *Card {
	return &Card{
		ID:          "fire-projectile",
		Name:        "Cinder Bolt",
		Element:     ElementFire,
		Type:        TypeAttack,
		Subtype:     SubtypeProjectile,
		Cost:        3,
		Power:       5,
		Description: "A lobbed ember. Sails over walls; any deflection negates it.",
	}
}

// HailDart — water projectile. Cost 2, power 3.
func HailDart() *Card {
	return &Card{
		ID:          "water-projectile",
		Name:        "Hail Dart",
		Element:     ElementWater,
		Type:        TypeAttack,
		Subtype:     SubtypeProjectile,
		Cost:        2,
		Power:       3,
		Description: "A spike of ice. Sails over walls; any deflection negates it.",
	}
}

// BoulderSling — earth projectile. Cost 4, power 6.
func BoulderSling() *Card {
	return &Card{
		ID:          "earth-projectile",
		Name:        "Boulder Sling",
		Element:     ElementEarth,
		Type:        TypeAttack,
		Subtype:     SubtypeProjectile,
		Cost:        4,
		Power:       6,
		Description: "A hurled stone. Sails over walls; any deflection negates it.",
	}
}

// JavelinGust — air projectile. Cost 3, power 4.
func JavelinGust() *Card {
	return &Card{
		ID:          "air-projectile",
		Name:        "Javelin Gust",
		Element:     ElementAir,
		Type:        TypeAttack,
		Subtype:     SubtypeProjectile,
		Cost:        3,
		Power:       4,
		Description: "A spear of focused wind. Sails over walls; any deflection negates it.",
	}
}

// --- Miners ---

// AegisTurbine — air deflection-miner. Cost 3, fires every 2 turns.
func AegisTurbine() *Card {
	return &Card{
		ID:          "deflection-miner",
		Name:        "Aegis Turbine",
		Element:     ElementAir,
		Type:        TypeMiner,
		Subtype:     SubtypeDeflectionMiner,
		Cost:        3,
		Power:       0,
		Description: "Every 2 turns, projects a deflection field that negates projectiles for the turn.",
	}
}

// MasonGolem — earth repair-miner. Cost 3, fires every 3 turns.
func MasonGolem() *Card {
	return &Card{
		ID:          "repair-miner",
		Name:        "Mason Golem",
		Element:     ElementEarth,
		Type:        TypeMiner,
		Subtype:     SubtypeRepairMiner,
		Cost:        3,
		Power:       0,
		Description: "Every 3 turns, restores your wall to full strength.",
	}
}

// MortarImp — fire projectile-miner. Cost 3, power 3, fires every 4 turns.
func MortarImp() *Card {
	return &Card{
		ID:          "projectile-miner",
		Name:        "Mortar Imp",
		Element:     ElementFire,
		Type:        TypeMiner,
		Subtype:     SubtypeProjectileMiner,
		Cost:        3,
		Power:       3,
		Description: "Every 4 turns, fires a free 3-power projectile at the enemy base.",
	}
}

// GeyserEngine — water continuous-miner. Cost 3, power 4, fires every 5 turns.
func GeyserEngine() *Card {
	return &Card{
		ID:          "continuous-miner",
		Name:        "Geyser Engine",
		Element:     ElementWater,
		Type:        TypeMiner,
		Subtype:     SubtypeContinuousMiner,
		Cost:        3,
		Power:       4,
		Description: "Every 5 turns, unleashes a free 4-power continuous blast at the enemy.",
	}
}
