package game

import "github.com/peterkuimelis/manaclash/internal/log"

// BlockReason identifies what stopped an attack before it reached the base.
type BlockReason int

const (
	BlockNone BlockReason = iota
	BlockWall
	BlockDeflection
	BlockDeflectionMiner
)

func (b BlockReason) String() string {
	switch b {
	case BlockWall:
		return "wall"
	case BlockDeflection:
		return "deflection"
	case BlockDeflectionMiner:
		return "deflection-miner"
	default:
		return "none"
	}
}

// AttackResult reports what a resolved attack did.
type AttackResult struct {
	Attacker    int
	Defender    int
	CardID      string
	Subtype     Subtype
	RawPower    int
	WallDamage  int // damage absorbed by the defender's wall
	BaseDamage  int // damage that reached the base
	Blocked     BlockReason
	WallBroken  bool
	MinerKilled bool
}

// resolveAttack sends one attack at the opposite base. Continuous attacks
// grind through deflections (flat -5) and walls (absorb, overflow);
// projectiles sail over walls but are negated outright by any deflection.
// Miner payouts route their free attacks through this same path.
func (d *Duel) resolveAttack(attacker int, card *Card) AttackResult {
	defender := d.State.Opponent(attacker)
	def := d.State.Players[defender]
	turn := d.State.Turn.Number

	res := AttackResult{
		Attacker: attacker,
		Defender: defender,
		CardID:   card.ID,
		Subtype:  card.Subtype,
		RawPower: card.Power,
	}
	damage := card.Power

	switch card.Subtype {
	case SubtypeProjectile:
		if def.ActiveDeflection {
			res.Blocked = BlockDeflection
			d.log(log.NewDamageBlockedEvent(turn, defender, card.ID, card.Name, damage, "deflection"))
			return res
		}
		if def.ActiveDeflectionMiner {
			res.Blocked = BlockDeflectionMiner
			d.log(log.NewDamageBlockedEvent(turn, defender, card.ID, card.Name, damage, "deflection-miner"))
			return res
		}
		// No deflection up: the projectile clears the wall untouched.

	case SubtypeContinuous:
		if def.ActiveDeflection {
			damage -= DeflectReduction
			if damage < 0 {
				damage = 0
			}
			if damage == 0 {
				res.Blocked = BlockDeflection
				d.log(log.NewDamageBlockedEvent(turn, defender, card.ID, card.Name, card.Power, "deflection"))
				return res
			}
		}
		hadWall := def.HasWall()
		overflow := d.damageWall(defender, card, damage)
		res.WallDamage = damage - overflow
		res.WallBroken = hadWall && !def.HasWall()
		damage = overflow
		if damage == 0 {
			if res.WallDamage > 0 {
				res.Blocked = BlockWall
				d.log(log.NewDamageBlockedEvent(turn, defender, card.ID, card.Name, res.WallDamage, "wall"))
			}
			return res
		}

	default:
		// Defense and miner cards never reach the resolver.
		return res
	}

	if damage > 0 {
		d.applyBaseDamage(defender, card, damage, &res)
	}
	return res
}

// applyBaseDamage deals damage to the defender's base, clamping HP at
// zero. Victory is not evaluated here: both attacks in a turn always
// resolve, which is what makes a double knockout possible. Base damage
// also blasts the defender's miner, subject to placement grace.
func (d *Duel) applyBaseDamage(defender int, card *Card, amount int, res *AttackResult) {
	p := d.State.Players[defender]
	before := p.HP
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
	res.BaseDamage = amount
	d.log(log.NewDamageDealtEvent(d.State.Turn.Number, defender, card.ID, card.Name, amount, before, p.HP))

	if p.Miner != nil {
		res.MinerKilled = d.killMiner(defender, "base damage")
	}
}
