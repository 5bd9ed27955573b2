package game

import (
	"testing"

	"github.com/peterkuimelis/manaclash/internal/log"
)

func TestOpeningStrikeHitsBase(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddPlay("fire-continuous")
	p1 := NewScriptedController(t, "P2")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 1}, p0, p1)

	if got := duel.State.Players[1].HP; got != 12 {
		t.Errorf("P2 HP = %d, want 12 (20 - 8)", got)
	}
	if got := duel.State.Players[0].Energy; got != 2 {
		t.Errorf("P1 energy = %d, want 2 (5 - 3)", got)
	}
	if duel.State.Players[0].InHand("fire-continuous") != nil {
		t.Error("played card still in hand after reveal")
	}

	hits := logger.EventsOfType(log.EventDamageDealt)
	if len(hits) != 1 {
		t.Fatalf("DamageDealt events = %d, want 1", len(hits))
	}
	hit := hits[0]
	if hit.Player != 1 || hit.Card != "fire-continuous" || hit.Amount != 8 || hit.Before != 20 || hit.After != 12 {
		t.Errorf("hit = %+v, want defender 1, fire-continuous, 8 damage, HP 20 → 12", hit)
	}
}

func TestWallAbsorbsWithOverflow(t *testing.T) {
	// P2 walls on turn 1; P1 waits while it decays 10 → 6 and then burns
	// through it on turn 5. 8 damage: 6 into the wall, 2 into the base.
	p0 := NewScriptedController(t, "P1").
		AddPass().AddPass().AddPass().AddPass().
		AddPlay("fire-continuous")
	p1 := NewScriptedController(t, "P2").AddPlay("water-wall")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 5}, p0, p1)

	if got := duel.State.Players[1].HP; got != 18 {
		t.Errorf("P2 HP = %d, want 18 (2 overflow)", got)
	}
	if duel.State.Players[1].Wall != nil {
		t.Error("wall still standing after the breach")
	}

	damaged := logger.EventsOfType(log.EventWallDamaged)
	if len(damaged) != 1 {
		t.Fatalf("WallDamaged events = %d, want 1", len(damaged))
	}
	if ev := damaged[0]; ev.Amount != 6 || ev.Before != 6 || ev.After != 0 {
		t.Errorf("wall damage = %+v, want 6 absorbed (6 → 0)", ev)
	}

	destroyed := logger.EventsOfType(log.EventWallDestroyed)
	if len(destroyed) != 1 || destroyed[0].Reason != "combat" {
		t.Errorf("wall destruction = %+v, want one combat kill", destroyed)
	}

	hits := logger.EventsOfType(log.EventDamageDealt)
	if len(hits) != 1 || hits[0].Amount != 2 {
		t.Errorf("overflow hit = %+v, want a single 2-damage hit", hits)
	}
}

func TestDeflectionNegatesProjectile(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddPlay("fire-projectile")
	p1 := NewScriptedController(t, "P2").AddPlay("water-deflection")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 1}, p0, p1)

	if hp := duel.State.Players[1].HP; hp != StartingHP {
		t.Errorf("P2 HP = %d, want untouched %d", hp, StartingHP)
	}
	blocks := logger.EventsOfType(log.EventDamageBlocked)
	if len(blocks) != 1 {
		t.Fatalf("DamageBlocked events = %d, want 1", len(blocks))
	}
	if ev := blocks[0]; ev.Reason != "deflection" || ev.Amount != 5 || ev.Player != 1 {
		t.Errorf("block = %+v, want 5 deflected off player 2", ev)
	}

	// Both sides pay for their cards even when the attack fizzles.
	if got := duel.State.Players[0].Energy; got != 2 {
		t.Errorf("attacker energy = %d, want 2", got)
	}
	if got := duel.State.Players[1].Energy; got != 3 {
		t.Errorf("defender energy = %d, want 3", got)
	}
}

func TestDeflectionBluntsContinuous(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddPlay("fire-continuous")
	p1 := NewScriptedController(t, "P2").AddPlay("water-deflection")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 1}, p0, p1)

	// A deflection only shaves 5 off a continuous attack. 8 - 5 = 3 lands.
	if got := duel.State.Players[1].HP; got != 17 {
		t.Errorf("P2 HP = %d, want 17", got)
	}
	hits := logger.EventsOfType(log.EventDamageDealt)
	if len(hits) != 1 || hits[0].Amount != 3 {
		t.Errorf("hits = %+v, want one 3-damage hit", hits)
	}
	if got := len(logger.EventsOfType(log.EventDamageBlocked)); got != 0 {
		t.Errorf("DamageBlocked events = %d, want 0 (damage got through)", got)
	}
}

func TestDeflectionFullyAbsorbsWeakContinuous(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddPlay("earth-continuous")
	p1 := NewScriptedController(t, "P2").AddPlay("water-deflection")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: earthDeck(), Deck1: waterDeck(), MaxTurns: 1}, p0, p1)

	if got := duel.State.Players[1].HP; got != StartingHP {
		t.Errorf("P2 HP = %d, want untouched %d", got, StartingHP)
	}
	blocks := logger.EventsOfType(log.EventDamageBlocked)
	if len(blocks) != 1 {
		t.Fatalf("DamageBlocked events = %d, want 1", len(blocks))
	}
	if ev := blocks[0]; ev.Reason != "deflection" || ev.Amount != 5 {
		t.Errorf("block = %+v, want the full 5 deflected", ev)
	}
}

func TestProjectileSailsOverWall(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddPass().AddPlay("fire-projectile")
	p1 := NewScriptedController(t, "P2").AddPlay("water-wall")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 2}, p0, p1)

	if got := duel.State.Players[1].HP; got != 15 {
		t.Errorf("P2 HP = %d, want 15 (projectile ignores the wall)", got)
	}
	if got := len(logger.EventsOfType(log.EventWallDamaged)); got != 0 {
		t.Errorf("WallDamaged events = %d, want 0", got)
	}
	wall := duel.State.Players[1].Wall
	if wall == nil {
		t.Fatal("wall missing")
	}
	if wall.HP != 8 {
		t.Errorf("wall HP = %d, want 8 (decay only)", wall.HP)
	}
}

func TestAbsorbedHitStillLeavesWallToDecay(t *testing.T) {
	// Turn 2: the wall (9 HP after one decay) soaks all 8, then the
	// end-of-turn decay takes its last point.
	p0 := NewScriptedController(t, "P1").AddPass().AddPlay("fire-continuous")
	p1 := NewScriptedController(t, "P2").AddPlay("water-wall")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 2}, p0, p1)

	if got := duel.State.Players[1].HP; got != StartingHP {
		t.Errorf("P2 HP = %d, want untouched %d", got, StartingHP)
	}
	blocks := logger.EventsOfType(log.EventDamageBlocked)
	if len(blocks) != 1 {
		t.Fatalf("DamageBlocked events = %d, want 1", len(blocks))
	}
	if ev := blocks[0]; ev.Reason != "wall" || ev.Amount != 8 {
		t.Errorf("block = %+v, want the wall soaking 8", ev)
	}

	destroyed := logger.EventsOfType(log.EventWallDestroyed)
	if len(destroyed) != 1 || destroyed[0].Reason != "decay" {
		t.Errorf("wall destruction = %+v, want one decay kill", destroyed)
	}
	if duel.State.Players[1].Wall != nil {
		t.Error("wall still standing after decaying to zero")
	}
}

func TestWallDecaysToNothingOnItsOwn(t *testing.T) {
	p0 := NewScriptedController(t, "P1")
	p1 := NewScriptedController(t, "P2").AddPlay("water-wall")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 10}, p0, p1)

	if duel.State.Players[1].Wall != nil {
		t.Error("wall survived past its lifetime")
	}
	decays := logger.EventsOfType(log.EventWallDecayed)
	if len(decays) != 10 {
		t.Fatalf("WallDecayed events = %d, want 10", len(decays))
	}
	// 10 HP placed on turn 1 reaches zero with the tenth decay.
	last := decays[len(decays)-1]
	if last.Turn != 10 || last.After != 0 {
		t.Errorf("final decay = %+v, want HP 0 on turn 10", last)
	}
	destroyed := logger.EventsOfType(log.EventWallDestroyed)
	if len(destroyed) != 1 || destroyed[0].Reason != "decay" || destroyed[0].Turn != 10 {
		t.Errorf("wall destruction = %+v, want one decay kill on turn 10", destroyed)
	}
}
