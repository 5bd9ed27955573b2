package game

import (
	"strings"
	"testing"

	"github.com/peterkuimelis/manaclash/internal/log"
)

func TestDeflectionMinerPayoutCadence(t *testing.T) {
	// Aegis Turbine placed on turn 3 never ticks that turn, so its 2-turn
	// interval fires on turns 5 and 7.
	p0 := NewScriptedController(t, "P1").
		AddPass().AddPass().
		AddPlay("deflection-miner")
	p1 := NewScriptedController(t, "P2")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 7}, p0, p1)

	payouts := logger.EventsOfType(log.EventMinerPayout)
	if len(payouts) != 2 {
		t.Fatalf("MinerPayout events = %d, want 2", len(payouts))
	}
	wantTurns := []int{5, 7}
	for i, ev := range payouts {
		if ev.Turn != wantTurns[i] {
			t.Errorf("payout %d on turn %d, want %d", i, ev.Turn, wantTurns[i])
		}
		if ev.Card != "deflection-miner" || !strings.Contains(ev.Details, "deflection field") {
			t.Errorf("payout %d = %+v, want a deflection field raise", i, ev)
		}
	}

	m := duel.State.Players[0].Miner
	if m == nil || m.Countdown != 2 {
		t.Errorf("miner countdown not reset after payout: %+v", m)
	}
}

func TestProjectileMinerFiresFreeAttack(t *testing.T) {
	p0 := NewScriptedController(t, "P1").AddPlay("projectile-miner")
	p1 := NewScriptedController(t, "P2")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: waterDeck(), Deck1: fireDeck(), MaxTurns: 5}, p0, p1)

	payouts := logger.EventsOfType(log.EventMinerPayout)
	if len(payouts) != 1 || payouts[0].Turn != 5 || !strings.Contains(payouts[0].Details, "free attack") {
		t.Fatalf("payouts = %+v, want one free attack on turn 5", payouts)
	}

	hits := logger.EventsOfType(log.EventDamageDealt)
	if len(hits) != 1 {
		t.Fatalf("DamageDealt events = %d, want 1", len(hits))
	}
	if ev := hits[0]; ev.Card != "projectile-miner" || ev.Amount != 3 || ev.Player != 1 {
		t.Errorf("hit = %+v, want the miner's 3 into player 2", ev)
	}
	if got := duel.State.Players[1].HP; got != 17 {
		t.Errorf("P2 HP = %d, want 17", got)
	}
}

func TestContinuousMinerAttackGrindsTheWall(t *testing.T) {
	// The Geyser Engine's turn-6 payout is a continuous attack, so the
	// opposing wall (decayed to 4 by then) soaks it and shatters.
	p0 := NewScriptedController(t, "P1").AddPlay("continuous-miner")
	p1 := NewScriptedController(t, "P2").AddPlay("fire-wall")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: waterDeck(), Deck1: fireDeck(), MaxTurns: 6}, p0, p1)

	payouts := logger.EventsOfType(log.EventMinerPayout)
	if len(payouts) != 1 || payouts[0].Turn != 6 || !strings.Contains(payouts[0].Details, "free attack") {
		t.Fatalf("payouts = %+v, want one free attack on turn 6", payouts)
	}

	blocks := logger.EventsOfType(log.EventDamageBlocked)
	if len(blocks) != 1 {
		t.Fatalf("DamageBlocked events = %d, want 1", len(blocks))
	}
	if ev := blocks[0]; ev.Reason != "wall" || ev.Amount != 4 || ev.Card != "continuous-miner" {
		t.Errorf("block = %+v, want the wall soaking the miner's 4", ev)
	}

	destroyed := logger.EventsOfType(log.EventWallDestroyed)
	if len(destroyed) != 1 || destroyed[0].Reason != "combat" || destroyed[0].Turn != 6 {
		t.Errorf("wall destruction = %+v, want a combat kill on turn 6", destroyed)
	}
	if got := duel.State.Players[1].HP; got != StartingHP {
		t.Errorf("P2 HP = %d, want untouched %d", got, StartingHP)
	}
}

func TestRepairMinerRestoresWallBeforeDecay(t *testing.T) {
	p0 := NewScriptedController(t, "P1").
		AddPlay("fire-wall").
		AddPlay("repair-miner")
	p1 := NewScriptedController(t, "P2")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 5}, p0, p1)

	repairs := logger.EventsOfType(log.EventWallRepaired)
	if len(repairs) != 1 {
		t.Fatalf("WallRepaired events = %d, want 1", len(repairs))
	}
	if ev := repairs[0]; ev.Turn != 5 || ev.Before != 6 || ev.After != 10 || ev.Amount != 4 {
		t.Errorf("repair = %+v, want 6 → 10 on turn 5", ev)
	}

	// Decay still runs after the repair.
	wall := duel.State.Players[0].Wall
	if wall == nil {
		t.Fatal("wall missing")
	}
	if wall.HP != 9 {
		t.Errorf("wall HP = %d, want 9 (repaired to 10, then one decay)", wall.HP)
	}

	payouts := logger.EventsOfType(log.EventMinerPayout)
	if len(payouts) != 1 || !strings.Contains(payouts[0].Details, "wall restored") {
		t.Errorf("payouts = %+v, want one wall restoration", payouts)
	}
}

func TestMinerPlacementGraceThenKilled(t *testing.T) {
	p0 := NewScriptedController(t, "P1").
		AddPlay("fire-continuous").
		AddPlay("fire-projectile")
	p1 := NewScriptedController(t, "P2").AddPlay("projectile-miner")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: fireDeck(), Deck1: waterDeck(), MaxTurns: 2}, p0, p1)

	protections := logger.EventsOfType(log.EventMinerProtected)
	if len(protections) != 1 || protections[0].Turn != 1 {
		t.Fatalf("MinerProtected events = %+v, want one on turn 1", protections)
	}

	kills := logger.EventsOfType(log.EventMinerKilled)
	if len(kills) != 1 {
		t.Fatalf("MinerKilled events = %d, want 1", len(kills))
	}
	if ev := kills[0]; ev.Turn != 2 || ev.Reason != "base damage" || ev.Card != "projectile-miner" {
		t.Errorf("kill = %+v, want base damage on turn 2", ev)
	}

	if duel.State.Players[1].Miner != nil {
		t.Error("miner survived the second hit")
	}
	if got := duel.State.Players[1].HP; got != 7 {
		t.Errorf("P2 HP = %d, want 7 (20 - 8 - 5)", got)
	}
}

func TestDeflectionMinerBlocksProjectileOnPayoutTurn(t *testing.T) {
	p0 := NewScriptedController(t, "P1").
		AddPass().AddPass().
		AddPlay("water-projectile")
	p1 := NewScriptedController(t, "P2").AddPlay("deflection-miner")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: waterDeck(), Deck1: fireDeck(), MaxTurns: 3}, p0, p1)

	blocks := logger.EventsOfType(log.EventDamageBlocked)
	if len(blocks) != 1 {
		t.Fatalf("DamageBlocked events = %d, want 1", len(blocks))
	}
	if ev := blocks[0]; ev.Reason != "deflection-miner" || ev.Amount != 3 || ev.Turn != 3 {
		t.Errorf("block = %+v, want the field eating the 3-damage dart on turn 3", ev)
	}
	if got := duel.State.Players[1].HP; got != StartingHP {
		t.Errorf("P2 HP = %d, want untouched %d", got, StartingHP)
	}
	// The field is a one-turn effect even though the miner persists.
	if duel.State.Players[1].ActiveDeflectionMiner {
		t.Error("deflection field still up after turn end")
	}
	if m := duel.State.Players[1].Miner; m == nil || m.Countdown != 2 {
		t.Errorf("miner = %+v, want countdown reset to 2", m)
	}
}

func TestContinuousAttackIgnoresDeflectionMinerField(t *testing.T) {
	p0 := NewScriptedController(t, "P1").
		AddPass().AddPass().
		AddPlay("water-continuous")
	p1 := NewScriptedController(t, "P2").AddPlay("deflection-miner")
	duel, logger := runDuelToCompletion(t, DuelConfig{Deck0: waterDeck(), Deck1: fireDeck(), MaxTurns: 3}, p0, p1)

	// The field only answers projectiles; the jet pours straight through.
	if got := len(logger.EventsOfType(log.EventDamageBlocked)); got != 0 {
		t.Errorf("DamageBlocked events = %d, want 0", got)
	}
	hits := logger.EventsOfType(log.EventDamageDealt)
	if len(hits) != 1 || hits[0].Amount != 6 {
		t.Errorf("hits = %+v, want one 6-damage hit", hits)
	}
	if got := duel.State.Players[1].HP; got != 14 {
		t.Errorf("P2 HP = %d, want 14", got)
	}
}
