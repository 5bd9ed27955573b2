package game

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSnapshotRestoreRoundtrip(t *testing.T) {
	// Three turns leave plenty of mid-game texture: a damaged wall, a
	// ticking miner, spent energy, and history.
	p0 := NewScriptedController(t, "P1").
		AddPlay("fire-wall").
		AddPlay("repair-miner")
	p1 := NewScriptedController(t, "P2").
		AddPass().AddPass().
		AddPlay("water-continuous")
	duel, _ := runDuelToCompletion(t, DuelConfig{
		Deck0:    fireDeck(),
		Deck1:    waterDeck(),
		Names:    [2]string{"Ada", "Bo"},
		MaxTurns: 3,
	}, p0, p1)

	snap, err := duel.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	restored, err := RestoreGameState(snap, StandardCatalog())
	if err != nil {
		t.Fatalf("RestoreGameState: %v", err)
	}

	orig := duel.State
	if restored.ID != orig.ID {
		t.Errorf("ID = %q, want %q", restored.ID, orig.ID)
	}
	if restored.Turn.Number != orig.Turn.Number {
		t.Errorf("turn = %d, want %d", restored.Turn.Number, orig.Turn.Number)
	}
	if len(restored.History) != len(orig.History) {
		t.Errorf("history = %d records, want %d", len(restored.History), len(orig.History))
	}

	for i := range orig.Players {
		op, rp := orig.Players[i], restored.Players[i]
		if rp.Name != op.Name || rp.HP != op.HP || rp.Energy != op.Energy {
			t.Errorf("player %d = %s %d HP %d energy, want %s %d HP %d energy",
				i, rp.Name, rp.HP, rp.Energy, op.Name, op.HP, op.Energy)
		}
		if len(rp.Hand) != len(op.Hand) {
			t.Fatalf("player %d hand = %d cards, want %d", i, len(rp.Hand), len(op.Hand))
		}
		for j := range op.Hand {
			if rp.Hand[j].ID != op.Hand[j].ID {
				t.Errorf("player %d hand[%d] = %s, want %s", i, j, rp.Hand[j].ID, op.Hand[j].ID)
			}
		}
		switch {
		case (op.Wall == nil) != (rp.Wall == nil):
			t.Errorf("player %d wall presence differs", i)
		case op.Wall != nil:
			if rp.Wall.CardID != op.Wall.CardID || rp.Wall.HP != op.Wall.HP || rp.Wall.MaxHP != op.Wall.MaxHP {
				t.Errorf("player %d wall = %+v, want %+v", i, rp.Wall, op.Wall)
			}
		}
		switch {
		case (op.Miner == nil) != (rp.Miner == nil):
			t.Errorf("player %d miner presence differs", i)
		case op.Miner != nil:
			if rp.Miner.CardID != op.Miner.CardID || rp.Miner.Countdown != op.Miner.Countdown ||
				rp.Miner.Interval != op.Miner.Interval || rp.Miner.Kind != op.Miner.Kind {
				t.Errorf("player %d miner = %+v, want %+v", i, rp.Miner, op.Miner)
			}
		}
	}

	// A restored state snapshots back to the same bytes.
	again, err := restored.Snapshot()
	if err != nil {
		t.Fatalf("second Snapshot: %v", err)
	}
	if !bytes.Equal(snap, again) {
		t.Errorf("snapshot not stable across a restore:\n%s\nvs\n%s", snap, again)
	}
}

// mutateSnapshot decodes snapshot JSON to a generic map, applies the
// mutation, and re-encodes it.
func mutateSnapshot(t *testing.T, data []byte, mutate func(m map[string]any)) []byte {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	mutate(m)
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("remarshal snapshot: %v", err)
	}
	return out
}

func player0(m map[string]any) map[string]any {
	return m["players"].([]any)[0].(map[string]any)
}

func TestRestoreRejectsMalformedSnapshots(t *testing.T) {
	base, err := NewGameState("Ada", "Bo").Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if _, err := RestoreGameState(base, StandardCatalog()); err != nil {
		t.Fatalf("clean snapshot rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"missing game ID", func(m map[string]any) { m["id"] = "" }},
		{"winner out of range", func(m map[string]any) { m["winner"] = 9 }},
		{"game phase out of range", func(m map[string]any) { m["phase"] = 42 }},
		{"turn phase out of range", func(m map[string]any) {
			m["turn"].(map[string]any)["phase"] = 9
		}},
		{"negative HP", func(m map[string]any) { player0(m)["hp"] = -1 }},
		{"negative energy", func(m map[string]any) { player0(m)["energy"] = -2 }},
		{"oversized hand", func(m map[string]any) {
			player0(m)["hand"] = []any{
				"fire-wall", "fire-deflection", "fire-continuous", "fire-projectile",
				"deflection-miner", "repair-miner", "projectile-miner",
			}
		}},
		{"unknown hand card", func(m map[string]any) {
			player0(m)["hand"] = []any{"no-such-card"}
		}},
		{"unknown selection", func(m map[string]any) {
			player0(m)["selected"] = "no-such-card"
		}},
		{"wall HP above the card's strength", func(m map[string]any) {
			player0(m)["wall"] = map[string]any{"card_id": "fire-wall", "hp": 11, "turn_placed": 1}
		}},
		{"wall HP zero", func(m map[string]any) {
			player0(m)["wall"] = map[string]any{"card_id": "fire-wall", "hp": 0, "turn_placed": 1}
		}},
		{"wall card is not a wall", func(m map[string]any) {
			player0(m)["wall"] = map[string]any{"card_id": "fire-continuous", "hp": 5, "turn_placed": 1}
		}},
		{"miner countdown above its interval", func(m map[string]any) {
			player0(m)["miner"] = map[string]any{"card_id": "repair-miner", "countdown": 4, "turn_placed": 1}
		}},
		{"miner countdown zero", func(m map[string]any) {
			player0(m)["miner"] = map[string]any{"card_id": "repair-miner", "countdown": 0, "turn_placed": 1}
		}},
		{"miner card is not a miner", func(m map[string]any) {
			player0(m)["miner"] = map[string]any{"card_id": "fire-wall", "countdown": 1, "turn_placed": 1}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := mutateSnapshot(t, base, tc.mutate)
			if _, err := RestoreGameState(data, StandardCatalog()); err == nil {
				t.Error("malformed snapshot restored without error")
			}
		})
	}

	t.Run("truncated JSON", func(t *testing.T) {
		if _, err := RestoreGameState(base[:len(base)-2], StandardCatalog()); err == nil {
			t.Error("truncated snapshot restored without error")
		}
	})
}
