package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// standardCards lists every constructor in the standard set.
var standardCards = []func() *Card{
	MagmaRampart, TidalBulwark, GranitePalisade, CycloneBarrier,
	EmberVeil, MistScreen, Dustcloak, UpdraftWard,
	InfernoRay, MaelstromJet, SandblastStream, ShearGale,
	CinderBolt, HailDart, BoulderSling, JavelinGust,
	AegisTurbine, MasonGolem, MortarImp, GeyserEngine,
}

// Catalog is the set of cards available to a game, indexed by ID. Cards are
// shared by reference; nothing mutates them after construction.
type Catalog struct {
	byID  map[string]*Card
	cards []*Card // insertion order, kept stable for deterministic drafts
}

// NewCatalog builds a catalog from the given cards, rejecting empty or
// duplicate IDs and type/subtype mismatches.
func NewCatalog(cards []*Card) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Card, len(cards))}
	for _, card := range cards {
		if card.ID == "" {
			return nil, fmt.Errorf("card %q has no ID", card.Name)
		}
		if _, exists := c.byID[card.ID]; exists {
			return nil, fmt.Errorf("duplicate card ID %q", card.ID)
		}
		if card.Type != card.Subtype.CardType() {
			return nil, fmt.Errorf("card %q: type %s does not match subtype %s", card.ID, card.Type, card.Subtype)
		}
		if card.Cost < 0 {
			return nil, fmt.Errorf("card %q has negative cost", card.ID)
		}
		c.byID[card.ID] = card
		c.cards = append(c.cards, card)
	}
	return c, nil
}

// StandardCatalog returns the built-in twenty-card set.
func StandardCatalog() *Catalog {
	cards := make([]*Card, 0, len(standardCards))
	for _, ctor := range standardCards {
		cards = append(cards, ctor())
	}
	c, err := NewCatalog(cards)
	if err != nil {
		panic(fmt.Sprintf("standard catalog invalid: %v", err))
	}
	return c
}

// ByID looks up a card by ID. Used on untrusted input (wire messages,
// saved games); internal code that holds an ID it created uses MustByID.
func (c *Catalog) ByID(id string) (*Card, error) {
	card, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown card ID %q", id)
	}
	return card, nil
}

// MustByID looks up a card by ID and panics if it is not found.
func (c *Catalog) MustByID(id string) *Card {
	card, ok := c.byID[id]
	if !ok {
		panic(fmt.Sprintf("card not found in catalog: %q", id))
	}
	return card
}

// Cards returns all cards in insertion order.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// BySubtype returns all cards of the given subtype, in insertion order.
func (c *Catalog) BySubtype(s Subtype) []*Card {
	var out []*Card
	for _, card := range c.cards {
		if card.Subtype == s {
			out = append(out, card)
		}
	}
	return out
}

// ByType returns all cards of the given type, in insertion order.
func (c *Catalog) ByType(t CardType) []*Card {
	var out []*Card
	for _, card := range c.cards {
		if card.Type == t {
			out = append(out, card)
		}
	}
	return out
}

func (c *Catalog) Size() int {
	return len(c.cards)
}

// --- YAML catalog files ---

// CatalogFile represents the top-level YAML structure.
type CatalogFile struct {
	Cards []CatalogEntry `yaml:"cards"`
}

// CatalogEntry represents a single card in the YAML file. The card type is
// derived from the subtype.
type CatalogEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Element     string `yaml:"element"`
	Subtype     string `yaml:"subtype"`
	Cost        int    `yaml:"cost"`
	Power       int    `yaml:"power"`
	Description string `yaml:"description"`
}

// LoadCatalogFile parses a YAML card catalog.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	var cards []*Card
	for _, entry := range cf.Cards {
		elem, err := ParseElement(entry.Element)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", entry.ID, err)
		}
		sub, err := ParseSubtype(entry.Subtype)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", entry.ID, err)
		}
		cards = append(cards, &Card{
			ID:          entry.ID,
			Name:        entry.Name,
			Element:     elem,
			Type:        sub.CardType(),
			Subtype:     sub,
			Cost:        entry.Cost,
			Power:       entry.Power,
			Description: entry.Description,
		})
	}

	return NewCatalog(cards)
}
