package types

import (
	"strings"

	"github.com/roivaz/tcg-mcp/internal/tcgdex"
)

// CardMap flattens a full card into the tool output shape. Absent, empty and
// false fields are dropped.
func CardMap(c *tcgdex.Card, img ImageOptions) map[string]any {
	out := map[string]any{
		"illustrator":    c.Illustrator,
		"rarity":         c.Rarity,
		"category":       c.Category,
		"variants":       VariantNames(c.Variants),
		"hp":             c.HP.Value(),
		"types":          strings.Join(c.Types, ", "),
		"evolvesFrom":    c.EvolveFrom,
		"description":    c.Description,
		"level":          c.Level.Value(),
		"stage":          c.Stage,
		"suffix":         c.Suffix,
		"abilities":      abilities(c.Abilities),
		"attacks":        attacks(c.Attacks),
		"weaknesses":     modifiers(c.Weaknesses),
		"resistances":    modifiers(c.Resistances),
		"effect":         c.Effect,
		"trainerType":    c.TrainerType,
		"energyType":     c.EnergyType,
		"regulationMark": c.RegulationMark,
		"legal":          LegalString(c.Legal),
		"id":             c.ID,
		"localId":        c.LocalID,
		"name":           c.Name,
		"image":          img.URL(c.Image),
		"boosters":       boosters(c.Boosters),
	}
	if c.Set.ID != "" {
		out["set"] = SetResumeMap(c.Set, img)
	}
	if c.Item != nil {
		out["item"] = compact(map[string]any{"name": c.Item.Name, "effect": c.Item.Effect})
	}
	if c.Retreat != nil {
		out["retreat"] = *c.Retreat
	}
	return compact(out)
}

func CardResumeMap(c tcgdex.CardResume, img ImageOptions) map[string]any {
	return compact(map[string]any{
		"id":      c.ID,
		"localId": c.LocalID,
		"name":    c.Name,
		"image":   img.URL(c.Image),
	})
}

// VariantNames lists the print variants flagged true.
func VariantNames(v tcgdex.Variants) []string {
	var names []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"normal", v.Normal},
		{"reverse", v.Reverse},
		{"holo", v.Holo},
		{"firstEdition", v.FirstEdition},
		{"wPromo", v.WPromo},
	} {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}

// LegalString joins the formats a card or set is legal in, "" when none.
func LegalString(l tcgdex.Legal) string {
	var formats []string
	if l.Standard {
		formats = append(formats, "standard")
	}
	if l.Expanded {
		formats = append(formats, "expanded")
	}
	return strings.Join(formats, ", ")
}

func abilities(in []tcgdex.Ability) []map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(in))
	for _, a := range in {
		out = append(out, compact(map[string]any{
			"type":   a.Type,
			"name":   a.Name,
			"effect": a.Effect,
		}))
	}
	return out
}

func attacks(in []tcgdex.Attack) []map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(in))
	for _, a := range in {
		out = append(out, compact(map[string]any{
			"cost":   a.Cost,
			"name":   a.Name,
			"damage": a.Damage.Value(),
			"effect": a.Effect,
		}))
	}
	return out
}

func modifiers(in []tcgdex.TypeModifier) []map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(in))
	for _, m := range in {
		out = append(out, compact(map[string]any{"type": m.Type, "value": m.Value}))
	}
	return out
}

func boosters(in []tcgdex.Booster) []map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(in))
	for _, b := range in {
		out = append(out, compact(map[string]any{"id": b.ID, "name": b.Name}))
	}
	return out
}
