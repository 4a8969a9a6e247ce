package types

import "github.com/roivaz/tcg-mcp/internal/tcgdex"

func SetResumeMap(s tcgdex.SetResume, img ImageOptions) map[string]any {
	return compact(map[string]any{
		"id":     s.ID,
		"name":   s.Name,
		"logo":   img.URL(s.Logo),
		"symbol": img.URL(s.Symbol),
		"cardCount": map[string]any{
			"total":    s.CardCount.Total,
			"official": s.CardCount.Official,
		},
	})
}

func SetMap(s *tcgdex.Set, img ImageOptions) map[string]any {
	out := SetResumeMap(s.SetResume, img)
	out["tcgOnline"] = s.TCGOnline
	out["releaseDate"] = s.ReleaseDate
	out["legal"] = LegalString(s.Legal)
	out["serie"] = compact(map[string]any{"id": s.Serie.ID, "name": s.Serie.Name})
	if len(s.Cards) > 0 {
		cards := make([]map[string]any, 0, len(s.Cards))
		for _, c := range s.Cards {
			cards = append(cards, CardResumeMap(c, img))
		}
		out["cards"] = cards
	}
	return compact(out)
}

func SerieResumeMap(s tcgdex.SerieResume, img ImageOptions) map[string]any {
	return compact(map[string]any{
		"id":   s.ID,
		"name": s.Name,
		"logo": img.URL(s.Logo),
	})
}

func SerieMap(s *tcgdex.Serie, img ImageOptions) map[string]any {
	out := SerieResumeMap(s.SerieResume, img)
	out["releaseDate"] = s.ReleaseDate
	if len(s.Sets) > 0 {
		sets := make([]map[string]any, 0, len(s.Sets))
		for _, set := range s.Sets {
			sets = append(sets, SetResumeMap(set, img))
		}
		out["sets"] = sets
	}
	return compact(out)
}
