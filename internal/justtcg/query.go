package justtcg

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const DefaultLimit = 20

// CardQuery holds the filters of a single GET /cards lookup. Identifier fields
// take precedence over the free-text search on the API side.
type CardQuery struct {
	TCGPlayerID    string
	CardID         string
	VariantID      string
	Printing       string
	Condition      string
	Game           string
	Set            string
	OrderBy        string
	OrderDirection string
	Limit          int
	Offset         int
	Search         string
}

// Values encodes the non-empty fields. Limit defaults to 20 and offset to 0.
func (q CardQuery) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			v.Set(key, value)
		}
	}
	set("tcgplayerId", q.TCGPlayerID)
	set("cardId", q.CardID)
	set("variantId", q.VariantID)
	set("printing", q.Printing)
	set("condition", q.Condition)
	set("game", q.Game)
	set("set", q.Set)
	set("orderBy", q.OrderBy)
	set("order", strings.ToLower(q.OrderDirection))
	set("q", q.Search)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	v.Set("limit", strconv.Itoa(limit))
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	v.Set("offset", strconv.Itoa(offset))
	return v
}

// Validate normalises the condition and order direction in place.
func (q *CardQuery) Validate() error {
	if q.Condition != "" {
		c, err := NormalizeCondition(q.Condition)
		if err != nil {
			return err
		}
		q.Condition = c
	}
	if d := strings.ToLower(strings.TrimSpace(q.OrderDirection)); d != "" && d != "asc" && d != "desc" {
		return fmt.Errorf("order_direction must be asc or desc, got %q", q.OrderDirection)
	}
	return nil
}

// BatchItem is one lookup of a POST /cards batch.
type BatchItem struct {
	TCGPlayerID string `json:"tcgplayerId,omitempty"`
	CardID      string `json:"cardId,omitempty"`
	VariantID   string `json:"variantId,omitempty"`
	Printing    string `json:"printing,omitempty"`
	Condition   string `json:"condition,omitempty"`
}

// Validate requires at least one identifier and normalises the condition.
func (b *BatchItem) Validate() error {
	if b.TCGPlayerID == "" && b.CardID == "" && b.VariantID == "" {
		return fmt.Errorf("each batch query needs tcgplayerId, cardId or variantId")
	}
	if b.Condition != "" {
		c, err := NormalizeCondition(b.Condition)
		if err != nil {
			return err
		}
		b.Condition = c
	}
	return nil
}

// NormalizeCondition maps condition names and abbreviations, in any case, to
// the abbreviation the API expects.
func NormalizeCondition(condition string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(condition)) {
	case "S", "SEALED":
		return "S", nil
	case "NM", "NEAR MINT":
		return "NM", nil
	case "LP", "LIGHTLY PLAYED":
		return "LP", nil
	case "MP", "MODERATELY PLAYED":
		return "MP", nil
	case "HP", "HEAVILY PLAYED":
		return "HP", nil
	case "D", "DMG", "DAMAGED":
		return "DMG", nil
	default:
		return "", fmt.Errorf("unknown condition %q: use Sealed, Near Mint, Lightly Played, Moderately Played, Heavily Played, Damaged or S, NM, LP, MP, HP, DMG", condition)
	}
}
