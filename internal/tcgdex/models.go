package tcgdex

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CardResume is the short form returned by card listings.
type CardResume struct {
	ID      string `json:"id"`
	LocalID string `json:"localId"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
}

type CardCount struct {
	Total    int `json:"total"`
	Official int `json:"official"`
	Normal   int `json:"normal,omitempty"`
	Reverse  int `json:"reverse,omitempty"`
	Holo     int `json:"holo,omitempty"`
	FirstEd  int `json:"firstEd,omitempty"`
}

// SetResume is the short form of a set, embedded in cards and series.
type SetResume struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo,omitempty"`
	Symbol    string    `json:"symbol,omitempty"`
	CardCount CardCount `json:"cardCount"`
}

type SerieResume struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Legal flags the formats a card or set may be played in.
type Legal struct {
	Standard bool `json:"standard"`
	Expanded bool `json:"expanded"`
}

type Set struct {
	SetResume
	Serie       SerieResume  `json:"serie"`
	TCGOnline   string       `json:"tcgOnline,omitempty"`
	ReleaseDate string       `json:"releaseDate,omitempty"`
	Legal       Legal        `json:"legal"`
	Cards       []CardResume `json:"cards,omitempty"`
}

type Serie struct {
	SerieResume
	ReleaseDate string      `json:"releaseDate,omitempty"`
	Sets        []SetResume `json:"sets,omitempty"`
}

type Variants struct {
	Normal       bool `json:"normal"`
	Reverse      bool `json:"reverse"`
	Holo         bool `json:"holo"`
	FirstEdition bool `json:"firstEdition"`
	WPromo       bool `json:"wPromo"`
}

type Attack struct {
	Cost   []string  `json:"cost,omitempty"`
	Name   string    `json:"name"`
	Effect string    `json:"effect,omitempty"`
	Damage FlexValue `json:"damage,omitempty"`
}

type Ability struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

// TypeModifier is a weakness or resistance entry.
type TypeModifier struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

type Item struct {
	Name   string `json:"name"`
	Effect string `json:"effect"`
}

type Booster struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Card is the full card object returned by /cards/{id}.
type Card struct {
	CardResume
	Category       string         `json:"category"`
	Illustrator    string         `json:"illustrator,omitempty"`
	Rarity         string         `json:"rarity,omitempty"`
	Set            SetResume      `json:"set"`
	Variants       Variants       `json:"variants"`
	HP             FlexValue      `json:"hp,omitempty"`
	Types          []string       `json:"types,omitempty"`
	EvolveFrom     string         `json:"evolveFrom,omitempty"`
	Description    string         `json:"description,omitempty"`
	Level          FlexValue      `json:"level,omitempty"`
	Stage          string         `json:"stage,omitempty"`
	Suffix         string         `json:"suffix,omitempty"`
	Item           *Item          `json:"item,omitempty"`
	Abilities      []Ability      `json:"abilities,omitempty"`
	Attacks        []Attack       `json:"attacks,omitempty"`
	Weaknesses     []TypeModifier `json:"weaknesses,omitempty"`
	Resistances    []TypeModifier `json:"resistances,omitempty"`
	Retreat        *int           `json:"retreat,omitempty"`
	Effect         string         `json:"effect,omitempty"`
	TrainerType    string         `json:"trainerType,omitempty"`
	EnergyType     string         `json:"energyType,omitempty"`
	RegulationMark string         `json:"regulationMark,omitempty"`
	Legal          Legal          `json:"legal"`
	Boosters       []Booster      `json:"boosters,omitempty"`
}

// FlexValue holds a field the API emits either as a number or a string
// (attack damage "30+", hp 120, level "X").
type FlexValue string

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FlexValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FlexValue(n.String())
	return nil
}

func (v FlexValue) MarshalJSON() ([]byte, error) {
	if n, ok := v.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(v))
}

// Int reports the value as an integer when it is purely numeric.
func (v FlexValue) Int() (int, bool) {
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Value returns an int for numeric values, the raw string otherwise, and nil when empty.
func (v FlexValue) Value() any {
	if v == "" {
		return nil
	}
	if n, ok := v.Int(); ok {
		return n
	}
	return string(v)
}
