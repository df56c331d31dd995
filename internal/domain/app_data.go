package domain

import "encoding/json"

// AppData is the single persisted document holding every card and category.
// Card ids are unique; categories referenced by cards need not be listed.
type AppData struct {
	Cards      []Card   `json:"cards"`
	Categories []string `json:"categories"`
}

// EmptyAppData returns the document served before anything has been saved.
func EmptyAppData() *AppData {
	return &AppData{
		Cards:      []Card{},
		Categories: []string{},
	}
}

// UnmarshalJSON decodes the document and replaces missing arrays with empty ones.
func (d *AppData) UnmarshalJSON(data []byte) error {
	type plain AppData
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Cards == nil {
		decoded.Cards = []Card{}
	}
	if decoded.Categories == nil {
		decoded.Categories = []string{}
	}
	*d = AppData(decoded)
	return nil
}

// Clone returns a deep copy of the document.
func (d *AppData) Clone() *AppData {
	if d == nil {
		return EmptyAppData()
	}
	out := &AppData{
		Cards:      make([]Card, len(d.Cards)),
		Categories: make([]string, len(d.Categories)),
	}
	for i, c := range d.Cards {
		out.Cards[i] = c.Clone()
	}
	copy(out.Categories, d.Categories)
	return out
}

// FindCard returns the card with the given id.
func (d *AppData) FindCard(id string) (Card, bool) {
	for _, c := range d.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// HasCategory reports an exact match in the category set.
func (d *AppData) HasCategory(name string) bool {
	for _, c := range d.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ActiveCards returns the non-archived cards in document order.
func (d *AppData) ActiveCards() []Card {
	active := make([]Card, 0, len(d.Cards))
	for _, c := range d.Cards {
		if c.IsActive() {
			active = append(active, c)
		}
	}
	return active
}
