package onepassword

import (
	"encoding/json"
	"fmt"
)

// Item is the structure returned by op item get --format json
type Item struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Notes    string   `json:"notes,omitempty"`
	Tags     []string `json:"tags"`
	Vault    struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"vault"`
	Fields []ItemField `json:"fields,omitempty"`
	URLs   []ItemURL   `json:"urls,omitempty"`
}

// ItemField is one field of an item.
type ItemField struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
	Label   string `json:"label"`
	Value   string `json:"value,omitempty"`
}

// ItemURL is one website attached to an item.
type ItemURL struct {
	Label   string `json:"label,omitempty"`
	Primary bool   `json:"primary"`
	Href    string `json:"href"`
}

// Field returns the first field with the given label.
func (i *Item) Field(label string) (ItemField, bool) {
	for _, f := range i.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return ItemField{}, false
}

// FieldValue returns the value of the field with the given label, or "".
func (i *Item) FieldValue(label string) string {
	f, _ := i.Field(label)
	return f.Value
}

// DecodeItem parses the raw output of a successful item get.
func DecodeItem(r Result) (*Item, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	var item Item
	if err := json.Unmarshal(r.Raw, &item); err != nil {
		return nil, fmt.Errorf("failed to parse 1Password item: %w", err)
	}
	return &item, nil
}

// DecodeItems parses the raw output of a successful item list.
func DecodeItems(r Result) ([]Item, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	if len(r.Raw) == 0 {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(r.Raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse 1Password item list: %w", err)
	}
	return items, nil
}
