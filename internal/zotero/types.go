package zotero

// Item is a bibliographic record as returned by the library API. Bib is
// only populated when the request asked for formatted citations.
type Item struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Bib     string   `json:"bib,omitempty"`
	Data    ItemData `json:"data"`
}

// ItemData holds the record fields this tool reads. Absent fields decode to
// their zero value; absence is not an error.
type ItemData struct {
	Key              string   `json:"key,omitempty"`
	Version          int      `json:"version,omitempty"`
	ItemType         string   `json:"itemType,omitempty"`
	Title            string   `json:"title,omitempty"`
	PublicationTitle string   `json:"publicationTitle,omitempty"`
	Date             string   `json:"date,omitempty"`
	Tags             []TagRef `json:"tags"`
}

// TagRef is one tag attached to an item. Type distinguishes manual from
// automatic tags; this tool treats them alike.
type TagRef struct {
	Tag  string `json:"tag"`
	Type int    `json:"type,omitempty"`
}

// HasTag reports whether the item carries the exact tag value.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Data.Tags {
		if t.Tag == tag {
			return true
		}
	}
	return false
}

// TagNames returns the item's tag values in stored order.
func (i Item) TagNames() []string {
	names := make([]string, len(i.Data.Tags))
	for j, t := range i.Data.Tags {
		names[j] = t.Tag
	}
	return names
}

// tagEntry is one element of a /tags listing.
type tagEntry struct {
	Tag string `json:"tag"`
}
