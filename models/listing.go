package models

// Listing is the canonical rental record produced by normalization.
// It is immutable once constructed and is the shape persisted in the
// pending-queue file, so the JSON tags are part of the on-disk format.
type Listing struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Price is the monthly rent when the source value was numeric.
	// PriceNumeric is false for masked/negotiable prices ("面議" etc.);
	// in that case Price is 0 and PriceText keeps the raw source text.
	// Numeric filters must skip listings with PriceNumeric == false.
	Price        int    `json:"price"`
	PriceNumeric bool   `json:"price_numeric"`
	PriceText    string `json:"price_text,omitempty"`

	Address   string  `json:"address"`
	AreaText  string  `json:"area_text,omitempty"`
	AreaValue float64 `json:"area_value"`

	// FloorText is the raw label ("4F/8F"); FloorValue is the parsed
	// current floor, 0 for basements and unparseable labels.
	FloorText  string `json:"floor_text,omitempty"`
	FloorValue int    `json:"floor_value"`

	HasElevator bool   `json:"has_elevator"`
	RoomLabel   string `json:"room_label,omitempty"`
	KindLabel   string `json:"kind_label,omitempty"`

	URL         string `json:"url"`
	PhotoURL    string `json:"photo_url,omitempty"`
	RefreshTime string `json:"refresh_time,omitempty"`
}

// PostedMarker returns the recency ordinal used for ranking. Source IDs
// increase with posting time, so the numeric ID doubles as the marker;
// non-numeric IDs rank as 0 (oldest).
func (l *Listing) PostedMarker() int64 {
	return IDOrdinal(l.ID)
}
