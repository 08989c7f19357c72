package models

import "strings"

const (
	listingBaseURL = "https://rent.591.com.tw/"
	elevatorTag    = "有電梯"
	defaultKind    = "整層住家"
)

// RawRecord is one unprocessed search-result entry. The source has
// shipped two record shapes over time (the legacy JSON API and the
// current server-rendered Nuxt payload); each shape is its own adapter
// implementing this contract, selected by the transport that produced
// the record rather than by sniffing fields.
type RawRecord interface {
	// Normalize maps the raw record into the canonical Listing shape.
	// It is pure and never fails: missing or malformed fields default
	// to empty/zero values.
	Normalize() Listing
}

// NuxtItem is a search-result entry as embedded in the rendered page's
// window.__NUXT__.data payload. Numeric fields arrive as either JSON
// numbers or strings depending on the field and page, hence `any`.
type NuxtItem struct {
	ID          any      `json:"id"`
	Title       string   `json:"title"`
	Price       any      `json:"price"`
	Address     string   `json:"address"`
	Area        any      `json:"area"`
	AreaName    string   `json:"area_name"`
	FloorName   string   `json:"floor_name"`
	KindName    string   `json:"kind_name"`
	LayoutStr   string   `json:"layoutStr"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	Cover       string   `json:"cover"`
	RefreshTime string   `json:"refresh_time"`
}

func (it NuxtItem) Normalize() Listing {
	id := asString(it.ID)
	price, numeric, priceRaw := coercePrice(it.Price)
	areaVal, areaRaw := coerceArea(it.Area)

	areaText := it.AreaName
	if areaText == "" {
		areaText = areaRaw
	}

	kind := it.KindName
	if kind == "" {
		kind = defaultKind
	}

	u := it.URL
	if u == "" && id != "" {
		u = listingBaseURL + id
	}

	return Listing{
		ID:           id,
		Title:        it.Title,
		Price:        price,
		PriceNumeric: numeric,
		PriceText:    priceRaw,
		Address:      it.Address,
		AreaText:     areaText,
		AreaValue:    areaVal,
		FloorText:    it.FloorName,
		FloorValue:   parseFloor(it.FloorName),
		HasElevator:  hasTag(it.Tags, elevatorTag),
		RoomLabel:    it.LayoutStr,
		KindLabel:    kind,
		URL:          u,
		PhotoURL:     it.Cover,
		RefreshTime:  it.RefreshTime,
	}
}

// APIRecord is a search-result entry from the source's legacy JSON API.
// All scalar fields are strings there, floors use the same "4F/8F"
// labels, and amenity tags arrive comma-joined.
type APIRecord struct {
	PostID   any    `json:"post_id"`
	Title    string `json:"address_title"`
	Price    string `json:"price"`
	Address  string `json:"section_street"`
	Area     string `json:"area"`
	AreaName string `json:"area_title"`
	FloorStr string `json:"floor_str"`
	KindName string `json:"kind_name"`
	Layout   string `json:"layout_name"`
	Tags     string `json:"tag_names"`
	PhotoURL string `json:"photo_url"`
}

func (r APIRecord) Normalize() Listing {
	id := asString(r.PostID)
	price, numeric, priceRaw := coercePrice(r.Price)
	areaVal, areaRaw := coerceArea(r.Area)

	areaText := r.AreaName
	if areaText == "" {
		areaText = areaRaw
	}

	kind := r.KindName
	if kind == "" {
		kind = defaultKind
	}

	var u string
	if id != "" {
		u = listingBaseURL + id
	}

	return Listing{
		ID:           id,
		Title:        r.Title,
		Price:        price,
		PriceNumeric: numeric,
		PriceText:    priceRaw,
		Address:      r.Address,
		AreaText:     areaText,
		AreaValue:    areaVal,
		FloorText:    r.FloorStr,
		FloorValue:   parseFloor(r.FloorStr),
		HasElevator:  containsTag(r.Tags, elevatorTag),
		RoomLabel:    r.Layout,
		KindLabel:    kind,
		URL:          u,
		PhotoURL:     r.PhotoURL,
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// containsTag matches a tag inside the legacy API's comma-joined tag
// string ("有冷氣,有電梯" or with the fullwidth 、 separator).
func containsTag(joined, want string) bool {
	fields := strings.FieldsFunc(joined, func(r rune) bool {
		return r == ',' || r == '、'
	})
	for _, t := range fields {
		if strings.TrimSpace(t) == want {
			return true
		}
	}
	return false
}
