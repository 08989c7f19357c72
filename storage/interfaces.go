package storage

import "github.com/a05031113/rent-scrapper/models"

// SeenStore persists the set of listing IDs already acted upon.
type SeenStore interface {
	Load() *SeenSet
	Save(set *SeenSet) error
}

// PendingStore persists listings that matched all filters but were not
// delivered because the per-run batch was exhausted.
type PendingStore interface {
	Load() []models.Listing
	Save(listings []models.Listing) error
}
