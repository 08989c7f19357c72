package services

import (
	"strings"

	"github.com/a05031113/rent-scrapper/models"
	"github.com/a05031113/rent-scrapper/storage"
	"github.com/a05031113/rent-scrapper/utils"
)

// Livability rules re-checked client-side. The search query already
// narrows price and size, but the source does not expose the
// elevator/floor interaction, open-plan layouts, or an exact size floor
// as query parameters, so normalized fields are checked again here.
const (
	maxMonthlyRent          = 30000
	maxFloorWithoutElevator = 3
	minAreaPing             = 15.0
	openPlanMarker          = "開放式"
)

// FilterEngine deduplicates raw records against the persistent seen set
// and applies the livability predicate chain.
type FilterEngine struct {
	logger *utils.Logger
}

// NewFilterEngine creates a FilterEngine with the given logger.
func NewFilterEngine(logger *utils.Logger) *FilterEngine {
	return &FilterEngine{logger: logger}
}

// Select normalizes each record and keeps those that pass every rule.
// Surviving IDs are added to seen, so a listing matched by two
// overlapping profiles in one run is kept only the first time — and a
// listing is considered consumed even if its delivery later fails.
func (e *FilterEngine) Select(records []models.RawRecord, seen *storage.SeenSet) []models.Listing {
	kept := make([]models.Listing, 0, len(records))

	for _, r := range records {
		l := r.Normalize()
		if l.ID == "" {
			e.logger.Debug("[filter] drop record with empty id: %s", l.Title)
			continue
		}
		if seen.Contains(l.ID) {
			e.logger.Debug("[filter] drop %s: already seen", l.ID)
			continue
		}
		if reason := rejectReason(&l); reason != "" {
			e.logger.Debug("[filter] drop %s: %s", l.ID, reason)
			continue
		}
		seen.Add(l.ID)
		kept = append(kept, l)
	}

	e.logger.Info("[filter] %d records → %d new matching listings", len(records), len(kept))
	return kept
}

// rejectReason runs the predicate chain and names the first failing
// rule, or returns "" when the listing passes all of them. Predicates
// are independent; the order only short-circuits.
func rejectReason(l *models.Listing) string {
	if !priceInRange(l) {
		return "price out of range"
	}
	if !floorAccessible(l) {
		return "no elevator above floor 3"
	}
	if !notOpenPlan(l) {
		return "open-plan layout"
	}
	if !largeEnough(l) {
		return "below minimum size"
	}
	return ""
}

// priceInRange double-checks the rent bound against the parsed price.
// Masked/negotiable prices are not numeric and pass through: the bound
// cannot be applied to an unknown amount.
func priceInRange(l *models.Listing) bool {
	if !l.PriceNumeric {
		return true
	}
	return l.Price > 0 && l.Price <= maxMonthlyRent
}

// floorAccessible rejects walk-ups above the third floor.
func floorAccessible(l *models.Listing) bool {
	return l.HasElevator || l.FloorValue <= maxFloorWithoutElevator
}

func notOpenPlan(l *models.Listing) bool {
	return !strings.Contains(l.RoomLabel, openPlanMarker)
}

func largeEnough(l *models.Listing) bool {
	return l.AreaValue >= minAreaPing
}
