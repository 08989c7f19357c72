package services

import (
	"sort"

	"github.com/a05031113/rent-scrapper/models"
)

// Rank orders listings in place by user preference, in strict priority:
// newest first (posted marker, the numeric ID), then larger area, then
// lower rent. The sort is stable so equal keys keep their input order.
func Rank(listings []models.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := &listings[i], &listings[j]
		if am, bm := a.PostedMarker(), b.PostedMarker(); am != bm {
			return am > bm
		}
		if a.AreaValue != b.AreaValue {
			return a.AreaValue > b.AreaValue
		}
		return a.Price < b.Price
	})
}
