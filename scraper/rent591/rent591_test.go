package rent591

import (
	"strings"
	"testing"
	"time"

	"github.com/a05031113/rent-scrapper/config"
	"github.com/a05031113/rent-scrapper/utils"
)

func newTestScraper() *Scraper {
	cfg := &config.Config{
		PageSize:       30,
		MaxPages:       5,
		MaxRetries:     3,
		PageDelayMinMs: 2000,
		PageDelayMaxMs: 4000,
		Filter:         config.DefaultFilter(),
	}
	return New(cfg, utils.NewLogger(false))
}

func TestSearchURLFirstPage(t *testing.T) {
	s := newTestScraper()
	profile := config.SearchProfile{Label: "永和", Region: 3, Section: "37"}

	u := s.searchURL(profile, 0)

	if !strings.HasPrefix(u, "https://rent.591.com.tw/list?") {
		t.Fatalf("unexpected base: %s", u)
	}
	for _, want := range []string{
		"kind=1",
		"layout=2,3,4",
		"rentprice=0,30000",
		"area=10,50",
		"other=not_cover,near_subway,cook",
		"option=cold,washer,icebox",
		"order=posttime",
		"orderType=desc",
		"region=3",
		"section=37",
	} {
		if !strings.Contains(u, want) {
			t.Errorf("url missing %q: %s", want, u)
		}
	}
	if strings.Contains(u, "firstRow") {
		t.Errorf("first page url must omit firstRow: %s", u)
	}
}

func TestSearchURLPagination(t *testing.T) {
	s := newTestScraper()
	profile := config.SearchProfile{Region: 1, Section: "1,2,3"}

	u := s.searchURL(profile, 60)

	if !strings.Contains(u, "firstRow=60") {
		t.Errorf("url missing firstRow=60: %s", u)
	}
	if !strings.Contains(u, "section=1,2,3") {
		t.Errorf("sub-region list must stay comma-joined: %s", u)
	}
}

func TestPoliteDelayWithinBounds(t *testing.T) {
	s := newTestScraper()

	var slept time.Duration
	s.sleep = func(d time.Duration) { slept = d }

	s.politeDelay(2000, 4000)
	if slept < 2*time.Second || slept > 4*time.Second {
		t.Errorf("politeDelay slept %v; want within [2s, 4s]", slept)
	}

	slept = 0
	s.politeDelay(0, 0)
	if slept != 0 {
		t.Errorf("politeDelay with zero bounds slept %v; want no sleep", slept)
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{float64(123), 123},
		{"456", 456},
		{" 7 ", 7},
		{"", 0},
		{"n/a", 0},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := toInt(tt.in); got != tt.want {
			t.Errorf("toInt(%v) = %d; want %d", tt.in, got, tt.want)
		}
	}
}
