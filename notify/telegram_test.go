package notify

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/a05031113/rent-scrapper/config"
	"github.com/a05031113/rent-scrapper/models"
	"github.com/a05031113/rent-scrapper/utils"
)

// testConfig returns a config with no credentials so the notifier runs
// as a log-only no-op, and with pacing disabled.
func testConfig() *config.Config {
	return &config.Config{
		BatchSize:         10,
		MessageIntervalMs: 0,
	}
}

func newTestNotifier() *Notifier {
	return New(testConfig(), utils.NewLogger(false))
}

func TestNotifierDisabledWithoutCredentials(t *testing.T) {
	n := newTestNotifier()
	if n.Enabled() {
		t.Error("Enabled() = true without credentials; want false")
	}
}

func TestDeliverReturnsOverflow(t *testing.T) {
	n := newTestNotifier()

	ranked := make([]models.Listing, 15)
	for i := range ranked {
		ranked[i] = models.Listing{ID: strconv.Itoa(1000 - i), Title: "t"}
	}

	remainder := n.Deliver(context.Background(), ranked)

	if len(remainder) != 5 {
		t.Fatalf("remainder = %d listings; want 5", len(remainder))
	}
	// The remainder is everything beyond the batch, in ranked order.
	if remainder[0].ID != ranked[10].ID {
		t.Errorf("remainder starts at %s; want %s", remainder[0].ID, ranked[10].ID)
	}
}

func TestDeliverSmallBatchNoOverflow(t *testing.T) {
	n := newTestNotifier()

	remainder := n.Deliver(context.Background(), make([]models.Listing, 10))
	if len(remainder) != 0 {
		t.Errorf("remainder = %d listings for an exact batch; want 0", len(remainder))
	}

	if got := n.Deliver(context.Background(), nil); got != nil {
		t.Errorf("Deliver(nil) = %v; want nil", got)
	}
}

func TestFormatListingFull(t *testing.T) {
	l := models.Listing{
		ID:           "12345",
		Title:        "近捷運兩房",
		Price:        28000,
		PriceNumeric: true,
		Address:      "台北市大安區",
		AreaText:     "18.5坪",
		FloorText:    "2F/5F",
		HasElevator:  true,
		RoomLabel:    "2房1廳",
		URL:          "https://rent.591.com.tw/12345",
	}

	msg := FormatListing(&l)

	for _, want := range []string{
		"🏠 <b>近捷運兩房</b>",
		"💰 28,000 元/月",
		"📍 台北市大安區",
		"📐 18.5坪",
		"🏢 2F/5F（有電梯）",
		"🛏 2房1廳",
		`<a href="https://rent.591.com.tw/12345">查看詳情</a>`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatListingOmitsAbsentFields(t *testing.T) {
	l := models.Listing{
		ID:    "7",
		Title: "極簡房源",
		URL:   "https://rent.591.com.tw/7",
	}

	msg := FormatListing(&l)

	for _, banned := range []string{"💰", "📍", "📐", "🏢", "🛏"} {
		if strings.Contains(msg, banned) {
			t.Errorf("message shows %q for an absent field:\n%s", banned, msg)
		}
	}
}

func TestFormatListingNoElevator(t *testing.T) {
	l := models.Listing{Title: "t", FloorText: "3F/5F", URL: "u"}
	if msg := FormatListing(&l); !strings.Contains(msg, "3F/5F（無電梯）") {
		t.Errorf("message missing no-elevator label:\n%s", msg)
	}
}

func TestFormatListingMaskedPrice(t *testing.T) {
	l := models.Listing{Title: "t", PriceText: "面議", URL: "u"}
	if msg := FormatListing(&l); !strings.Contains(msg, "💰 面議 元/月") {
		t.Errorf("message missing masked price text:\n%s", msg)
	}
}

func TestFormatListingEscapesHTML(t *testing.T) {
	l := models.Listing{Title: "a <b> & c", URL: "u"}
	msg := FormatListing(&l)
	if !strings.Contains(msg, "a &lt;b&gt; &amp; c") {
		t.Errorf("title not escaped:\n%s", msg)
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{28000, "28,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatThousands(tt.in); got != tt.want {
			t.Errorf("formatThousands(%d) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
