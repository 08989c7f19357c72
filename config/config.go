package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	TelegramBotToken string
	TelegramChatID   int64

	SeenFile    string
	PendingFile string

	PageSize   int
	MaxPages   int
	MaxRetries int
	BatchSize  int

	PageDelayMinMs    int
	PageDelayMaxMs    int
	ProfileDelayMinMs int
	ProfileDelayMaxMs int
	MessageIntervalMs int

	ChromeBin string
	Debug     bool

	Profiles []SearchProfile
	Filter   SearchFilter
}

// SearchProfile is one logical search the pipeline runs per cycle:
// a region plus its sub-region (section) IDs. The shared filter
// parameters live in SearchFilter.
type SearchProfile struct {
	Label   string
	Region  int
	Section string
}

// SearchFilter is the shared query parameter set applied to every
// profile. Values are passed through verbatim as URL query parameters.
type SearchFilter struct {
	Kind      string // property kind: 1 = whole-unit home
	Layout    string // room counts, comma-joined
	RentPrice string // "min,max" monthly rent bound
	Area      string // "min,max" size bound in ping
	Other     string // misc tags: not rooftop add-on, near MRT, cooking allowed
	Option    string // required amenities: AC, washer, fridge
	Order     string
	OrderType string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),

		SeenFile:    getEnv("SEEN_FILE", "./state/seen_ids.json"),
		PendingFile: getEnv("PENDING_FILE", "./state/pending_listings.json"),

		PageSize:   getEnvInt("PAGE_SIZE", 30),
		MaxPages:   getEnvInt("MAX_PAGES", 5),
		MaxRetries: getEnvInt("MAX_RETRIES", 3),
		BatchSize:  getEnvInt("BATCH_SIZE", 10),

		PageDelayMinMs:    getEnvInt("PAGE_DELAY_MIN_MS", 2000),
		PageDelayMaxMs:    getEnvInt("PAGE_DELAY_MAX_MS", 4000),
		ProfileDelayMinMs: getEnvInt("PROFILE_DELAY_MIN_MS", 2000),
		ProfileDelayMaxMs: getEnvInt("PROFILE_DELAY_MAX_MS", 3000),
		MessageIntervalMs: getEnvInt("MESSAGE_INTERVAL_MS", 1100),

		ChromeBin: getEnv("CHROME_BIN", ""),
		Debug:     getEnvBool("DEBUG", false),

		Profiles: DefaultProfiles(),
		Filter:   DefaultFilter(),
	}
}

// DefaultProfiles returns the monitored regions.
//
// Region/section ID table for the source site:
//
//	Taipei City   region=1
//	  1=中正 2=大同 3=中山 4=松山 5=大安 6=萬華
//	  7=信義 8=士林 9=北投 10=內湖 11=南港 12=文山
//	New Taipei    region=3
//	  37=永和 43=三重
func DefaultProfiles() []SearchProfile {
	return []SearchProfile{
		{Label: "台北市（排除內湖/北投）", Region: 1, Section: "1,2,3,4,5,6,7,8,11,12"},
		{Label: "新北永和區", Region: 3, Section: "37"},
		{Label: "新北三重區", Region: 3, Section: "43"},
	}
}

// DefaultFilter returns the shared search parameters: whole-unit home,
// 2+ rooms, ≤30000/month, 10–50 ping, near MRT, cooking allowed, with
// AC/washer/fridge, newest first. The elevator constraint is not a
// query parameter and is re-checked client-side after normalization.
func DefaultFilter() SearchFilter {
	return SearchFilter{
		Kind:      "1",
		Layout:    "2,3,4",
		RentPrice: "0,30000",
		Area:      "10,50",
		Other:     "not_cover,near_subway,cook",
		Option:    "cold,washer,icebox",
		Order:     "posttime",
		OrderType: "desc",
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
