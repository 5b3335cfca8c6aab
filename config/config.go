package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether report archiving is configured.
func (c R2Config) Enabled() bool {
	return c.AccountID != ""
}

type Config struct {
	DatabaseURL    string
	JWTSecretKey   string
	ServerPort     int
	RoundWeekday   time.Weekday
	DWZEncoding    string
	// AllowedOrigins feeds both CORS and the websocket origin check; "*" allows any.
	AllowedOrigins []string
	R2             R2Config
}

// Load reads the configuration from the environment. A .env file, when present,
// is loaded first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	weekday, err := ParseWeekday(os.Getenv("ROUND_WEEKDAY"))
	if err != nil {
		return nil, fmt.Errorf("ROUND_WEEKDAY: %w", err)
	}

	encoding := strings.ToLower(os.Getenv("DWZ_ENCODING"))
	switch encoding {
	case "":
		encoding = EncodingLatin1
	case EncodingLatin1, EncodingUTF8:
	default:
		return nil, fmt.Errorf("DWZ_ENCODING must be %q or %q, got %q", EncodingLatin1, EncodingUTF8, encoding)
	}

	origins := ParseOrigins(os.Getenv("ALLOWED_ORIGINS"))

	r2 := R2Config{
		AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}
	if err := validateR2(r2); err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		JWTSecretKey:   jwtKey,
		ServerPort:     port,
		RoundWeekday:   weekday,
		DWZEncoding:    encoding,
		AllowedOrigins: origins,
		R2:             r2,
	}

	return cfg, nil
}

// ParseWeekday accepts an English weekday name; empty means Friday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return time.Friday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// ParseOrigins splits a comma separated origin list; empty means any origin.
func ParseOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func validateR2(c R2Config) error {
	set := map[string]string{
		"R2_ACCOUNT_ID":        c.AccountID,
		"R2_ACCESS_KEY_ID":     c.AccessKeyID,
		"R2_SECRET_ACCESS_KEY": c.SecretAccessKey,
		"R2_BUCKET_NAME":       c.BucketName,
		"R2_PUBLIC_BASE_URL":   c.PublicBaseURL,
	}
	var missing, present []string
	for name, value := range set {
		if value == "" {
			missing = append(missing, name)
		} else {
			present = append(present, name)
		}
	}
	if len(present) > 0 && len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("report archive partially configured, missing %s", strings.Join(missing, ", "))
	}
	return nil
}
