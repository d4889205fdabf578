package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBPort             string
	Port               string
	AppAuthKey         string
	AppEncKey          string
	EmailHost          string
	EmailPort          string
	EmailUsername      string
	EmailPassword      string
	EmailFrom          string
	BaseDomain         string
	BareSuffixes       []string
	ExcludedSubdomains []string
	MediaDir           string
	MediaURL           string
	TenantCacheTTL     int
	APP_URL            string
	APP_ENV            string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPort:             os.Getenv("DB_PORT"),
		Port:               os.Getenv("APP_PORT"),
		AppAuthKey:         os.Getenv("APP_AUTH_KEY"),
		AppEncKey:          os.Getenv("APP_ENC_KEY"),
		EmailHost:          os.Getenv("EMAIL_HOST"),
		EmailPort:          os.Getenv("EMAIL_PORT"),
		EmailUsername:      os.Getenv("EMAIL_USERNAME"),
		EmailPassword:      os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:          os.Getenv("EMAIL_USERNAME"),
		BaseDomain:         getEnvDefault("BASE_DOMAIN", "bazaa.digital"),
		BareSuffixes:       splitList(getEnvDefault("BARE_SUFFIXES", "localhost,devtunnels.ms")),
		ExcludedSubdomains: splitList(getEnvDefault("EXCLUDED_SUBDOMAINS", "www")),
		MediaDir:           getEnvDefault("MEDIA_DIR", "media"),
		MediaURL:           getEnvDefault("MEDIA_URL", "/media/"),
		TenantCacheTTL:     getEnvInt("TENANT_CACHE_TTL_SECONDS", 30),
		APP_URL:            os.Getenv("APP_URL"),
		APP_ENV:            os.Getenv("APP_ENV"),
	}

}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s is not a number, using default %d", key, fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

var LoadENV = LoadEnv()
