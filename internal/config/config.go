package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string

	Shop Shop
}

// Shop is the identity block stamped onto every bill/invoice.
type Shop struct {
	Name    string
	Phone   string
	Address string
	Email   string
	GST     string
	Tagline string
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", "samysilks.db") // sqlite file in project root
	v.SetDefault("MEDIA_DIR", "./web/media")
	v.SetDefault("LOG_FILE", "./samysilks.log")

	v.SetDefault("SHOP_NAME", "Samy Silks & Readymades")
	v.SetDefault("SHOP_PHONE", "99949 89322")
	v.SetDefault("SHOP_ADDRESS", "N.H. Main Road, Viluppuram - 638056, Tamil Nadu")
	v.SetDefault("SHOP_EMAIL", "samysilks@gmail.com")
	v.SetDefault("SHOP_GST", "33AABCS1234A1ZB")
	v.SetDefault("SHOP_TAGLINE", "Traditional Elegance, Modern Style")

	cfg := Config{
		Port:     v.GetString("PORT"),
		DBDSN:    v.GetString("DB_DSN"),
		MediaDir: v.GetString("MEDIA_DIR"),
		LogFile:  v.GetString("LOG_FILE"),
		Shop: Shop{
			Name:    v.GetString("SHOP_NAME"),
			Phone:   v.GetString("SHOP_PHONE"),
			Address: v.GetString("SHOP_ADDRESS"),
			Email:   v.GetString("SHOP_EMAIL"),
			GST:     v.GetString("SHOP_GST"),
			Tagline: v.GetString("SHOP_TAGLINE"),
		},
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}
