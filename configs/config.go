package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port          string
	Environment   string
	LogLevel      string
	PublicBaseURL string
	CORSOrigins   string
	JWTSecret     string

	StoreDriver   string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string

	MediaDriver      string
	UploadDir        string
	CloudinaryURL    string
	CloudinaryFolder string

	PaymentProvider    string
	PayPalAPIBaseURL   string
	PayPalClientID     string
	PayPalClientSecret string
	CoursePrice        float64
	CourseCurrency     string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "tutor_cards")
	v.SetDefault("MEDIA_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("CLOUDINARY_FOLDER", "tutor_cards")
	v.SetDefault("PAYMENT_PROVIDER", "mock")
	v.SetDefault("PAYPAL_API_BASE_URL", "https://api-m.sandbox.paypal.com")
	v.SetDefault("PAYPAL_CLIENT_ID", "")
	v.SetDefault("PAYPAL_CLIENT_SECRET", "")
	v.SetDefault("COURSE_PRICE", 25.0)
	v.SetDefault("COURSE_CURRENCY", "USD")
	v.SetDefault("KAFKA_BROKER", "")
	v.SetDefault("KAFKA_TOPIC", "tutor-cards.enrollments")
	v.SetDefault("KAFKA_USERNAME", "")
	v.SetDefault("KAFKA_PASSWORD", "")
	v.SetDefault("BREVO_API_KEY", "")
	v.SetDefault("EMAIL_SENDER", "")
	v.SetDefault("EMAIL_SENDER_NAME", "")

	v.AutomaticEnv()
	return v
}

// Load reads .env (when present) into the process environment and builds the
// application config on top of the defaults.
func Load() *AppConfig {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	v := newViper()
	return &AppConfig{
		Port:          v.GetString("PORT"),
		Environment:   strings.ToLower(v.GetString("ENVIRONMENT")),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		CORSOrigins:   v.GetString("CORS_ORIGINS"),
		JWTSecret:     v.GetString("JWT_SECRET"),

		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),

		MediaDriver:      strings.ToLower(v.GetString("MEDIA_DRIVER")),
		UploadDir:        v.GetString("UPLOAD_DIR"),
		CloudinaryURL:    v.GetString("CLOUDINARY_URL"),
		CloudinaryFolder: v.GetString("CLOUDINARY_FOLDER"),

		PaymentProvider:    strings.ToLower(v.GetString("PAYMENT_PROVIDER")),
		PayPalAPIBaseURL:   v.GetString("PAYPAL_API_BASE_URL"),
		PayPalClientID:     v.GetString("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: v.GetString("PAYPAL_CLIENT_SECRET"),
		CoursePrice:        v.GetFloat64("COURSE_PRICE"),
		CourseCurrency:     v.GetString("COURSE_CURRENCY"),

		KafkaBroker:   v.GetString("KAFKA_BROKER"),
		KafkaTopic:    v.GetString("KAFKA_TOPIC"),
		KafkaUsername: v.GetString("KAFKA_USERNAME"),
		KafkaPassword: v.GetString("KAFKA_PASSWORD"),

		BrevoAPIKey:     v.GetString("BREVO_API_KEY"),
		EmailSender:     v.GetString("EMAIL_SENDER"),
		EmailSenderName: v.GetString("EMAIL_SENDER_NAME"),
	}
}
