package config

import (
	"os"
	"strconv"
)

// Config holds everything loaded from the environment at startup. It is
// built once in main and passed by value; nothing reads env vars after that.
type Config struct {
	Port string
	Prod bool

	MongoURI string
	MongoDB  string

	JWTSecret   string
	JWTTTLHours int
	AdminEmail  string

	RedisAddr       string
	RateLimitPerMin int

	RabbitURL      string
	RabbitExchange string
	RabbitQueue    string
	RabbitWorkers  int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	CloudinaryCloud  string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string

	SendgridKey string
	FromEmail   string
	FromName    string
}

func Load() Config {
	return Config{
		Port: getenv("APP_PORT", "8080"),
		Prod: getenv("APP_ENV", "dev") == "prod",

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "pawfect"),

		JWTSecret:   getenv("JWT_SECRET", "default_secret_key"),
		JWTTTLHours: atoi(getenv("JWT_TTL_HOURS", "168")),
		AdminEmail:  getenv("ADMIN_EMAIL", ""),

		RedisAddr:       getenv("REDIS_ADDR", ""),
		RateLimitPerMin: atoi(getenv("RATE_LIMIT_PER_MIN", "5")),

		RabbitURL:      getenv("RABBIT_URL", ""),
		RabbitExchange: getenv("RABBIT_EXCHANGE", "pawfect.events"),
		RabbitQueue:    getenv("RABBIT_QUEUE", "mailq"),
		RabbitWorkers:  atoi(getenv("RABBIT_WORKERS", "4")),

		GoogleClientID:     getenv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getenv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getenv("GOOGLE_REDIRECT_URI", "postmessage"),

		CloudinaryCloud:  getenv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryKey:    getenv("CLOUDINARY_API_KEY", ""),
		CloudinarySecret: getenv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder: getenv("CLOUDINARY_FOLDER", "pawfect-home/pets"),

		SendgridKey: getenv("SENDGRID_API_KEY", ""),
		FromEmail:   getenv("FROM_EMAIL", "noreply@pawfecthome.example"),
		FromName:    getenv("FROM_NAME", "Pawfect Home"),
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
