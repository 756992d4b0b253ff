package config

import (
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds every environment-provided setting.
type Config struct {
	Port string `env:"PORT,default=8080"`

	MongoURI string `env:"MONGO_URI,default=mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB,default=devcamper"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTExpire time.Duration `env:"JWT_EXPIRE,default=720h"`

	GeocoderKey string `env:"GEOCODER_API_KEY"`
	GeocoderURL string `env:"GEOCODER_URL,default=http://open.mapquestapi.com/geocoding/v1/address"`

	MaxFileSize    int64  `env:"MAX_FILE_SIZE,default=1000000"`
	FileUploadPath string `env:"FILE_UPLOAD_PATH,default=./public/uploads"`

	// "disk" or "minio"
	StorageBackend string `env:"STORAGE_BACKEND,default=disk"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT,default=localhost:9000"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY,default=minioadmin"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY,default=minioadmin"`
	MinioBucket    string `env:"MINIO_BUCKET,default=bootcamp-photos"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL,default=false"`

	MailgunDomain string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey string `env:"MAILGUN_API_KEY"`
	FromEmail     string `env:"FROM_EMAIL,default=noreply@devcamper.io"`

	ResetTokenExpire time.Duration `env:"RESET_TOKEN_EXPIRE,default=10m"`
}

// Load reads .env if present, then decodes the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
