package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	StorageLocal = "local"
	StorageMinIO = "minio"

	DefaultPostsPerPage  = 2
	DefaultMaxUploadSize = int64(10 * 1024 * 1024)
)

type DB struct {
	Driver        string
	URL           string
	DbHOST        string
	DbPORT        string
	DbUSER        string
	DbPASSWORD    string
	DbNAME        string
	DbSSLMODE     string
	MongoURI      string
	MongoDatabase string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Storage struct {
	Driver    string
	ImagesDir string
	MinIO     MinIO
}

type Config struct {
	ServerPort          int
	DB                  DB
	Storage             Storage
	JWTSecretKey        string
	AccessTokenDuration time.Duration
	MaxUploadSize       int64
	PostsPerPage        int
	LogLevel            string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "messages")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "messages")

	v.SetDefault("STORAGE_DRIVER", StorageLocal)
	v.SetDefault("IMAGES_DIR", "images")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET_NAME", "images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_REGION", "us-east-1")

	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("ACCESS_TOKEN_DURATION", time.Hour)
	v.SetDefault("MAX_UPLOAD_SIZE", DefaultMaxUploadSize)
	v.SetDefault("POSTS_PER_PAGE", DefaultPostsPerPage)
	v.SetDefault("LOG_LEVEL", "info")
}

func loadDB(v *viper.Viper) DB {
	return DB{
		Driver:        v.GetString("DB_DRIVER"),
		URL:           v.GetString("DATABASE_URL"),
		DbHOST:        v.GetString("DB_HOST"),
		DbPORT:        v.GetString("DB_PORT"),
		DbUSER:        v.GetString("DB_USER"),
		DbPASSWORD:    v.GetString("DB_PASSWORD"),
		DbNAME:        v.GetString("DB_NAME"),
		DbSSLMODE:     v.GetString("DB_SSLMODE"),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
	}
}

func loadStorage(v *viper.Viper) Storage {
	return Storage{
		Driver:    v.GetString("STORAGE_DRIVER"),
		ImagesDir: v.GetString("IMAGES_DIR"),
		MinIO: MinIO{
			Endpoint:   v.GetString("MINIO_ENDPOINT"),
			AccessKey:  v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:  v.GetString("MINIO_SECRET_KEY"),
			BucketName: v.GetString("MINIO_BUCKET_NAME"),
			UseSSL:     v.GetBool("MINIO_USE_SSL"),
			Region:     v.GetString("MINIO_REGION"),
		},
	}
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	perPage := v.GetInt("POSTS_PER_PAGE")
	if perPage < 1 {
		perPage = DefaultPostsPerPage
	}

	maxUpload := v.GetInt64("MAX_UPLOAD_SIZE")
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadSize
	}

	tokenTTL := v.GetDuration("ACCESS_TOKEN_DURATION")
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}

	return &Config{
		ServerPort:          v.GetInt("SERVER_PORT"),
		DB:                  loadDB(v),
		Storage:             loadStorage(v),
		JWTSecretKey:        v.GetString("JWT_SECRET_KEY"),
		AccessTokenDuration: tokenTTL,
		MaxUploadSize:       maxUpload,
		PostsPerPage:        perPage,
		LogLevel:            v.GetString("LOG_LEVEL"),
	}
}

// PostgresDSN returns DATABASE_URL when set, otherwise a key=value DSN.
func (d DB) PostgresDSN() string {
	if d.URL != "" {
		return d.URL
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.DbHOST,
		d.DbPORT,
		d.DbUSER,
		d.DbPASSWORD,
		d.DbNAME,
		d.DbSSLMODE,
	)
}

func (d DB) MongoConnURI() string {
	if d.URL != "" {
		return d.URL
	}
	return d.MongoURI
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY не установлен")
	}

	switch c.DB.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("неизвестный DB_DRIVER: %q", c.DB.Driver)
	}

	switch c.Storage.Driver {
	case StorageLocal, StorageMinIO:
	default:
		return fmt.Errorf("неизвестный STORAGE_DRIVER: %q", c.Storage.Driver)
	}

	return nil
}
