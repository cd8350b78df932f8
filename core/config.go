package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine          string
		URL             string
		MaxOpenConns    int
		MinIdleConns    int
		ConnMaxIdleTime time.Duration
		ConnectTimeout  time.Duration
	}

	Config struct {
		AppName      string
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		Database     DatabaseConfig
	}
)

// NewConfig loads the configuration from defaults, optional dotenv files and the environment.
// Environment keys are prefixed with the current ENV (eg. DEV_DEBUG=false), except DATABASE_URL.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "userql")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.host", "127.0.0.1:8080")
	v.SetDefault("server.debugHost", "127.0.0.1:4000")
	v.SetDefault("server.readTimeout", 5*time.Second)
	v.SetDefault("server.writeTimeout", 5*time.Second)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.minIdleConns", 2)
	v.SetDefault("database.connMaxIdleTime", 60*time.Second)
	v.SetDefault("database.connectTimeout", 10*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}

	loadDotEnv(env)

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "DATABASE_URL")

	return &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			DebugHost:       v.GetString("server.debugHost"),
			ReadTimeout:     v.GetDuration("server.readTimeout"),
			WriteTimeout:    v.GetDuration("server.writeTimeout"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:          v.GetString("database.engine"),
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.maxOpenConns"),
			MinIdleConns:    v.GetInt("database.minIdleConns"),
			ConnMaxIdleTime: v.GetDuration("database.connMaxIdleTime"),
			ConnectTimeout:  v.GetDuration("database.connectTimeout"),
		},
	}
}

// loadDotEnv loads `.env` and `config/.env.<env>` if they exist (ignored if they do not).
// Variables already set in the environment are never overridden.
func loadDotEnv(env string) {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd(): %v", err)
	}
	paths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "config", ".env."+strings.ToLower(env)),
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Fatalf("config.godotenv(%s): %v", path, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", path, err)
		}
	}
}
