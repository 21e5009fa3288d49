package core

import (
	"net/mail"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool

		AppName            string
		SecretKey          string
		FrontendOrigin     string
		JWTExpirationDelta time.Duration
		DefaultFromEmail   mail.Address

		SendgridAPIKey string
		RollbarToken   string

		Server   ServerConfig
		Database DatabaseConfig
	}

	ServerConfig struct {
		Host string
		Port string
	}

	DatabaseConfig struct {
		Engine     string
		Name       string
		Host       string
		Port       string
		User       string
		Password   string
		DisableTLS bool
	}
)

func (c ServerConfig) Address() string { return c.Host + ":" + c.Port }

func (c DatabaseConfig) Address() string { return c.Host + ":" + c.Port }

// URL builds the database connection URL for database/sql drivers.
func (c DatabaseConfig) URL() string {
	sslMode := "require"
	if c.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   c.Engine,
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Address(),
		Path:     c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// NewConfig loads the application configuration: defaults first, then an
// optional config/.env.<env> file, then environment variables prefixed with
// the current ENV (DEV (default), TEST, QA, PROD).
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "StudentManagement")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendOrigin", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("jwtExpirationDelta", 60*time.Minute)
	v.SetDefault("serverHost", "")
	v.SetDefault("serverPort", "8000")
	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "student_management")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseUser", "postgres")
	v.SetDefault("databasePassword", "postgres")
	v.SetDefault("databaseDisableTLS", true)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:                env,
		Debug:              v.GetBool("debug"),
		TestMode:           env == "TEST",
		AppName:            v.GetString("appName"),
		SecretKey:          v.GetString("secretKey"),
		FrontendOrigin:     v.GetString("frontendOrigin"),
		JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		DefaultFromEmail:   mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridAPIKey:     v.GetString("sendgridApiKey"),
		RollbarToken:       v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host: v.GetString("serverHost"),
			Port: v.GetString("serverPort"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("databaseEngine"),
			Name:       v.GetString("databaseName"),
			Host:       v.GetString("databaseHost"),
			Port:       v.GetString("databasePort"),
			User:       v.GetString("databaseUser"),
			Password:   v.GetString("databasePassword"),
			DisableTLS: v.GetBool("databaseDisableTLS"),
		},
	}
	return conf, nil
}
