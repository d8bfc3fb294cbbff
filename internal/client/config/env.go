package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// envVars maps each setting to its environment variable.
var envVars = struct {
	DatabaseDSN, LocalDBPath, SecretKey, SessionValidity, PerPage,
	ImageMaxWidth, ImageQuality, ImageMaxChars, AllowedEmailDomain, LogLevel string
}{
	DatabaseDSN:        "GOPHBLOG_DATABASE_DSN",
	LocalDBPath:        "GOPHBLOG_LOCAL_DB",
	SecretKey:          "GOPHBLOG_SECRET_KEY",
	SessionValidity:    "GOPHBLOG_SESSION_VALIDITY",
	PerPage:            "GOPHBLOG_PER_PAGE",
	ImageMaxWidth:      "GOPHBLOG_COMMENT_IMAGE_MAX_WIDTH",
	ImageQuality:       "GOPHBLOG_COMMENT_IMAGE_QUALITY",
	ImageMaxChars:      "GOPHBLOG_COMMENT_IMAGE_MAX_CHARS",
	AllowedEmailDomain: "GOPHBLOG_ALLOWED_EMAIL_DOMAIN",
	LogLevel:           "GOPHBLOG_LOG_LEVEL",
}

// readEnvFile returns the dotenv values. An explicit -env file must exist;
// the implicit ./.env is optional.
func readEnvFile(args []string) map[string]string {
	path := flagx.EnvFileFlag(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		panic(err)
	}
	return values
}

func parseEnv(cfg *Config, args []string, lookupEnv func(string) (string, bool)) {
	file := readEnvFile(args)

	get := func(key string) (string, bool) {
		if lookupEnv != nil {
			if v, ok := lookupEnv(key); ok {
				return v, true
			}
		}
		v, ok := file[key]
		return v, ok
	}

	setString := func(key string, dst *string) {
		if v, ok := get(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := get(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				panic(err)
			}
			*dst = n
		}
	}

	setString(envVars.DatabaseDSN, &cfg.DatabaseDSN)
	setString(envVars.LocalDBPath, &cfg.LocalDBPath)
	setString(envVars.SecretKey, &cfg.SecretKey)
	setString(envVars.AllowedEmailDomain, &cfg.AllowedEmailDomain)
	setString(envVars.LogLevel, &cfg.LogLevel)
	setInt(envVars.PerPage, &cfg.PerPage)
	setInt(envVars.ImageMaxWidth, &cfg.CommentImageMaxWidth)
	setInt(envVars.ImageQuality, &cfg.CommentImageQuality)
	setInt(envVars.ImageMaxChars, &cfg.CommentImageMaxChars)

	if v, ok := get(envVars.SessionValidity); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.SessionValidityDuration = d
	}
}

