package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/dmitrijs2005/gophblog/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// use timex.Duration so they can be written as "15m" or as nanoseconds.
// Absent fields leave the current value alone.
type JsonConfig struct {
	DatabaseDSN             *string         `json:"database_dsn"`
	LocalDBPath             *string         `json:"local_db_path"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	PerPage                 *int            `json:"per_page"`
	CommentImageMaxWidth    *int            `json:"comment_image_max_width"`
	CommentImageQuality     *int            `json:"comment_image_quality"`
	CommentImageMaxChars    *int            `json:"comment_image_max_chars"`
	AllowedEmailDomain      *string         `json:"allowed_email_domain"`
	LogLevel                *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.LocalDBPath, jc.LocalDBPath)
	setIf(&cfg.SecretKey, jc.SecretKey)
	setIf(&cfg.PerPage, jc.PerPage)
	setIf(&cfg.CommentImageMaxWidth, jc.CommentImageMaxWidth)
	setIf(&cfg.CommentImageQuality, jc.CommentImageQuality)
	setIf(&cfg.CommentImageMaxChars, jc.CommentImageMaxChars)
	setIf(&cfg.AllowedEmailDomain, jc.AllowedEmailDomain)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.SessionValidityDuration != nil {
		cfg.SessionValidityDuration = jc.SessionValidityDuration.Duration
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
