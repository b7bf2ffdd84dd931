package database

import (
	"net"
	"net/url"
	"strconv"

	"github.com/rickgao/futures-data/internal/config"
)

// BuildConnString builds a PostgreSQL connection URL from config.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = config.DefaultDBSSLMode
	}

	// Userinfo escaping: a space becomes %20 and '+' stays literal.
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

// Redact returns the connection string with the password masked, for logs.
func Redact(cfg config.DBConfig) string {
	cfg.Password = "xxxxx"
	return BuildConnString(cfg)
}
