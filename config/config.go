package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/artyrk/go-uploadwidget/widget"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/env"
)

// DevOrigin is where the backend listens during local development.
const DevOrigin = "http://127.0.0.1:8000"

const uploadPath = "/upload"

// Config holds the raw settings read from the environment. Command line
// flags override individual fields before Resolve is called.
type Config struct {
	Endpoint   string `env:"UPLOAD_ENDPOINT"`
	BaseOrigin string `env:"UPLOAD_BASE_ORIGIN"`
	DevMode    bool   `env:"UPLOAD_DEV_MODE"`
	Expiration string `env:"UPLOAD_EXPIRATION"`
	Verbose    bool   `env:"UPLOAD_VERBOSE"`
}

// Resolved is the configuration the widget is started with.
type Resolved struct {
	BaseOrigin string
	Endpoint   string
	Expiration widget.Expiration
	Verbose    bool
}

// Parse reads Config from envRepository.
func Parse(envRepository env.Repository) (Config, error) {
	var c Config
	if err := stepconf.NewInputParser(envRepository).Parse(&c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return c, nil
}

// Resolve picks the single base origin used for share links. Development
// mode always uses DevOrigin; otherwise the explicit origin wins over the
// origin of the endpoint.
func (c Config) Resolve() (Resolved, error) {
	origin, err := c.baseOrigin()
	if err != nil {
		return Resolved{}, err
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = strings.TrimSuffix(origin, "/") + uploadPath
	}

	expiration := widget.DefaultExpiration
	if c.Expiration != "" {
		expiration, err = widget.ParseExpiration(c.Expiration)
		if err != nil {
			return Resolved{}, err
		}
	}

	return Resolved{
		BaseOrigin: origin,
		Endpoint:   endpoint,
		Expiration: expiration,
		Verbose:    c.Verbose,
	}, nil
}

func (c Config) baseOrigin() (string, error) {
	if c.DevMode {
		return DevOrigin, nil
	}
	if c.BaseOrigin != "" {
		if _, err := originOf(c.BaseOrigin); err != nil {
			return "", fmt.Errorf("invalid base origin: %w", err)
		}
		return strings.TrimSuffix(c.BaseOrigin, "/"), nil
	}
	if c.Endpoint != "" {
		origin, err := originOf(c.Endpoint)
		if err != nil {
			return "", fmt.Errorf("invalid endpoint: %w", err)
		}
		return origin, nil
	}
	return "", fmt.Errorf("no base origin: set UPLOAD_BASE_ORIGIN, UPLOAD_ENDPOINT or UPLOAD_DEV_MODE")
}

func originOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%s: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%s: missing host", rawURL)
	}
	return u.Scheme + "://" + u.Host, nil
}
