package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

// envSource resolves environment fallbacks from the process environment first
// and then from any .env files found next to the config or in the working directory.
type envSource struct {
	dotenv map[string]string
}

func newEnvSource(configPath string) envSource {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append([]string{filepath.Join(filepath.Dir(configPath), ".env")}, candidates...)
	}
	merged := map[string]string{}
	for _, candidate := range candidates {
		values, err := godotenv.Read(candidate)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "warn: ignoring unreadable env file %s: %v\n", candidate, err)
			}
			continue
		}
		for key, value := range values {
			if _, ok := merged[key]; !ok {
				merged[key] = value
			}
		}
	}
	return envSource{dotenv: merged}
}

func (e envSource) lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}
	value, ok := e.dotenv[key]
	return value, ok
}

func (c *Config) normalize(env envSource) error {
	if err := c.normalizePaths(env); err != nil {
		return err
	}
	c.normalizePlayer()
	c.normalizeSite()
	c.normalizeNotifications(env)
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths(env envSource) error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MediaDir) == "" {
		c.Paths.MediaDir = filepath.Join(c.Paths.DataDir, "media")
	}
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		if value, ok := env.lookup("PLAYBEAT_API_TOKEN"); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizePlayer() {
	c.Player.Command = strings.TrimSpace(c.Player.Command)
	if c.Player.Command == "" {
		c.Player.Command = defaultPlayerCommand
	}
	// ffplay flags are meaningless to any other player.
	if filepath.Base(c.Player.Command) != defaultPlayerCommand && slices.Equal(c.Player.Args, defaultPlayerArgs()) {
		c.Player.Args = nil
	}
}

func (c *Config) normalizeSite() {
	c.Site.Title = strings.TrimSpace(c.Site.Title)
	if c.Site.Title == "" {
		c.Site.Title = defaultSiteTitle
	}
	if c.Site.DefaultPlaylist == nil {
		c.Site.DefaultPlaylist = append([]int(nil), DefaultPlaylist...)
	}
	if c.Site.ContactDelayMillis < 0 {
		c.Site.ContactDelayMillis = 0
	}
	if c.Site.QuoteDelayMillis < 0 {
		c.Site.QuoteDelayMillis = 0
	}
	if c.Site.ContactRatePerMinute <= 0 {
		c.Site.ContactRatePerMinute = defaultContactRatePerMinute
	}
	faq := c.Site.FAQ[:0]
	for _, entry := range c.Site.FAQ {
		entry.Question = strings.TrimSpace(entry.Question)
		entry.Answer = strings.TrimSpace(entry.Answer)
		if entry.Question == "" {
			continue
		}
		faq = append(faq, entry)
	}
	c.Site.FAQ = faq
	nav := c.Site.Nav[:0]
	for _, link := range c.Site.Nav {
		link.Label = strings.TrimSpace(link.Label)
		link.Href = strings.TrimSpace(link.Href)
		if link.Label == "" || link.Href == "" {
			continue
		}
		nav = append(nav, link)
	}
	c.Site.Nav = nav
}

func (c *Config) normalizeNotifications(env envSource) {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := env.lookup("PLAYBEAT_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
