package config

const (
	defaultDataDir              = "~/.local/share/playbeat"
	defaultMediaDir             = "~/.local/share/playbeat/media"
	defaultLogDir               = "~/.local/share/playbeat/logs"
	defaultAPIBind              = "127.0.0.1:7490"
	defaultPlayerCommand        = "ffplay"
	defaultSiteTitle            = "Play Beat"
	defaultContactDelayMillis   = 500
	defaultQuoteDelayMillis     = 300
	defaultContactRatePerMinute = 6
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogMaxSizeMB         = 20
	defaultLogMaxBackups        = 5
	defaultLogRetentionDays     = 30
)

// DefaultPlaylist is the demo playlist used when nothing has been persisted yet.
var DefaultPlaylist = []int{1, 4, 2}

func defaultPlayerArgs() []string {
	return []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}
}

func defaultFAQ() []FAQEntry {
	return []FAQEntry{
		{Question: "What is Play Beat?", Answer: "A small music site with a curated catalog and your own playlist."},
		{Question: "Where is my playlist stored?", Answer: "On this machine, so it survives restarts."},
		{Question: "Can I rate tracks?", Answer: "Yes. Pick one to five stars next to any track."},
	}
}

func defaultNav() []NavLink {
	return []NavLink{
		{Label: "Home", Href: "/#home"},
		{Label: "News", Href: "/#news"},
		{Label: "Music", Href: "/#music"},
		{Label: "Register", Href: "/#register"},
		{Label: "About", Href: "/#about"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			MediaDir: defaultMediaDir,
			LogDir:   defaultLogDir,
			APIBind:  defaultAPIBind,
		},
		Player: Player{
			Command: defaultPlayerCommand,
			Args:    defaultPlayerArgs(),
		},
		Site: Site{
			Title:                defaultSiteTitle,
			DefaultPlaylist:      append([]int(nil), DefaultPlaylist...),
			ContactDelayMillis:   defaultContactDelayMillis,
			QuoteDelayMillis:     defaultQuoteDelayMillis,
			ContactRatePerMinute: defaultContactRatePerMinute,
			FAQ:                  defaultFAQ(),
			Nav:                  defaultNav(),
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Contact:        true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
