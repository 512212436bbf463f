package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"playbeat/internal/api"
	"playbeat/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 18
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func daemonLines(status api.Status, colorize bool) []string {
	var lines []string
	if status.Running {
		lines = append(lines, renderStatusLine("Playbeat", statusOK, fmt.Sprintf("Running (pid %d)", status.PID), colorize))
		if status.APIBind != "" {
			lines = append(lines, renderStatusLine("Site", statusOK, "http://"+status.APIBind+"/", colorize))
		}
	} else {
		lines = append(lines, renderStatusLine("Playbeat", statusWarn, "Not running (run `playbeat start`)", colorize))
		if status.APIBind != "" {
			lines = append(lines, renderStatusLine("Site", statusInfo, "would bind "+status.APIBind, colorize))
		}
	}
	if status.StorePath != "" {
		lines = append(lines, renderStatusLine("Store", statusInfo, status.StorePath, colorize))
	}
	return lines
}

func siteLines(status api.Status, colorize bool) []string {
	lines := []string{
		renderStatusLine("Catalog", statusInfo, fmt.Sprintf("%d tracks", status.Tracks), colorize),
		renderStatusLine("Playlist", statusInfo, fmt.Sprintf("%d entries", status.PlaylistLength), colorize),
	}
	if status.Orphans > 0 {
		lines = append(lines, renderStatusLine("Orphans", statusWarn,
			fmt.Sprintf("%d unknown ids (run `playbeat playlist prune`)", status.Orphans), colorize))
	}
	nowPlaying := strings.TrimSpace(status.NowPlaying)
	if nowPlaying == "" {
		nowPlaying = "Nothing playing"
	}
	lines = append(lines,
		renderStatusLine("Now playing", statusInfo, nowPlaying, colorize),
		renderStatusLine("Theme", statusInfo, status.Theme, colorize),
		renderStatusLine("Ratings", statusInfo, fmt.Sprintf("%d rated", status.Ratings), colorize),
	)
	return lines
}

func dependencyLines(deps []api.DependencyStatus, colorize bool) []string {
	if len(deps) == 0 {
		return []string{renderStatusLine("Summary", statusInfo, "No dependency checks configured", colorize)}
	}
	lines := make([]string, 0, len(deps))
	for _, dep := range deps {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}
		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
	}
	return lines
}

func preflightLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}
