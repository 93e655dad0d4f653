// Package hints parses and renders the tab-delimited hint protocol written
// by the shellbuddy daemon. Parsing is defensive: the daemon may be an older
// or newer version, mid-write, or gone entirely, and none of that may take
// the pane down. Unrecognized lines render as blanks, not errors.
package hints

import "strings"

// Protocol tokens. Shared with the daemon; do not change unilaterally.
const (
	HeaderToken   = "HINTS"
	SeparatorRune = '─'
	LogoToken     = "LOGO"
	LogoTagToken  = "LOGO_TAG"
	TipToken      = "TIP"
	LabelToken    = "LABEL"
	ThinkingToken = "thinking"
	DividerToken  = "·"
)

// Severity classifies a rule hint by its marker prefix.
type Severity int

const (
	SeverityDanger Severity = iota
	SeverityWarn
	SeverityTip
	SeverityUpgrade
)

// severityMarkers in match order; the two-rune danger marker must be tried
// before the one-rune warn marker.
var severityMarkers = []struct {
	marker string
	sev    Severity
}{
	{"!!", SeverityDanger},
	{"!", SeverityWarn},
	{"»", SeverityTip},
	{"↑", SeverityUpgrade},
}

// Kind tags a parsed protocol line.
type Kind int

const (
	KindBlank Kind = iota
	KindHeader
	KindSeparator
	KindRule
	KindAmbient
	KindThinking
	KindDivider
	KindLogo
	KindLogoTag
	KindIdleTip
	KindIdleLabel
)

// Line is one parsed record. Logo rows carry an optional nested payload in
// Inner: the logo must render even when no hint shares its row.
type Line struct {
	Kind     Kind
	Text     string   // header/rule/ambient/label text (marker stripped for rules)
	Severity Severity // valid when Kind == KindRule
	Logo     string   // logo art fragment or tag text
	Inner    *Line    // nested hint for logo rows, nil when none
	Cmd      string   // idle tip command
	Desc     string   // idle tip description
}

// ParseLine classifies one raw line. First match wins; anything that matches
// nothing degrades to a blank row rather than failing the frame.
func ParseLine(raw string) Line {
	fields := strings.Split(raw, "\t")
	first := fields[0]

	switch {
	case strings.HasPrefix(first, HeaderToken) && len(fields) == 1 && first != "":
		return Line{Kind: KindHeader, Text: first}

	case isSeparator(first) && len(fields) == 1:
		return Line{Kind: KindSeparator, Text: first}

	case first == LogoToken && len(fields) >= 2:
		return Line{Kind: KindLogo, Logo: fields[1], Inner: parseInner(fields[2:])}

	case first == LogoTagToken && len(fields) >= 2:
		return Line{Kind: KindLogoTag, Logo: fields[1], Inner: parseInner(fields[2:])}

	case first == TipToken && len(fields) >= 3:
		return Line{Kind: KindIdleTip, Cmd: fields[1], Desc: fields[2]}

	case first == LabelToken && len(fields) >= 2:
		return Line{Kind: KindIdleLabel, Text: fields[1]}
	}

	if sev, text, ok := matchSeverity(first); ok {
		return Line{Kind: KindRule, Severity: sev, Text: text}
	}

	switch {
	case strings.HasPrefix(first, ThinkingToken):
		return Line{Kind: KindThinking, Text: first}

	case strings.TrimSpace(first) == DividerToken:
		return Line{Kind: KindDivider}

	case strings.TrimSpace(raw) == "":
		return Line{Kind: KindBlank}

	case len(fields) == 1:
		return Line{Kind: KindAmbient, Text: first}
	}

	// Multi-field line with an unknown leading token: protocol from a
	// newer daemon. Render nothing rather than garbage.
	return Line{Kind: KindBlank}
}

// parseInner decodes the nested hint payload of a logo row. The payload is
// the remaining tab fields: an idle tip pair, an idle label, a severity
// hint, bare ambient text, or nothing.
func parseInner(fields []string) *Line {
	if len(fields) == 0 {
		return nil
	}
	joined := strings.Join(fields, "\t")
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	inner := ParseLine(joined)
	return &inner
}

// ParseFile parses a whole hint file, one Line per input line.
func ParseFile(content string) []Line {
	raw := strings.Split(strings.TrimRight(content, "\n"), "\n")
	lines := make([]Line, 0, len(raw))
	for _, r := range raw {
		lines = append(lines, ParseLine(r))
	}
	return lines
}

func isSeparator(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != SeparatorRune {
			return false
		}
	}
	return true
}

func matchSeverity(s string) (Severity, string, bool) {
	for _, m := range severityMarkers {
		if rest, ok := strings.CutPrefix(s, m.marker); ok {
			return m.sev, strings.TrimSpace(rest), true
		}
	}
	return 0, "", false
}
