package hints

import (
	"strings"
	"testing"
)

func TestParseLineClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Kind
	}{
		{"header", "HINTS  ~/code  [12:03:44]  (17 cmds)", KindHeader},
		{"separator", strings.Repeat("─", 58), KindSeparator},
		{"rule danger", "!! rm -rf on a git repo — use git clean instead", KindRule},
		{"rule warn", "! 3 failed sudo attempts in a row", KindRule},
		{"rule tip", "» use ctrl-r to search shell history", KindRule},
		{"rule upgrade", "↑ [3x] cat | grep — use grep FILE directly", KindRule},
		{"ambient", "you ran 14 git commands this session", KindAmbient},
		{"thinking", "thinking ...", KindThinking},
		{"divider", "·", KindDivider},
		{"blank", "", KindBlank},
		{"whitespace only", "   ", KindBlank},
		{"logo", "LOGO\t░▒▓ sb", KindLogo},
		{"logo tag", "LOGO_TAG\tv1.2", KindLogoTag},
		{"idle tip", "TIP\tgit stash\tshelve work in progress", KindIdleTip},
		{"idle label", "LABEL\twhile you are idle:", KindIdleLabel},
		{"unknown multi-field", "ZORK\tfoo\tbar", KindBlank},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseLine(tc.raw); got.Kind != tc.want {
				t.Errorf("ParseLine(%q).Kind = %v, want %v", tc.raw, got.Kind, tc.want)
			}
		})
	}
}

func TestParseLineSeverities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		sev      Severity
		wantText string
	}{
		{"!! dangerous", SeverityDanger, "dangerous"},
		{"! warning", SeverityWarn, "warning"},
		{"» a tip", SeverityTip, "a tip"},
		{"↑ an upgrade", SeverityUpgrade, "an upgrade"},
	}
	for _, tc := range tests {
		got := ParseLine(tc.raw)
		if got.Kind != KindRule {
			t.Fatalf("ParseLine(%q).Kind = %v, want rule", tc.raw, got.Kind)
		}
		if got.Severity != tc.sev {
			t.Errorf("ParseLine(%q).Severity = %v, want %v", tc.raw, got.Severity, tc.sev)
		}
		if got.Text != tc.wantText {
			t.Errorf("ParseLine(%q).Text = %q, want %q", tc.raw, got.Text, tc.wantText)
		}
	}
}

func TestParseLineLogoNesting(t *testing.T) {
	t.Parallel()

	bare := ParseLine("LOGO\t▓▓ shellbuddy")
	if bare.Kind != KindLogo || bare.Logo != "▓▓ shellbuddy" {
		t.Fatalf("bare logo = %+v", bare)
	}
	if bare.Inner != nil {
		t.Error("logo without payload must have nil Inner")
	}

	withRule := ParseLine("LOGO\t▓▓\t!! do not do that")
	if withRule.Inner == nil || withRule.Inner.Kind != KindRule {
		t.Fatalf("nested rule = %+v", withRule.Inner)
	}
	if withRule.Inner.Severity != SeverityDanger {
		t.Errorf("nested severity = %v", withRule.Inner.Severity)
	}

	withTip := ParseLine("LOGO_TAG\tv2\tTIP\tgit bisect\tbinary-search a regression")
	if withTip.Inner == nil || withTip.Inner.Kind != KindIdleTip {
		t.Fatalf("nested idle tip = %+v", withTip.Inner)
	}
	if withTip.Inner.Cmd != "git bisect" || withTip.Inner.Desc != "binary-search a regression" {
		t.Errorf("nested tip fields = %q / %q", withTip.Inner.Cmd, withTip.Inner.Desc)
	}

	withEmpty := ParseLine("LOGO\t▓▓\t")
	if withEmpty.Inner != nil {
		t.Errorf("empty payload must parse as no inner, got %+v", withEmpty.Inner)
	}

	withAmbient := ParseLine("LOGO\t▓▓\tplain ambient text")
	if withAmbient.Inner == nil || withAmbient.Inner.Kind != KindAmbient {
		t.Fatalf("nested ambient = %+v", withAmbient.Inner)
	}
}

func TestParseFileOneOfEachKind(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"HINTS  ~  [09:00:00]  (3 cmds)",
		"──────────",
		"!! danger hint",
		"! warn hint",
		"» tip hint",
		"↑ upgrade hint",
		"ambient observation",
		"LOGO\t░▒▓\t» nested tip",
		"LOGO\t▓▒░",
		"LOGO_TAG\tv1.0",
		"TIP\ttldr tar\texamples for tar",
		"LABEL\tidle ideas",
		"thinking ...",
		"·",
		"",
	}, "\n")

	lines := ParseFile(content)
	want := []Kind{
		KindHeader, KindSeparator,
		KindRule, KindRule, KindRule, KindRule,
		KindAmbient,
		KindLogo, KindLogo, KindLogoTag,
		KindIdleTip, KindIdleLabel,
		KindThinking, KindDivider, KindBlank,
	}
	if len(lines) != len(want) {
		t.Fatalf("parsed %d lines, want %d", len(lines), len(want))
	}
	for i, k := range want {
		if lines[i].Kind != k {
			t.Errorf("line %d kind = %v, want %v", i, lines[i].Kind, k)
		}
	}

	// The renderer must survive every one of them at any width.
	for _, cols := range []int{0, 10, 40, 120} {
		logoCol := logoColumn(lines, cols)
		for i, line := range lines {
			_ = renderLine(line, cols, logoCol) // must not panic
			_ = i
		}
	}
}
