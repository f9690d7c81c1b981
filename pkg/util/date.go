package util

import (
	"strings"
	"time"
)

// dateTokens map template placeholders to Go reference-time layouts.
// Longer tokens come first so YYYY is not eaten by YY.
var dateTokens = []struct{ tpl, layout string }{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"hh", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

// FormatDateTpl renders a millisecond Unix timestamp through a
// placeholder template, e.g. FormatDateTpl(ts, "YYYY-MM-DD hh:mm:ss").
// A zero timestamp renders as the empty string.
func FormatDateTpl(ts int64, tpl string) string {
	if ts == 0 {
		return ""
	}
	layout := tpl
	for _, tok := range dateTokens {
		layout = strings.ReplaceAll(layout, tok.tpl, tok.layout)
	}
	return time.UnixMilli(ts).Format(layout)
}
