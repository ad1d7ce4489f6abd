// Package intent decides whether a query should reach the external web
// search provider. The keyword rules are plain pattern matches, not
// semantic analysis: they cost nothing per request and misfire on
// occasion, which is acceptable here. Do not replace them with an
// embedding or LLM classifier - that would add latency and cost to
// every request for a decision that only gates an optional source.
package intent

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode is the caller's web-search directive
type Mode string

const (
	// ModeAuto applies the heuristics below
	ModeAuto Mode = "auto"
	// ModeForceOn always enables web search
	ModeForceOn Mode = "force-on"
	// ModeForceOff always disables web search
	ModeForceOff Mode = "force-off"
)

// rule identifiers reported in Decision.Rule
const (
	RuleForceOn      = "force-on"
	RuleForceOff     = "force-off"
	RuleDocumentLock = "document-lock"
	RuleKeyword      = "keyword-match"
	RuleDefault      = "default"
)

// Decision is the resolved outcome plus the rule that produced it,
// so callers can log why web search ran or didn't
type Decision struct {
	Enabled bool
	Rule    string
}

// queries that reference "this document", a figure, a table etc. are
// about the user's own material; the open web cannot answer them.
// English and Vietnamese, matched against the lowercased query.
var documentIntentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(this|that) (document|paper|article|pdf|file|text|report|section|chapter|page)\b`),
	regexp.MustCompile(`\b(fig\.?|figure|table|chart|diagram|equation|section|chapter|page)\s*\d+`),
	regexp.MustCompile(`\b(the|this) (abstract|introduction|conclusion|bibliography|appendix)\b`),
	regexp.MustCompile(`(tài liệu|văn bản|bài báo|bài viết|tệp|tập tin) này`),
	regexp.MustCompile(`(hình|bảng|biểu đồ|phương trình|mục|chương|trang)\s*\d+`),
	regexp.MustCompile(`trong (tài liệu|văn bản|bài báo|bài viết)`),
}

// ParseMode validates a caller-supplied mode string, defaulting to auto
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeForceOn, ModeForceOff:
		return Mode(s), nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("invalid web search mode %q (want auto, force-on or force-off)", s)
	}
}

// Resolve applies the rules in fixed priority order:
// explicit mode > document lock > keyword match > default-enabled.
// Pure function, no I/O; safe to call on every request.
func Resolve(mode Mode, query, documentID string) Decision {
	// explicit user intent always wins
	switch mode {
	case ModeForceOn:
		return Decision{Enabled: true, Rule: RuleForceOn}
	case ModeForceOff:
		return Decision{Enabled: false, Rule: RuleForceOff}
	}

	// a user chatting with one opened document wants answers scoped to
	// that document, not the open web
	if documentID != "" {
		return Decision{Enabled: false, Rule: RuleDocumentLock}
	}

	lowered := strings.ToLower(query)

	for _, pattern := range documentIntentPatterns {
		if pattern.MatchString(lowered) {
			return Decision{Enabled: false, Rule: RuleKeyword}
		}
	}

	return Decision{Enabled: true, Rule: RuleDefault}
}
