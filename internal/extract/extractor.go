// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package extract

import (
	"regexp"
	"strings"

	"github.com/holomush/evcompress/internal/scan"
)

// Extractor converts call sites found by a scan.Matcher into records.
// Extractor methods are pure and never touch session tables.
type Extractor struct {
	matcher *scan.Matcher
}

// New creates an extractor for static calls on namespace ("" for the default).
func New(namespace string) *Extractor {
	return &Extractor{matcher: scan.NewMatcher(namespace)}
}

var defaultExtractor = New("")

// FindStaticSubscriptions extracts Namespace::subscribe call sites using the
// default namespace.
func FindStaticSubscriptions(src string) []SubscriptionRecord {
	return defaultExtractor.FindStaticSubscriptions(src)
}

// FindInstanceSubscriptions extracts expr->subscribe call sites.
func FindInstanceSubscriptions(src string) []SubscriptionRecord {
	return defaultExtractor.FindInstanceSubscriptions(src)
}

// FindFires extracts Namespace::fire call sites using the default namespace.
func FindFires(src string) []FireRecord {
	return defaultExtractor.FindFires(src)
}

// FindStaticSubscriptions extracts Namespace::subscribe call sites.
func (e *Extractor) FindStaticSubscriptions(src string) []SubscriptionRecord {
	return subscriptions(e.matcher.Find(scan.StaticSubscribe, src))
}

// FindInstanceSubscriptions extracts expr->subscribe call sites.
func (e *Extractor) FindInstanceSubscriptions(src string) []SubscriptionRecord {
	return subscriptions(e.matcher.Find(scan.InstanceSubscribe, src))
}

// FindFires extracts Namespace::fire call sites. Only the last fire of each
// event id is returned, positioned where the id was first fired.
func (e *Extractor) FindFires(src string) []FireRecord {
	return fires(e.matcher.Find(scan.Fire, src))
}

// FireSites returns every fire call site in src in source order, including
// repeated ones. Text inside comments and strings is never a site.
func (e *Extractor) FireSites(src string) []scan.Match {
	return e.matcher.Find(scan.Fire, src)
}

// Extract scans src once and returns its subscriptions, instance subscriptions
// first, and its fires.
func (e *Extractor) Extract(src string) ([]SubscriptionRecord, []FireRecord) {
	res := e.matcher.Scan(src)
	subs := subscriptions(res.Instance)
	subs = append(subs, subscriptions(res.Static)...)
	return subs, fires(res.Fires)
}

func subscriptions(matches []scan.Match) []SubscriptionRecord {
	out := make([]SubscriptionRecord, 0, len(matches))
	for _, m := range matches {
		out = append(out, SubscriptionRecord{
			EventID: m.ID,
			Handler: ParseHandler(m.Expr),
			Source:  m.Source,
			Line:    m.Line,
		})
	}
	return out
}

func fires(matches []scan.Match) []FireRecord {
	table := NewFireTable()
	for _, m := range matches {
		table.Put(ParseFire(m))
	}
	return table.All()
}

var quoteStripper = strings.NewReplacer(`"`, "", `'`, "")

// ParseHandler parses handler text from a subscribe call. The two-element
// array(objectExpr, 'method') form is an instance method; anything else is a
// global function named by the text with its quotes removed.
func ParseHandler(expr string) HandlerDescriptor {
	expr = strings.TrimSpace(expr)
	if inner, ok := scan.ArrayLiteral(expr); ok {
		parts := scan.SplitTopLevel(inner)
		if len(parts) == 2 && parts[0] != "" && isQuoted(parts[1]) {
			return HandlerDescriptor{
				Kind:   InstanceMethod,
				Target: parts[0],
				Method: strings.TrimSpace(parts[1][1 : len(parts[1])-1]),
			}
		}
	}
	return HandlerDescriptor{
		Kind:   GlobalFunction,
		Method: quoteStripper.Replace(expr),
	}
}

// ParseFire builds a fire record from a fire call site.
func ParseFire(m scan.Match) FireRecord {
	rec := FireRecord{
		EventID:   m.ID,
		Statement: m.Terminated,
		Source:    m.Source,
		Line:      m.Line,
	}

	parts := scan.SplitTopLevel(m.Expr)
	if n := len(parts); n >= 2 && strings.EqualFold(parts[n-1], "true") {
		rec.Signal = true
		parts = parts[:n-1]
	}
	if len(parts) == 0 || parts[0] == "" {
		return rec
	}
	rec.Params = parts[0]

	inner, ok := scan.ArrayLiteral(rec.Params)
	if !ok {
		rec.Dynamic = true
		return rec
	}
	for _, arg := range scan.SplitTopLevel(inner) {
		if arg = cleanArgument(arg); arg != "" {
			rec.Arguments = append(rec.Arguments, arg)
		}
	}
	return rec
}

// arrayKey matches a literal key prefix of an array item ('k' => v, 0 => v).
var arrayKey = regexp.MustCompile(`^(?s)(?:'[^']*'|"[^"]*"|\d+)\s*=>\s*`)

// cleanArgument turns one array item into a positional call argument.
func cleanArgument(arg string) string {
	arg = strings.TrimSpace(arg)
	arg = arrayKey.ReplaceAllString(arg, "")
	arg = strings.TrimPrefix(arg, "&")
	return strings.TrimSpace(arg)
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	q := s[0]
	return (q == '\'' || q == '"') && s[len(s)-1] == q
}
