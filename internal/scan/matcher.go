// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package scan

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultNamespace is the class name the host framework exposes its event API on.
const DefaultNamespace = "Event"

// Kind identifies one of the three call-site shapes.
type Kind int

// Call-site shapes recognized by the matcher.
const (
	StaticSubscribe Kind = iota
	InstanceSubscribe
	Fire
)

// String returns the kind's report name.
func (k Kind) String() string {
	switch k {
	case StaticSubscribe:
		return "static_subscribe"
	case InstanceSubscribe:
		return "instance_subscribe"
	case Fire:
		return "fire"
	default:
		return "unknown"
	}
}

// Match is one raw call site found in source text.
type Match struct {
	Kind   Kind
	ID     string // event id, quotes removed
	Expr   string // handler or argument expression, empty when absent
	Source string // exact matched text, including a trailing ';'
	Offset int    // byte offset of Source in the scanned text
	Line   int    // 1-based line of Offset
	// Terminated is set when the call is a whole statement, that is when
	// Source ends with the absorbed ';'.
	Terminated bool
}

// Result holds the matches of every shape for one scan, each in
// first-occurrence order.
type Result struct {
	Static   []Match
	Instance []Match
	Fires    []Match
}

// idPattern captures a single- or double-quoted literal event id.
const idPattern = `\s*(?:'([^']+)'|"([^"]+)")`

// Matcher locates subscribe and fire call sites without a language grammar.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	namespace string
	static    *regexp.Regexp
	instance  *regexp.Regexp
	fire      *regexp.Regexp
}

// NewMatcher builds a matcher for static calls on namespace. An empty namespace
// selects DefaultNamespace.
func NewMatcher(namespace string) *Matcher {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	ns := regexp.QuoteMeta(namespace) + `\s*::\s*`
	if c := namespace[0]; c == '_' || unicode.IsLetter(rune(c)) {
		ns = `\b` + ns
	}
	return &Matcher{
		namespace: namespace,
		static:    regexp.MustCompile(`(?i)` + ns + `subscribe\s*(\()` + idPattern),
		instance:  regexp.MustCompile(`(?i)->\s*subscribe\s*(\()` + idPattern),
		fire:      regexp.MustCompile(`(?i)` + ns + `fire\s*(\()` + idPattern),
	}
}

// Namespace returns the static call namespace.
func (m *Matcher) Namespace() string { return m.namespace }

// Scan finds all three call-site shapes in src.
func (m *Matcher) Scan(src string) Result {
	ts := Tokenize(src)
	return Result{
		Static:   m.find(StaticSubscribe, m.static, src, ts),
		Instance: m.find(InstanceSubscribe, m.instance, src, ts),
		Fires:    m.find(Fire, m.fire, src, ts),
	}
}

// Find returns the call sites of a single shape in src.
func (m *Matcher) Find(kind Kind, src string) []Match {
	ts := Tokenize(src)
	switch kind {
	case StaticSubscribe:
		return m.find(kind, m.static, src, ts)
	case InstanceSubscribe:
		return m.find(kind, m.instance, src, ts)
	case Fire:
		return m.find(kind, m.fire, src, ts)
	default:
		return nil
	}
}

func (m *Matcher) find(kind Kind, re *regexp.Regexp, src string, ts Tokens) []Match {
	var out []Match
	for _, loc := range re.FindAllStringSubmatchIndex(src, -1) {
		match, ok := complete(kind, src, ts, loc)
		if ok {
			out = append(out, match)
		}
	}
	return out
}

// complete turns a call head found by a regexp into a full call site. The
// head's opening parenthesis and id must be real tokens, not text inside a
// string or comment, and the id must be followed by ',' or the closing ')'.
func complete(kind Kind, src string, ts Tokens, loc []int) (Match, bool) {
	open := ts.indexAt(loc[2])
	if open+2 >= len(ts) || ts[open].Offset != loc[2] || ts[open].Value != "(" {
		return Match{}, false
	}
	quote := loc[6] - 1
	if loc[4] >= 0 {
		quote = loc[4] - 1
	}
	idTok := ts[open+1]
	if !idTok.IsString() || idTok.Offset != quote {
		return Match{}, false
	}
	closing, ok := ts.Close(open)
	if !ok {
		return Match{}, false
	}
	id := idTok.Value[1 : len(idTok.Value)-1]

	var expr string
	switch next := ts[open+2]; {
	case open+2 == closing:
	case next.IsComma():
		expr = strings.TrimSpace(src[next.End():ts[closing].Offset])
	default:
		// id built from concatenation or other non-literal form
		return Match{}, false
	}

	end := ts[closing].End()
	terminated := closing+1 < len(ts) && ts[closing+1].Type == tokSemi
	if terminated {
		end = ts[closing+1].End()
	}
	start := loc[0]
	return Match{
		Kind:       kind,
		ID:         strings.TrimSpace(id),
		Expr:       expr,
		Source:     src[start:end],
		Offset:     start,
		Line:       1 + strings.Count(src[:start], "\n"),
		Terminated: terminated,
	}, true
}
