// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package compressor

import (
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/holomush/evcompress/internal/extract"
	"github.com/holomush/evcompress/internal/notify"
	"github.com/holomush/evcompress/internal/resolve"
	"github.com/holomush/evcompress/internal/rewrite"
	"github.com/holomush/evcompress/internal/synth"
)

// Options configures a Session.
type Options struct {
	// Namespace is the class the static event API lives on (default "Event").
	Namespace string
	// ModuleAccessor is the host function returning a module by id (default "m").
	ModuleAccessor string
	// Include and Exclude select the event ids to compress; see Filter.
	Include []string
	Exclude []string
	// Logger receives session diagnostics; defaults to slog.Default().
	Logger *slog.Logger
}

// Result is the outcome of transforming one source unit.
type Result struct {
	Output string
	// Substitutions counts the fire call sites replaced.
	Substitutions int
	// Skipped counts fire call sites left in place, either because they are
	// used inside an expression or because their arguments could not be
	// spread at build time.
	Skipped int
}

// Session owns the subscription and fire tables of one compilation.
//
// Collect and Reset mutate the tables and must not run concurrently with any
// other method. Transform only reads them, so several units may be
// transformed in parallel once collection is finished.
type Session struct {
	id            ulid.ULID
	extractor     *extract.Extractor
	synth         *synth.Synthesizer
	filter        *Filter
	logger        *slog.Logger
	subscriptions *extract.SubscriptionTable
	fires         *extract.FireTable
}

// NewSession creates an empty session. It fails only on invalid filter
// patterns.
func NewSession(opts Options) (*Session, error) {
	filter, err := NewFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := newSessionID()
	return &Session{
		id:            id,
		extractor:     extract.New(opts.Namespace),
		synth:         synth.New(opts.ModuleAccessor),
		filter:        filter,
		logger:        logger.With("session", id.String()),
		subscriptions: extract.NewSubscriptionTable(),
		fires:         extract.NewFireTable(),
	}, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() ulid.ULID { return s.id }

// Collect scans src and accumulates its subscriptions and fires.
func (s *Session) Collect(src string) {
	subs, fires := s.extractor.Extract(src)
	s.subscriptions.Add(subs...)
	s.fires.Put(fires...)
	s.logger.Debug("collected event calls",
		"subscriptions", len(subs),
		"fires", len(fires))
}

// FindStaticSubscriptions extracts static subscriptions from src without
// touching the tables.
func (s *Session) FindStaticSubscriptions(src string) []extract.SubscriptionRecord {
	return s.extractor.FindStaticSubscriptions(src)
}

// FindInstanceSubscriptions extracts instance subscriptions from src without
// touching the tables.
func (s *Session) FindInstanceSubscriptions(src string) []extract.SubscriptionRecord {
	return s.extractor.FindInstanceSubscriptions(src)
}

// FindFires extracts fires from src without touching the tables.
func (s *Session) FindFires(src string) []extract.FireRecord {
	return s.extractor.FindFires(src)
}

// Subscriptions returns the subscription table.
func (s *Session) Subscriptions() *extract.SubscriptionTable { return s.subscriptions }

// Fires returns the fire table.
func (s *Session) Fires() *extract.FireTable { return s.fires }

// Reset discards both tables before an unrelated compilation unit.
func (s *Session) Reset() {
	s.subscriptions = extract.NewSubscriptionTable()
	s.fires = extract.NewFireTable()
}

// Transform replaces every collected fire call site present in src with
// direct calls to the handlers registry binds to its event. Notifications
// go to sink, which may be nil.
//
// A record is applied at the first live call site in src with the same text;
// look-alike text inside comments or strings is left alone. Fires used inside
// an expression, and fires whose params cannot be spread, are left in place
// and counted as skipped.
func (s *Session) Transform(src string, registry resolve.Registry, sink notify.Sink) Result {
	if sink == nil {
		sink = notify.Nop{}
	}
	resolver := resolve.New(registry, sink)
	sites := s.liveSites(src)

	var (
		subs    []rewrite.Substitution
		skipped int
	)
	for _, fire := range s.fires.All() {
		offset, ok := sites[fire.Source]
		if !ok || !s.filter.Selected(fire.EventID) {
			continue
		}
		if !fire.Statement {
			s.logger.Warn("leaving event fire used as an expression",
				"event", fire.EventID,
				"line", fire.Line)
			skipped++
			continue
		}
		targets := resolver.ResolveAll(s.subscriptions.Get(fire.EventID))
		if fire.Dynamic && len(targets) > 0 {
			s.logger.Warn("leaving event fire with non-literal params",
				"event", fire.EventID,
				"params", fire.Params,
				"line", fire.Line)
			skipped++
			continue
		}
		subs = append(subs, rewrite.Substitution{
			Original:    fire.Source,
			Replacement: s.synth.Synthesize(fire, targets),
			Offset:      offset,
		})
	}

	out, n := rewrite.Apply(src, subs, sink)
	return Result{Output: out, Substitutions: n, Skipped: skipped}
}

// liveSites maps each fire call site text in src to its first offset.
func (s *Session) liveSites(src string) map[string]int {
	sites := make(map[string]int)
	for _, m := range s.extractor.FireSites(src) {
		if _, seen := sites[m.Source]; !seen {
			sites[m.Source] = m.Offset
		}
	}
	return sites
}
