// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package report renders a session's subscription and fire tables.
package report

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/evcompress/internal/extract"
)

// Error codes for report encoding failures.
const (
	CodeFormat = "REPORT_FORMAT"
	CodeEncode = "REPORT_ENCODE"
)

// Formats accepted by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report is the serializable view of collected event calls.
type Report struct {
	Events []Event `json:"events" yaml:"events"`
}

// Event groups everything collected for one event id.
type Event struct {
	ID            string         `json:"id" yaml:"id"`
	Subscriptions []Subscription `json:"subscriptions,omitempty" yaml:"subscriptions,omitempty"`
	Fire          *Fire          `json:"fire,omitempty" yaml:"fire,omitempty"`
}

// Subscription is a reported subscribe call site.
type Subscription struct {
	Kind   string `json:"kind" yaml:"kind"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Method string `json:"method" yaml:"method"`
	Line   int    `json:"line" yaml:"line"`
	Source string `json:"source" yaml:"source"`
}

// Fire is a reported fire call site.
type Fire struct {
	Arguments []string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Params    string   `json:"params,omitempty" yaml:"params,omitempty"`
	Signal    bool     `json:"signal,omitempty" yaml:"signal,omitempty"`
	Dynamic   bool     `json:"dynamic,omitempty" yaml:"dynamic,omitempty"`
	Line      int      `json:"line" yaml:"line"`
	Source    string   `json:"source" yaml:"source"`
}

// Build assembles a report. Events are ordered by first subscription, then
// fired-only ids in fire order.
func Build(subs *extract.SubscriptionTable, fires *extract.FireTable) Report {
	var r Report
	index := make(map[string]int)
	event := func(id string) *Event {
		i, ok := index[id]
		if !ok {
			i = len(r.Events)
			index[id] = i
			r.Events = append(r.Events, Event{ID: id})
		}
		return &r.Events[i]
	}

	for _, id := range subs.IDs() {
		e := event(id)
		for _, s := range subs.Get(id) {
			e.Subscriptions = append(e.Subscriptions, Subscription{
				Kind:   s.Handler.Kind.String(),
				Target: s.Handler.Target,
				Method: s.Handler.Method,
				Line:   s.Line,
				Source: s.Source,
			})
		}
	}
	for _, f := range fires.All() {
		event(f.EventID).Fire = &Fire{
			Arguments: f.Arguments,
			Params:    f.Params,
			Signal:    f.Signal,
			Dynamic:   f.Dynamic,
			Line:      f.Line,
			Source:    f.Source,
		}
	}
	return r
}

// Encode writes r to w in format.
func Encode(w io.Writer, r Report, format string) error {
	switch format {
	case FormatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
		if err != nil {
			return oops.Code(CodeEncode).With("format", format).Wrapf(err, "encoding report")
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return oops.Code(CodeEncode).With("format", format).Wrapf(err, "writing report")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return oops.Code(CodeEncode).With("format", format).Wrapf(err, "encoding report")
		}
		if err := enc.Close(); err != nil {
			return oops.Code(CodeEncode).With("format", format).Wrapf(err, "writing report")
		}
		return nil
	default:
		return oops.Code(CodeFormat).With("format", format).Errorf("unknown report format %q", format)
	}
}
