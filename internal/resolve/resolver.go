// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package resolve

import (
	"regexp"
	"strings"

	"github.com/holomush/evcompress/internal/extract"
	"github.com/holomush/evcompress/internal/notify"
)

// ReasonVariable is the rejection reason reported for handlers whose text
// names a variable. Other unusable handler shapes yield no call silently.
const ReasonVariable = "variables not supported"

// callableName matches function names, namespaced function names and
// Class::method strings.
var callableName = regexp.MustCompile(`^\\?[A-Za-z_]\w*(?:\\[A-Za-z_]\w*)*(?:::[A-Za-z_]\w*)?$`)

// Resolver turns subscriptions into call targets. It holds no mutable state.
type Resolver struct {
	registry Registry
	sink     notify.Sink
}

// New creates a resolver. A nil registry has no bindings and a nil sink
// discards notifications.
func New(registry Registry, sink notify.Sink) *Resolver {
	if registry == nil {
		registry = EmptyRegistry{}
	}
	if sink == nil {
		sink = notify.Nop{}
	}
	return &Resolver{registry: registry, sink: sink}
}

// ResolveAll resolves subs in order and concatenates their targets.
func (r *Resolver) ResolveAll(subs []extract.SubscriptionRecord) []Target {
	var out []Target
	for _, sub := range subs {
		out = append(out, r.Resolve(sub)...)
	}
	return out
}

// Resolve returns the call targets for one subscription. Handlers that cannot
// be called directly produce no targets; only global function handlers that
// reference variables or are not plain names are reported.
func (r *Resolver) Resolve(sub extract.SubscriptionRecord) []Target {
	if sub.Handler.Kind == extract.InstanceMethod {
		return r.resolveMethod(sub)
	}
	return r.resolveFunction(sub)
}

func (r *Resolver) resolveMethod(sub extract.SubscriptionRecord) []Target {
	var out []Target
	for _, b := range r.registry.Bindings(sub.EventID) {
		if b.Method != "" && b.Method != sub.Handler.Method {
			continue
		}
		switch {
		case b.Owner != nil && b.Owner.IsNamedModule() && b.Owner.IsCompressable():
			out = append(out, Target{
				Kind:     TargetModule,
				ModuleID: b.Owner.ModuleID(),
				Method:   sub.Handler.Method,
			})
		case strings.Contains(sub.Handler.Target, "("):
			// TODO: construction-style targets are instantiated at every fire
			// site; decide whether to hoist them into a shared instance.
			out = append(out, Target{
				Kind:       TargetExpression,
				Expression: sub.Handler.Target,
				Method:     sub.Handler.Method,
			})
		}
	}
	return out
}

func (r *Resolver) resolveFunction(sub extract.SubscriptionRecord) []Target {
	name := strings.TrimSpace(sub.Handler.Method)
	switch {
	case strings.Contains(name, "$"):
		r.sink.Rejected(sub.EventID, name, ReasonVariable)
		return nil
	case !callableName.MatchString(name):
		return nil
	}
	return []Target{{Kind: TargetFunction, Function: name}}
}
