// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/evcompress/internal/extract"
	"github.com/holomush/evcompress/internal/notify/notifytest"
)

type fakeOwner struct {
	id           string
	named        bool
	compressable bool
}

func (o fakeOwner) IsNamedModule() bool  { return o.named }
func (o fakeOwner) IsCompressable() bool { return o.compressable }
func (o fakeOwner) ModuleID() string     { return o.id }

type mapRegistry map[string][]Binding

func (m mapRegistry) Bindings(id string) []Binding { return m[id] }

func methodSub(id, target, method string) extract.SubscriptionRecord {
	return extract.SubscriptionRecord{
		EventID: id,
		Handler: extract.HandlerDescriptor{Kind: extract.InstanceMethod, Target: target, Method: method},
	}
}

func functionSub(id, name string) extract.SubscriptionRecord {
	return extract.SubscriptionRecord{
		EventID: id,
		Handler: extract.HandlerDescriptor{Kind: extract.GlobalFunction, Method: name},
	}
}

func TestResolveModuleMethod(t *testing.T) {
	reg := mapRegistry{
		"run": {{Owner: fakeOwner{id: "mod1", named: true, compressable: true}, Method: "run"}},
	}

	got := New(reg, nil).Resolve(methodSub("run", "$obj", "run"))

	require.Len(t, got, 1)
	assert.Equal(t, Target{Kind: TargetModule, ModuleID: "mod1", Method: "run"}, got[0])
	assert.Equal(t, `m("mod1")->run`, got[0].Accessor(""))
	assert.Equal(t, `module("mod1")->run`, got[0].Accessor("module"))
}

func TestResolveMethodCapabilities(t *testing.T) {
	tests := []struct {
		name   string
		owner  Owner
		target string
		want   []Target
	}{
		{
			name:   "named but not compressable falls back to explicit target",
			owner:  fakeOwner{id: "mod1", named: true},
			target: "new Renderer()",
			want:   []Target{{Kind: TargetExpression, Expression: "new Renderer()", Method: "run"}},
		},
		{
			name:   "compressable but unnamed with bare variable target",
			owner:  fakeOwner{compressable: true},
			target: "$this",
		},
		{
			name:   "plain object with call target",
			owner:  fakeOwner{},
			target: "m('mod2')",
			want:   []Target{{Kind: TargetExpression, Expression: "m('mod2')", Method: "run"}},
		},
		{
			name:   "nil owner with bare variable",
			target: "$obj",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := mapRegistry{"e": {{Owner: tt.owner, Method: "run"}}}
			rec := &notifytest.Recorder{}

			got := New(reg, rec).Resolve(methodSub("e", tt.target, "run"))

			assert.Equal(t, tt.want, got)
			assert.Empty(t, rec.Rejections())
		})
	}
}

func TestResolveMethodSkipsOtherMethods(t *testing.T) {
	mod := fakeOwner{id: "mod1", named: true, compressable: true}
	reg := mapRegistry{"e": {
		{Owner: mod, Method: "other"},
		{Owner: fakeOwner{id: "mod2", named: true, compressable: true}, Method: "run"},
		{Owner: fakeOwner{id: "mod3", named: true, compressable: true}},
	}}

	got := New(reg, nil).Resolve(methodSub("e", "$this", "run"))

	require.Len(t, got, 2)
	assert.Equal(t, "mod2", got[0].ModuleID)
	assert.Equal(t, "mod3", got[1].ModuleID)
}

func TestResolveMethodWithoutBindings(t *testing.T) {
	got := New(nil, nil).Resolve(methodSub("e", "new Foo()", "run"))

	assert.Empty(t, got)
}

func TestResolveFunction(t *testing.T) {
	tests := []struct {
		name       string
		handler    string
		want       []Target
		wantReason string
	}{
		{name: "plain name", handler: "doSave", want: []Target{{Kind: TargetFunction, Function: "doSave"}}},
		{name: "namespaced", handler: `\app\doSave`, want: []Target{{Kind: TargetFunction, Function: `\app\doSave`}}},
		{name: "static method string", handler: "Saver::save", want: []Target{{Kind: TargetFunction, Function: "Saver::save"}}},
		{name: "variable", handler: "$callback", wantReason: ReasonVariable},
		{name: "closure", handler: "function () { return 1; }"},
		{name: "string concatenation", handler: "'do' . 'Save'"},
		{name: "dynamic array", handler: "array($obj, $method)", wantReason: ReasonVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &notifytest.Recorder{}

			got := New(nil, rec).Resolve(functionSub("save", tt.handler))

			assert.Equal(t, tt.want, got)
			if tt.wantReason == "" {
				assert.Empty(t, rec.Rejections())
				return
			}
			require.Len(t, rec.Rejections(), 1)
			assert.Equal(t, notifytest.Rejection{EventID: "save", Handler: tt.handler, Reason: tt.wantReason}, rec.Rejections()[0])
		})
	}
}

func TestResolveAllKeepsOrder(t *testing.T) {
	reg := mapRegistry{"e": {{Owner: fakeOwner{id: "mod", named: true, compressable: true}, Method: "m1"}}}
	subs := []extract.SubscriptionRecord{
		functionSub("e", "first"),
		methodSub("e", "$this", "m1"),
		functionSub("e", "$skipped"),
		functionSub("e", "last"),
	}

	got := New(reg, nil).ResolveAll(subs)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Accessor(""))
	assert.Equal(t, `m("mod")->m1`, got[1].Accessor(""))
	assert.Equal(t, "last", got[2].Accessor(""))
}

func TestTargetAccessorExpression(t *testing.T) {
	target := Target{Kind: TargetExpression, Expression: "new Foo()", Method: "bar"}

	assert.Equal(t, "new Foo()->bar", target.Accessor(""))
	assert.Equal(t, "expression", target.Kind.String())
	assert.Equal(t, "unknown", TargetKind(9).String())
}
