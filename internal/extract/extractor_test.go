// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/evcompress/internal/scan"
)

func TestParseHandler(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  HandlerDescriptor
	}{
		{
			name:  "quoted function name",
			input: "'doSave'",
			want:  HandlerDescriptor{Kind: GlobalFunction, Method: "doSave"},
		},
		{
			name:  "double quoted function name",
			input: `"doSave"`,
			want:  HandlerDescriptor{Kind: GlobalFunction, Method: "doSave"},
		},
		{
			name:  "static method string",
			input: "'Foo::bar'",
			want:  HandlerDescriptor{Kind: GlobalFunction, Method: "Foo::bar"},
		},
		{
			name:  "variable handler",
			input: "$callback",
			want:  HandlerDescriptor{Kind: GlobalFunction, Method: "$callback"},
		},
		{
			name:  "object method",
			input: "array($obj, 'run')",
			want:  HandlerDescriptor{Kind: InstanceMethod, Target: "$obj", Method: "run"},
		},
		{
			name:  "object method short array",
			input: `[ $this , "render" ]`,
			want:  HandlerDescriptor{Kind: InstanceMethod, Target: "$this", Method: "render"},
		},
		{
			name:  "constructed target",
			input: "array(new Renderer($cfg, 1), 'run')",
			want:  HandlerDescriptor{Kind: InstanceMethod, Target: "new Renderer($cfg, 1)", Method: "run"},
		},
		{
			name:  "array with dynamic method stays global",
			input: "array($obj, $method)",
			want:  HandlerDescriptor{Kind: GlobalFunction, Method: "array($obj, $method)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHandler(tt.input))
		})
	}
}

func TestSubscriptionQuoteStyleInvariance(t *testing.T) {
	single := FindStaticSubscriptions(`Event::subscribe('a', 'f');`)
	double := FindStaticSubscriptions(`Event::subscribe("a", "f");`)

	require.Len(t, single, 1)
	require.Len(t, double, 1)
	assert.NotEqual(t, single[0].Source, double[0].Source)

	single[0].Source, double[0].Source = "", ""
	assert.Equal(t, single[0], double[0])
}

func TestFindInstanceSubscriptions(t *testing.T) {
	src := `$this->subscribe('render', array($this, 'onRender'));`

	got := FindInstanceSubscriptions(src)

	require.Len(t, got, 1)
	assert.Equal(t, "render", got[0].EventID)
	assert.Equal(t, HandlerDescriptor{Kind: InstanceMethod, Target: "$this", Method: "onRender"}, got[0].Handler)
	assert.Empty(t, FindStaticSubscriptions(src))
}

func TestParseFireArguments(t *testing.T) {
	tests := []struct {
		name        string
		expr        string
		wantArgs    []string
		wantSignal  bool
		wantDynamic bool
	}{
		{name: "no params", expr: ""},
		{name: "literal array", expr: "array($a, $b)", wantArgs: []string{"$a", "$b"}},
		{name: "reference markers removed", expr: "array(&$a, & $b)", wantArgs: []string{"$a", "$b"}},
		{name: "nested calls kept whole", expr: "array(foo($a, $b), 'x, y')", wantArgs: []string{"foo($a, $b)", "'x, y'"}},
		{name: "trailing comma dropped", expr: "array($a, )", wantArgs: []string{"$a"}},
		{name: "keys dropped", expr: "array('one' => $a, 2 => $b)", wantArgs: []string{"$a", "$b"}},
		{name: "short array", expr: "[$a]", wantArgs: []string{"$a"}},
		{name: "empty array", expr: "array()"},
		{name: "signal fire", expr: "array(1, 2), true", wantArgs: []string{"1", "2"}, wantSignal: true},
		{name: "signal flag any case", expr: "array(1), TRUE", wantArgs: []string{"1"}, wantSignal: true},
		{name: "false flag is not signal", expr: "array(1), false", wantArgs: []string{"1"}},
		{name: "variable params", expr: "$params", wantDynamic: true},
		{name: "variable params signal", expr: "$params, true", wantDynamic: true, wantSignal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFire(scan.Match{Kind: scan.Fire, ID: "x", Expr: tt.expr})
			assert.Equal(t, tt.wantArgs, got.Arguments)
			assert.Equal(t, tt.wantSignal, got.Signal)
			assert.Equal(t, tt.wantDynamic, got.Dynamic)
		})
	}
}

func TestSignalFireStripping(t *testing.T) {
	signal := FindFires(`Event::fire("x", array(1,2), true);`)
	plain := FindFires(`Event::fire("x", array(1,2));`)

	require.Len(t, signal, 1)
	require.Len(t, plain, 1)
	assert.Equal(t, plain[0].Arguments, signal[0].Arguments)
	assert.True(t, signal[0].Signal)
	assert.False(t, plain[0].Signal)
}

func TestFireStatementFlag(t *testing.T) {
	got := FindFires("Event::fire('a', array(1));\nif (Event::fire('b')) {}\n")

	require.Len(t, got, 2)
	assert.True(t, got[0].Statement)
	assert.False(t, got[1].Statement)
	assert.Equal(t, "Event::fire('b')", got[1].Source)
}

func TestFireSitesKeepsRepeatsAndSkipsComments(t *testing.T) {
	src := "// Event::fire('e');\nEvent::fire('e');\nEvent::fire('e');\n"

	got := New("").FireSites(src)

	require.Len(t, got, 2)
	assert.Equal(t, 21, got[0].Offset)
	assert.Equal(t, 39, got[1].Offset)
	assert.Equal(t, got[0].Source, got[1].Source)
}

func TestFindFiresLastWins(t *testing.T) {
	src := `Event::fire('save', array($a));
Event::fire('load');
Event::fire('save', array($b, $c));`

	got := FindFires(src)

	require.Len(t, got, 2)
	assert.Equal(t, "save", got[0].EventID)
	assert.Equal(t, []string{"$b", "$c"}, got[0].Arguments)
	assert.Equal(t, "Event::fire('save', array($b, $c));", got[0].Source)
	assert.Equal(t, 3, got[0].Line)
	assert.Equal(t, "load", got[1].EventID)
}

func TestExtractorExtractOrdersInstanceFirst(t *testing.T) {
	src := `Event::subscribe('e', 'first');
$obj->subscribe('e', array($obj, 'second'));
Event::fire('e');`

	subs, fires := New("").Extract(src)

	require.Len(t, subs, 2)
	assert.Equal(t, "second", subs[0].Handler.Method)
	assert.Equal(t, "first", subs[1].Handler.Method)
	require.Len(t, fires, 1)
	assert.Equal(t, "e", fires[0].EventID)
}

func TestExtractorIgnoresUnmatchedText(t *testing.T) {
	src := "<?php echo 'nothing to see'; subscribe('x', 'y'); fire('z');"

	assert.Empty(t, FindStaticSubscriptions(src))
	assert.Empty(t, FindInstanceSubscriptions(src))
	assert.Empty(t, FindFires(src))
}
