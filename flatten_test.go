package zsq

import (
	"reflect"
	"testing"
	"time"

	"zgo.at/zstd/ztest"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		in       []Value
		braced   bool
		wantFrag []string
		wantArgs []any
		wantErr  string
	}{
		{"scalar", []Value{V(1)}, false,
			[]string{"?"}, []any{int64(1)}, ""},
		{"string", []Value{V("hello")}, false,
			[]string{"?"}, []any{"hello"}, ""},
		{"null", []Value{V(nil)}, false,
			[]string{"?"}, []any{nil}, ""},
		{"bools to 0/1", []Value{V(true), V(false)}, false,
			[]string{"?", "?"}, []any{int64(1), int64(0)}, ""},
		{"float", []Value{V(float32(1.5))}, false,
			[]string{"?"}, []any{float64(1.5)}, ""},

		{"list unbraced", []Value{List(1, 2, 3)}, false,
			[]string{"?, ?, ?"}, []any{int64(1), int64(2), int64(3)}, ""},
		{"list braced", []Value{List(1, 2, 3)}, true,
			[]string{"(?, ?, ?)"}, []any{int64(1), int64(2), int64(3)}, ""},
		{"tuples unbraced", []Value{List(List(1, 2), List(3, 4))}, false,
			[]string{"(?, ?), (?, ?)"}, []any{int64(1), int64(2), int64(3), int64(4)}, ""},
		{"tuples braced", []Value{List(List(1, 2), List(3, 4))}, true,
			[]string{"((?, ?), (?, ?))"}, []any{int64(1), int64(2), int64(3), int64(4)}, ""},
		{"mixed scalar and list", []Value{List("a", "b"), V(5)}, true,
			[]string{"(?, ?)", "?"}, []any{"a", "b", int64(5)}, ""},
		{"map", []Value{Map(P("a", 1), P("b", 2))}, false,
			[]string{"`a` = ?, `b` = ?"}, []any{int64(1), int64(2)}, ""},
		{"map order preserved", []Value{Map(P("z", 1), P("a", 2), P("m", 3))}, false,
			[]string{"`z` = ?, `a` = ?, `m` = ?"}, []any{int64(1), int64(2), int64(3)}, ""},
		{"map with null and bool", []Value{Map(P("a", nil), P("b", true))}, false,
			[]string{"`a` = ?, `b` = ?"}, []any{nil, int64(1)}, ""},

		{"unsupported type", []Value{V(struct{ X int }{1})}, false,
			nil, nil, "unsupported type"},
		{"list too deep", []Value{List(List(List(1)))}, false,
			nil, nil, "nested more than two levels"},
		{"empty list", []Value{List()}, true,
			nil, nil, "list is empty"},
		{"empty tuple", []Value{List(List())}, true,
			nil, nil, "list is empty"},
		{"map in list", []Value{List(Map(P("a", 1)))}, false,
			nil, nil, "map inside a list"},
		{"map value not scalar", []Value{Map(P("a", List(1, 2)))}, false,
			nil, nil, "not a scalar"},
		{"map key backquote", []Value{Map(P("a`b", 1))}, false,
			nil, nil, "backquote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, args, err := Flatten(tt.in, tt.braced)
			if !ztest.ErrorContains(err, tt.wantErr) {
				t.Fatalf("wrong error: %v", err)
			}
			if tt.wantErr != "" {
				return
			}
			if !reflect.DeepEqual(frag, tt.wantFrag) {
				t.Errorf("fragments\ngot:  %q\nwant: %q", frag, tt.wantFrag)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args\ngot:  %#v\nwant: %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestFlattenInvariants(t *testing.T) {
	values := []Value{V(1), List("a", "b", "c"), Map(P("x", 1), P("y", 2)), V(nil)}
	frag, args, err := Flatten(values, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(frag) != len(values) {
		t.Errorf("len(fragments) = %d, want %d", len(frag), len(values))
	}

	n := 0
	for _, f := range frag {
		for _, c := range f {
			if c == '?' {
				n++
			}
		}
	}
	if n != len(args) {
		t.Errorf("%d placeholders across fragments but %d args", n, len(args))
	}
}

func TestV(t *testing.T) {
	now := time.Now()
	tests := []struct {
		in   any
		want any
	}{
		{int8(1), int64(1)},
		{uint16(2), int64(2)},
		{uint64(3), int64(3)},
		{int64(4), int64(4)},
		{"s", "s"},
		{[]byte("b"), []byte("b")},
		{true, int64(1)},
		{false, int64(0)},
		{1.5, 1.5},
		{now, now},
	}
	for _, tt := range tests {
		v := V(tt.in)
		if v.kind != kindScalar {
			t.Errorf("V(%#v): kind = %d", tt.in, v.kind)
		}
		if !reflect.DeepEqual(v.scalar, tt.want) {
			t.Errorf("V(%#v) = %#v, want %#v", tt.in, v.scalar, tt.want)
		}
	}

	if V(nil).kind != kindNull {
		t.Error("V(nil) not null")
	}
	if v := V(V(1)); v.kind != kindScalar || v.scalar != int64(1) {
		t.Error("V(Value) should pass through")
	}
	if V(make(chan int)).kind != kindInvalid {
		t.Error("V(chan) should be invalid")
	}
}
