package templates

import (
	qt "github.com/valyala/quicktemplate"
)

// CombineGen renders Combine1 through Combine<count> for the reactive package.
func CombineGen(count int) string {
	bb := qt.AcquireByteBuffer()
	defer qt.ReleaseByteBuffer(bb)
	qw := qt.AcquireWriter(bb)
	defer qt.ReleaseWriter(qw)

	w := qw.N()
	w.S("// Code generated by cmd/codegen. DO NOT EDIT.\n\npackage reactive\n")
	for n := 1; n <= count; n++ {
		writeCombine(w, n)
	}
	return string(bb.B)
}

func writeCombine(w *qt.QWriter, n int) {
	typeParams := prefixedStrings("A", n)

	w.S("\n// Combine")
	w.D(n)
	w.S(" derives a memoized value from a fixed list of accessors.\nfunc Combine")
	w.D(n)
	w.S("[")
	w.S(typeParams)
	w.S(", R any](")
	for i := 0; i < n; i++ {
		w.S("a")
		w.D(i)
		w.S(" *Accessor[A")
		w.D(i)
		w.S("], ")
	}
	w.S("fn func(")
	w.S(typeParams)
	w.S(") R, opts ...Option[R]) *Accessor[R] {\n\treturn CreateMemo(a0.rt, func() R {\n\t\treturn fn(")
	w.S(prefixedCalls("a", ".Get()", n))
	w.S(")\n\t}, opts...)\n}\n")
}
