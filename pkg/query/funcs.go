package query

// Call builds a function call. fn is a function name or a FuncRef.
func Call(fn any, args ...any) *FuncCall {
	var ref FuncRef
	switch f := fn.(type) {
	case FuncRef:
		ref = f
	case string:
		ref = Func(f)
	case Ident:
		ref = FuncRef{Name: f}
	default:
		panic(conversionPanic(fn, "a function name"))
	}
	args = flatten(args)
	exprs := make([]Expr, len(args))
	for i, a := range args {
		exprs[i] = toExpr(a)
	}
	return &FuncCall{Func: ref, Args: exprs}
}

// Sum builds sum(x).
func Sum(x any) *FuncCall { return Call("sum", x) }

// Count builds count(x).
func Count(x any) *FuncCall { return Call("count", x) }

// Avg builds avg(x).
func Avg(x any) *FuncCall { return Call("avg", x) }

// Min builds min(x).
func Min(x any) *FuncCall { return Call("min", x) }

// Max builds max(x).
func Max(x any) *FuncCall { return Call("max", x) }
