package slang

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func declareBuiltins(g *Codegen) {
	defineBuiltinFunc(g, "yap", builtinYap)
}

type funcDefinition = func(mod *ir.Module) *ir.Func

func defineBuiltinFunc(g *Codegen, name string, definition funcDefinition) {
	f := definition(g.mod)
	f.SetName(name)
	g.funcs[name] = f
}

// builtinYap prints an integer followed by a newline through libc printf.
func builtinYap(mod *ir.Module) *ir.Func {
	f := mod.NewFunc("", types.Void, ir.NewParam("v", types.I64))
	b := f.NewBlock("")

	printf := mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true

	zero := constant.NewInt(types.I32, 0)

	format := constant.NewCharArrayFromString("%lld\n\x00")
	formatGlob := mod.NewGlobalDef("._yap_fmt", format)

	fmtAddr := constant.NewGetElementPtr(types.NewArray(6, types.I8), formatGlob, zero, zero)

	b.NewCall(printf, fmtAddr, f.Params[0])

	b.NewRet(nil)

	return f
}
