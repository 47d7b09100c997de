package slang

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Codegen lowers a TeaSpill into an LLVM IR module. One symbol table of
// allocas exists per function body; loopCondition and loopMerge track the
// innermost holdUp loop as branch targets for rizz and ghost.
type Codegen struct {
	mod   *ir.Module
	fn    *ir.Func
	block *ir.Block
	vars  map[string]*ir.InstAlloca
	funcs map[string]*ir.Func

	loopCondition *ir.Block
	loopMerge     *ir.Block

	labels int
	strs   int
}

func NewCodegen() *Codegen {
	g := &Codegen{
		mod:   ir.NewModule(),
		funcs: make(map[string]*ir.Func),
	}

	declareBuiltins(g)
	return g
}

// GenerateIR walks the program root and returns the finished module.
func GenerateIR(tea *TeaSpill) (*ir.Module, error) {
	g := NewCodegen()
	g.mod.SourceFilename = tea.Name

	for i := range tea.Declarations {
		if err := g.declaration(&tea.Declarations[i]); err != nil {
			return nil, err
		}
	}

	return g.mod, nil
}

func typeFromName(name string) (types.Type, error) {
	switch name {
	case "int":
		return types.I64, nil
	case "float":
		return types.Double, nil
	case "bool":
		return types.I1, nil
	case "char":
		return types.I8, nil
	case "str", "string":
		return types.I8Ptr, nil
	case VoidTypeName:
		return types.Void, nil
	}

	return nil, codegenf("unknown type name: %s", name)
}

func isFloatValue(v value.Value) bool {
	_, ok := v.Type().(*types.FloatType)
	return ok
}

func (g *Codegen) label(prefix string) string {
	g.labels++
	return fmt.Sprintf("%s.%d", prefix, g.labels)
}

func (g *Codegen) declaration(decl *PluhDeclaration) error {
	proto := decl.Proto

	fn, declared := g.funcs[proto.Name]
	if declared {
		if decl.Body != nil {
			return codegenf("pluh %s is already declared", proto.Name)
		}

		// A plug for a name that already exists (such as a built-in) reuses
		// the existing declaration.
		return nil
	}

	retType, err := typeFromName(proto.ReturnType)
	if err != nil {
		return err
	}

	var params []*ir.Param
	for _, arg := range proto.Arguments {
		argType, err := typeFromName(arg.Type)
		if err != nil {
			return err
		}
		if argType.Equal(types.Void) {
			return codegenf("argument %s of pluh %s cannot be npc", arg.Name, proto.Name)
		}
		params = append(params, ir.NewParam(arg.Name, argType))
	}

	fn = g.mod.NewFunc(proto.Name, retType, params...)
	g.funcs[proto.Name] = fn

	if decl.Body == nil {
		return nil
	}

	g.fn = fn
	g.block = fn.NewBlock("entry")
	g.vars = make(map[string]*ir.InstAlloca)
	g.loopCondition = nil
	g.loopMerge = nil
	g.labels = 0

	// Arguments live in allocas so the body can assign to them like any
	// cooked up variable.
	for i, arg := range proto.Arguments {
		param := fn.Params[i]
		slot := g.block.NewAlloca(param.Typ)
		g.block.NewStore(param, slot)
		g.vars[arg.Name] = slot
	}

	if err := g.statement(decl.Body); err != nil {
		return err
	}

	// The shallow return check guarantees a trailing yeet for non-npc
	// functions; any block still open here is either the end of a npc
	// function or unreachable.
	if g.block.Term == nil {
		if retType.Equal(types.Void) {
			g.block.NewRet(nil)
		} else {
			g.block.NewUnreachable()
		}
	}

	return nil
}

func (g *Codegen) statement(stmt Statement) error {
	switch s := stmt.(type) {
	case *CompoundStatement:
		for _, inner := range s.Statements {
			if err := g.statement(inner); err != nil {
				return err
			}
		}
		return nil
	case *CookedUpStatement:
		return g.cookUp(s.VarName, s.VarType, nil)
	case *CookedUpAssignmentStatement:
		return g.cookUp(s.VarName, s.VarType, s.Value)
	case *AssignmentStatement:
		return g.assignment(s)
	case *FrOngJustLikeThatStatement:
		return g.frOngJustLikeThat(s)
	case *HoldUpStatement:
		return g.holdUp(s)
	case *GhostStatement:
		if g.loopMerge == nil {
			return codegenf("ghost outside of a holdUp loop")
		}
		g.block.NewBr(g.loopMerge)
		g.block = g.fn.NewBlock(g.label("dead"))
		return nil
	case *RizzStatement:
		if g.loopCondition == nil {
			return codegenf("rizz outside of a holdUp loop")
		}
		g.block.NewBr(g.loopCondition)
		g.block = g.fn.NewBlock(g.label("dead"))
		return nil
	case *YeetStatement:
		return g.yeet(s)
	default:
		return codegenf("unexpected statement node %T", stmt)
	}
}

func (g *Codegen) cookUp(name string, typeName string, init Expression) error {
	if typeName == VoidTypeName {
		return codegenf("cannot cook up %s with type npc", name)
	}

	t, err := typeFromName(typeName)
	if err != nil {
		return err
	}

	slot := g.block.NewAlloca(t)
	g.vars[name] = slot

	if init == nil {
		return nil
	}

	v, err := g.expression(init)
	if err != nil {
		return err
	}
	g.block.NewStore(v, slot)

	return nil
}

func (g *Codegen) assignment(s *AssignmentStatement) error {
	if s.VarName == DiscardedName {
		_, err := g.expression(s.Value)
		return err
	}

	slot, ok := g.vars[s.VarName]
	if !ok {
		return codegenf("assignment to undeclared variable: %s", s.VarName)
	}

	v, err := g.expression(s.Value)
	if err != nil {
		return err
	}
	g.block.NewStore(v, slot)

	return nil
}

func (g *Codegen) frOngJustLikeThat(s *FrOngJustLikeThatStatement) error {
	cond, err := g.condition(s.Condition)
	if err != nil {
		return err
	}

	thenBlock := g.fn.NewBlock(g.label("then"))
	elseBlock := g.fn.NewBlock(g.label("else"))
	mergeBlock := g.fn.NewBlock(g.label("ifcont"))

	g.block.NewCondBr(cond, thenBlock, elseBlock)

	g.block = thenBlock
	if err := g.statement(s.Then); err != nil {
		return err
	}
	if g.block.Term == nil {
		g.block.NewBr(mergeBlock)
	}

	g.block = elseBlock
	if err := g.statement(s.Else); err != nil {
		return err
	}
	if g.block.Term == nil {
		g.block.NewBr(mergeBlock)
	}

	g.block = mergeBlock
	return nil
}

func (g *Codegen) holdUp(s *HoldUpStatement) error {
	condBlock := g.fn.NewBlock(g.label("loop.cond"))
	bodyBlock := g.fn.NewBlock(g.label("loop.body"))
	mergeBlock := g.fn.NewBlock(g.label("loop.end"))

	g.block.NewBr(condBlock)

	g.block = condBlock
	cond, err := g.condition(s.Condition)
	if err != nil {
		return err
	}
	g.block.NewCondBr(cond, bodyBlock, mergeBlock)

	prevCondition, prevMerge := g.loopCondition, g.loopMerge
	g.loopCondition, g.loopMerge = condBlock, mergeBlock

	g.block = bodyBlock
	if err := g.statement(s.Body); err != nil {
		return err
	}
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}

	g.loopCondition, g.loopMerge = prevCondition, prevMerge
	g.block = mergeBlock

	return nil
}

func (g *Codegen) yeet(s *YeetStatement) error {
	if g.fn.Sig.RetType.Equal(types.Void) {
		return codegenf("cannot yeet from a npc pluh: %s", g.fn.Name())
	}

	v, err := g.expression(s.Value)
	if err != nil {
		return err
	}

	g.block.NewRet(v)
	g.block = g.fn.NewBlock(g.label("dead"))

	return nil
}

// condition evaluates an expression and coerces it to an i1 truth value.
func (g *Codegen) condition(e Expression) (value.Value, error) {
	v, err := g.expression(e)
	if err != nil {
		return nil, err
	}

	return g.truthy(v)
}

func (g *Codegen) truthy(v value.Value) (value.Value, error) {
	switch t := v.Type().(type) {
	case *types.IntType:
		if t.BitSize == 1 {
			return v, nil
		}
		return g.block.NewICmp(enum.IPredNE, v, constant.NewInt(t, 0)), nil
	case *types.FloatType:
		return g.block.NewFCmp(enum.FPredONE, v, constant.NewFloat(t, 0)), nil
	}

	return nil, codegenf("condition is not a numeric value")
}

func (g *Codegen) expression(e Expression) (value.Value, error) {
	switch e := e.(type) {
	case *IntLiteral:
		return constant.NewInt(types.I64, e.Value), nil
	case *FloatLiteral:
		return constant.NewFloat(types.Double, e.Value), nil
	case *BoolLiteral:
		return constant.NewBool(e.Value), nil
	case *CharLiteral:
		return constant.NewInt(types.I8, int64(e.Value)), nil
	case *StringLiteral:
		return g.stringConstant(e.Value), nil
	case *VariableExpression:
		slot, ok := g.vars[e.Name]
		if !ok {
			return nil, codegenf("undefined variable: %s", e.Name)
		}
		return g.block.NewLoad(slot.ElemType, slot), nil
	case *UnaryExpression:
		return g.unaryExpression(e)
	case *BinaryExpression:
		return g.binaryExpression(e)
	case *CallExpression:
		return g.callExpression(e)
	default:
		return nil, codegenf("unexpected expression node %T", e)
	}
}

// stringConstant stores a string literal in a new private NUL-terminated
// global constant and returns a pointer to its first byte. Each call emits
// its own global; identical literals are not shared.
func (g *Codegen) stringConstant(s string) value.Value {
	g.strs++
	arr := constant.NewCharArrayFromString(s + "\x00")
	glob := g.mod.NewGlobalDef(fmt.Sprintf(".str.%d", g.strs), arr)
	glob.Linkage = enum.LinkagePrivate
	glob.Immutable = true

	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(arr.Typ, glob, zero, zero)
}

func (g *Codegen) unaryExpression(e *UnaryExpression) (value.Value, error) {
	v, err := g.expression(e.RHS)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+":
		return v, nil
	case "-":
		if isFloatValue(v) {
			zero := constant.NewFloat(v.Type().(*types.FloatType), 0)
			return g.block.NewFSub(zero, v), nil
		}
		if t, ok := v.Type().(*types.IntType); ok {
			return g.block.NewSub(constant.NewInt(t, 0), v), nil
		}
		return nil, codegenf("unary - applied to a non-numeric value")
	case "!":
		b, err := g.truthy(v)
		if err != nil {
			return nil, err
		}
		return g.block.NewXor(b, constant.True), nil
	default:
		return nil, codegenf("unexpected unary op: %s", e.Op)
	}
}

func (g *Codegen) binaryExpression(e *BinaryExpression) (value.Value, error) {
	lhs, err := g.expression(e.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := g.expression(e.RHS)
	if err != nil {
		return nil, err
	}

	float := isFloatValue(lhs) || isFloatValue(rhs)

	switch e.Op {
	case "+":
		if float {
			return g.block.NewFAdd(lhs, rhs), nil
		}
		return g.block.NewAdd(lhs, rhs), nil
	case "-":
		if float {
			return g.block.NewFSub(lhs, rhs), nil
		}
		return g.block.NewSub(lhs, rhs), nil
	case "*":
		if float {
			return g.block.NewFMul(lhs, rhs), nil
		}
		return g.block.NewMul(lhs, rhs), nil
	case "/":
		if float {
			return g.block.NewFDiv(lhs, rhs), nil
		}
		return g.block.NewSDiv(lhs, rhs), nil
	case "%":
		if float {
			return g.block.NewFRem(lhs, rhs), nil
		}
		return g.block.NewSRem(lhs, rhs), nil
	case "<":
		return g.compare(float, enum.IPredSLT, enum.FPredOLT, lhs, rhs), nil
	case "<=":
		return g.compare(float, enum.IPredSLE, enum.FPredOLE, lhs, rhs), nil
	case ">":
		return g.compare(float, enum.IPredSGT, enum.FPredOGT, lhs, rhs), nil
	case ">=":
		return g.compare(float, enum.IPredSGE, enum.FPredOGE, lhs, rhs), nil
	case "==":
		return g.compare(float, enum.IPredEQ, enum.FPredOEQ, lhs, rhs), nil
	case "!=":
		return g.compare(float, enum.IPredNE, enum.FPredONE, lhs, rhs), nil
	default:
		return nil, codegenf("unexpected binary op: %s", e.Op)
	}
}

func (g *Codegen) compare(float bool, ip enum.IPred, fp enum.FPred, lhs, rhs value.Value) value.Value {
	if float {
		return g.block.NewFCmp(fp, lhs, rhs)
	}

	return g.block.NewICmp(ip, lhs, rhs)
}

func (g *Codegen) callExpression(e *CallExpression) (value.Value, error) {
	callee, ok := g.funcs[e.Callee]
	if !ok {
		return nil, codegenf("call to undefined pluh: %s", e.Callee)
	}

	var args []value.Value
	for _, arg := range e.Arguments {
		v, err := g.expression(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return g.block.NewCall(callee, args...), nil
}
