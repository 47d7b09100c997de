package slang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestIR(t *testing.T, data string) (string, error) {
	p := newTestParser(t, data)

	tea, err := p.ParseTea()
	require.NoError(t, err)

	mod, err := GenerateIR(tea)
	if err != nil {
		return "", err
	}

	return mod.String(), nil
}

func TestCodegenReturnLiteral(t *testing.T) {
	ir, err := generateTestIR(t, "spillingTheTeaAbout demo pluh main() : int { yeet 0 }")
	assert.NoError(t, err)

	assert.Contains(t, ir, "define i64 @main()")
	assert.Contains(t, ir, "ret i64 0")
}

func TestCodegenExternDeclaration(t *testing.T) {
	ir, err := generateTestIR(t, "spillingTheTeaAbout demo plug func(x : int) : int")
	assert.NoError(t, err)

	assert.Contains(t, ir, "declare")
	assert.Contains(t, ir, "@func")
}

func TestCodegenArguments(t *testing.T) {
	ir, err := generateTestIR(t, "spillingTheTeaAbout demo pluh add(a : int, b : int) : int { yeet a + b }")
	assert.NoError(t, err)

	// Arguments live in allocas so the body can assign to them.
	assert.Contains(t, ir, "alloca i64")
	assert.Contains(t, ir, "add i64")
	assert.Contains(t, ir, "ret i64")
}

func TestCodegenConditional(t *testing.T) {
	data := `spillingTheTeaAbout demo
	pluh classify(x : int) : int {
		fr? x < 0 { yeet -1 }
		ong? x == 0 { yeet 0 }
		justLikeThat? { yeet 1 }
		yeet 0
	}`

	ir, err := generateTestIR(t, data)
	assert.NoError(t, err)

	assert.Contains(t, ir, "icmp slt i64")
	assert.Contains(t, ir, "br i1")
	assert.Contains(t, ir, "then.")
	assert.Contains(t, ir, "ifcont.")
}

func TestCodegenLoop(t *testing.T) {
	data := `spillingTheTeaAbout demo
	pluh count() : int {
		cookUp i : int = 0
		holdUp i < 10 {
			fr? i == 5 { ghost }
			i = i + 1
		}
		yeet i
	}`

	ir, err := generateTestIR(t, data)
	assert.NoError(t, err)

	assert.Contains(t, ir, "loop.cond")
	assert.Contains(t, ir, "loop.body")
	assert.Contains(t, ir, "loop.end")
	assert.Contains(t, ir, "br i1")
}

func TestCodegenFloatArithmetic(t *testing.T) {
	ir, err := generateTestIR(t, "spillingTheTeaAbout demo pluh f() : float { yeet 1.5 + 2.5 }")
	assert.NoError(t, err)

	assert.Contains(t, ir, "define double @f()")
	assert.Contains(t, ir, "fadd double")
}

func TestCodegenBuiltinYap(t *testing.T) {
	data := `spillingTheTeaAbout demo
	pluh main() : int {
		yap(42)
		yeet 0
	}`

	ir, err := generateTestIR(t, data)
	assert.NoError(t, err)

	assert.Contains(t, ir, "@yap")
	assert.Contains(t, ir, "@printf")
	assert.Contains(t, ir, "call void @yap(i64 42)")
}

func TestCodegenPlugOfBuiltinIsReused(t *testing.T) {
	data := `spillingTheTeaAbout demo
	plug yap(v : int) : npc
	pluh main() : int {
		yap(7)
		yeet 0
	}`

	ir, err := generateTestIR(t, data)
	assert.NoError(t, err)

	assert.Contains(t, ir, "call void @yap(i64 7)")
}

func TestCodegenStringLiteral(t *testing.T) {
	data := `spillingTheTeaAbout demo
	plug puts(s : str) : int
	pluh main() : int {
		puts("sheesh")
		yeet 0
	}`

	ir, err := generateTestIR(t, data)
	assert.NoError(t, err)

	assert.Contains(t, ir, ".str.1")
	assert.Contains(t, ir, "sheesh")
}

func TestCodegenErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{
			"assignment to undeclared variable",
			"spillingTheTeaAbout demo pluh main() : int { x = 1 yeet 0 }",
		},
		{
			"undefined variable reference",
			"spillingTheTeaAbout demo pluh main() : int { yeet x }",
		},
		{
			"call to undefined pluh",
			"spillingTheTeaAbout demo pluh main() : int { huh(1) yeet 0 }",
		},
		{
			"ghost outside a loop",
			"spillingTheTeaAbout demo pluh main() : int { ghost yeet 0 }",
		},
		{
			"rizz outside a loop",
			"spillingTheTeaAbout demo pluh main() : int { rizz yeet 0 }",
		},
		{
			"unknown type name",
			"spillingTheTeaAbout demo pluh main() : int { cookUp x : sus yeet 0 }",
		},
		{
			"duplicate definition",
			"spillingTheTeaAbout demo pluh f() : npc { cookUp x : int } pluh f() : npc { cookUp x : int }",
		},
	}

	for _, c := range cases {
		_, err := generateTestIR(t, c.data)

		var cgErr *CodegenError
		assert.ErrorAs(t, err, &cgErr, c.name)
	}
}
