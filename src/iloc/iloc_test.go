package iloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeBootSequence(t *testing.T) {
	c := NewCode()
	require.Equal(t, 9, c.Len())
	c.AddFnLabel("main")
	require.NoError(t, c.PayPromises())
	out, err := c.String()
	require.NoError(t, err)
	assert.Contains(t, out, "loadI 1024 => rfp")
	assert.Contains(t, out, "loadI 1024 => rsp")
	assert.Contains(t, out, "jumpI -> ")
	assert.Contains(t, out, "halt")
}

func TestPayPromisesResolvesLabelPromise(t *testing.T) {
	c := NewCode()
	fnLabel := c.AddFnLabel("main")
	c.Push(Labeled(fnLabel, NopOp()))
	c.Push(Unlabeled(HaltOp()))

	require.NoError(t, c.PayPromises())
	out, err := c.String()
	require.NoError(t, err)
	assert.Contains(t, out, fnLabel.String()+": nop")
}

func TestPayPromisesIsIdempotent(t *testing.T) {
	c := NewCode()
	c.AddFnLabel("main")
	require.NoError(t, c.PayPromises())
	first, err := c.String()
	require.NoError(t, err)

	require.NoError(t, c.PayPromises())
	second, err := c.String()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPayPromisesUnresolvedLabelFails(t *testing.T) {
	c := NewCode()
	c.Push(Unlabeled(JumpIOp(LabelPromise("doesNotExist"))))
	err := c.PayPromises()
	assert.Error(t, err)
}

func TestStringBeforePayPromisesFails(t *testing.T) {
	c := NewCode()
	_, err := c.String()
	assert.Error(t, err)
}

func TestNewLabelAndRegisterMonotonic(t *testing.T) {
	c := NewCode()
	l1 := c.NewLabel()
	l2 := c.NewLabel()
	assert.NotEqual(t, l1.String(), l2.String())

	r1 := c.NewRegister()
	r2 := c.NewRegister()
	assert.NotEqual(t, r1.String(), r2.String())
	assert.NotEqual(t, "r0", r1.String())
}

func TestOperationStringForms(t *testing.T) {
	r1 := Register{Kind: RegGeneral, Num: 1}
	r2 := Register{Kind: RegGeneral, Num: 2}
	r3 := Register{Kind: RegGeneral, Num: 3}

	s, err := AddOp(r1, r2, r3).String()
	require.NoError(t, err)
	assert.Equal(t, "add r1, r2 => r3", s)

	s, err = AddIOp(r1, 4, r3).String()
	require.NoError(t, err)
	assert.Equal(t, "addI r1, 4 => r3", s)

	s, err = LoadAIOp(FP, 16, r1).String()
	require.NoError(t, err)
	assert.Equal(t, "loadAI rfp, 16 => r1", s)
}
