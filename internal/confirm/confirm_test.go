package confirm

import (
	"errors"
	"io"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	answer string
	err    error
	asked  []string
}

func (p *scriptedPrompter) Prompt(question string) (string, error) {
	p.asked = append(p.asked, question)
	return p.answer, p.err
}

func TestGate_Bypass(t *testing.T) {
	p := &scriptedPrompter{answer: "n"}
	out, err := Gate{Prompter: p}.Confirm(true, "Delete?")
	require.NoError(t, err)
	assert.Equal(t, Bypassed, out)
	assert.True(t, out.Proceed())
	assert.Empty(t, p.asked, "bypass must not prompt")
}

func TestGate_Answers(t *testing.T) {
	tests := []struct {
		answer string
		want   Outcome
	}{
		{answer: "y", want: Confirmed},
		{answer: "Y", want: Confirmed},
		{answer: "yes", want: Confirmed},
		{answer: "  YeS \n", want: Confirmed},
		{answer: "n", want: Canceled},
		{answer: "", want: Canceled},
		{answer: "yep", want: Canceled},
		{answer: "no", want: Canceled},
		{answer: "y y", want: Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			p := &scriptedPrompter{answer: tt.answer}
			out, err := Gate{Prompter: p}.Confirm(false, "Apply override?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, tt.want == Confirmed, out.Proceed())
			assert.Equal(t, []string{"Apply override? [y/N]: "}, p.asked)
		})
	}
}

func TestGate_ClosedInputDeclines(t *testing.T) {
	for _, err := range []error{io.EOF, readline.ErrInterrupt} {
		out, gotErr := Gate{Prompter: &scriptedPrompter{err: err}}.Confirm(false, "Cancel booking?")
		assert.NoError(t, gotErr)
		assert.Equal(t, Canceled, out)
	}
}

func TestGate_PromptFailure(t *testing.T) {
	boom := errors.New("tty gone")
	out, err := Gate{Prompter: &scriptedPrompter{err: boom}}.Confirm(false, "Cancel booking?")
	assert.ErrorIs(t, err, boom)
	assert.False(t, out.Proceed())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "bypassed", Bypassed.String())
	assert.Equal(t, "canceled", Canceled.String())
}
