package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	calls []Submission
	err   error
}

func (r *recordingSubmitter) Submit(_ context.Context, s Submission) error {
	r.calls = append(r.calls, s)
	return r.err
}

func TestFormRejectsInvalidDraftWithoutNetworkCall(t *testing.T) {
	sub := &recordingSubmitter{}
	f := NewForm(sub)
	draft := Submission{Name: "A", Email: "x@example.com"}
	f.SetDraft(draft)

	out, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeInvalid, out.Status)
	require.NotNil(t, out.Invalid)
	assert.NotEmpty(t, out.Invalid.Field("name"))
	assert.True(t, out.Notice.Destructive)
	assert.Empty(t, sub.calls)
	assert.Equal(t, draft, f.Draft())
	assert.Equal(t, StateIdle, f.State())
}

func TestFormSuccessClearsDraft(t *testing.T) {
	sub := &recordingSubmitter{}
	f := NewForm(sub)
	draft := Submission{Name: "Alice", Email: "alice@example.com", Company: "Acme"}
	f.SetDraft(draft)

	var transitions []string
	f.OnTransition(func(from, to State) { transitions = append(transitions, from.String()+"->"+to.String()) })

	out, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSent, out.Status)
	assert.False(t, out.Notice.Destructive)
	assert.Equal(t, []Submission{draft}, sub.calls)
	assert.Equal(t, Submission{}, f.Draft())
	assert.Equal(t, []string{"idle->submitting", "submitting->succeeded", "succeeded->idle"}, transitions)
}

func TestFormFailureKeepsDraft(t *testing.T) {
	sub := &recordingSubmitter{err: &RemoteError{StatusCode: 500, Message: "Failed"}}
	f := NewForm(sub)
	draft := Submission{Name: "Alice", Email: "alice@example.com", Message: "hello"}
	f.SetDraft(draft)

	var transitions []State
	f.OnTransition(func(_, to State) { transitions = append(transitions, to) })

	out, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, out.Status)
	assert.Equal(t, "Please try again later.", out.Notice.Description)
	assert.Error(t, out.Err)
	assert.Equal(t, draft, f.Draft())
	assert.Equal(t, []State{StateSubmitting, StateFailed, StateIdle}, transitions)

	// A retry is a fresh attempt with the same content.
	sub.err = nil
	out, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, out.Status)
	assert.Len(t, sub.calls, 2)
}

func TestFormBlocksDuplicateSubmission(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	sub := SubmitterFunc(func(ctx context.Context, s Submission) error {
		close(entered)
		<-release
		return nil
	})
	f := NewForm(sub)
	f.SetDraft(Submission{Name: "Alice", Email: "alice@example.com"})

	done := make(chan Outcome, 1)
	go func() {
		out, _ := f.Submit(context.Background())
		done <- out
	}()

	<-entered
	assert.True(t, f.Busy())
	_, err := f.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrBusy))

	close(release)
	out := <-done
	assert.Equal(t, OutcomeSent, out.Status)
	assert.False(t, f.Busy())
}
