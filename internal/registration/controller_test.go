package registration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/signup/internal/mock"
	"github.com/zjrosen/signup/internal/registration"
)

func validController() *registration.Controller {
	c := registration.NewController()
	c.SetField(registration.FieldUsername, "user1")
	c.SetField(registration.FieldEmail, "user1@mail.com")
	c.SetField(registration.FieldPassword, "P4ssword")
	c.SetField(registration.FieldPasswordRepeat, "P4ssword")
	return c
}

// ============================================================================
// Enablement
// ============================================================================

func TestCanSubmit_InitiallyFalse(t *testing.T) {
	c := registration.NewController()

	require.False(t, c.CanSubmit())
	require.False(t, c.SubmitEnabled())
	require.Equal(t, registration.StatusIdle, c.Status())
}

func TestCanSubmit_Table(t *testing.T) {
	tests := []struct {
		name   string
		fields registration.Fields
		want   bool
	}{
		{"empty", registration.Fields{}, false},
		{"matching", registration.Fields{Password: "P4ssword", PasswordRepeat: "P4ssword"}, true},
		{"mismatch", registration.Fields{Password: "P4ssword", PasswordRepeat: "P4ssword2"}, false},
		{"repeat only", registration.Fields{PasswordRepeat: "P4ssword"}, false},
		{"username ignored", registration.Fields{Password: "x", PasswordRepeat: "x"}, true},
		{"whitespace is a value", registration.Fields{Password: " ", PasswordRepeat: " "}, true},
		{"no trimming", registration.Fields{Password: "abc ", PasswordRepeat: "abc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, registration.CanSubmit(tt.fields))
		})
	}
}

func TestProperty_EmptyPasswordNeverSubmits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := registration.Fields{
			Username:       rapid.String().Draw(t, "username"),
			Email:          rapid.String().Draw(t, "email"),
			PasswordRepeat: rapid.String().Draw(t, "repeat"),
		}
		if registration.CanSubmit(f) {
			t.Fatalf("empty password must not be submittable: %+v", f)
		}
	})
}

func TestProperty_MatchingNonEmptyPasswordSubmits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pw := rapid.StringN(1, 64, -1).Draw(t, "password")
		f := registration.Fields{
			Username:       rapid.String().Draw(t, "username"),
			Email:          rapid.String().Draw(t, "email"),
			Password:       pw,
			PasswordRepeat: pw,
		}
		if !registration.CanSubmit(f) {
			t.Fatalf("matching password must be submittable: %+v", f)
		}
	})
}

func TestProperty_MismatchNeverSubmits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pw := rapid.String().Draw(t, "password")
		repeat := rapid.String().Filter(func(s string) bool { return s != pw }).Draw(t, "repeat")
		f := registration.Fields{Password: pw, PasswordRepeat: repeat}
		if registration.CanSubmit(f) {
			t.Fatalf("mismatched passwords must not be submittable: %q vs %q", pw, repeat)
		}
	})
}

// ============================================================================
// Guarded dispatch
// ============================================================================

func TestBegin_SetsInProgressAndProjectsPayload(t *testing.T) {
	c := validController()

	sub, ok := c.Begin()

	require.True(t, ok)
	require.Equal(t, registration.StatusInProgress, c.Status())
	require.Equal(t, 1, sub.Attempt)
	require.Equal(t, registration.Payload{
		Username: "user1",
		Email:    "user1@mail.com",
		Password: "P4ssword",
	}, sub.Payload)
}

func TestBegin_RefusedWhenRuleFails(t *testing.T) {
	c := registration.NewController()
	c.SetField(registration.FieldPassword, "a")
	c.SetField(registration.FieldPasswordRepeat, "b")

	_, ok := c.Begin()

	require.False(t, ok)
	require.Equal(t, registration.StatusIdle, c.Status())
	require.Zero(t, c.Attempts())
}

func TestBegin_RepeatedTriggersWhileInFlight(t *testing.T) {
	c := validController()

	_, ok := c.Begin()
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		_, again := c.Begin()
		require.False(t, again, "trigger %d must be a no-op while in flight", i)
	}
	require.Equal(t, 1, c.Attempts())
	require.False(t, c.SubmitEnabled())
}

func TestProperty_AtMostOneCallPerCycle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "triggers")
		c := validController()
		reg := mock.NewRegistrar()

		var subs []registration.Submission
		for i := 0; i < n; i++ {
			if sub, ok := c.Begin(); ok {
				subs = append(subs, sub)
				_ = reg.Register(context.Background(), sub.Payload)
			}
		}

		if reg.CallCount() != 1 {
			t.Fatalf("expected exactly one register call for %d triggers, got %d", n, reg.CallCount())
		}
		if c.Status() != registration.StatusInProgress {
			t.Fatalf("expected in progress, got %s", c.Status())
		}
	})
}

func TestSubmit_ConcurrentTriggersIssueOneCall(t *testing.T) {
	c := validController()
	reg := mock.NewRegistrar().WithGate()

	done := make(chan registration.Status, 1)
	go func() { done <- c.Submit(context.Background(), reg) }()
	reg.WaitForCalls(t, 1)

	// Same goroutine ownership is the contract; Begin is what a second
	// trigger on the update loop would call while the first is held.
	_, ok := c.Begin()
	require.False(t, ok)

	reg.Release()
	require.Equal(t, registration.StatusSucceeded, <-done)
	require.Equal(t, 1, reg.CallCount())
}

// ============================================================================
// Outcome transitions
// ============================================================================

func TestResolve_Success(t *testing.T) {
	c := validController()
	sub, _ := c.Begin()

	status := c.Resolve(sub, nil)

	require.Equal(t, registration.StatusSucceeded, status)
	require.True(t, c.ShowConfirmation())
	require.False(t, c.ShowInputs())
	require.False(t, c.ShowProgress())
	require.NoError(t, c.Err())
}

func TestResolve_FailureKeepsFormUsable(t *testing.T) {
	c := validController()
	sub, _ := c.Begin()
	boom := errors.New("status 400")

	status := c.Resolve(sub, boom)

	require.Equal(t, registration.StatusFailed, status)
	require.False(t, c.ShowConfirmation())
	require.True(t, c.ShowInputs())
	require.False(t, c.ShowProgress())
	require.True(t, c.SubmitEnabled())
	require.ErrorIs(t, c.Err(), boom)
	require.Equal(t, "P4ssword", c.Fields().PasswordRepeat, "fields are retained after failure")
}

func TestResolve_RetryAfterFailure(t *testing.T) {
	c := validController()
	reg := mock.NewRegistrar().FailNext(mock.ErrRejected)

	require.Equal(t, registration.StatusFailed, c.Submit(context.Background(), reg))
	require.Equal(t, registration.StatusSucceeded, c.Submit(context.Background(), reg))
	require.Equal(t, 2, reg.CallCount())
	require.Equal(t, 2, c.Attempts())
	require.NoError(t, c.Err(), "a new attempt clears the previous error")
}

func TestResolve_SucceededIsTerminal(t *testing.T) {
	c := validController()
	reg := mock.NewRegistrar()

	require.Equal(t, registration.StatusSucceeded, c.Submit(context.Background(), reg))
	require.Equal(t, registration.StatusSucceeded, c.Submit(context.Background(), reg))
	require.Equal(t, 1, reg.CallCount())
}

func TestResolve_StaleResultDropped(t *testing.T) {
	c := validController()
	first, _ := c.Begin()
	c.Resolve(first, mock.ErrRejected)
	second, _ := c.Begin()

	// A late duplicate of the first result must not end the second cycle.
	require.Equal(t, registration.StatusInProgress, c.Resolve(first, nil))
	require.Equal(t, registration.StatusSucceeded, c.Resolve(second, nil))
}

func TestResolve_WithoutBeginIsIgnored(t *testing.T) {
	c := validController()

	require.Equal(t, registration.StatusIdle, c.Resolve(registration.Submission{Attempt: 1}, nil))
}

func TestProgressVisibility_PerStatus(t *testing.T) {
	c := validController()
	require.False(t, c.ShowProgress())
	require.False(t, c.ShowConfirmation())

	sub, _ := c.Begin()
	require.True(t, c.ShowProgress())
	require.True(t, c.ShowInputs())

	c.Resolve(sub, mock.ErrRejected)
	require.False(t, c.ShowProgress())
}

func TestFailure_EditingCanDisable(t *testing.T) {
	c := validController()
	sub, _ := c.Begin()
	c.Resolve(sub, mock.ErrRejected)

	c.SetField(registration.FieldPasswordRepeat, "different")

	require.False(t, c.SubmitEnabled())
	_, ok := c.Begin()
	require.False(t, ok)
}

func TestSubmit_RefusedReturnsCurrentStatus(t *testing.T) {
	c := registration.NewController()
	reg := mock.NewRegistrar()

	require.Equal(t, registration.StatusIdle, c.Submit(context.Background(), reg))
	require.Zero(t, reg.CallCount())
}
