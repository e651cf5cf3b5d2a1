package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/api"
	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/devserver"
	"github.com/zjrosen/signup/internal/mock"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/ui/signup"
)

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	c.SetContext(context.Background())
	return c, &out
}

var validFields = registration.Fields{
	Username:       "user1",
	Email:          "user1@mail.com",
	Password:       "P4ssword",
	PasswordRepeat: "P4ssword",
}

func TestRegister_Success(t *testing.T) {
	c, out := testCommand()
	reg := mock.NewRegistrar()

	err := register(c, reg, validFields)

	require.NoError(t, err)
	require.Contains(t, out.String(), signup.Confirmation)
	require.Equal(t, []registration.Payload{validFields.Payload()}, reg.Calls())
}

func TestRegister_Failure(t *testing.T) {
	c, out := testCommand()
	reg := mock.NewRegistrar().FailNext(mock.ErrRejected)

	err := register(c, reg, validFields)

	require.ErrorIs(t, err, registration.ErrRegistrationFailed)
	require.ErrorContains(t, err, mock.ErrRejected.Error())
	require.Empty(t, out.String())
}

func TestRegister_MismatchNeverCalls(t *testing.T) {
	c, _ := testCommand()
	reg := mock.NewRegistrar()
	fields := validFields
	fields.PasswordRepeat = "other"

	err := register(c, reg, fields)

	require.ErrorIs(t, err, registration.ErrRegistrationFailed)
	require.Zero(t, reg.CallCount())
}

func TestRegister_AgainstDevServer(t *testing.T) {
	ts := httptest.NewServer(devserver.New(devserver.Config{}).Handler())
	t.Cleanup(ts.Close)

	cfg := config.Defaults()
	cfg.API.BaseURL = ts.URL
	cfg.Tracing.Enabled = false
	r, shutdown, err := newRegistrar(cfg)
	require.NoError(t, err)
	t.Cleanup(shutdown)

	c, _ := testCommand()
	require.NoError(t, register(c, r, validFields))

	// Same username again is answered with 400.
	err = register(c, r, validFields)
	require.ErrorIs(t, err, registration.ErrRegistrationFailed)
	require.ErrorIs(t, err, api.ErrRegistrationRejected)
}

func TestNewRegistrar_InvalidBaseURL(t *testing.T) {
	cfg := config.Defaults()
	cfg.API.BaseURL = "ftp://example.com"

	_, _, err := newRegistrar(cfg)

	require.Error(t, err)
}
