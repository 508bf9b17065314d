package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pizzeria/internal/api"
	"github.com/mcoot/pizzeria/internal/api/middleware"
	"github.com/mcoot/pizzeria/internal/cli"
	"github.com/mcoot/pizzeria/internal/factory"
	"github.com/mcoot/pizzeria/internal/testutil"
)

type harness struct {
	server    *httptest.Server
	tokenFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	app := factory.NewTestApp()
	server := httptest.NewServer(api.NewHandler(api.RouterConfig{
		Logger:           testutil.NopLogger(),
		IdentityResolver: app.IdentityResolver,
		SessionService:   app.SessionService,
		AddressService:   app.AddressService,
		PaymentService:   app.PaymentService,
		CatalogService:   app.CatalogService,
		Cookie:           middleware.CookieConfig{Secret: "cli-test-secret"},
	}))
	t.Cleanup(server.Close)

	return &harness{
		server:    server,
		tokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

func (h *harness) run(args ...string) (string, error) {
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--server", h.server.URL,
		"--token-file", h.tokenFile,
		"--output", "json",
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("health")
	require.NoError(t, err, out)

	var resp cli.HealthResult
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("auth", "register", "--email", "ann@example.com", "--password", "hunter22", "--name", "Ann")
	require.NoError(t, err, out)

	var auth cli.AuthResult
	require.NoError(t, json.Unmarshal([]byte(out), &auth))
	assert.Equal(t, "ann@example.com", auth.Account.Email)

	saved, err := os.ReadFile(h.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, auth.SessionToken, string(saved))

	out, err = h.run("auth", "whoami")
	require.NoError(t, err, out)
	var who cli.WhoAmIResult
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	require.NotNil(t, who.Account)
	assert.Equal(t, auth.Account.ID, who.Account.ID)

	out, err = h.run("auth", "logout")
	require.NoError(t, err, out)
	_, err = os.Stat(h.tokenFile)
	assert.True(t, os.IsNotExist(err))

	out, err = h.run("auth", "whoami")
	require.NoError(t, err, out)
	who = cli.WhoAmIResult{}
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	assert.Nil(t, who.Account)
}

func TestLoginFailure(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("auth", "register", "--email", "ann@example.com", "--password", "hunter22", "--name", "Ann")
	require.NoError(t, err)

	_, err = h.run("auth", "login", "--email", "ann@example.com", "--password", "nope-nope")
	require.Error(t, err)

	var apiErr *cli.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
}

func TestPaymentCommandsShowMaskedCards(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("auth", "register", "--email", "ann@example.com", "--password", "hunter22", "--name", "Ann")
	require.NoError(t, err)

	out, err := h.run("payment", "add",
		"--bank", "Test Bank",
		"--number", "378282246310005",
		"--name", "Ann",
		"--expiration", "2030-01-31",
		"--cvv", "1234",
	)
	// AMEX numbers are 15 digits; the API only stores 16-digit cards
	require.Error(t, err, out)

	out, err = h.run("payment", "add",
		"--bank", "Test Bank",
		"--number", "4111111111111111",
		"--name", "Ann",
		"--expiration", "2030-01-31",
		"--cvv", "123",
	)
	require.NoError(t, err, out)
	assert.NotContains(t, out, "4111111111111111")

	out, err = h.run("payment", "list")
	require.NoError(t, err, out)

	var payments []cli.Payment
	require.NoError(t, json.Unmarshal([]byte(out), &payments))
	require.Len(t, payments, 1)
	assert.Equal(t, "XXXX-XXXX-XXXX-1111", payments[0].Number)
	assert.Equal(t, "Visa", payments[0].Brand)

	out, err = h.run("payment", "delete", "999")
	assert.Error(t, err, out)
}

func TestAddressCommands(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("auth", "register", "--email", "ann@example.com", "--password", "hunter22", "--name", "Ann")
	require.NoError(t, err)

	out, err := h.run("address", "add", "--name", "Home", "--lat", "51.5", "--lng=-0.12", "--default")
	require.NoError(t, err, out)
	var created cli.Address
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.True(t, created.IsDefault)

	out, err = h.run("address", "list")
	require.NoError(t, err, out)
	var list []cli.Address
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 1)

	_, err = h.run("address", "delete", "abc")
	assert.Error(t, err)
}

func TestProductCommandsRequireElevation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("auth", "register", "--email", "user@example.com", "--password", "hunter22", "--name", "User")
	require.NoError(t, err)

	_, err = h.run("product", "create", "--name", "Margherita", "--price", "9.5")
	var apiErr *cli.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	_, err = h.run("auth", "register", "--email", "admin@example.com", "--password", "hunter22", "--name", "Admin", "--role", "admin")
	require.NoError(t, err)

	out, err := h.run("product", "create", "--name", "Margherita", "--price", "9.5")
	require.NoError(t, err, out)
	var product cli.Product
	require.NoError(t, json.Unmarshal([]byte(out), &product))

	out, err = h.run("product", "list")
	require.NoError(t, err, out)
	assert.True(t, strings.Contains(out, "Margherita"))
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	out := cli.NewOutput("text", &buf)

	out.Print([]cli.Payment{{ID: 3, Type: "credit", Number: "XXXX-XXXX-XXXX-1111", Bank: "Bank", Name: "Ann", Expiration: "2030-01-31", Brand: "Visa"}})
	assert.Equal(t, "3: Visa credit XXXX-XXXX-XXXX-1111 (Bank, Ann) exp 2030-01-31\n", buf.String())

	buf.Reset()
	out.Print(cli.WhoAmIResult{})
	assert.Equal(t, "Not logged in\n", buf.String())
}
