package cmd_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-locator/cmd"
	"github.com/km-arc/go-locator/framework/app"
	"github.com/km-arc/go-locator/framework/introspect"
	"github.com/km-arc/go-locator/framework/locator"
)

type greeter struct{ greeting string }

type echo struct {
	target any
	suffix string
}

func (e *echo) Shout(suffix string) { e.suffix = suffix }

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCmd(app.WithTypes(func(c *introspect.Catalog) {
		c.MustProvide("demo.Greeter", func(g string) *greeter { return &greeter{greeting: g} })
		c.MustProvide("demo.Echo", func(target any) *echo { return &echo{target: target} })
	}))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--env", "testdata/empty.env", "--recipes", "testdata/recipes", "--quiet"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestHas(t *testing.T) {
	out, err := run(t, "has", "greeter")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "has", "missing")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, "has", "config")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestHas_NeedsOneArg(t *testing.T) {
	_, err := run(t, "has")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "echo")
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "demo.Echo", doc["echo"]["name"])
	assert.Equal(t, []any{"greeter"}, doc["echo"]["params"])
	assert.Equal(t, []any{map[string]any{"name": "Shout", "params": []any{"!!"}}}, doc["echo"]["methods"])

	_, err = run(t, "describe", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestResolve(t *testing.T) {
	out, err := run(t, "resolve", "greeter")
	require.NoError(t, err)
	assert.Equal(t, "*cmd_test.greeter\n", out)

	out, err = run(t, "resolve", "echo")
	require.NoError(t, err)
	assert.Equal(t, "*cmd_test.echo\n", out)
}

func TestResolve_Errors(t *testing.T) {
	_, err := run(t, "resolve", "unknown123")
	require.ErrorIs(t, err, locator.ErrNotFound)
	assert.Contains(t, err.Error(), "unknown123")

	_, err = run(t, "resolve", "loop")
	require.ErrorIs(t, err, locator.ErrCircularReference)
	assert.Contains(t, err.Error(), "loop -> loop")
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "config\nlocator\nlogger\nrouter\n", out)

	out, err = run(t, "list", "--types")
	require.NoError(t, err)
	assert.Contains(t, out, "demo.Greeter\n")
	assert.Contains(t, out, "routing.Router\n")
}
