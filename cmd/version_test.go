package cmd

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "primitives\t 24 hashes, 6 KEMs")

	if strings.Contains(output, "version: unknown") {
		return
	}

	assert.Contains(t, output, "metamorph version")
	assert.Contains(t, output, "go version")
}

func TestPrintVersion_PrimitiveModules(t *testing.T) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	printVersion(cmd, &debug.BuildInfo{
		GoVersion: "go1.25.1",
		Main:      debug.Module{Path: "metamorph.dev/pkg/metamorph", Version: "v0.3.0"},
		Deps: []*debug.Module{
			{Path: "github.com/cloudflare/circl", Version: "v1.6.1"},
			{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
			{Path: "golang.org/x/crypto", Version: "v0.42.0"},
		},
	})

	output := out.String()
	assert.Contains(t, output, "metamorph version\t v0.3.0")
	assert.Contains(t, output, "go version\t go1.25.1")
	assert.Contains(t, output, "github.com/cloudflare/circl\t v1.6.1")
	assert.Contains(t, output, "golang.org/x/crypto\t v0.42.0")
	assert.NotContains(t, output, "cobra")
}

func TestPrintVersion_Unknown(t *testing.T) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	printVersion(cmd, nil)

	assert.Contains(t, out.String(), "version: unknown")
	assert.NotContains(t, out.String(), "go version")
}
