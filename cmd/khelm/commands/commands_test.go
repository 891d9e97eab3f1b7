package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "khelm "+CurrentVersion+"\n", out)
}

func TestAssign(t *testing.T) {
	out, err := run(t, "assign", "-i", "testdata/halves.yaml", "--trace=false", "--log-level=warn")
	require.NoError(t, err)
	assert.Contains(t, out, "morning")
	assert.Contains(t, out, "(2/2 meets)")
	assert.Contains(t, out, "maths1")
	assert.Contains(t, out, "Mon1")
	assert.Contains(t, out, "Mon3")
	assert.Contains(t, out, "cost 0.00000")
	assert.Contains(t, out, "Average")
}

func TestAssignTrace(t *testing.T) {
	out, err := run(t, "assign", "-i", "testdata/halves.yaml", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "khelm.assign")
	assert.Contains(t, out, "layered.Layer")
	assert.Contains(t, out, "elm.SplitSupplies")
}

func TestAssignErrors(t *testing.T) {
	_, err := run(t, "assign", "--instance=", "--trace=false")
	assert.ErrorIs(t, err, errNoInstance)

	_, err = run(t, "assign", "-i", "testdata/missing.yaml", "--trace=false")
	assert.Error(t, err)

	_, err = run(t, "assign", "-i", "testdata/halves.yaml", "--trace=false", "--log-level=loud")
	assert.ErrorContains(t, err, "bad log level")
	_, _ = run(t, "version", "--log-level=warn")
}

func TestAssignRejectsNegativeDiversifier(t *testing.T) {
	t.Cleanup(func() {
		for name, zero := range map[string]string{"diversifier": "0", "diversify": "false"} {
			f := assignCmd.Flags().Lookup(name)
			_ = f.Value.Set(zero)
			f.Changed = false
		}
	})
	_, err := run(t, "assign", "-i", "testdata/halves.yaml", "--trace=false", "--diversify", "--diversifier=-1")
	assert.ErrorIs(t, err, errBadDiversifier)
}
