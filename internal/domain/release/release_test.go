package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseVersion_Strict accepts canonical semver and rejects loose forms.
func TestParseVersion_Strict(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"0.9.2", "0.10.0-dev", "1.0.0+build.5", "0.0.0"} {
		v, err := ParseVersion(valid)
		require.NoError(t, err, valid)
		require.Equal(t, valid, v.String())
	}

	for _, invalid := range []string{"", "v0.9.2", "0.9", "0.9.2\n", " 0.9.2", "nightly"} {
		_, err := ParseVersion(invalid)
		require.Error(t, err, invalid)
	}
}

// TestVersionOrdering checks reflexive equality and transitive ordering, including pre-releases.
func TestVersionOrdering(t *testing.T) {
	t.Parallel()

	ordered := []string{"0.0.0", "0.9.0-rc.1", "0.9.0", "0.9.2", "0.10.0", "1.0.0"}

	for i, a := range ordered {
		va, err := ParseVersion(a)
		require.NoError(t, err)
		require.Equal(t, 0, va.Compare(va))

		for _, b := range ordered[i+1:] {
			vb, err := ParseVersion(b)
			require.NoError(t, err)
			require.Equal(t, -1, va.Compare(vb), "%s < %s", a, b)
			require.Equal(t, 1, vb.Compare(va), "%s > %s", b, a)
		}
	}
}

// TestNoneInstalled returns the zero sentinel.
func TestNoneInstalled(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.0.0", NoneInstalled().String())
}

// TestOutcome_String names both terminal outcomes.
func TestOutcome_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "up-to-date", UpToDate.String())
	require.Equal(t, "upgraded", Upgraded.String())
	require.Equal(t, "unknown", Outcome(0).String())
}
