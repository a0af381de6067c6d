package ilias

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeLinkRoundTrip(t *testing.T) {
	// links the portal itself emits must serialize back byte-identical
	cases := []string{
		"goto.php?target=ass_12345&client_id=produktiv",
		"ilias.php?baseClass=ilExerciseHandlerGUI&ref_id=42&cmd=showOverview",
		"/ilias.php?ref_id=42&cmdClass=ilexsubmissionfilegui&cmd=downloadFile&delivered=101",
		"/download?file=a%20b",
		"/exc/sheet3.pdf",
	}

	for _, link := range cases {
		qp, err := CanonicalizeLink(link)
		require.NoError(t, err)
		require.Equal(t, link, qp.RequestTarget())
	}
}

func TestCanonicalizeLinkDropsSchemeAndHost(t *testing.T) {
	qp, err := CanonicalizeLink("https://portal.example/goto.php?target=ass_1&client_id=produktiv")
	require.NoError(t, err)
	require.Equal(t, "/goto.php?target=ass_1&client_id=produktiv", qp.RequestTarget())
}

func TestCanonicalizeLinkPreservesQueryOrder(t *testing.T) {
	qp, err := CanonicalizeLink("ilias.php?z=1&a=2&z=3")
	require.NoError(t, err)
	require.Equal(t, "ilias.php?z=1&a=2&z=3", qp.RequestTarget())
}

func TestElementQuerypath(t *testing.T) {
	qp := ElementQuerypath("ass", "12345")
	require.Equal(t, Querypath("goto.php?target=ass_12345&client_id=produktiv"), qp)
}
