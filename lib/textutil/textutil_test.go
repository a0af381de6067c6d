package textutil

import "testing"

func TestCollapseSpace(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "  Startzeit \n", expected: "Startzeit"},
		{in: "Work\n\t Instructions", expected: "Work Instructions"},
		{in: "already clean", expected: "already clean"},
		{in: "", expected: ""},
	}
	for _, test := range cases {
		got := CollapseSpace(test.in)
		if got != test.expected {
			t.Fatalf("CollapseSpace(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}

func TestMatchLabel(t *testing.T) {
	accepted := []string{"Abgabetermin", "Edit Until"}

	if !MatchLabel(" Abgabetermin\n", accepted) {
		t.Fatal("expected german spelling to match")
	}
	if !MatchLabel("Edit  Until", accepted) {
		t.Fatal("expected english spelling to match")
	}
	if MatchLabel("Startzeit", accepted) {
		t.Fatal("unrelated label should not match")
	}
}
