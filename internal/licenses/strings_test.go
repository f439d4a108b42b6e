package licenses

import "testing"

func TestCleanString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "foo", want: "foo"},
		{in: "foo bar", want: "foo bar"},
		{in: "foo  bar", want: "foo bar"},
		{in: "foo   bar", want: "foo bar"},
		{in: " x ", want: "x"},
		{in: "one\ntwo", want: "one two"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		if got := CleanString(tc.in); got != tc.want {
			t.Errorf("CleanString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
