package loader

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "punctuation run and whitespace",
			in:   "Hello.   World!!",
			want: "Hello. World.",
		},
		{
			name: "non-ascii stripped",
			in:   "café résumé",
			want: "caf r sum",
		},
		{
			name: "repeated punctuation",
			in:   "wait..... what:::",
			want: "wait. what.",
		},
		{
			// Tilde runs are removed after whitespace collapsing, so the
			// surrounding spaces survive. Matches the reference cleanup.
			name: "tilde and backtick runs",
			in:   "before ~~~~ after ``` end",
			want: "before  after  end",
		},
		{
			name: "literal backslash-n sequences",
			in:   `first\n\n\nsecond`,
			want: "first\n\nsecond",
		},
		{
			name: "whitespace runs collapse",
			in:   "a  b\t\tc\n\nd",
			want: "a b c d",
		},
		{
			name: "control characters removed",
			in:   "a\x01b\x0bc",
			want: "abc",
		},
		{
			name: "trimmed",
			in:   "   text   ",
			want: "text",
		},
		{
			name: "whitespace only",
			in:   " \t\n ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
