package pdf

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain doi",
			text: "available at doi 10.1145/359340.359342 in the archive",
			want: "10.1145/359340.359342",
		},
		{
			name: "doi url with trailing punctuation",
			text: "see https://doi.org/10.1007/978-3-030-12345-6_7.",
			want: "10.1007/978-3-030-12345-6_7",
		},
		{
			name: "no doi",
			text: "a page about something else entirely",
			want: "",
		},
		{
			name: "truncated match is skipped",
			text: "ends at the slash 10.1234/",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsValidDOI(t *testing.T) {
	valid := []string{"10.1145/359340.359342", "10.1007/11538462_32"}
	invalid := []string{"10.1/x", "10.1234/", "1145/359340"}

	for _, doi := range valid {
		if !isValidDOI(doi) {
			t.Errorf("isValidDOI(%q) should be true", doi)
		}
	}
	for _, doi := range invalid {
		if isValidDOI(doi) {
			t.Errorf("isValidDOI(%q) should be false", doi)
		}
	}
}
