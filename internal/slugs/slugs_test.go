package slugs

import "testing"

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"New Decision Record", "new-decision-record"},
		{"A  B--C", "a-b-c"},
		{"  Use Architectural Decision Records  ", "use-architectural-decision-records"},
		{`Use a/b: "quoted"?`, "use-ab-quoted"},
		{"Pick <one> | other *", "pick-one-other-"},
		{"UPPER case", "upper-case"},
		{"Keep.dots_and_underscores", "keep.dots_and_underscores"},
		{"Café au lait", "café-au-lait"},
		{"tab\there", "tabhere"},
		{"A - B", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slug(tt.in); got != tt.want {
				t.Fatalf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugIsDeterministic(t *testing.T) {
	const title = "Choose: Postgres / MySQL?"
	first := Slug(title)
	for i := 0; i < 10; i++ {
		if got := Slug(title); got != first {
			t.Fatalf("Slug(%q) changed between calls: %q then %q", title, first, got)
		}
	}
}

func TestMake(t *testing.T) {
	tests := []struct {
		in    string
		style Style
		want  string
	}{
		{"New Decision Record", StyleConservative, "new-decision-record"},
		{"New Decision Record", StyleASCII, "new-decision-record"},
		{"Café au lait", StyleASCII, "cafe-au-lait"},
		{"Special: Characters!", StyleASCII, "special-characters"},
		{"!!!", StyleASCII, "!!!"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style)+"/"+tt.in, func(t *testing.T) {
			if got := Make(tt.in, tt.style); got != tt.want {
				t.Fatalf("Make(%q, %q) = %q, want %q", tt.in, tt.style, got, tt.want)
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{
		"":             StyleConservative,
		"conservative": StyleConservative,
		" ASCII ":      StyleASCII,
	} {
		got, err := ParseStyle(in)
		if err != nil {
			t.Fatalf("ParseStyle(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseStyle(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseStyle("kebab"); err == nil {
		t.Fatal("ParseStyle(\"kebab\") succeeded, want error")
	}
}
