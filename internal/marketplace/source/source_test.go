package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse_Hosted(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
	}{
		{"simple", "acme/bundles", "acme", "bundles"},
		{"hyphenated owner", "my-org/my-repo", "my-org", "my-repo"},
		{"dotted repo", "acme/bundles.io", "acme", "bundles.io"},
		{"underscores", "some_user/some_repo", "some_user", "some_repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, "")
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			want := Hosted(tt.wantOwner, tt.wantRepo)
			if got != want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, want)
			}
		})
	}
}

func TestParse_Git(t *testing.T) {
	tests := []string{
		"https://github.com/acme/bundles",
		"http://internal.example.com/repo",
		"git://example.com/repo.git",
		"ssh://git@example.com/repo",
		"git@github.com:acme/bundles.git",
		"example.com/repo.git",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := Parse(input, "")
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", input, err)
			}
			if got != Git(input) {
				t.Errorf("Parse(%q) = %+v, want git source", input, got)
			}
		})
	}
}

func TestParse_Local(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "local-fixture")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("absolute path", func(t *testing.T) {
		got, err := Parse(sub, "")
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got != Local(sub) {
			t.Errorf("Parse = %+v", got)
		}
	})

	t.Run("relative to working directory", func(t *testing.T) {
		got, err := Parse("./local-fixture", dir)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got != Local(sub) {
			t.Errorf("Parse = %+v, want path %s", got, sub)
		}
	})
}

func TestParse_HostedWinsOverLocal(t *testing.T) {
	// An existing directory named like owner/repo still parses as hosted;
	// the shorthand pattern is checked first.
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "acme", "bundles"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Parse("acme/bundles", dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindHosted {
		t.Errorf("Kind = %v, want hosted", got.Kind)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"nonexistent path", "./does-not-exist-anywhere"},
		{"too many slashes", "a/b/c"},
		{"bad characters", "owner name/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, t.TempDir())
			if !errors.Is(err, ErrInvalidSource) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidSource", tt.input, err)
			}
		})
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		name   string
		source Source
		want   string
	}{
		{"hosted", Hosted("acme", "bundles"), "bundles"},
		{"hosted uppercase", Hosted("acme", "MyBundles"), "mybundles"},
		{"git https with .git", Git("https://github.com/acme/tools.git"), "tools"},
		{"git https without .git", Git("https://github.com/acme/tools"), "tools"},
		{"git ssh shorthand", Git("git@github.com:acme/tools.git"), "tools"},
		{"git trailing slash", Git("https://github.com/acme/tools/"), "tools"},
		{"local", Local("/data/fixtures/My-Market"), "my-market"},
		{"local trailing slash", Local("/data/fixtures/market/"), "market"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.source.DeriveName(); got != tt.want {
				t.Errorf("DeriveName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneURL(t *testing.T) {
	if got := Hosted("acme", "bundles").CloneURL(); got != "https://github.com/acme/bundles.git" {
		t.Errorf("hosted CloneURL = %q", got)
	}
	if got := Git("git@github.com:a/b.git").CloneURL(); got != "git@github.com:a/b.git" {
		t.Errorf("git CloneURL = %q", got)
	}
	if got := Local("/tmp/x").CloneURL(); got != "" {
		t.Errorf("local CloneURL = %q, want empty", got)
	}
}

func TestStructuralEquality(t *testing.T) {
	if Hosted("a", "b") != Hosted("a", "b") {
		t.Error("identical hosted sources should be equal")
	}
	if Hosted("a", "b") == Git("a/b") {
		t.Error("different kinds should not be equal")
	}
	if Git("https://x/r.git") == Git("https://x/other.git") {
		t.Error("different URLs should not be equal")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	orig := Hosted("acme", "bundles")

	data, err := yaml.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}

	var got Source
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != orig {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		source  Source
		wantErr bool
	}{
		{"valid hosted", Hosted("a", "b"), false},
		{"valid git", Git("https://x/r.git"), false},
		{"valid local", Local("/tmp"), false},
		{"hosted missing repo", Source{Kind: KindHosted, Owner: "a"}, true},
		{"git missing url", Source{Kind: KindGit}, true},
		{"local missing path", Source{Kind: KindLocal}, true},
		{"unknown kind", Source{Kind: "svn", Path: "/x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
