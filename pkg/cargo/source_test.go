package cargo

import "testing"

func TestParseSourceID(t *testing.T) {
	tests := []struct {
		in      string
		want    SourceID
		str     string
		wantErr bool
	}{
		{
			in:   CratesIO,
			want: SourceID{Kind: SourceRegistry, URL: "https://github.com/rust-lang/crates.io-index"},
			str:  CratesIO,
		},
		{
			in:   "sparse+https://index.crates.io/",
			want: SourceID{Kind: SourceSparse, URL: "https://index.crates.io/"},
			str:  "sparse+https://index.crates.io/",
		},
		{
			in:   "git+https://github.com/foo/bar?branch=main#0123abcd",
			want: SourceID{Kind: SourceGit, URL: "https://github.com/foo/bar", Reference: "branch=main"},
			str:  "git+https://github.com/foo/bar?branch=main",
		},
		{
			in:   "git+https://github.com/foo/bar#0123abcd",
			want: SourceID{Kind: SourceGit, URL: "https://github.com/foo/bar"},
			str:  "git+https://github.com/foo/bar",
		},
		{in: "https://example.com", wantErr: true},
		{in: "registry+", wantErr: true},
		{in: "hg+https://example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSourceID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSourceID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("ParseSourceID() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.str {
				t.Errorf("String() = %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestPathSource(t *testing.T) {
	s := PathSource("/home/me/app")
	if !s.IsPath() {
		t.Error("PathSource().IsPath() = false")
	}
	if s.URL != "file:///home/me/app" {
		t.Errorf("URL = %q, want %q", s.URL, "file:///home/me/app")
	}
}

func TestPackageIDString(t *testing.T) {
	id := PackageID{Name: "serde", Version: "1.0.0", Source: SourceID{Kind: SourceRegistry, URL: "https://r"}}
	if got, want := id.String(), "serde 1.0.0 (registry+https://r)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
