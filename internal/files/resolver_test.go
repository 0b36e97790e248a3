package files

import (
	"encoding/base64"
	"errors"
	"reflect"
	"testing"

	"github.com/bibweb/citationweb/internal/bib"
)

func TestForFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    Resolver
		wantErr bool
	}{
		{format: "bibdesk", want: &BibDeskResolver{}},
		{format: "", want: &BibDeskResolver{}},
		{format: "plain", want: &PlainResolver{}},
		{format: "zotero", wantErr: true},
	}

	for _, tt := range tests {
		r, err := ForFormat(tt.format)
		if tt.wantErr {
			var unsupported *ErrUnsupportedSource
			if !errors.As(err, &unsupported) {
				t.Errorf("ForFormat(%q) err = %v, want ErrUnsupportedSource", tt.format, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFormat(%q): %v", tt.format, err)
			continue
		}
		if reflect.TypeOf(r) != reflect.TypeOf(tt.want) {
			t.Errorf("ForFormat(%q) = %T, want %T", tt.format, r, tt.want)
		}
	}
}

// bdskBlob builds a fake BibDesk bookmark blob: arbitrary binary bytes with
// the attachment path embedded the way the plist stores it.
func bdskBlob(path string) string {
	raw := append([]byte{0x62, 0x70, 0x6c, 0x69, 0x73, 0x74}, []byte(path+`\`)...)
	raw = append(raw, 0x00, 0x08)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestBibDeskResolver(t *testing.T) {
	e := bib.NewEntry("Smith2024", "article")
	e.Set("Bdsk-File-1", bdskBlob("Users/me/papers/smith.pdf"))
	e.Set("Bdsk-File-2", bdskBlob("Users/me/papers/smith-si.pdf"))

	paths, err := (&BibDeskResolver{}).Paths(e)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}

	want := []string{"/Users/me/papers/smith.pdf", "/Users/me/papers/smith-si.pdf"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Paths = %v, want %v", paths, want)
	}
}

func TestBibDeskResolverWhitespaceInBlob(t *testing.T) {
	// BibDesk wraps long base64 values over several lines.
	blob := bdskBlob("Users/me/papers/long.pdf")
	wrapped := blob[:12] + "\n  " + blob[12:]

	e := bib.NewEntry("Smith2024", "article")
	e.Set("Bdsk-File-1", wrapped)

	paths, err := (&BibDeskResolver{}).Paths(e)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"/Users/me/papers/long.pdf"}) {
		t.Errorf("Paths = %v", paths)
	}
}

func TestBibDeskResolverSkipsMalformed(t *testing.T) {
	e := bib.NewEntry("Smith2024", "article")
	e.Set("Bdsk-File-1", "not valid base64!!!")
	e.Set("Bdsk-File-2", base64.StdEncoding.EncodeToString([]byte("no path in here")))
	e.Set("Bdsk-File-3", bdskBlob("Users/me/ok.pdf"))

	paths, err := (&BibDeskResolver{}).Paths(e)
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"/Users/me/ok.pdf"}) {
		t.Errorf("Paths = %v, want the one decodable attachment", paths)
	}
}

func TestBibDeskResolverNoAttachments(t *testing.T) {
	paths, err := (&BibDeskResolver{}).Paths(bib.NewEntry("Bare", "article"))
	if err != nil {
		t.Fatalf("Paths: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Paths = %v, want none", paths)
	}
}

func TestPlainResolver(t *testing.T) {
	tests := []struct {
		name string
		file string
		want []string
	}{
		{name: "absent", file: "", want: nil},
		{name: "bare path", file: "/papers/a.pdf", want: []string{"/papers/a.pdf"}},
		{
			name: "jabref style",
			file: ":/papers/a.pdf:PDF",
			want: []string{"/papers/a.pdf"},
		},
		{
			name: "jabref with description and multiple files",
			file: "main:/papers/a.pdf:PDF;si:/papers/b.pdf:PDF",
			want: []string{"/papers/a.pdf", "/papers/b.pdf"},
		},
		{
			name: "semicolon separated bare paths",
			file: "/papers/a.pdf; /papers/b.pdf",
			want: []string{"/papers/a.pdf", "/papers/b.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := bib.NewEntry("X", "article")
			if tt.file != "" {
				e.Set("File", tt.file)
			}
			paths, err := (&PlainResolver{}).Paths(e)
			if err != nil {
				t.Fatalf("Paths: %v", err)
			}
			if !reflect.DeepEqual(paths, tt.want) {
				t.Errorf("Paths(%q) = %v, want %v", tt.file, paths, tt.want)
			}
		})
	}
}
