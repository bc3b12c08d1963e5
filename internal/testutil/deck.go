// Package testutil builds presentation fixtures and fakes shared by tests.
package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Deck describes a fixture presentation. Slides[i] lists the media file
// names (relative to ppt/media) referenced by slide i+1. Loose media are
// stored in ppt/media without any slide referencing them.
type Deck struct {
	Slides [][]string
	Loose  []string
	// Order overrides presentation order with 1-based slide part numbers
	Order []int
}

// WriteDeck writes a minimal but structurally valid .pptx to path
func WriteDeck(t testing.TB, path string, d Deck) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	add := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}

	order := d.Order
	if len(order) == 0 {
		for i := range d.Slides {
			order = append(order, i+1)
		}
	}

	var ids, presRels strings.Builder
	for i, n := range order {
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 100+n)
		fmt.Fprintf(&presRels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 100+n, n)
	}

	add("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)
	add("ppt/presentation.xml", `<?xml version="1.0" encoding="UTF-8"?>`+
		`<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`+
		`<p:sldIdLst>`+ids.String()+`</p:sldIdLst></p:presentation>`)
	add("ppt/_rels/presentation.xml.rels", `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+presRels.String()+`</Relationships>`)

	media := map[string]bool{}
	for i, refs := range d.Slides {
		n := i + 1
		add(fmt.Sprintf("ppt/slides/slide%d.xml", n), `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`)

		var rels strings.Builder
		rels.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
		for j, m := range refs {
			fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.microsoft.com/office/2007/relationships/media" Target="../media/%s"/>`, j+1, m)
			media[m] = true
		}
		rels.WriteString(`<Relationship Id="rId99" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com/a.mp3" TargetMode="External"/>`)
		rels.WriteString(`</Relationships>`)
		add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), rels.String())
	}
	for _, m := range d.Loose {
		media[m] = true
	}
	for m := range media {
		add("ppt/media/"+m, "audio:"+m)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

// WriteFile writes raw bytes, creating parent directories
func WriteFile(t testing.TB, path string, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
