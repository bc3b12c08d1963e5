package transcript

import (
	"path/filepath"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/deck-scribe/internal/engine"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// DocxPath returns where the optional Word export for base is written
func DocxPath(outDir, base string) string {
	return filepath.Join(outDir, base+Suffix+".docx")
}

// WriteDocx writes a readable transcript document: title, then one
// paragraph per segment prefixed with its start time.
func WriteDocx(path, title string, r *engine.Result) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	if len(r.Segments) == 0 {
		addStyledRun(doc.AddParagraph(""), r.Text, false, fontSize)
		return doc.SaveTo(path)
	}

	for _, seg := range r.Segments {
		text := cueText(seg.Text)
		if text == "" {
			continue
		}
		p := doc.AddParagraph("")
		start, _ := cueBounds(seg)
		p.AddText("[" + formatVTTTimestamp(start) + "] ").Font(fontName).Size(fontSize).Color("555555")
		p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(path)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
