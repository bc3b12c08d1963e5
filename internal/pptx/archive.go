package pptx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	mediaDir         = "ppt/media/"
	presentationPart = "ppt/presentation.xml"
)

// ErrNotArchive is returned when a file cannot be opened as a zip archive
var ErrNotArchive = errors.New("not a valid presentation archive")

// Archive is an open presentation file
type Archive struct {
	reader  *zip.ReadCloser
	entries map[string]*zip.File
}

// Open opens a presentation archive for reading
func Open(path string) (*Archive, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotArchive, path, err)
	}

	entries := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		entries[f.Name] = f
	}
	return &Archive{reader: r, entries: entries}, nil
}

// Close releases the underlying file
func (a *Archive) Close() error {
	return a.reader.Close()
}

// AudioStreams returns the audio parts under ppt/media whose extension is in
// exts, ordered by the slide that first references them. A part used by
// several slides appears once. Parts no slide references come last, in
// natural name order. When the slide structure cannot be read every part is
// returned in natural name order.
func (a *Archive) AudioStreams(exts []string) []AudioStream {
	audio := make(map[string]*zip.File)
	for name, f := range a.entries {
		if !strings.HasPrefix(name, mediaDir) || f.FileInfo().IsDir() {
			continue
		}
		if lo.Contains(exts, strings.ToLower(path.Ext(name))) {
			audio[name] = f
		}
	}
	if len(audio) == 0 {
		return nil
	}

	streams := make([]AudioStream, 0, len(audio))
	seen := make(map[string]bool, len(audio))

	slides, err := a.slideOrder()
	if err == nil {
		for i, slide := range slides {
			for _, target := range a.slideMedia(slide) {
				f, ok := audio[target]
				if !ok || seen[target] {
					continue
				}
				seen[target] = true
				streams = append(streams, AudioStream{Name: target, Slide: i + 1, Size: f.UncompressedSize64})
			}
		}
	}

	rest := lo.Filter(lo.Keys(audio), func(name string, _ int) bool { return !seen[name] })
	sort.Slice(rest, func(i, j int) bool { return naturalLess(rest[i], rest[j]) })
	for _, name := range rest {
		streams = append(streams, AudioStream{Name: name, Size: audio[name].UncompressedSize64})
	}

	return streams
}

// Extract copies the named entry to dst
func (a *Archive) Extract(name, dst string) error {
	f, ok := a.entries[name]
	if !ok {
		return fmt.Errorf("entry %s not found", name)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", name, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	// zip.ErrChecksum surfaces here for damaged entries
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy entry %s: %w", name, err)
	}
	return out.Close()
}

type relationships struct {
	Items []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type presentation struct {
	Slides []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

// slideOrder resolves the slide part names in presentation order
func (a *Archive) slideOrder() ([]string, error) {
	var pres presentation
	if err := a.decodeXML(presentationPart, &pres); err != nil {
		return nil, err
	}

	rels, err := a.relationshipMap(presentationPart)
	if err != nil {
		return nil, err
	}

	slides := make([]string, 0, len(pres.Slides))
	for _, s := range pres.Slides {
		if target, ok := rels[s.RelID]; ok {
			slides = append(slides, target)
		}
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides listed in %s", presentationPart)
	}
	return slides, nil
}

// slideMedia returns the media parts a slide links to, in relationship order
func (a *Archive) slideMedia(slide string) []string {
	rels, err := a.relationshipList(slide)
	if err != nil {
		return nil
	}
	return lo.Filter(rels, func(target string, _ int) bool {
		return strings.HasPrefix(target, mediaDir)
	})
}

func (a *Archive) relationshipMap(part string) (map[string]string, error) {
	var rels relationships
	if err := a.decodeXML(relsPath(part), &rels); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rels.Items))
	for _, r := range rels.Items {
		if strings.EqualFold(r.TargetMode, "External") {
			continue
		}
		out[r.ID] = resolveTarget(part, r.Target)
	}
	return out, nil
}

func (a *Archive) relationshipList(part string) ([]string, error) {
	var rels relationships
	if err := a.decodeXML(relsPath(part), &rels); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(rels.Items))
	for _, r := range rels.Items {
		if strings.EqualFold(r.TargetMode, "External") {
			continue
		}
		out = append(out, resolveTarget(part, r.Target))
	}
	return out, nil
}

func (a *Archive) decodeXML(name string, v interface{}) error {
	f, ok := a.entries[name]
	if !ok {
		return fmt.Errorf("part %s not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open part %s: %w", name, err)
	}
	defer rc.Close()

	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("decode part %s: %w", name, err)
	}
	return nil
}

// relsPath maps ppt/slides/slide1.xml to ppt/slides/_rels/slide1.xml.rels
func relsPath(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget turns a relationship target into an archive entry name
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Join(path.Dir(source), target)
}

// naturalLess orders media2 before media10
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		da, ra := leadingNumber(a)
		db, rb := leadingNumber(b)
		if da != "" && db != "" {
			na, _ := strconv.Atoi(da)
			nb, _ := strconv.Atoi(db)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func leadingNumber(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}
