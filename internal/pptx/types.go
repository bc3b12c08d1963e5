package pptx

// Extension is the presentation file extension picked up by Discover
const Extension = ".pptx"

// Document is a presentation found in the input directory
type Document struct {
	Path     string
	Name     string
	BaseName string
}

// AudioStream is one audio part stored inside a presentation archive
type AudioStream struct {
	// Name is the zip entry path, e.g. ppt/media/media1.m4a
	Name string
	// Slide is the 1-based index of the first slide referencing the part,
	// 0 when no slide references it.
	Slide int
	Size  uint64
}
