package processor

import (
	"context"

	"github.com/nguyentantai21042004/deck-scribe/internal/engine"
	"github.com/nguyentantai21042004/deck-scribe/internal/pptx"
	"github.com/nguyentantai21042004/deck-scribe/internal/transcript"
)

// writeOutputs persists the .txt/.vtt pair and the optional .docx export
func (p *implProcessor) writeOutputs(ctx context.Context, doc pptx.Document, result *engine.Result) (transcript.Pair, error) {
	outDir := p.cfg.Paths.Output

	pair, err := transcript.WritePair(outDir, doc.BaseName, result)
	if err != nil {
		return transcript.Pair{}, &WriteError{Document: doc.Name, Dir: outDir, Err: err}
	}

	if p.cfg.Output.Docx {
		docxPath := transcript.DocxPath(outDir, doc.BaseName)
		if err := transcript.WriteDocx(docxPath, doc.BaseName, result); err != nil {
			p.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		} else {
			p.logger.Debug(ctx, "Wrote %s", docxPath)
		}
	}

	return pair, nil
}
