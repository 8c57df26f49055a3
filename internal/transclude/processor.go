// Package transclude drives the per-document pipeline: resolve each block's
// reference, fetch its content, and splice that content into the block
// body. Blocks are independent; one block's failure never blocks the rest
// of the document.
package transclude

import (
	"context"
	"strings"

	"github.com/gggion/org-transclusion-blocks/internal/ctxlog"
	"github.com/gggion/org-transclusion-blocks/internal/fetch"
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
	"github.com/gggion/org-transclusion-blocks/internal/orgdoc"
	"github.com/gggion/org-transclusion-blocks/internal/resolver"
)

// Options is the caller-level policy for a Processor.
type Options struct {
	// ShowWarnings surfaces non-fatal resolution warnings in the result.
	ShowWarnings bool

	// NoDecorate suppresses the provenance comment above spliced content.
	NoDecorate bool
}

// Result tallies one document pass.
type Result struct {
	// Resolved counts blocks whose content was spliced.
	Resolved int

	// Skipped counts blocks with nothing to do: unsupported kinds and
	// blocks that declare no reference.
	Skipped int

	// Failed counts blocks whose resolution or fetch errored.
	Failed int

	// Errors holds one entry per failed block.
	Errors []BlockError

	// Warnings aggregates non-fatal warnings across all blocks.
	Warnings []linktype.Warning
}

// BlockError records which block failed and why.
type BlockError struct {
	Line int
	Err  error
}

// Processor wires the resolver and fetch dispatcher together.
type Processor struct {
	resolver   *resolver.Resolver
	dispatcher *fetch.Dispatcher
	opts       Options
}

// New creates a Processor.
func New(r *resolver.Resolver, d *fetch.Dispatcher, opts Options) *Processor {
	return &Processor{resolver: r, dispatcher: d, opts: opts}
}

// Process runs the pipeline over every block in the document, mutating
// block bodies in place. The returned error is reserved for document-level
// faults; per-block failures are tallied and logged instead.
func (p *Processor) Process(ctx context.Context, doc *orgdoc.Document) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := &Result{}

	for _, b := range doc.Blocks {
		if !b.Supported() {
			res.Skipped++
			continue
		}

		resolution, err := p.resolver.Resolve(ctx, doc, b)
		if err != nil {
			logger.Error("Block resolution failed.", "doc", doc.Name, "line", b.Line, "error", err)
			res.Failed++
			res.Errors = append(res.Errors, BlockError{Line: b.Line, Err: err})
			continue
		}
		if resolution == nil {
			res.Skipped++
			continue
		}
		if p.opts.ShowWarnings {
			res.Warnings = append(res.Warnings, resolution.Warnings...)
		}

		payload, err := p.dispatcher.Fetch(ctx, resolution)
		if err != nil {
			logger.Error("Content fetch failed.", "doc", doc.Name, "line", b.Line, "reference", resolution.Reference(), "error", err)
			res.Failed++
			res.Errors = append(res.Errors, BlockError{Line: b.Line, Err: err})
			continue
		}
		if payload == nil {
			res.Skipped++
			continue
		}

		p.splice(doc, b, payload)
		logger.Debug("Spliced block content.", "doc", doc.Name, "line", b.Line, "source", payload.Source)
		res.Resolved++
	}
	return res, nil
}

// splice replaces the block body with the fetched content. The body span is
// reindexed by the document on every edit, so later blocks stay valid.
func (p *Processor) splice(doc *orgdoc.Document, b *orgdoc.Block, payload *fetch.Payload) {
	content := payload.Content
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if !p.opts.NoDecorate {
		content = "# transcluded from " + payload.Source + "\n" + content
	}
	doc.Replace(b.Body, content)
}
