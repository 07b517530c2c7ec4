// Package md2docx converts Markdown documents to Word documents, drawing
// every style from a user-supplied .docx template.
//
// # Quick Start
//
// Create a converter with a template and convert markdown:
//
//	conv, err := md2docx.New(md2docx.WithTemplate("report.docx"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown:   "# Hello\n\nWorld",
//	    OutputPath: "hello.docx",
//	})
//
// ConvertFile reads a source file and derives the output name; ConvertDir
// converts every .md file in a directory and reports per-file outcomes:
//
//	batch, err := conv.ConvertDir(ctx, "./notes", "./out")
//	if batch.Status() == md2docx.Partial {
//	    for _, f := range batch.Failed() {
//	        log.Printf("%s: %v", f.InputPath, f.Err)
//	    }
//	}
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Line normalization and block segmentation (headings, code fences,
//     lists, tables, rules, paragraphs)
//  2. Markdown to HTML via Goldmark (GFM) for emphasis and table structure
//  3. Template style catalog construction (heading inventory, list style
//     families, table header/body/total classification)
//  4. Block-by-block assembly into the template document, each source line
//     rendered exactly once
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2docx.New(
//	    md2docx.WithTemplate("report.docx"),
//	    md2docx.WithStyleResolution(md2docx.ResolutionDirect),
//	    md2docx.WithHighlightStyle("github"),
//	    md2docx.WithLogger(logger),
//	)
//
// Missing template styles never fail a conversion: lookups fall back to
// the template's Normal style with a warning on the configured logger.
//
// # Parallel Processing
//
// For batch conversion across many files, use ConverterPool:
//
//	pool := md2docx.NewConverterPool(4, md2docx.WithTemplate("report.docx"))
//	conv, err := pool.Acquire()
//	defer pool.Release(conv)
//
// Converters share no mutable state; the style catalog is rebuilt per
// conversion from the template file.
package md2docx
