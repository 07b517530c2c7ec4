// Package pipeline implements the text-analysis half of the Markdown-to-Word
// conversion.
//
// This package handles everything that can be decided from the source text
// alone:
//   - Line normalization and block segmentation (headings, fenced code,
//     tables, list blocks, rules, paragraphs)
//   - Inline emphasis formatting (bold/italic/code segment extraction)
//   - List item parsing, nesting levels, and ordered-list numbering state
//   - Markdown to HTML conversion via Goldmark and the parsed-HTML
//     paragraph/table index used to recover emphasis for prose
//
// Word document emission is handled separately by the root md2docx package
// using unioffice. This separation keeps the pipeline free of any document
// format dependency, so segmentation and inline formatting stay testable in
// isolation.
package pipeline
