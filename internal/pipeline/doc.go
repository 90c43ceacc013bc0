// Package pipeline implements the document transformation stages.
//
// Stages, in the order the converter runs them:
//   - Markdown preprocessing (line normalization)
//   - Markdown to HTML conversion via Goldmark
//   - Permalinks: anchors on h2-h6 headings plus their stylesheet
//
// Stages that work on markup operate on a dom.Tree parsed once by the
// caller, so each stage mutates the tree in place and rendering happens a
// single time at the end.
package pipeline
