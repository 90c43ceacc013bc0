package specmark

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("input must contain markdown or HTML")
	ErrAmbiguousInput = errors.New("input must not contain both markdown and HTML")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrHTMLParse      = errors.New("HTML parsing failed")
	ErrHTMLRender     = errors.New("HTML rendering failed")
	ErrPoolClosed     = errors.New("converter pool closed")

	// Permalink validation errors.
	ErrInvalidSymbol = errors.New("invalid permalink symbol")

	// Asset loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
