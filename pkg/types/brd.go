// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of decoding one BRD file.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// BRDFormat identifies the file format of a business-requirements document.
type BRDFormat string

const (
	BRDText BRDFormat = "txt"
	BRDDocx BRDFormat = "docx"
	BRDPDF  BRDFormat = "pdf"
)

// BRD is a decoded business-requirements document.
type BRD struct {
	// Path is the source file the text was decoded from.
	Path string `json:"path" yaml:"path"`

	Format BRDFormat `json:"format" yaml:"format"`

	// Text is the decoded plain text.
	Text string `json:"text" yaml:"text"`

	Status ConversionStatus `json:"status" yaml:"status"`
}
