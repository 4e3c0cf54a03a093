package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// Allowed resume MIME types and the upload size cap, shared by the server's
// gate and the client's pre-flight validation.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	MaxResumeBytes = 5 * 1024 * 1024
)

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// SniffMIME determines the resume MIME type from content magic bytes, falling
// back to the filename extension. Returns an empty string for anything other
// than PDF or DOCX.
func SniffMIME(filename string, data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return MIMEPDF
	case bytes.HasPrefix(data, zipMagic) && strings.EqualFold(filepath.Ext(filename), ".docx"):
		return MIMEDOCX
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	}
	return ""
}

// ResumeText extracts plain text from an uploaded resume. DOCX files are read
// from the word/document.xml part; PDF text is recovered best-effort from the
// raw bytes. Anything unrecognized is treated as plain UTF-8 text.
func ResumeText(filename string, data []byte) (string, error) {
	switch SniffMIME(filename, data) {
	case MIMEDOCX:
		text, err := docxText(data)
		if err != nil {
			return "", fmt.Errorf("failed to extract DOCX text from %s: %w", filename, err)
		}
		return CleanText(text), nil
	case MIMEPDF:
		return CleanText(pdfText(data)), nil
	default:
		return CleanText(string(data)), nil
	}
}

// docxText reads the main document part of an OOXML archive and flattens it
// to text, one paragraph per line.
func docxText(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a valid OOXML archive: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document part: %w", err)
		}
		defer rc.Close()
		return flattenDocumentXML(rc)
	}
	return "", fmt.Errorf("archive has no word/document.xml part")
}

// flattenDocumentXML walks the WordprocessingML token stream collecting
// character data, inserting a newline at each paragraph end.
func flattenDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document XML: %w", err)
		}
		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String(), nil
}

var printableRun = regexp.MustCompile(`[ -~]{3,}`)

// pdfText recovers text from a PDF best-effort by collecting printable ASCII
// runs. Compressed content streams will not yield text this way; the keyword
// scan tolerates that by simply finding fewer terms.
func pdfText(data []byte) string {
	runs := printableRun.FindAllString(string(data), -1)
	return strings.Join(runs, "\n")
}
