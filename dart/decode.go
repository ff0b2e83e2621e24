// Copyright 2025 DartReader Authors

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dart

import (
	"archive/zip"
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/stockparfait/errors"
	"golang.org/x/text/encoding/korean"

	"github.com/wangsookim/DartReader/table"
)

// unzipXML decodes the body of an XML endpoint. On success the server sends a
// ZIP archive whose first member is the XML document; on failure it sends a
// bare XML status document instead. The archive member is decoded as UTF-8
// when valid, and transcoded from EUC-KR otherwise.
func unzipXML(body []byte) (string, error) {
	text, zipErr := extractZipXML(body)
	if zipErr == nil {
		return text, nil
	}
	// Not a ZIP archive: the API reports errors as a bare XML document with
	// status and message elements.
	if err := xmlStatusError(body); err != nil {
		return "", err
	}
	return "", errors.Annotate(zipErr, "response is not a ZIP archive")
}

// extractZipXML extracts and decodes the first member of a ZIP archive.
func extractZipXML(body []byte) (string, error) {
	r := bytes.NewReader(body)
	z, err := zip.NewReader(r, r.Size())
	if err != nil {
		return "", errors.Annotate(err, "failed to read zip archive")
	}
	if len(z.File) == 0 {
		return "", errors.Reason("zip archive contains no files")
	}
	rc, err := z.File[0].Open()
	if err != nil {
		return "", errors.Annotate(err,
			"failed to open file in archive '%s'", z.File[0].Name)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.Annotate(err,
			"failed to read file in archive '%s'", z.File[0].Name)
	}
	return decodeText(data)
}

// decodeText converts raw XML bytes to a UTF-8 string. Registry and document
// files are served in EUC-KR or UTF-8 depending on the endpoint.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Annotate(err, "failed to decode text as EUC-KR")
	}
	return string(decoded), nil
}

// xmlStatusError parses body as an XML status document and returns a
// StatusError for a non-success status. Malformed XML and a missing status
// element are errors in their own right, not silently skipped.
func xmlStatusError(body []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return errors.Annotate(err, "failed to parse XML status document")
	}
	root := doc.Root()
	if root == nil {
		return errors.Reason("XML status document has no root element")
	}
	status := root.SelectElement("status")
	if status == nil {
		return errors.Reason("status element is missing from the XML document")
	}
	if status.Text() != StatusOK {
		var message string
		if m := root.SelectElement("message"); m != nil {
			message = m.Text()
		}
		return &StatusError{Status: status.Text(), Message: message}
	}
	return nil
}

// flattenXML parses decoded XML text and flattens all immediate list child
// elements of the root into a table: one record per list element, one column
// per child tag in document order of first appearance.
func flattenXML(text string) (*table.Table, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, errors.Annotate(err, "failed to parse XML document")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.Reason("XML document has no root element")
	}
	seen := make(map[string]bool)
	var columns []string
	var records []map[string]string
	for _, list := range root.SelectElements("list") {
		rec := make(map[string]string)
		for _, child := range list.ChildElements() {
			if !seen[child.Tag] {
				seen[child.Tag] = true
				columns = append(columns, child.Tag)
			}
			rec[child.Tag] = child.Text()
		}
		records = append(records, rec)
	}
	return table.FromRecords(columns, records), nil
}
