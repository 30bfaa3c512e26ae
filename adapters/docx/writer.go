// Package docx renders per-employee Word documents and bundles them into a
// ZIP when more than one employee is exported. The .docx container is a ZIP
// of WordprocessingML parts; the small fixed layout used here (title plus a
// three-column field table) is emitted directly rather than through a
// library, the same way the original report tooling patched raw OOXML for
// borders and column widths.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/shoumique/employee-reporter/domain/table"
)

// Office header printed above every report title.
const officeHeader = "প্রধান কার্যালয়, ঢাকা"

// Field table column widths in twips: label 6.5cm, colon 0.5cm, value 9cm.
var colTwips = [3]int{3685, 484, 5102}

// Field is one label/value row of an employee document.
type Field struct {
	Label string
	Value string
}

// Writer builds employee documents.
type Writer struct{}

// NewWriter returns a document writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Export renders one document per row of t, with one field per header.
// records carries the filename keys row-aligned with t.Rows; callers build
// it from the full-width table so a column selection that drops the id or
// name column still names each file after the right employee. A single
// employee yields a bare .docx; several yield a ZIP of .docx files. The
// second return reports which.
func (w *Writer) Export(t table.Table, records []table.Record, title string) ([]byte, bool, error) {
	type named struct {
		filename string
		data     []byte
	}

	docs := make([]named, len(t.Rows))
	var g errgroup.Group
	for i := range t.Rows {
		g.Go(func() error {
			var rec table.Record
			if i < len(records) {
				rec = records[i]
			}
			name := rec.Name
			if name == "" {
				name = rec.ID
			}

			fields := make([]Field, 0, len(t.Headers))
			for idx, label := range t.Headers {
				value := t.Cell(i, idx)
				if value == "nan" {
					value = ""
				}
				fields = append(fields, Field{Label: label, Value: value})
			}

			data, err := w.WriteEmployee(title, fields)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			docs[i] = named{filename: fmt.Sprintf("%s_%s.docx", safeName(name), rec.ID), data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	switch len(docs) {
	case 0:
		data, err := w.WriteEmployee(title, []Field{{Label: "No data found.", Value: ""}})
		return data, false, err
	case 1:
		return docs[0].data, false, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, doc := range docs {
		f, err := zw.Create(doc.filename)
		if err != nil {
			return nil, false, err
		}
		if _, err := f.Write(doc.data); err != nil {
			return nil, false, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}

// WriteEmployee builds a single .docx: centred office header, underlined
// title, then one bordered field table row per field with alternating
// shading.
func (w *Writer) WriteEmployee(title string, fields []Field) ([]byte, error) {
	// Skip empty values, but never all of them; an all-blank record still
	// gets its field labels.
	populated := make([]Field, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Value) != "" {
			populated = append(populated, f)
		}
	}
	if len(populated) == 0 {
		populated = fields
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(title, populated)},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

func documentXML(title string, fields []Field) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	b.WriteString(centeredPara(officeHeader, 26, "1F4E79", true, false))
	b.WriteString(centeredPara(title, 26, "1F4E79", true, true))
	b.WriteString(`<w:p/>`)

	b.WriteString(`<w:tbl><w:tblPr><w:tblLayout w:type="fixed"/>`)
	fmt.Fprintf(&b, `<w:tblW w:w="%d" w:type="dxa"/><w:jc w:val="center"/></w:tblPr>`, colTwips[0]+colTwips[1]+colTwips[2])
	fmt.Fprintf(&b, `<w:tblGrid><w:gridCol w:w="%d"/><w:gridCol w:w="%d"/><w:gridCol w:w="%d"/></w:tblGrid>`,
		colTwips[0], colTwips[1], colTwips[2])

	for i, f := range fields {
		// Alternate between very light blue and white.
		shade := "FFFFFF"
		if i%2 == 0 {
			shade = "EEF4FB"
		}
		b.WriteString(`<w:tr>`)
		b.WriteString(tableCell(f.Label, colTwips[0], shade, true, "1F4E79"))
		b.WriteString(tableCell("ঃ", colTwips[1], shade, true, "4472C4"))
		b.WriteString(tableCell(f.Value, colTwips[2], shade, false, "000000"))
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)

	// A4 with 2.5cm margins.
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1417" w:right="1417" w:bottom="1417" w:left="1417"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// centeredPara emits a centred paragraph; sz is in half-points.
func centeredPara(text string, sz int, color string, bold, underline bool) string {
	var rpr strings.Builder
	rpr.WriteString(`<w:rFonts w:ascii="Nirmala UI" w:hAnsi="Nirmala UI" w:cs="Nirmala UI"/>`)
	if bold {
		rpr.WriteString(`<w:b/>`)
	}
	if underline {
		rpr.WriteString(`<w:u w:val="single"/>`)
	}
	fmt.Fprintf(&rpr, `<w:color w:val="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/>`, color, sz, sz)

	return fmt.Sprintf(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr>%s</w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		rpr.String(), escapeXML(text))
}

func tableCell(text string, width int, shade string, bold bool, color string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/>`, width)
	b.WriteString(`<w:tcBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right"} {
		fmt.Fprintf(&b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="B0C4DE"/>`, edge)
	}
	b.WriteString(`</w:tcBorders>`)
	fmt.Fprintf(&b, `<w:shd w:val="clear" w:color="auto" w:fill="%s"/></w:tcPr>`, shade)

	var rpr strings.Builder
	rpr.WriteString(`<w:rFonts w:ascii="Nirmala UI" w:hAnsi="Nirmala UI" w:cs="Nirmala UI"/>`)
	if bold {
		rpr.WriteString(`<w:b/>`)
	}
	fmt.Fprintf(&rpr, `<w:color w:val="%s"/><w:sz w:val="20"/><w:szCs w:val="20"/>`, color)

	fmt.Fprintf(&b, `<w:p><w:r><w:rPr>%s</w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p></w:tc>`,
		rpr.String(), escapeXML(text))
	return b.String()
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

// safeName keeps letters, digits, spaces, underscores and dashes so the
// filename survives every filesystem the archive lands on.
func safeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		// IsMark keeps Bengali vowel signs and viramas inside names intact.
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_ ")
}
