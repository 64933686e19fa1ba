package nfo

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Element is one child of the document root: its tag, attributes, decoded
// text content, and the byte span of that content in the raw document.
type Element struct {
	Tag   string
	Attrs map[string]string
	Value string

	tagStart     int64
	contentStart int64
	contentEnd   int64
	selfClosing  bool
}

// Document is a parsed NFO file. The raw bytes stay authoritative; accessors
// read from the element view and SetText splices into the raw form.
type Document struct {
	raw      []byte
	root     string
	elements []Element
}

// Parse tokenizes an NFO document and records the root's child elements with
// their byte offsets. The input is not retained; callers may reuse raw.
func Parse(raw []byte) (*Document, error) {
	doc := &Document{raw: append([]byte(nil), raw...)}

	dec := xml.NewDecoder(bytes.NewReader(doc.raw))
	depth := 0
	current := -1
	var text strings.Builder

	for {
		pre := dec.InputOffset()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				doc.root = t.Name.Local
			case 2:
				attrs := make(map[string]string, len(t.Attr))
				for _, attr := range t.Attr {
					attrs[attr.Name.Local] = attr.Value
				}
				doc.elements = append(doc.elements, Element{
					Tag:          t.Name.Local,
					Attrs:        attrs,
					tagStart:     pre,
					contentStart: dec.InputOffset(),
				})
				current = len(doc.elements) - 1
				text.Reset()
			}
		case xml.EndElement:
			if depth == 2 && current >= 0 {
				el := &doc.elements[current]
				el.contentEnd = pre
				if el.contentEnd == el.contentStart && bytes.HasSuffix(doc.raw[:el.contentStart], []byte("/>")) {
					el.selfClosing = true
				}
				el.Value = text.String()
				current = -1
			}
			depth--
		case xml.CharData:
			if depth == 2 && current >= 0 {
				text.Write(t)
			}
		}
	}

	if doc.root == "" {
		return nil, errors.New("malformed document: no root element")
	}
	return doc, nil
}

// Root returns the document's root element name.
func (d *Document) Root() string {
	return d.root
}

// Bytes returns the document's current serialized form.
func (d *Document) Bytes() []byte {
	return d.raw
}

// Elements returns the root's children in document order.
func (d *Document) Elements() []Element {
	return d.elements
}

// Text returns the decoded text content of the first element with the given
// tag.
func (d *Document) Text(tag string) (string, bool) {
	for i := range d.elements {
		if d.elements[i].Tag == tag {
			return d.elements[i].Value, true
		}
	}
	return "", false
}

// UniqueID returns the value of the first uniqueid element whose type
// attribute matches idType, e.g. <uniqueid type="tmdb">1399</uniqueid>.
func (d *Document) UniqueID(idType string) (string, bool) {
	for i := range d.elements {
		el := &d.elements[i]
		if el.Tag == "uniqueid" && strings.EqualFold(el.Attrs["type"], idType) {
			return strings.TrimSpace(el.Value), true
		}
	}
	return "", false
}

// SetText replaces the text content of the first element with the given tag.
// Every byte outside the replaced span is preserved. Self-closing elements
// are expanded into an open/close pair carrying the new content.
func (d *Document) SetText(tag, value string) error {
	for i := range d.elements {
		el := &d.elements[i]
		if el.Tag != tag {
			continue
		}

		var escaped bytes.Buffer
		if err := xml.EscapeText(&escaped, []byte(value)); err != nil {
			return fmt.Errorf("escape replacement text: %w", err)
		}

		var patched []byte
		if el.selfClosing {
			startTag := bytes.TrimRight(d.raw[el.tagStart:el.contentStart-2], " \t")
			rebuilt := make([]byte, 0, len(startTag)+escaped.Len()+len(el.Tag)+4)
			rebuilt = append(rebuilt, startTag...)
			rebuilt = append(rebuilt, '>')
			rebuilt = append(rebuilt, escaped.Bytes()...)
			rebuilt = append(rebuilt, "</"+el.Tag+">"...)
			patched = splice(d.raw, el.tagStart, el.contentEnd, rebuilt)
		} else {
			patched = splice(d.raw, el.contentStart, el.contentEnd, escaped.Bytes())
		}

		// Reparse so element offsets track the new byte layout.
		reparsed, err := Parse(patched)
		if err != nil {
			return fmt.Errorf("reparse after edit: %w", err)
		}
		*d = *reparsed
		return nil
	}
	return fmt.Errorf("document has no <%s> element", tag)
}

func splice(raw []byte, start, end int64, replacement []byte) []byte {
	out := make([]byte, 0, int64(len(raw))-(end-start)+int64(len(replacement)))
	out = append(out, raw[:start]...)
	out = append(out, replacement...)
	out = append(out, raw[end:]...)
	return out
}
