package audit

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Document is the element inventory extracted from one parsed HTML file.
// Extraction happens in a single walk; rules read the inventory and never
// touch the node tree, so every rule sees the same snapshot.
type Document struct {
	Path string

	Lang     string
	Title    string
	hasTitle bool

	// Meta maps meta[name] to its content attribute, first occurrence wins.
	Meta map[string]string

	Headings []Heading
	Images   []Image
	Forms    []*Form
	Links    []Link

	AriaLabeled      int
	Roles            []string
	AriaHidden       int
	PositiveTabindex int

	// StyleText is the concatenated text of all <style> elements.
	StyleText string
}

// Heading is an h1..h6 element in document order.
type Heading struct {
	Level int
	Text  string
}

// Image records the alt and loading attributes of one <img>.
type Image struct {
	HasAlt bool
	Alt    string
	Lazy   bool
}

// Form groups the inputs found under one <form> element.
type Form struct {
	Inputs      []FormInput
	HasFieldset bool
}

// FormInput is an input, textarea, or select inside a form. Labeled is
// resolved after the walk, once every label[for] target is known.
type FormInput struct {
	Tag     string
	Type    string
	ID      string
	Labeled bool

	wrapped bool
	aria    bool
}

// Link is an <a> element. Rel holds the raw attribute value; SamePage marks
// fragment-only hrefs used as skip links.
type Link struct {
	Href     string
	Text     string
	Target   string
	Rel      string
	SamePage bool
}

// HasTitle reports whether a <title> element exists at all, empty or not.
func (d *Document) HasTitle() bool { return d.hasTitle }

// LoadFile opens and parses one HTML file. An unreadable path yields an
// InputError, a failed parse a ParseError.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse builds the document inventory from r. The path is carried for error
// messages only and may be empty.
func Parse(r io.Reader, path string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	doc := &Document{Path: path, Meta: map[string]string{}}
	labelFor := map[string]bool{}
	var styleParts []string

	var walk func(n *html.Node, form *Form, inLabel bool)
	walk = func(n *html.Node, form *Form, inLabel bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				doc.Lang = getAttr(n, "lang")
			case "title":
				if !doc.hasTitle {
					doc.hasTitle = true
					doc.Title = strings.TrimSpace(extractText(n))
				}
			case "meta":
				if name := getAttr(n, "name"); name != "" {
					if _, ok := doc.Meta[name]; !ok {
						doc.Meta[name] = getAttr(n, "content")
					}
				}
			case "h1", "h2", "h3", "h4", "h5", "h6":
				doc.Headings = append(doc.Headings, Heading{
					Level: int(n.Data[1] - '0'),
					Text:  strings.TrimSpace(extractText(n)),
				})
			case "img":
				doc.Images = append(doc.Images, Image{
					HasAlt: hasAttr(n, "alt"),
					Alt:    getAttr(n, "alt"),
					Lazy:   getAttr(n, "loading") == "lazy",
				})
			case "form":
				f := &Form{}
				doc.Forms = append(doc.Forms, f)
				form = f
			case "fieldset":
				if form != nil {
					form.HasFieldset = true
				}
			case "input", "textarea", "select":
				if form != nil {
					form.Inputs = append(form.Inputs, FormInput{
						Tag:     n.Data,
						Type:    getAttr(n, "type"),
						ID:      getAttr(n, "id"),
						wrapped: inLabel,
						aria:    hasAttr(n, "aria-label") || hasAttr(n, "aria-labelledby"),
					})
				}
			case "label":
				if target := getAttr(n, "for"); target != "" {
					labelFor[target] = true
				}
				inLabel = true
			case "a":
				href := getAttr(n, "href")
				doc.Links = append(doc.Links, Link{
					Href:     href,
					Text:     strings.TrimSpace(extractText(n)),
					Target:   getAttr(n, "target"),
					Rel:      getAttr(n, "rel"),
					SamePage: strings.HasPrefix(href, "#"),
				})
			case "style":
				styleParts = append(styleParts, extractText(n))
			}

			if hasAttr(n, "aria-label") {
				doc.AriaLabeled++
			}
			if hasAttr(n, "role") {
				doc.Roles = append(doc.Roles, getAttr(n, "role"))
			}
			if getAttr(n, "aria-hidden") == "true" {
				doc.AriaHidden++
			}
			if v := getAttr(n, "tabindex"); v != "" {
				if idx, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && idx > 0 {
					doc.PositiveTabindex++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, form, inLabel)
		}
	}
	walk(root, nil, false)

	// label[for] targets can appear after their input, so resolution waits
	// until the walk is complete.
	for _, f := range doc.Forms {
		for i := range f.Inputs {
			in := &f.Inputs[i]
			in.Labeled = in.wrapped || in.aria || (in.ID != "" && labelFor[in.ID])
		}
	}
	doc.StyleText = strings.Join(styleParts, " ")

	return doc, nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
