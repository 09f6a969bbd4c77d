package audit

import (
	"fmt"
	"net/url"
	"strings"
)

// Env carries per-run settings the rules consult. Domain is the host treated
// as internal when classifying links; empty means every absolute link is
// external.
type Env struct {
	Domain string
}

// Rule is one named check. Eval must be pure: same document, same findings.
type Rule struct {
	Name string
	Eval func(doc *Document, env Env) []Finding
}

// defaultRules is evaluated in declaration order. Report text depends on
// this order, so entries are never reordered, only appended.
var defaultRules = []Rule{
	{Name: "html-lang", Eval: checkLang},
	{Name: "page-title", Eval: checkTitle},
	{Name: "meta-description", Eval: checkMetaDescription},
	{Name: "viewport", Eval: checkViewport},
	{Name: "headings", Eval: checkHeadings},
	{Name: "images", Eval: checkImages},
	{Name: "form-labels", Eval: checkFormLabels},
	{Name: "link-text", Eval: checkLinkText},
	{Name: "external-links", Eval: checkExternalLinks},
	{Name: "aria", Eval: checkARIA},
	{Name: "styles", Eval: checkStyles},
	{Name: "keyboard", Eval: checkKeyboard},
}

func evaluate(doc *Document, env Env) []Finding {
	var out []Finding
	for _, r := range defaultRules {
		found := r.Eval(doc, env)
		for i := range found {
			found[i].Rule = r.Name
		}
		out = append(out, found...)
	}
	return out
}

func pass(msg string) Finding    { return Finding{Severity: SeverityPass, Message: msg} }
func warning(msg string) Finding { return Finding{Severity: SeverityWarning, Message: msg} }
func issue(msg string) Finding   { return Finding{Severity: SeverityIssue, Message: msg} }

// checkLang: WCAG 3.1.1, the document language must be declared.
func checkLang(doc *Document, _ Env) []Finding {
	if doc.Lang != "" {
		return []Finding{pass("HTML lang attribute present")}
	}
	return []Finding{issue("Missing lang attribute on <html> tag")}
}

// checkTitle: WCAG 2.4.2, pages need a non-empty title.
func checkTitle(doc *Document, _ Env) []Finding {
	if doc.HasTitle() && doc.Title != "" {
		return []Finding{pass("Page title present")}
	}
	return []Finding{issue("Missing or empty page title")}
}

func checkMetaDescription(doc *Document, _ Env) []Finding {
	if doc.Meta["description"] != "" {
		return []Finding{pass("Meta description present")}
	}
	return []Finding{warning("Missing meta description")}
}

func checkViewport(doc *Document, _ Env) []Finding {
	if _, ok := doc.Meta["viewport"]; ok {
		return []Finding{pass("Viewport meta tag present")}
	}
	return []Finding{issue("Missing viewport meta tag")}
}

// checkHeadings: WCAG 1.3.1, exactly one h1 and no level jumps.
func checkHeadings(doc *Document, _ Env) []Finding {
	if len(doc.Headings) == 0 {
		return []Finding{warning("No headings found")}
	}

	var out []Finding
	h1 := 0
	for _, h := range doc.Headings {
		if h.Level == 1 {
			h1++
		}
	}
	switch {
	case h1 == 1:
		out = append(out, pass("Exactly one H1 tag found"))
	case h1 == 0:
		out = append(out, issue("No H1 tag found"))
	default:
		out = append(out, issue(fmt.Sprintf("Multiple H1 tags found (%d)", h1)))
	}

	for i := 1; i < len(doc.Headings); i++ {
		prev, cur := doc.Headings[i-1].Level, doc.Headings[i].Level
		if cur > prev+1 {
			out = append(out, warning(fmt.Sprintf("Heading hierarchy skip detected: h%d to h%d", prev, cur)))
		}
	}
	return out
}

// checkImages: WCAG 1.1.1. An empty alt marks a decorative image and passes;
// a missing alt attribute does not.
func checkImages(doc *Document, _ Env) []Finding {
	var out []Finding
	lazy := 0
	for _, img := range doc.Images {
		switch {
		case !img.HasAlt:
			out = append(out, issue("Image missing alt attribute"))
		case img.Alt == "":
			out = append(out, pass("Decorative image with empty alt text"))
		default:
			out = append(out, pass("Image has descriptive alt text"))
		}
		if img.Lazy {
			lazy++
		}
	}
	if lazy > 0 {
		out = append(out, pass(fmt.Sprintf("%d images use lazy loading", lazy)))
	}
	return out
}

// checkFormLabels: WCAG 1.3.1/3.3.2. An input counts as labeled through a
// label[for] reference, a wrapping label, or an aria-label/aria-labelledby.
// Unlabeled inputs are reported as one aggregate warning.
func checkFormLabels(doc *Document, _ Env) []Finding {
	var out []Finding
	unlabeled := 0
	for _, form := range doc.Forms {
		for _, in := range form.Inputs {
			switch in.Type {
			case "hidden", "submit", "button":
				continue
			}
			if in.Labeled {
				out = append(out, pass("Form input has associated label"))
			} else {
				unlabeled++
			}
		}
		if len(form.Inputs) > 5 && !form.HasFieldset {
			out = append(out, warning("Complex form might benefit from fieldsets"))
		}
	}
	if unlabeled > 0 {
		out = append(out, warning(fmt.Sprintf("%d form inputs missing associated labels", unlabeled)))
	}
	return out
}

// vagueLinkText holds link labels that carry no meaning out of context.
var vagueLinkText = map[string]bool{
	"click here": true,
	"read more":  true,
	"more":       true,
}

// checkLinkText: WCAG 2.4.4. Empty text, vague phrases, and raw URLs all
// fail to describe the link target.
func checkLinkText(doc *Document, _ Env) []Finding {
	var out []Finding
	for _, l := range doc.Links {
		text := strings.ToLower(l.Text)
		if l.Text == "" || vagueLinkText[text] || isBareURL(text) {
			out = append(out, warning("Link has non-descriptive text"))
		}
	}
	return out
}

func isBareURL(text string) bool {
	return strings.HasPrefix(text, "http://") ||
		strings.HasPrefix(text, "https://") ||
		strings.HasPrefix(text, "www.")
}

// checkExternalLinks: external links opened in a new tab need rel="noopener"
// and rel="noreferrer" to cut the opener handle. Failures are reported as
// one aggregate warning.
func checkExternalLinks(doc *Document, env Env) []Finding {
	var out []Finding
	insecure := 0
	for _, l := range doc.Links {
		if !isExternal(l.Href, env.Domain) || l.Target != "_blank" {
			continue
		}
		rel := map[string]bool{}
		for _, tok := range strings.Fields(l.Rel) {
			rel[strings.ToLower(tok)] = true
		}
		if rel["noopener"] && rel["noreferrer"] {
			out = append(out, pass("External link has security attributes"))
		} else {
			insecure++
		}
	}
	if insecure > 0 {
		out = append(out, warning(fmt.Sprintf("%d external links missing security attributes", insecure)))
	}
	return out
}

// isExternal treats an href as external when it is absolute http(s) and its
// host is neither the configured domain nor a subdomain of it.
func isExternal(href, domain string) bool {
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		return false
	}
	if domain == "" {
		return true
	}
	u, err := url.Parse(href)
	if err != nil {
		return true
	}
	host := u.Hostname()
	return host != domain && !strings.HasSuffix(host, "."+domain)
}

// checkARIA reports aggregate counts. Roles presentation and none are
// generic and excluded from the role count.
func checkARIA(doc *Document, _ Env) []Finding {
	var out []Finding
	if doc.AriaLabeled > 0 {
		out = append(out, pass(fmt.Sprintf("%d elements have ARIA labels", doc.AriaLabeled)))
	}
	roles := 0
	for _, r := range doc.Roles {
		switch strings.ToLower(strings.TrimSpace(r)) {
		case "", "presentation", "none":
		default:
			roles++
		}
	}
	if roles > 0 {
		out = append(out, pass(fmt.Sprintf("%d elements have ARIA roles", roles)))
	}
	if doc.AriaHidden > 0 {
		out = append(out, pass(fmt.Sprintf("%d decorative elements are hidden from screen readers", doc.AriaHidden)))
	}
	return out
}

// checkStyles runs two substring heuristics over inline stylesheet text.
// Contrast ratios themselves need a rendering engine and stay manual.
func checkStyles(doc *Document, _ Env) []Finding {
	var out []Finding
	css := doc.StyleText
	if strings.Contains(css, "color:") && strings.Contains(css, "background") {
		out = append(out, pass("Color and background properties found (manual contrast check needed)"))
	}
	if strings.Contains(css, "dark:") || strings.Contains(css, "@media (prefers-color-scheme: dark)") {
		out = append(out, pass("Dark mode support detected"))
	}
	return out
}

// checkKeyboard: WCAG 2.4.1/2.4.3. Positive tabindex values override the
// natural tab order; fragment links at the top of the page act as skip links.
func checkKeyboard(doc *Document, _ Env) []Finding {
	var out []Finding
	for i := 0; i < doc.PositiveTabindex; i++ {
		out = append(out, warning("Positive tabindex found - may disrupt tab order"))
	}
	for _, l := range doc.Links {
		if l.SamePage {
			out = append(out, pass("Skip links found for keyboard navigation"))
			break
		}
	}
	return out
}
