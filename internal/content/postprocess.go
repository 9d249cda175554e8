package content

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Presentational class sets applied by classify. Pure metadata annotation;
// the semantic structure is untouched.
const (
	sectionClass = "post-section mb-12"
	h2Class      = "text-3xl font-bold mt-10 mb-4"
	h3Class      = "text-2xl font-semibold mt-8 mb-3"
	strongClass  = "font-semibold text-neutral-900 dark:text-neutral-100"
	anchorClass  = "text-blue-600 underline hover:text-blue-800"
	ulClass      = "list-disc pl-6 space-y-2"
	olClass      = "list-decimal pl-6 space-y-2"
	tableClass   = "w-full border-collapse my-6"
	thClass      = "border px-3 py-2 text-left font-semibold bg-neutral-100"
	tdClass      = "border px-3 py-2"
	imgClass     = "rounded-lg my-6"
)

// Images get fixed dimensions so the layout does not shift while they load.
const (
	imageWidth  = "692"
	imageHeight = "390"
)

const mermaidLanguageClass = "language-mermaid"

// Processor runs the markdown render and the DOM rewrite as one unit. Any
// failure falls back to the unprocessed source body: a readable-but-unstyled
// article beats a broken or blank page.
type Processor struct {
	render func(string) (string, error)
	log    *slog.Logger
}

// NewProcessor creates a processor logging pipeline failures to log.
func NewProcessor(log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{render: renderMarkdown, log: log}
}

// Render produces the styled HTML for a markdown article body. It never
// fails: when the pipeline errors the original source body is returned
// verbatim and the failure is logged.
func (p *Processor) Render(source string) string {
	styled, err := p.process(source)
	if err != nil {
		p.log.Error("content pipeline failed, serving unprocessed body", "error", err)
		return source
	}
	return styled
}

func (p *Processor) process(source string) (string, error) {
	rendered, err := p.render(source)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	// Diagram extraction restructures code blocks, so it must run before
	// the passes that assume the document is in its prose shape.
	extractDiagrams(doc)
	if err := sectionize(doc); err != nil {
		return "", err
	}
	classify(doc)

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}
	return out, nil
}

// extractDiagrams lifts the text of mermaid-tagged fenced code blocks out of
// their pre/code wrappers into bare containers the client-side diagram
// library hydrates. Other code blocks are left untouched.
func extractDiagrams(doc *goquery.Document) {
	doc.Find("pre > code").Each(func(_ int, code *goquery.Selection) {
		if !code.HasClass(mermaidLanguageClass) {
			return
		}

		container := &html.Node{
			Type:     html.ElementNode,
			Data:     "div",
			DataAtom: atom.Div,
			Attr:     []html.Attribute{{Key: "class", Val: "mermaid"}},
		}
		container.AppendChild(&html.Node{Type: html.TextNode, Data: code.Text()})

		code.Parent().ReplaceWithNodes(container)
	})
}

// sectionize groups the flat sequence of top-level blocks into wrapper
// elements anchored at H2 boundaries. Content before the first H2 lands in
// a leading wrapper created up front.
func sectionize(doc *goquery.Document) error {
	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return fmt.Errorf("document has no body")
	}
	bodyNode := body.Nodes[0]

	newSection := func() *html.Node {
		return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}

	lead := newSection()
	sections := []*html.Node{lead}
	current := lead

	for child := bodyNode.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.ElementNode && child.DataAtom == atom.H2 {
			current = newSection()
			sections = append(sections, current)
		}
		bodyNode.RemoveChild(child)
		current.AppendChild(child)
		child = next
	}

	for _, section := range sections {
		bodyNode.AppendChild(section)
	}
	return nil
}

// classify annotates elements with their presentational classes by tag.
// Runs after sectioning so the wrapper divs pick up their spacing class.
func classify(doc *goquery.Document) {
	doc.Find("div").AddClass(sectionClass)
	doc.Find("h2").AddClass(h2Class)
	doc.Find("h3").AddClass(h3Class)
	doc.Find("strong").AddClass(strongClass)
	doc.Find("a").AddClass(anchorClass)
	doc.Find("ul").AddClass(ulClass)
	doc.Find("ol").AddClass(olClass)
	doc.Find("table").AddClass(tableClass)
	doc.Find("th").AddClass(thClass)
	doc.Find("td").AddClass(tdClass)
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		img.AddClass(imgClass)
		img.SetAttr("width", imageWidth)
		img.SetAttr("height", imageHeight)
	})
}
