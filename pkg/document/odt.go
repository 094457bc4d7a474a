package document

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// OpenDocument 容器内的正文与样式条目。页眉页脚定义在
// styles.xml 的母版页里，而不是 content.xml。
const (
	odtContentPart = "content.xml"
	odtStylesPart  = "styles.xml"
)

var (
	odtBodyParagraphExpr = xpath.MustCompile("//office:body/office:text//text:p[not(ancestor::table:table)]")
	odtBodyTableExpr     = xpath.MustCompile("//office:body/office:text//table:table[not(ancestor::table:table)]")
	odtRowExpr           = xpath.MustCompile("table:table-row")
	odtCellExpr          = xpath.MustCompile("table:table-cell")
	odtCellParagraphExpr = xpath.MustCompile(".//text:p")
	odtMasterPageExpr    = xpath.MustCompile("//office:master-styles/style:master-page")
	odtHeaderExpr        = xpath.MustCompile("style:header")
	odtFooterExpr        = xpath.MustCompile("style:footer")
	odtPartParagraphExpr = xpath.MustCompile(".//text:p[not(ancestor::table:table)]")
	odtPartTableExpr     = xpath.MustCompile(".//table:table[not(ancestor::table:table)]")
)

// odtDocument OpenDocument(.odt)格式的文档适配器
type odtDocument struct {
	path    string
	parts   []zipPart
	content *xmlquery.Node
	styles  *xmlquery.Node
	trees   map[string]*xmlquery.Node
}

// openOdt 打开一个odt文档
func openOdt(path string) (Document, error) {
	parts, err := readZipParts(path)
	if err != nil {
		return nil, &DocumentEditError{Path: path, Err: err}
	}

	doc := &odtDocument{
		path:  path,
		parts: parts,
		trees: make(map[string]*xmlquery.Node),
	}

	for i := range parts {
		name := parts[i].header.Name
		if name != odtContentPart && name != odtStylesPart {
			continue
		}
		node, err := parseXMLPart(parts[i].data)
		if err != nil {
			return nil, &DocumentEditError{Path: path, Err: fmt.Errorf("解析 %s 失败: %w", name, err)}
		}
		doc.trees[name] = node
		if name == odtContentPart {
			doc.content = node
		} else {
			doc.styles = node
		}
	}

	if doc.content == nil {
		return nil, &DocumentEditError{Path: path, Err: fmt.Errorf("容器中缺少 %s", odtContentPart)}
	}

	return doc, nil
}

func (d *odtDocument) Path() string {
	return d.path
}

func (d *odtDocument) BodyParagraphs() []Paragraph {
	return odtParagraphs(xmlquery.QuerySelectorAll(d.content, odtBodyParagraphExpr))
}

func (d *odtDocument) BodyTables() []Table {
	nodes := xmlquery.QuerySelectorAll(d.content, odtBodyTableExpr)
	tables := make([]Table, 0, len(nodes))
	for _, n := range nodes {
		tables = append(tables, &odtTable{node: n})
	}
	return tables
}

// Sections 每个母版页对应一节，页眉页脚任意一方可以缺失
func (d *odtDocument) Sections() []Section {
	if d.styles == nil {
		return nil
	}
	pages := xmlquery.QuerySelectorAll(d.styles, odtMasterPageExpr)
	sections := make([]Section, 0, len(pages))
	for _, page := range pages {
		sections = append(sections, &odtSection{
			header: xmlquery.QuerySelector(page, odtHeaderExpr),
			footer: xmlquery.QuerySelector(page, odtFooterExpr),
		})
	}
	return sections
}

func (d *odtDocument) Save() error {
	for i := range d.parts {
		if tree, ok := d.trees[d.parts[i].header.Name]; ok {
			d.parts[i].data = serializeXMLPart(tree)
		}
	}
	if err := writeZipParts(d.path, d.parts); err != nil {
		return &DocumentEditError{Path: d.path, Err: err}
	}
	return nil
}

// odtParagraph 一个 text:p 节点
type odtParagraph struct {
	node *xmlquery.Node
}

func (p *odtParagraph) Text() string {
	return p.node.InnerText()
}

func (p *odtParagraph) SetSegments(pre, mid, post string) {
	// 段落的全部子节点(含span)丢弃，重建为最多三个纯文本节点
	var doomed []*xmlquery.Node
	for child := p.node.FirstChild; child != nil; child = child.NextSibling {
		doomed = append(doomed, child)
	}
	for _, child := range doomed {
		xmlquery.RemoveFromTree(child)
	}

	if pre != "" {
		xmlquery.AddChild(p.node, &xmlquery.Node{Type: xmlquery.TextNode, Data: pre})
	}
	xmlquery.AddChild(p.node, &xmlquery.Node{Type: xmlquery.TextNode, Data: mid})
	if post != "" {
		xmlquery.AddChild(p.node, &xmlquery.Node{Type: xmlquery.TextNode, Data: post})
	}
}

func odtParagraphs(nodes []*xmlquery.Node) []Paragraph {
	paragraphs := make([]Paragraph, 0, len(nodes))
	for _, n := range nodes {
		paragraphs = append(paragraphs, &odtParagraph{node: n})
	}
	return paragraphs
}

// odtTable 一个 table:table 节点
type odtTable struct {
	node *xmlquery.Node
}

func (t *odtTable) Rows() []Row {
	nodes := xmlquery.QuerySelectorAll(t.node, odtRowExpr)
	rows := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, &odtRow{node: n})
	}
	return rows
}

type odtRow struct {
	node *xmlquery.Node
}

func (r *odtRow) Cells() []Cell {
	nodes := xmlquery.QuerySelectorAll(r.node, odtCellExpr)
	cells := make([]Cell, 0, len(nodes))
	for _, n := range nodes {
		cells = append(cells, &odtCell{node: n})
	}
	return cells
}

type odtCell struct {
	node *xmlquery.Node
}

func (c *odtCell) Paragraphs() []Paragraph {
	return odtParagraphs(xmlquery.QuerySelectorAll(c.node, odtCellParagraphExpr))
}

// odtSection 母版页里的页眉/页脚
type odtSection struct {
	header *xmlquery.Node
	footer *xmlquery.Node
}

func (s *odtSection) HeaderParagraphs() []Paragraph {
	if s.header == nil {
		return nil
	}
	return odtParagraphs(xmlquery.QuerySelectorAll(s.header, odtPartParagraphExpr))
}

func (s *odtSection) HeaderTables() []Table {
	return odtPartTables(s.header)
}

func (s *odtSection) FooterParagraphs() []Paragraph {
	if s.footer == nil {
		return nil
	}
	return odtParagraphs(xmlquery.QuerySelectorAll(s.footer, odtPartParagraphExpr))
}

func (s *odtSection) FooterTables() []Table {
	return odtPartTables(s.footer)
}

func odtPartTables(part *xmlquery.Node) []Table {
	if part == nil {
		return nil
	}
	nodes := xmlquery.QuerySelectorAll(part, odtPartTableExpr)
	tables := make([]Table, 0, len(nodes))
	for _, n := range nodes {
		tables = append(tables, &odtTable{node: n})
	}
	return tables
}
