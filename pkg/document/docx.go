package document

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// OOXML 容器内的主文档条目
const docxDocumentPart = "word/document.xml"

var (
	docxBodyParagraphExpr = xpath.MustCompile("//w:body/w:p")
	docxBodyTableExpr     = xpath.MustCompile("//w:body/w:tbl")
	docxRowExpr           = xpath.MustCompile("w:tr")
	docxCellExpr          = xpath.MustCompile("w:tc")
	docxCellParagraphExpr = xpath.MustCompile("w:p")
	docxRunTextExpr       = xpath.MustCompile(".//w:t")
	docxPartParagraphExpr = xpath.MustCompile("/*/w:p")
	docxPartTableExpr     = xpath.MustCompile("/*/w:tbl")

	docxHeaderPartRe = regexp.MustCompile(`^word/header(\d*)\.xml$`)
	docxFooterPartRe = regexp.MustCompile(`^word/footer(\d*)\.xml$`)
)

// docxDocument OOXML(.docx)格式的文档适配器。
// 正文、页眉、页脚各自解析为DOM树，保存时只重新序列化被修改过的XML条目，
// 其余条目原样回写。
type docxDocument struct {
	path    string
	parts   []zipPart
	body    *xmlquery.Node
	headers map[int]*xmlquery.Node
	footers map[int]*xmlquery.Node
	trees   map[string]*xmlquery.Node
}

// openDocx 打开一个docx文档
func openDocx(path string) (Document, error) {
	parts, err := readZipParts(path)
	if err != nil {
		return nil, &DocumentEditError{Path: path, Err: err}
	}

	doc := &docxDocument{
		path:    path,
		parts:   parts,
		headers: make(map[int]*xmlquery.Node),
		footers: make(map[int]*xmlquery.Node),
		trees:   make(map[string]*xmlquery.Node),
	}

	for i := range parts {
		name := parts[i].header.Name
		var index int
		switch {
		case name == docxDocumentPart:
			node, err := parseXMLPart(parts[i].data)
			if err != nil {
				return nil, &DocumentEditError{Path: path, Err: fmt.Errorf("解析 %s 失败: %w", name, err)}
			}
			doc.body = node
			doc.trees[name] = node
		case matchPartIndex(docxHeaderPartRe, name, &index):
			node, err := parseXMLPart(parts[i].data)
			if err != nil {
				return nil, &DocumentEditError{Path: path, Err: fmt.Errorf("解析 %s 失败: %w", name, err)}
			}
			doc.headers[index] = node
			doc.trees[name] = node
		case matchPartIndex(docxFooterPartRe, name, &index):
			node, err := parseXMLPart(parts[i].data)
			if err != nil {
				return nil, &DocumentEditError{Path: path, Err: fmt.Errorf("解析 %s 失败: %w", name, err)}
			}
			doc.footers[index] = node
			doc.trees[name] = node
		}
	}

	if doc.body == nil {
		return nil, &DocumentEditError{Path: path, Err: fmt.Errorf("容器中缺少 %s", docxDocumentPart)}
	}

	return doc, nil
}

// matchPartIndex 匹配页眉/页脚条目名并提取序号(无序号按0处理)
func matchPartIndex(re *regexp.Regexp, name string, index *int) bool {
	m := re.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		n = 0
	}
	*index = n
	return true
}

func (d *docxDocument) Path() string {
	return d.path
}

func (d *docxDocument) BodyParagraphs() []Paragraph {
	return docxParagraphs(xmlquery.QuerySelectorAll(d.body, docxBodyParagraphExpr))
}

func (d *docxDocument) BodyTables() []Table {
	nodes := xmlquery.QuerySelectorAll(d.body, docxBodyTableExpr)
	tables := make([]Table, 0, len(nodes))
	for _, n := range nodes {
		tables = append(tables, &docxTable{node: n})
	}
	return tables
}

// Sections 将页眉/页脚条目按文件名序号配对为节，序号升序排列
func (d *docxDocument) Sections() []Section {
	indexSet := make(map[int]struct{}, len(d.headers)+len(d.footers))
	for i := range d.headers {
		indexSet[i] = struct{}{}
	}
	for i := range d.footers {
		indexSet[i] = struct{}{}
	}

	indexes := make([]int, 0, len(indexSet))
	for i := range indexSet {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	sections := make([]Section, 0, len(indexes))
	for _, i := range indexes {
		sections = append(sections, &docxSection{header: d.headers[i], footer: d.footers[i]})
	}
	return sections
}

func (d *docxDocument) Save() error {
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

// docxParagraph 一个 w:p 节点
type docxParagraph struct {
	node *xmlquery.Node
}

func (p *docxParagraph) Text() string {
	var sb strings.Builder
	for _, t := range xmlquery.QuerySelectorAll(p.node, docxRunTextExpr) {
		sb.WriteString(t.InnerText())
	}
	return sb.String()
}

func (p *docxParagraph) SetSegments(pre, mid, post string) {
	// 段落属性 w:pPr 保留，其余子节点全部丢弃
	var doomed []*xmlquery.Node
	for child := p.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Prefix == "w" && child.Data == "pPr" {
			continue
		}
		doomed = append(doomed, child)
	}
	for _, child := range doomed {
		xmlquery.RemoveFromTree(child)
	}

	if pre != "" {
		xmlquery.AddChild(p.node, newDocxRun(pre))
	}
	xmlquery.AddChild(p.node, newDocxRun(mid))
	if post != "" {
		xmlquery.AddChild(p.node, newDocxRun(post))
	}
}

// newDocxRun 构造一个无格式的 w:r 运行，xml:space 置为 preserve
// 以免首尾空格在消费端被丢弃
func newDocxRun(text string) *xmlquery.Node {
	run := &xmlquery.Node{Type: xmlquery.ElementNode, Prefix: "w", Data: "r"}
	t := &xmlquery.Node{
		Type:   xmlquery.ElementNode,
		Prefix: "w",
		Data:   "t",
		Attr: []xmlquery.Attr{
			{Name: xml.Name{Space: "xml", Local: "space"}, Value: "preserve"},
		},
	}
	xmlquery.AddChild(t, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
	xmlquery.AddChild(run, t)
	return run
}

// docxParagraphs 将 w:p 节点列表包装为段落接口
func docxParagraphs(nodes []*xmlquery.Node) []Paragraph {
	paragraphs := make([]Paragraph, 0, len(nodes))
	for _, n := range nodes {
		paragraphs = append(paragraphs, &docxParagraph{node: n})
	}
	return paragraphs
}

// docxTable 一个 w:tbl 节点
type docxTable struct {
	node *xmlquery.Node
}

func (t *docxTable) Rows() []Row {
	nodes := xmlquery.QuerySelectorAll(t.node, docxRowExpr)
	rows := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, &docxRow{node: n})
	}
	return rows
}

type docxRow struct {
	node *xmlquery.Node
}

func (r *docxRow) Cells() []Cell {
	nodes := xmlquery.QuerySelectorAll(r.node, docxCellExpr)
	cells := make([]Cell, 0, len(nodes))
	for _, n := range nodes {
		cells = append(cells, &docxCell{node: n})
	}
	return cells
}

type docxCell struct {
	node *xmlquery.Node
}

func (c *docxCell) Paragraphs() []Paragraph {
	return docxParagraphs(xmlquery.QuerySelectorAll(c.node, docxCellParagraphExpr))
}

// docxSection 一对按序号配对的页眉/页脚，任意一方可以缺失
type docxSection struct {
	header *xmlquery.Node
	footer *xmlquery.Node
}

func (s *docxSection) HeaderParagraphs() []Paragraph {
	if s.header == nil {
		return nil
	}
	return docxParagraphs(xmlquery.QuerySelectorAll(s.header, docxPartParagraphExpr))
}

func (s *docxSection) HeaderTables() []Table {
	return docxPartTables(s.header)
}

func (s *docxSection) FooterParagraphs() []Paragraph {
	if s.footer == nil {
		return nil
	}
	return docxParagraphs(xmlquery.QuerySelectorAll(s.footer, docxPartParagraphExpr))
}

func (s *docxSection) FooterTables() []Table {
	return docxPartTables(s.footer)
}

func docxPartTables(part *xmlquery.Node) []Table {
	if part == nil {
		return nil
	}
	nodes := xmlquery.QuerySelectorAll(part, docxPartTableExpr)
	tables := make([]Table, 0, len(nodes))
	for _, n := range nodes {
		tables = append(tables, &docxTable{node: n})
	}
	return tables
}
