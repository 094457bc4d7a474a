package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
)

// 支持的文档扩展名
const (
	ExtDocx = ".docx"
	ExtOdt  = ".odt"
	ExtTxt  = ".txt"
)

// Replacement 表示一条文本替换指令
type Replacement struct {
	// From 待替换的原文
	From string `json:"from"`
	// To 替换后的新文本
	To string `json:"to"`
}

// Paragraph 段落的统一能力接口，由具体格式的适配器实现
type Paragraph interface {
	// Text 返回段落内全部Run文本按顺序拼接出的可见文本
	Text() string
	// SetSegments 丢弃段落原有的Run结构，按 前段/替换段/后段 最多三段重建内容。
	// pre 和 post 为空时省略，mid 始终写入。段落内原有的字符级格式不保留，
	// 段落级属性保留。
	SetSegments(pre, mid, post string)
}

// Table 表格能力接口
type Table interface {
	Rows() []Row
}

// Row 表格行
type Row interface {
	Cells() []Cell
}

// Cell 表格单元格，内部由段落组成
type Cell interface {
	Paragraphs() []Paragraph
}

// Section 文档中的一节，带有可选的页眉和页脚
type Section interface {
	HeaderParagraphs() []Paragraph
	HeaderTables() []Table
	FooterParagraphs() []Paragraph
	FooterTables() []Table
}

// Document 结构化文档的统一能力接口。
// 两种互不兼容的对象模型(OOXML 与 OpenDocument)各自实现一个适配器，
// 匹配与替换策略只通过本接口操作，保证两种格式行为一致。
type Document interface {
	// Path 返回文档在磁盘上的路径
	Path() string
	// BodyParagraphs 返回正文段落(不含表格内的段落)
	BodyParagraphs() []Paragraph
	// BodyTables 返回正文表格
	BodyTables() []Table
	// Sections 返回文档的节(页眉页脚)
	Sections() []Section
	// Save 将文档序列化回原路径，覆盖原文件
	Save() error
}

// Open 根据扩展名打开文档。文件不存在时立即返回 NotFoundError，
// 无法识别的扩展名返回 UnsupportedFormatError。
func Open(path string) (Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &DocumentEditError{Path: path, Err: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtDocx:
		return openDocx(path)
	case ExtOdt:
		return openOdt(path)
	default:
		return nil, &UnsupportedFormatError{Ext: ext, Accepted: []string{ExtDocx, ExtOdt}}
	}
}

// parseXMLPart 将容器内的一个XML条目解析为DOM树
func parseXMLPart(data []byte) (*xmlquery.Node, error) {
	return xmlquery.Parse(bytes.NewReader(data))
}

// serializeXMLPart 将DOM树序列化回XML字节(含声明)
func serializeXMLPart(doc *xmlquery.Node) []byte {
	return []byte(doc.OutputXML(false))
}
