package document

import (
	"os"
	"path/filepath"
	"strings"
)

// 表格行内单元格文本的连接符
const cellSeparator = " | "

// ExtractText 提取文档的扁平文本视图，用于构造提示词。
//
// 每个非空正文段落占一行(原始文本，不修剪内部空白)；
// 每个含有至少一个非空单元格的表格行占一行，单元格文本以 " | " 连接，
// 空单元格直接省略而不是留出空位。
//
// 页眉页脚不参与提取——提取范围窄于替换范围，这一不对称是有意保留的。
func ExtractText(doc Document) string {
	var lines []string

	for _, p := range doc.BodyParagraphs() {
		text := p.Text()
		if strings.TrimSpace(text) != "" {
			lines = append(lines, text)
		}
	}

	for _, t := range doc.BodyTables() {
		for _, row := range t.Rows() {
			var cellTexts []string
			for _, cell := range row.Cells() {
				text := cellText(cell)
				if text != "" {
					cellTexts = append(cellTexts, text)
				}
			}
			if len(cellTexts) > 0 {
				lines = append(lines, strings.Join(cellTexts, cellSeparator))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// cellText 单元格内各段落文本按行拼接后修剪首尾空白
func cellText(cell Cell) string {
	var texts []string
	for _, p := range cell.Paragraphs() {
		texts = append(texts, p.Text())
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

// ReadDocumentAsText 按扩展名读取文档的纯文本内容。
// .docx/.odt 返回 ExtractText 的扁平视图，.txt 按UTF-8原样读取，
// 其它扩展名返回 UnsupportedFormatError。
func ReadDocumentAsText(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtDocx, ExtOdt:
		doc, err := Open(path)
		if err != nil {
			return "", err
		}
		return ExtractText(doc), nil
	case ExtTxt:
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", &NotFoundError{Path: path}
			}
			return "", err
		}
		return string(data), nil
	default:
		return "", &UnsupportedFormatError{Ext: ext, Accepted: []string{ExtDocx, ExtOdt, ExtTxt}}
	}
}
