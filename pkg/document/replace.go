package document

import "strings"

// ApplyReplacements 将替换指令依次应用到文档，返回每个关键词改写的段落数。
//
// 每条指令的扫描顺序固定: 正文段落，正文表格单元格(先行后列)内的段落，
// 然后逐节处理页眉段落、页眉表格单元格、页脚段落、页脚表格单元格。
//
// 匹配策略: 区分大小写的精确子串匹配，匹配对象是段落拼接后的完整文本
// 而不是单个Run；同一段落内同一条指令每轮最多替换一次(只替换首个匹配)。
// 指令串行执行，后面的指令在已被改写的文档上重新扫描，因此可以匹配到
// 前面指令写入的文本，这一顺序语义是有意为之。
//
// From 为空或 From 与 To 相同的指令直接跳过，不算错误。
func ApplyReplacements(doc Document, replacements []Replacement) map[string]int {
	counts := make(map[string]int, len(replacements))

	for _, rep := range replacements {
		if rep.From == "" || rep.From == rep.To {
			continue
		}

		replaced := 0
		for _, p := range doc.BodyParagraphs() {
			if replaceFirstInParagraph(p, rep) {
				replaced++
			}
		}
		for _, t := range doc.BodyTables() {
			replaced += replaceInTable(t, rep)
		}
		for _, s := range doc.Sections() {
			for _, p := range s.HeaderParagraphs() {
				if replaceFirstInParagraph(p, rep) {
					replaced++
				}
			}
			for _, t := range s.HeaderTables() {
				replaced += replaceInTable(t, rep)
			}
			for _, p := range s.FooterParagraphs() {
				if replaceFirstInParagraph(p, rep) {
					replaced++
				}
			}
			for _, t := range s.FooterTables() {
				replaced += replaceInTable(t, rep)
			}
		}

		counts[rep.From] += replaced
	}

	return counts
}

// replaceFirstInParagraph 在段落完整文本中查找首个匹配并重建段落。
// 命中时段落被重建为 前段(可空省略)/替换文本/后段(可空省略) 三段。
func replaceFirstInParagraph(p Paragraph, rep Replacement) bool {
	full := p.Text()
	index := strings.Index(full, rep.From)
	if index < 0 {
		return false
	}

	p.SetSegments(full[:index], rep.To, full[index+len(rep.From):])
	return true
}

// replaceInTable 按先行后列的顺序处理表格内的全部段落
func replaceInTable(t Table, rep Replacement) int {
	replaced := 0
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			for _, p := range cell.Paragraphs() {
				if replaceFirstInParagraph(p, rep) {
					replaced++
				}
			}
		}
	}
	return replaced
}
