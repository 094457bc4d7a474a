package app

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/allanpk716/resume_tailor/pkg/document"
)

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// verifyReplacements 用另一套解析库复查已保存的文档，
// 确认每条命中的替换在最终产物里确实能找到目标文本。
// 只支持 docx；校验失败不致命，返回告警列表由调用方记录。
func verifyReplacements(path string, replacements []document.Replacement, hits map[string]int) []string {
	if !strings.EqualFold(filepath.Ext(path), document.ExtDocx) {
		return nil
	}

	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return []string{fmt.Sprintf("复查时打开文档失败: %v", err)}
	}
	defer reader.Close()

	// 剥掉全部XML标签后在纯文本上计数，避免Run切分干扰
	content := xmlTagPattern.ReplaceAllString(reader.Editable().GetContent(), "")

	var warnings []string
	for _, rep := range replacements {
		if hits[rep.From] == 0 || rep.To == "" {
			continue
		}
		if strings.Count(content, rep.To) == 0 {
			warnings = append(warnings,
				fmt.Sprintf("替换 '%s' -> '%s' 报告了 %d 处命中，但复查时没有找到目标文本",
					rep.From, rep.To, hits[rep.From]))
		}
	}
	return warnings
}
