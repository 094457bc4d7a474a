package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/allanpk716/resume_tailor/pkg/document"
)

// AmbiguousInputError 表示输入目录中找到了多个候选简历文件
type AmbiguousInputError struct {
	Dir        string
	Candidates []string
}

func (e *AmbiguousInputError) Error() string {
	return fmt.Sprintf("目录 %s 中找到多个简历文件: %s，请确保只保留一个",
		e.Dir, strings.Join(e.Candidates, ", "))
}

// AutoDetectResume 在数据目录中自动检测唯一的简历文件(.docx 或 .odt)。
// 找不到返回 NotFoundError，找到多个返回 AmbiguousInputError 并列出全部候选。
// Office 的临时文件(~$ 前缀)不参与检测。
func AutoDetectResume(dataDir string) (string, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("数据目录不存在: %w", &document.NotFoundError{Path: dataDir})
		}
		return "", fmt.Errorf("访问数据目录失败: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("路径不是目录: %s", dataDir)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf("读取数据目录失败: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if strings.EqualFold(ext, document.ExtDocx) || strings.EqualFold(ext, document.ExtOdt) {
			candidates = append(candidates, entry.Name())
		}
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("在 %s 中没有找到简历文件(.docx/.odt): %w",
			dataDir, &document.NotFoundError{Path: dataDir})
	case 1:
		return filepath.Join(dataDir, candidates[0]), nil
	default:
		return "", &AmbiguousInputError{Dir: dataDir, Candidates: candidates}
	}
}
