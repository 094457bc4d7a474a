package domain

import "context"

// ContentGenerator 内容生成器接口，屏蔽具体模型实现
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// PDFConverter PDF 转换器接口
type PDFConverter interface {
	Convert(ctx context.Context, sourcePath string) (string, error)
}

// RunResult 一次完整定制流程的结果
type RunResult struct {
	CompanyName     string
	CompanyDir      string
	ResumePath      string // 公司目录内已完成替换的简历副本
	CoverLetterPath string // 未生成求职信时为空
	PDFPath         string // 未生成 PDF 时为空
	ReplacementHits map[string]int
	Warnings        []string
}

// AppliedCount 实际命中(替换次数大于零)的替换条数
func (r *RunResult) AppliedCount() int {
	applied := 0
	for _, count := range r.ReplacementHits {
		if count > 0 {
			applied++
		}
	}
	return applied
}
