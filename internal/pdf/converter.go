package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/allanpk716/resume_tailor/pkg/document"
)

// 探测工具可用性和执行转换的超时时间
const (
	probeTimeout   = 5 * time.Second
	convertTimeout = 30 * time.Second
)

// 依次尝试的转换命令。部分发行版只装了 soffice 而没有 libreoffice 包装脚本
var defaultCommands = []string{"libreoffice", "soffice"}

// ExternalToolError 表示外部转换工具不可用或执行失败
type ExternalToolError struct {
	Tool string
	Err  error
}

func (e *ExternalToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("外部工具 %s 执行失败: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("没有可用的外部转换工具(尝试了 %s)", e.Tool)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// Converter 通过 LibreOffice 无头模式把文档转换为 PDF
type Converter struct {
	commands []string
}

// NewConverter 使用默认的命令候选链创建转换器
func NewConverter() *Converter {
	return &Converter{commands: defaultCommands}
}

// NewConverterWithCommands 指定命令候选链，测试用
func NewConverterWithCommands(commands []string) *Converter {
	return &Converter{commands: commands}
}

// Convert 把 docx/odt 文件转换为同目录下的同名 PDF，返回 PDF 路径。
// 逐个探测候选命令，第一个响应 --version 的用来转换；
// 全部不可用或转换后没有产物时返回 ExternalToolError。
func (c *Converter) Convert(ctx context.Context, sourcePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if ext != document.ExtDocx && ext != document.ExtOdt {
		return "", &document.UnsupportedFormatError{
			Ext:      ext,
			Accepted: []string{document.ExtDocx, document.ExtOdt},
		}
	}

	tool, err := c.findTool(ctx)
	if err != nil {
		return "", err
	}

	convertCtx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	outDir := filepath.Dir(sourcePath)
	cmd := exec.CommandContext(convertCtx, tool,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, sourcePath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", &ExternalToolError{
			Tool: tool,
			Err:  fmt.Errorf("%w, 输出: %s", err, strings.TrimSpace(string(output))),
		}
	}

	pdfPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".pdf"
	if !pathExists(pdfPath) {
		return "", &ExternalToolError{
			Tool: tool,
			Err:  fmt.Errorf("转换命令执行成功但没有生成 %s", pdfPath),
		}
	}
	return pdfPath, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// findTool 返回候选链中第一个能响应 --version 的命令
func (c *Converter) findTool(ctx context.Context) (string, error) {
	for _, tool := range c.commands {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := exec.CommandContext(probeCtx, tool, "--version").Run()
		cancel()
		if err == nil {
			return tool, nil
		}
	}
	return "", &ExternalToolError{Tool: strings.Join(c.commands, ", ")}
}
