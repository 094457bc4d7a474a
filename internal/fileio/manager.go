package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/allanpk716/resume_tailor/pkg/document"
)

// 公司名净化后为空或字面值"unknown"时使用的兜底名称
const fallbackCompanyName = "customized"

// 冲突避让的重命名尝试上限，防止在只读目录等异常环境下死循环
const maxCollisionAttempts = 1000

// 保存求职信的固定文件名
const coverLetterFilename = "cover_letter.txt"

// ResourceExhaustedError 表示冲突避让重命名超过了尝试上限
type ResourceExhaustedError struct {
	Path     string
	Attempts int
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("为 %s 生成唯一文件名失败: 尝试了 %d 次", e.Path, e.Attempts)
}

// companyDirName 公司名净化后的目录/文件名片段，空或"unknown"时使用兜底名称
func companyDirName(companyName string) string {
	sanitized := SanitizeFilename(companyName)
	if sanitized == "" || sanitized == "unknown" {
		return fallbackCompanyName
	}
	return sanitized
}

// DuplicateDocument 在源文件旁复制一份副本，命名为 {stem}_{公司名}{扩展名}。
// 目标已存在时在扩展名前依次追加 _1、_2 …… 直到找到空闲名字，
// 超过上限返回 ResourceExhaustedError。源文件永不被修改。
func DuplicateDocument(sourcePath, companyName string) (string, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		if os.IsNotExist(err) {
			return "", &document.NotFoundError{Path: sourcePath}
		}
		return "", fmt.Errorf("访问源文件失败: %w", err)
	}

	company := companyDirName(companyName)
	dir := filepath.Dir(sourcePath)
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(filepath.Base(sourcePath), ext)

	newPath := filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, company, ext))
	firstCandidate := newPath
	for counter := 1; pathExists(newPath); counter++ {
		if counter > maxCollisionAttempts {
			return "", &ResourceExhaustedError{Path: firstCandidate, Attempts: maxCollisionAttempts}
		}
		newPath = filepath.Join(dir, fmt.Sprintf("%s_%s_%d%s", stem, company, counter, ext))
	}

	if err := copyFile(sourcePath, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

// PrepareCompanyDirectory 在输出目录下创建以公司名命名的子目录。
// 目录已存在时不报错(幂等，递归创建)。
func PrepareCompanyDirectory(outputDir, companyName string) (string, error) {
	companyDir := filepath.Join(outputDir, companyDirName(companyName))
	if err := os.MkdirAll(companyDir, 0755); err != nil {
		return "", fmt.Errorf("创建公司目录失败: %w", err)
	}
	return companyDir, nil
}

// SaveCoverLetter 将求职信保存到公司目录下的固定文件
func SaveCoverLetter(companyDir, content string) (string, error) {
	path := filepath.Join(companyDir, coverLetterFilename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("保存求职信失败: %w", err)
	}
	return path, nil
}

// CopyResumeToCompanyDir 将简历复制到公司目录并追加公司名后缀。
// 目标已存在时直接覆盖(公司目录内的文件本来就会被覆盖)。
func CopyResumeToCompanyDir(sourcePath, companyDir, companyName string) (string, error) {
	if _, err := os.Stat(sourcePath); err != nil {
		if os.IsNotExist(err) {
			return "", &document.NotFoundError{Path: sourcePath}
		}
		return "", fmt.Errorf("访问源文件失败: %w", err)
	}

	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(filepath.Base(sourcePath), ext)
	destPath := filepath.Join(companyDir, fmt.Sprintf("%s_%s%s", stem, companyDirName(companyName), ext))

	if err := copyFile(sourcePath, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// copyFile 逐字节复制文件，并尽量保留权限与修改时间
func copyFile(sourcePath, destPath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	if err := dest.Close(); err != nil {
		return fmt.Errorf("关闭目标文件失败: %w", err)
	}

	// 平台允许的范围内保留元数据
	_ = os.Chtimes(destPath, info.ModTime(), info.ModTime())
	return nil
}
