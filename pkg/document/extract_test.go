package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractTextSkipsEmptyParagraphsAndCells(t *testing.T) {
	path := createTestDocx(t, wrapDocxBody(
		`<w:p><w:r><w:t>First line</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>   </w:t></w:r></w:p>`+
			`<w:p></w:p>`+
			`<w:tbl>`+
			`<w:tr><w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc><w:tc><w:p></w:p></w:tc><w:tc><w:p><w:r><w:t>Rust</w:t></w:r></w:p></w:tc></w:tr>`+
			`<w:tr><w:tc><w:p></w:p></w:tc><w:tc><w:p></w:p></w:tc><w:tc><w:p></w:p></w:tc></w:tr>`+
			`</w:tbl>`), nil)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}

	extracted := ExtractText(doc)
	lines := strings.Split(extracted, "\n")
	expected := []string{"First line", "Go | Rust"}
	if len(lines) != len(expected) {
		t.Fatalf("提取行数 = %d (%q), 期望 %d", len(lines), extracted, len(expected))
	}
	for i, line := range expected {
		if lines[i] != line {
			t.Errorf("第%d行 = %q, 期望 %q", i+1, lines[i], line)
		}
	}
}

func TestExtractTextKeepsInternalWhitespace(t *testing.T) {
	path := createTestDocx(t, wrapDocxBody(
		`<w:p><w:r><w:t xml:space="preserve">Two  spaces   kept</w:t></w:r></w:p>`), nil)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}

	if extracted := ExtractText(doc); extracted != "Two  spaces   kept" {
		t.Errorf("提取文本 = %q, 段落内部空白不应被修剪", extracted)
	}
}

func TestReadDocumentAsTextPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	content := "  Job offer\nwith two lines  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	got, err := ReadDocumentAsText(path)
	if err != nil {
		t.Fatalf("读取文本文件失败: %v", err)
	}
	if got != content {
		t.Errorf("文本文件必须原样读取: %q != %q", got, content)
	}
}

func TestReadDocumentAsTextUnsupportedFormat(t *testing.T) {
	_, err := ReadDocumentAsText(filepath.Join(t.TempDir(), "resume.pdf"))

	var formatErr *UnsupportedFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("期望 UnsupportedFormatError, 实际 %v", err)
	}
	if formatErr.Ext != ".pdf" {
		t.Errorf("错误应记录违规扩展名, 实际 %q", formatErr.Ext)
	}
	if len(formatErr.Accepted) != 3 {
		t.Errorf("读取支持三种扩展名, 实际 %v", formatErr.Accepted)
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.rtf")
	if err := os.WriteFile(path, []byte("{\\rtf1}"), 0644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	_, err := Open(path)
	var formatErr *UnsupportedFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("期望 UnsupportedFormatError, 实际 %v", err)
	}
	if len(formatErr.Accepted) != 2 {
		t.Errorf("编辑只支持两种扩展名, 实际 %v", formatErr.Accepted)
	}
}

func TestOpenMissingFileFailsFast(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.docx"))

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("期望 NotFoundError, 实际 %v", err)
	}
}

func TestDocumentEditErrorWrapsCause(t *testing.T) {
	// 不是有效zip容器的docx文件
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}

	_, err := Open(path)
	var editErr *DocumentEditError
	if !errors.As(err, &editErr) {
		t.Fatalf("期望 DocumentEditError, 实际 %v", err)
	}
	if editErr.Path != path {
		t.Errorf("错误应记录文件路径, 实际 %q", editErr.Path)
	}
	if editErr.Unwrap() == nil {
		t.Errorf("错误应包装底层原因")
	}
}
