package document

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const odtMimetype = "application/vnd.oasis.opendocument.text"

// createTestOdt 创建一个测试odt文件。mimetype 条目按规范
// 以非压缩方式作为首个条目写入。stylesXML 为空时省略 styles.xml。
func createTestOdt(t *testing.T, contentXML, stylesXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.odt")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	defer file.Close()

	w := zip.NewWriter(file)
	defer w.Close()

	mimeWriter, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		t.Fatalf("创建mimetype条目失败: %v", err)
	}
	if _, err := mimeWriter.Write([]byte(odtMimetype)); err != nil {
		t.Fatalf("写入mimetype失败: %v", err)
	}

	parts := map[string]string{"content.xml": contentXML}
	if stylesXML != "" {
		parts["styles.xml"] = stylesXML
	}
	for name, content := range parts {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("创建条目 %s 失败: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("写入条目 %s 失败: %v", name, err)
		}
	}

	return path
}

// wrapOdtText 将正文片段包进最小可用的content.xml
func wrapOdtText(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"><office:body><office:text>` + body + `</office:text></office:body></office:document-content>`
}

// wrapOdtStyles 将母版页片段包进最小可用的styles.xml
func wrapOdtStyles(masterPage string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"><office:master-styles>` + masterPage + `</office:master-styles></office:document-styles>`
}

func TestOdtReplaceFirstOccurrenceOnly(t *testing.T) {
	path := createTestOdt(t, wrapOdtText(
		`<text:p>A cat and a cat</text:p>`), "")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}

	counts := ApplyReplacements(doc, []Replacement{{From: "cat", To: "dog"}})
	if counts["cat"] != 1 {
		t.Errorf("替换计数 = %d, 期望 1", counts["cat"])
	}

	doc = reopen(t, doc)
	texts := bodyTexts(t, doc)
	if len(texts) != 1 || texts[0] != "A dog and a cat" {
		t.Errorf("段落文本 = %q, 期望 %q", texts, "A dog and a cat")
	}
}

func TestOdtReplaceAcrossSpans(t *testing.T) {
	// 关键词跨越带格式的span边界
	path := createTestOdt(t, wrapOdtText(
		`<text:p>Worked as <text:span>Engi</text:span>neer at X</text:p>`), "")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}

	ApplyReplacements(doc, []Replacement{{From: "Engineer", To: "Senior Engineer"}})

	doc = reopen(t, doc)
	texts := bodyTexts(t, doc)
	if len(texts) != 1 || texts[0] != "Worked as Senior Engineer at X" {
		t.Errorf("段落文本 = %q, 期望 %q", texts, "Worked as Senior Engineer at X")
	}
}

func TestOdtReplaceInTableCell(t *testing.T) {
	path := createTestOdt(t, wrapOdtText(
		`<text:p>Skills</text:p>`+
			`<table:table><table:table-row>`+
			`<table:table-cell><text:p>Python</text:p></table:table-cell>`+
			`<table:table-cell><text:p>SQL</text:p></table:table-cell>`+
			`</table:table-row></table:table>`), "")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}

	counts := ApplyReplacements(doc, []Replacement{{From: "Python", To: "Python, Go"}})
	if counts["Python"] != 1 {
		t.Errorf("替换计数 = %d, 期望 1", counts["Python"])
	}

	doc = reopen(t, doc)
	extracted := ExtractText(doc)
	if !strings.Contains(extracted, "Python, Go | SQL") {
		t.Errorf("提取文本 = %q, 期望包含 %q", extracted, "Python, Go | SQL")
	}
}

func TestOdtTableParagraphsExcludedFromBody(t *testing.T) {
	// 单元格内的段落只通过表格路径访问，不得混入正文段落
	path := createTestOdt(t, wrapOdtText(
		`<text:p>Body paragraph</text:p>`+
			`<table:table><table:table-row>`+
			`<table:table-cell><text:p>Cell paragraph</text:p></table:table-cell>`+
			`</table:table-row></table:table>`), "")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}

	texts := bodyTexts(t, doc)
	if len(texts) != 1 || texts[0] != "Body paragraph" {
		t.Errorf("正文段落 = %q, 期望只有 %q", texts, "Body paragraph")
	}
}

func TestOdtHeaderReplacedButNotExtracted(t *testing.T) {
	path := createTestOdt(t, wrapOdtText(
		`<text:p>Body text</text:p>`),
		wrapOdtStyles(`<style:master-page style:name="Standard">`+
			`<style:header><text:p>Engineer contact</text:p></style:header>`+
			`<style:footer><text:p>Page Engineer</text:p></style:footer>`+
			`</style:master-page>`))

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}

	extracted := ExtractText(doc)
	if strings.Contains(extracted, "Engineer") {
		t.Errorf("提取文本不应包含页眉页脚内容: %q", extracted)
	}

	counts := ApplyReplacements(doc, []Replacement{{From: "Engineer", To: "Developer"}})
	if counts["Engineer"] != 2 {
		t.Errorf("替换计数 = %d, 期望 2 (页眉+页脚)", counts["Engineer"])
	}

	doc = reopen(t, doc)
	sections := doc.Sections()
	if len(sections) != 1 {
		t.Fatalf("节数量 = %d, 期望 1", len(sections))
	}
	headerParagraphs := sections[0].HeaderParagraphs()
	if len(headerParagraphs) != 1 || headerParagraphs[0].Text() != "Developer contact" {
		t.Errorf("页眉文本替换后不正确: %+v", paragraphTexts(headerParagraphs))
	}
}

func TestOdtAbsentKeywordLeavesDocumentUnchanged(t *testing.T) {
	path := createTestOdt(t, wrapOdtText(
		`<text:p>Worked as Engineer at X</text:p>`), "")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}
	before := ExtractText(doc)

	counts := ApplyReplacements(doc, []Replacement{{From: "Banker", To: "Trader"}})
	if counts["Banker"] != 0 {
		t.Errorf("替换计数 = %d, 期望 0", counts["Banker"])
	}

	doc = reopen(t, doc)
	if after := ExtractText(doc); before != after {
		t.Errorf("无匹配时文档文本不应变化: %q -> %q", before, after)
	}
}

func TestOdtSavePreservesMimetypeFirst(t *testing.T) {
	path := createTestOdt(t, wrapOdtText(`<text:p>Engineer</text:p>`), "")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("打开文档失败: %v", err)
	}
	ApplyReplacements(doc, []Replacement{{From: "Engineer", To: "Developer"}})
	if err := doc.Save(); err != nil {
		t.Fatalf("保存文档失败: %v", err)
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("打开容器失败: %v", err)
	}
	defer reader.Close()

	if len(reader.File) == 0 || reader.File[0].Name != "mimetype" {
		t.Fatalf("mimetype 必须是首个条目")
	}
	if reader.File[0].Method != zip.Store {
		t.Errorf("mimetype 必须以非压缩方式存储")
	}
}
