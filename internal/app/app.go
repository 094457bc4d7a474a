package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/allanpk716/resume_tailor/internal/config"
	"github.com/allanpk716/resume_tailor/internal/domain"
	"github.com/allanpk716/resume_tailor/internal/fileio"
	"github.com/allanpk716/resume_tailor/internal/llm"
	"github.com/allanpk716/resume_tailor/pkg/document"
)

// 职位描述的固定文件名，放在数据目录下
const jobOfferFilename = "job.txt"

// App 简历定制流程的编排器
type App struct {
	cfg       *config.Config
	generator domain.ContentGenerator
	converter domain.PDFConverter
}

// New 创建编排器。converter 可以为 nil，表示不生成 PDF。
func New(cfg *config.Config, generator domain.ContentGenerator, converter domain.PDFConverter) *App {
	return &App{
		cfg:       cfg,
		generator: generator,
		converter: converter,
	}
}

// Run 执行一次完整的定制流程:
// 检测简历 -> 读取简历和职位描述 -> 调用模型 -> 校验响应 ->
// 准备公司目录 -> 保存求职信 -> 复制简历副本并应用替换 ->
// 复查产物 -> 可选生成 PDF。
// PDF 生成失败只记告警，其余任何一步失败都会中止整个流程。
func (a *App) Run(ctx context.Context) (*domain.RunResult, error) {
	runID := uuid.NewString()[:8]
	log.Printf("[%s] 开始定制流程", runID)

	log.Printf("[%s] 在 %s 中检测简历文件...", runID, a.cfg.DataDir)
	resumePath, err := fileio.AutoDetectResume(a.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	log.Printf("[%s] 找到简历: %s", runID, filepath.Base(resumePath))

	jobOfferPath := filepath.Join(a.cfg.DataDir, jobOfferFilename)
	if _, err := os.Stat(jobOfferPath); err != nil {
		return nil, fmt.Errorf("职位描述文件缺失: %w", &document.NotFoundError{Path: jobOfferPath})
	}

	log.Printf("[%s] 读取简历和职位描述...", runID)
	resumeText, err := document.ReadDocumentAsText(resumePath)
	if err != nil {
		return nil, fmt.Errorf("读取简历失败: %w", err)
	}
	jobOfferText, err := document.ReadDocumentAsText(jobOfferPath)
	if err != nil {
		return nil, fmt.Errorf("读取职位描述失败: %w", err)
	}

	log.Printf("[%s] 调用模型(%s)...", runID, a.cfg.Model)
	rawResponse, err := a.generator.GenerateContent(ctx, llm.BuildPrompt(resumeText, jobOfferText))
	if err != nil {
		return nil, fmt.Errorf("调用模型失败: %w", err)
	}

	response, err := llm.ValidateResponse(rawResponse)
	if err != nil {
		return nil, err
	}
	log.Printf("[%s] 公司名: %s, 角色替换 %d 条, 技能替换 %d 条",
		runID, response.CompanyName, len(response.RoleReplacements), len(response.SkillReplacements))

	companyDir, err := fileio.PrepareCompanyDirectory(a.cfg.OutputDir, response.CompanyName)
	if err != nil {
		return nil, err
	}

	result := &domain.RunResult{
		CompanyName: response.CompanyName,
		CompanyDir:  companyDir,
	}

	if response.CoverLetter != "" {
		coverLetterPath, err := fileio.SaveCoverLetter(companyDir, response.CoverLetter)
		if err != nil {
			return nil, err
		}
		result.CoverLetterPath = coverLetterPath
		log.Printf("[%s] 求职信已保存: %s", runID, filepath.Base(coverLetterPath))
	}

	workingCopy, err := fileio.CopyResumeToCompanyDir(resumePath, companyDir, response.CompanyName)
	if err != nil {
		return nil, err
	}
	result.ResumePath = workingCopy
	log.Printf("[%s] 工作副本: %s", runID, filepath.Base(workingCopy))

	log.Printf("[%s] 应用替换...", runID)
	doc, err := document.Open(workingCopy)
	if err != nil {
		return nil, err
	}
	replacements := response.AllReplacements()
	result.ReplacementHits = document.ApplyReplacements(doc, replacements)
	if err := doc.Save(); err != nil {
		return nil, err
	}
	for from, count := range result.ReplacementHits {
		if count == 0 {
			log.Printf("[%s] 未找到关键词 '%s'", runID, from)
		} else {
			log.Printf("[%s] 替换 '%s' 命中 %d 个段落", runID, from, count)
		}
	}

	for _, warning := range verifyReplacements(workingCopy, replacements, result.ReplacementHits) {
		log.Printf("[%s] 复查告警: %s", runID, warning)
		result.Warnings = append(result.Warnings, warning)
	}

	if a.cfg.GeneratePDF && a.converter != nil {
		log.Printf("[%s] 生成 PDF...", runID)
		pdfPath, err := a.converter.Convert(ctx, workingCopy)
		if err != nil {
			// PDF 是锦上添花，失败不中止流程
			warning := fmt.Sprintf("PDF 生成失败: %v", err)
			log.Printf("[%s] %s", runID, warning)
			result.Warnings = append(result.Warnings, warning)
		} else {
			result.PDFPath = pdfPath
			log.Printf("[%s] PDF 已生成: %s", runID, filepath.Base(pdfPath))
		}
	}

	log.Printf("[%s] 流程完成, 输出目录: %s", runID, companyDir)
	return result, nil
}
