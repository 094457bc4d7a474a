package main

import (
	"context"
	"log"
	"path/filepath"

	"github.com/allanpk716/resume_tailor/internal/app"
	"github.com/allanpk716/resume_tailor/internal/config"
	"github.com/allanpk716/resume_tailor/internal/llm"
	"github.com/allanpk716/resume_tailor/internal/pdf"
)

const (
	appName    = "resume-tailor"
	appVersion = "1.0.0"
)

func main() {
	log.SetFlags(log.LstdFlags)
	log.Printf("启动 %s v%s", appName, appVersion)

	// 缺少 API key 等配置问题直接失败，不做任何文件操作
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	log.Printf("数据目录: %s, 输出目录: %s, 模型: %s", cfg.DataDir, cfg.OutputDir, cfg.Model)

	generator := llm.NewClient(cfg.APIKey, cfg.Model)
	converter := pdf.NewConverter()

	result, err := app.New(cfg, generator, converter).Run(context.Background())
	if err != nil {
		log.Fatalf("定制流程失败: %v", err)
	}

	log.Println("============================================================")
	log.Printf("定制完成! 公司: %s", result.CompanyName)
	log.Printf("输出目录: %s", result.CompanyDir)
	log.Printf("定制简历: %s", filepath.Base(result.ResumePath))
	if result.CoverLetterPath != "" {
		log.Printf("求职信: %s", filepath.Base(result.CoverLetterPath))
	}
	if result.PDFPath != "" {
		log.Printf("PDF: %s", filepath.Base(result.PDFPath))
	}
	if len(result.Warnings) > 0 {
		log.Printf("告警 %d 条, 请检查上方日志", len(result.Warnings))
	}
	log.Println("============================================================")
}
