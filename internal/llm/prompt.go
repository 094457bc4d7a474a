package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/get_replacements_prompt.txt
var replacementsPromptTemplate string

// 模板中的占位符
const (
	resumePlaceholder   = "<<<RESUME>>>"
	jobOfferPlaceholder = "<<<JOBOFFER>>>"
)

// BuildPrompt 用简历文本和职位描述填充提示词模板。
// 两段输入先去掉首尾空白再注入。
func BuildPrompt(resumeText, jobOfferText string) string {
	prompt := strings.ReplaceAll(replacementsPromptTemplate, resumePlaceholder, strings.TrimSpace(resumeText))
	prompt = strings.ReplaceAll(prompt, jobOfferPlaceholder, strings.TrimSpace(jobOfferText))
	return prompt
}
