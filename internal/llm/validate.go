package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ResponseValidationError 表示模型响应不符合约定的结构
type ResponseValidationError struct {
	Reason string
	Raw    string
}

func (e *ResponseValidationError) Error() string {
	return fmt.Sprintf("模型响应校验失败: %s", e.Reason)
}

// 响应结构的 JSON Schema。company_name 和两组替换列表必须存在，
// cover_letter 可选；每条替换必须同时带 from 和 to。
const responseSchema = `{
	"type": "object",
	"required": ["company_name", "role_replacements", "skill_replacements"],
	"properties": {
		"company_name": {"type": "string"},
		"cover_letter": {"type": "string"},
		"role_replacements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["from", "to"],
				"properties": {
					"from": {"type": "string"},
					"to": {"type": "string"}
				}
			}
		},
		"skill_replacements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["from", "to"],
				"properties": {
					"from": {"type": "string"},
					"to": {"type": "string"}
				}
			}
		}
	}
}`

var responseSchemaLoader = gojsonschema.NewStringLoader(responseSchema)

// stripCodeFence 去掉模型习惯性包裹的 ```json 围栏
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}

// ValidateResponse 校验模型的原始文本响应并解析为 TailorResponse。
// 先剥离代码围栏，再按 Schema 校验结构；两组替换同时为空视为无效响应，
// 因为那样整次运行不会对文档做任何修改。
func ValidateResponse(rawText string) (*TailorResponse, error) {
	cleaned := stripCodeFence(rawText)

	docLoader := gojsonschema.NewStringLoader(cleaned)
	result, err := gojsonschema.Validate(responseSchemaLoader, docLoader)
	if err != nil {
		return nil, &ResponseValidationError{
			Reason: fmt.Sprintf("响应不是合法的 JSON: %v", err),
			Raw:    cleaned,
		}
	}
	if !result.Valid() {
		var reasons []string
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return nil, &ResponseValidationError{
			Reason: strings.Join(reasons, "; "),
			Raw:    cleaned,
		}
	}

	var response TailorResponse
	if err := json.Unmarshal([]byte(cleaned), &response); err != nil {
		return nil, &ResponseValidationError{
			Reason: fmt.Sprintf("解析响应失败: %v", err),
			Raw:    cleaned,
		}
	}

	if len(response.RoleReplacements) == 0 && len(response.SkillReplacements) == 0 {
		return nil, &ResponseValidationError{
			Reason: "模型没有给出任何替换建议，文档不会有任何改动",
			Raw:    cleaned,
		}
	}

	return &response, nil
}
