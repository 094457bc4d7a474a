package llm

import (
	"github.com/allanpk716/resume_tailor/pkg/document"
)

// TailorResponse 模型返回的简历定制结果
type TailorResponse struct {
	CompanyName       string                 `json:"company_name"`
	CoverLetter       string                 `json:"cover_letter"`
	RoleReplacements  []document.Replacement `json:"role_replacements"`
	SkillReplacements []document.Replacement `json:"skill_replacements"`
}

// AllReplacements 按角色在前、技能在后的顺序合并两组替换
func (r *TailorResponse) AllReplacements() []document.Replacement {
	all := make([]document.Replacement, 0, len(r.RoleReplacements)+len(r.SkillReplacements))
	all = append(all, r.RoleReplacements...)
	all = append(all, r.SkillReplacements...)
	return all
}
