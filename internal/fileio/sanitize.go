package fileio

import (
	"regexp"
	"strings"
)

var (
	// 文件名中的非法字符: < > : " / \ | ? *
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// 连续下划线
	underscoreRuns = regexp.MustCompile(`_+`)
)

// SanitizeFilename 将任意字符串净化为可安全用作路径片段的形式:
// 非法字符逐个替换为下划线，去掉首尾的空格和句点，
// 连续下划线折叠为一个。纯函数，任何输入(含空串)都有输出，永不报错。
func SanitizeFilename(name string) string {
	sanitized := invalidFilenameChars.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, " .")
	sanitized = underscoreRuns.ReplaceAllString(sanitized, "_")
	return sanitized
}
