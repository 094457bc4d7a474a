package document

import (
	"fmt"
	"strings"
)

// NotFoundError 表示文件或目录不存在
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("文件或目录不存在: %s", e.Path)
}

// UnsupportedFormatError 表示不支持的文档格式
type UnsupportedFormatError struct {
	// Ext 违规的扩展名
	Ext string
	// Accepted 可接受的扩展名列表
	Accepted []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("不支持的文件格式: %q (支持的格式: %s)", e.Ext, strings.Join(e.Accepted, ", "))
}

// DocumentEditError 表示文档加载、修改或保存失败，包装底层原因
type DocumentEditError struct {
	Path string
	Err  error
}

func (e *DocumentEditError) Error() string {
	return fmt.Sprintf("编辑文档失败 %s: %v", e.Path, e.Err)
}

func (e *DocumentEditError) Unwrap() error {
	return e.Err
}
