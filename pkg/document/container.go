package document

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// zipPart 容器中的一个条目。原始文件头整体保留，
// 回写时未修改的条目按原压缩参数原样写出，条目顺序不变
// (ODT 要求 mimetype 作为首个条目存储，这一点由顺序保证)。
type zipPart struct {
	header zip.FileHeader
	data   []byte
}

// readZipParts 读取容器内的全部条目
func readZipParts(path string) ([]zipPart, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("打开文档容器失败: %w", err)
	}
	defer reader.Close()

	parts := make([]zipPart, 0, len(reader.File))
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("打开条目 %s 失败: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("读取条目 %s 失败: %w", file.Name, err)
		}
		parts = append(parts, zipPart{header: file.FileHeader, data: data})
	}

	return parts, nil
}

// writeZipParts 将全部条目按原始顺序写入目标文件
func writeZipParts(path string, parts []zipPart) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	defer out.Close()

	zipWriter := zip.NewWriter(out)
	for i := range parts {
		writer, err := zipWriter.CreateHeader(&parts[i].header)
		if err != nil {
			zipWriter.Close()
			return fmt.Errorf("写入条目头 %s 失败: %w", parts[i].header.Name, err)
		}
		if _, err := writer.Write(parts[i].data); err != nil {
			zipWriter.Close()
			return fmt.Errorf("写入条目 %s 失败: %w", parts[i].header.Name, err)
		}
	}
	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("关闭容器失败: %w", err)
	}

	return nil
}
