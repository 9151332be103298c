package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

const thumbnailWidth = 320

// GetSafeContentType 基于文件头嗅探真实类型，不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// MakeThumbnail 生成宽度固定的缩略图，保持比例，输出 JPEG
func MakeThumbnail(reader io.Reader, contentType string) (io.Reader, int64, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, 0, fmt.Errorf("unsupported content type: %s", contentType)
	}

	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, fmt.Errorf("图片解码失败: %w", err)
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, 0, fmt.Errorf("缩略图编码失败: %w", err)
	}

	return &buf, int64(buf.Len()), nil
}
