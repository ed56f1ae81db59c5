package constants

import (
	"path/filepath"
	"strings"
)

// Ekstensi file sumber yang boleh diupload guru.
var AllowedSourceExts = map[string]bool{
	".pdf":  true,
	".ppt":  true,
	".pptx": true,
	".doc":  true,
	".docx": true,
}

// Batas ukuran file sumber (10MB, selaras validasi portal lama).
const MaxSourceFileSize = 10 * 1024 * 1024

func IsAllowedSourceFile(filename string) bool {
	return AllowedSourceExts[strings.ToLower(filepath.Ext(filename))]
}

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".mp3", ".wav":
		return 2 // Audio
	case ".doc", ".docx":
		return 3 // DOCX
	case ".pdf":
		return 4 // PDF
	case ".ppt", ".pptx":
		return 5 // PPT
	default:
		return 99 // Tidak diketahui
	}
}
