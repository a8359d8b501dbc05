package parser

import (
	"path/filepath"
	"strings"
)

// Language is a grammar the widget scanner can parse.
type Language int

const (
	LanguageUnknown Language = iota
	// LanguageTypeScript covers .ts and .tsx (TSX enables JSX).
	LanguageTypeScript
	// LanguageJavaScript covers .js and .jsx.
	LanguageJavaScript
)

func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage maps a file extension to a Language.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsTSXFile reports whether filePath needs the TSX grammar.
func IsTSXFile(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".tsx")
}
