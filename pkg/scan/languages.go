package scan

import (
	"path/filepath"
	"strings"
)

// commentSyntax describes how a language marks comment lines.
type commentSyntax struct {
	line       []string // line comment prefixes
	blockStart string
	blockEnd   string
}

var slashSyntax = commentSyntax{line: []string{"//"}, blockStart: "/*", blockEnd: "*/"}
var hashSyntax = commentSyntax{line: []string{"#"}}

// languageByExt maps file extensions (lowercase, with dot) to language names
// matching the renderer's color table.
var languageByExt = map[string]string{
	".go":    "Go",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".py":    "Python",
	".rs":    "Rust",
	".c":     "C",
	".h":     "C",
	".cc":    "C++",
	".cpp":   "C++",
	".hpp":   "C++",
	".java":  "Java",
	".rb":    "Ruby",
	".swift": "Swift",
	".kt":    "Kotlin",
	".sh":    "Shell",
	".bash":  "Shell",
	".html":  "HTML",
	".htm":   "HTML",
	".css":   "CSS",
	".scss":  "CSS",
	".md":    "Markdown",
	".yml":   "YAML",
	".yaml":  "YAML",
	".json":  "JSON",
	".sql":   "SQL",
}

// syntaxByLanguage gives the comment style per language; languages not
// listed have no recognized comments.
var syntaxByLanguage = map[string]commentSyntax{
	"Go":         slashSyntax,
	"TypeScript": slashSyntax,
	"JavaScript": slashSyntax,
	"Rust":       slashSyntax,
	"C":          slashSyntax,
	"C++":        slashSyntax,
	"Java":       slashSyntax,
	"Swift":      slashSyntax,
	"Kotlin":     slashSyntax,
	"CSS":        {blockStart: "/*", blockEnd: "*/"},
	"Python":     hashSyntax,
	"Ruby":       hashSyntax,
	"Shell":      hashSyntax,
	"YAML":       hashSyntax,
	"SQL":        {line: []string{"--"}},
	"HTML":       {blockStart: "<!--", blockEnd: "-->"},
}

// DetectLanguage returns the language for a file name, or "" when unknown.
func DetectLanguage(name string) string {
	return languageByExt[strings.ToLower(filepath.Ext(name))]
}
