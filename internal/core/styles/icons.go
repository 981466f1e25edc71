package styles

import "path/filepath"

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconGitBranch = "" //
	IconGit       = "" //
	IconComment   = "" //
)

// Agent status markers.
var (
	IconAgentWorking = "●"
	IconAgentWaiting = "◐"
	IconAgentIdle    = "○"
	IconAgentOffline = "·"
)

// File type icons.
var (
	IconFileDefault  = " "
	IconFileGo       = " "
	IconFileJS       = "󰌞 "
	IconFileTS       = "󰛦 "
	IconFilePython   = " "
	IconFileMarkdown = " "
	IconFileJSON     = " "
	IconFileYAML     = " "
	IconFileTOML     = " "
	IconFileHTML     = " "
	IconFileCSS      = " "
	IconFileRust     = " "
	IconFileC        = " "
	IconFileJava     = " "
	IconFileRuby     = " "
	IconFileShell    = " "
	IconFileLua      = " "
	IconFileDocker   = "󰡨 "
)

// FileIcon returns the icon for a path based on its extension.
func FileIcon(path string) string {
	base := filepath.Base(path)
	switch base {
	case "Dockerfile":
		return IconFileDocker
	case "Makefile":
		return IconFileShell
	}

	switch filepath.Ext(base) {
	case ".go":
		return IconFileGo
	case ".js", ".jsx", ".mjs":
		return IconFileJS
	case ".ts", ".tsx":
		return IconFileTS
	case ".py":
		return IconFilePython
	case ".md":
		return IconFileMarkdown
	case ".json":
		return IconFileJSON
	case ".yml", ".yaml":
		return IconFileYAML
	case ".toml":
		return IconFileTOML
	case ".html":
		return IconFileHTML
	case ".css", ".scss":
		return IconFileCSS
	case ".rs":
		return IconFileRust
	case ".c", ".h", ".cpp", ".hpp":
		return IconFileC
	case ".java":
		return IconFileJava
	case ".rb":
		return IconFileRuby
	case ".sh", ".bash", ".zsh":
		return IconFileShell
	case ".lua":
		return IconFileLua
	default:
		return IconFileDefault
	}
}
