package prefs

// Flag names owned by the host application. The manager treats each as an
// opaque key; this set and its compiled defaults live here so every surface
// (CLI, HTTP, MCP) agrees on them.
const (
	FlagHighlighting          = "editor.syntaxHighlighting"
	FlagAutoIndent            = "editor.autoIndent"
	FlagLineNumbers           = "editor.displayLineNumbers"
	FlagMakeBackup            = "editor.makeBackup"
	FlagMatchBrackets         = "editor.matchBrackets"
	FlagLinkStandardLib       = "doctool.linkToStandardLib"
	FlagShowTestTools         = "testing.showTools"
	FlagShowTeamTools         = "teamwork.showTools"
	FlagShowTextEval          = "startWithTextEval"
	FlagShowUncheckedWarnings = "compiler.showUnchecked"
	FlagAccessibilitySupport  = "accessibility.support"
	FlagStartWithSudo         = "startWithSudo"
	FlagSidebarVisible        = "editor.sidebarVisible"
)

// Non-flag preference keys.
const (
	editorFontKey          = "editor.font"
	editorMacFontKey       = "editor.macos.font"
	editorFontSizeKey      = "editor.fontsize"
	strideFontSizeKey      = "editor.stride.fontsize"
	highlightStrengthKey   = "editor.scopeHighlightStrength"
	projectPathKey         = "workspace.projectPath"
	navigatorExpandedKey   = "navigator.expanded"
	recentProjectKeyPrefix = "workspace.recentProject"
)

const (
	MinFontSize           = 6
	MaxFontSize           = 160
	DefaultEditorFontSize = 12
	DefaultStrideFontSize = 11

	// DefaultRecentCapacity bounds the recent-projects list.
	DefaultRecentCapacity = 12

	defaultFontFamily        = "Roboto Mono"
	defaultHighlightStrength = 20
)

// DefaultFlags returns the known flag set with its compiled defaults. The
// returned map is a fresh copy the caller may modify.
func DefaultFlags() map[string]bool {
	return map[string]bool{
		FlagHighlighting:          true,
		FlagAutoIndent:            false,
		FlagLineNumbers:           false,
		FlagMakeBackup:            false,
		FlagMatchBrackets:         true,
		FlagLinkStandardLib:       true,
		FlagShowTestTools:         false,
		FlagShowTeamTools:         false,
		FlagShowTextEval:          false,
		FlagShowUncheckedWarnings: true,
		FlagAccessibilitySupport:  false,
		FlagStartWithSudo:         true,
		FlagSidebarVisible:        true,
	}
}

// DefaultStrings renders the compiled flag defaults in their persisted
// string form, for seeding a backend's recorded defaults.
func DefaultStrings(flags map[string]bool) map[string]string {
	out := make(map[string]string, len(flags))
	for name, on := range flags {
		if on {
			out[name] = "true"
		} else {
			out[name] = "false"
		}
	}
	return out
}
