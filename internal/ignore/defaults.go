package ignore

// defaultExcludeDirs is grouped by ecosystem. Later groups repeat a few
// names (build, dist, out); DefaultExcludeDirs drops the repeats.
var defaultExcludeDirs = [][]string{
	// Version control
	{".git", ".svn", ".hg", ".bzr"},
	// Python
	{"__pycache__", ".pytest_cache", ".coverage", ".mypy_cache", ".tox",
		"venv", ".venv", "env", ".env", "virtualenv", "dist", "build", "*.egg-info"},
	// Node.js
	{"node_modules", "bower_components", "coverage", ".nyc_output"},
	// Java, Maven, Gradle
	{"target", "build", ".gradle", "out"},
	// C/C++
	{"bin", "obj", "Debug", "Release", "x64", "x86", "CMakeFiles"},
	// IDE and editor metadata
	{".idea", ".vscode", ".vs", ".settings", ".project", ".classpath"},
	// Generic output
	{"dist", "out", "output", "generated", "tmp", "temp"},
	// Documentation builds
	{"docs/_build", "site", "public", "_site"},
	// Logs
	{"logs", "log", "*.log", "*.logs"},
}

// DefaultExcludeDirs returns the built-in directory exclusion list in
// declaration order without duplicates.
func DefaultExcludeDirs() []string {
	var out []string
	for _, group := range defaultExcludeDirs {
		out = append(out, group...)
	}
	return MergeNames(out)
}

// MergeNames concatenates name lists, keeping the first occurrence of each
// name and dropping blanks.
func MergeNames(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, name := range list {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
