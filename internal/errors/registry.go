package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "vnp.json could not be read or parsed.",
		DocURL:   "https://vnp.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "Durations in vnp.json use Go syntax, e.g. \"200ms\" or \"5s\".",
		DocURL:   "https://vnp.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The server port must be between 0 and 65535.",
		DocURL:   "https://vnp.dev/docs/errors/E122",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Invalid auth redirect",
		Detail:   "authRedirect must be an absolute in-app path starting with \"/\".",
		DocURL:   "https://vnp.dev/docs/errors/E123",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Not a vnp project",
		Detail:   "No vnp.json file was found in the current directory or its parents.",
		DocURL:   "https://vnp.dev/docs/errors/E141",
	},

	// ============================================
	// Routing Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryRouting,
		Message:  "Route table build failed",
		Detail:   "One or more page folders could not be turned into routes.",
		DocURL:   "https://vnp.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategoryRouting,
		Message:  "Duplicate route",
		Detail:   "Two page folders resolve to the same route. Route strings are lower-cased, so folders that differ only by case collide.",
		DocURL:   "https://vnp.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryRouting,
		Message:  "Page export not found",
		Detail:   "A page folder has a page file but no exported symbol named after the folder.",
		DocURL:   "https://vnp.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryRouting,
		Message:  "Duplicate not-found page",
		Detail:   "Only one page may be named NotFound.",
		DocURL:   "https://vnp.dev/docs/errors/E203",
	},
	"E204": {
		Category: CategoryRouting,
		Message:  "Pages directory not found",
		Detail:   "The configured pages directory does not exist.",
		DocURL:   "https://vnp.dev/docs/errors/E204",
	},

	// ============================================
	// Hook Errors (E220-E239)
	// ============================================

	"E220": {
		Category: CategoryHook,
		Message:  "Malformed hook registry entry",
		Detail:   "Registry keys must be canonical routes and every entry must declare at least one hook.",
		DocURL:   "https://vnp.dev/docs/errors/E220",
	},
	"E221": {
		Category: CategoryHook,
		Message:  "Hook failed",
		Detail:   "A before or leave hook returned an error. Navigation was denied.",
		DocURL:   "https://vnp.dev/docs/errors/E221",
	},
	"E222": {
		Category: CategoryHook,
		Message:  "Too many redirects",
		Detail:   "Hooks redirected navigation in a loop.",
		DocURL:   "https://vnp.dev/docs/errors/E222",
	},

	// ============================================
	// Render Errors (E240-E259)
	// ============================================

	"E240": {
		Category: CategoryRender,
		Message:  "Component not found",
		Detail:   "A route resolved to a nil component. Did you forget to export your page component?",
		DocURL:   "https://vnp.dev/docs/errors/E240",
	},
	"E241": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "A component tree could not be serialized to HTML. The current content was kept.",
		DocURL:   "https://vnp.dev/docs/errors/E241",
	},

	// ============================================
	// Startup Errors (E260-E279)
	// ============================================

	"E260": {
		Category: CategoryStartup,
		Message:  "Readiness timeout",
		Detail:   "The session service did not signal readiness in time. Continuing in degraded mode.",
		DocURL:   "https://vnp.dev/docs/errors/E260",
	},

	// ============================================
	// CLI Errors (E280-E299)
	// ============================================

	"E280": {
		Category: CategoryCLI,
		Message:  "Invalid S3 location",
		Detail:   "Expected s3://bucket/prefix.",
		DocURL:   "https://vnp.dev/docs/errors/E280",
	},
	"E281": {
		Category: CategoryCLI,
		Message:  "Module path not found",
		Detail:   "go.mod is missing or has no module directive.",
		DocURL:   "https://vnp.dev/docs/errors/E281",
	},
	"E282": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error. Is the port already in use?",
		DocURL:   "https://vnp.dev/docs/errors/E282",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
