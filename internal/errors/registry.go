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
	// Snapshot Store Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategorySnapshot,
		Message:  "Snapshot not found",
		Detail:   "No snapshot with this ID exists in the store.",
		DocURL:   "https://rendertree.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategorySnapshot,
		Message:  "Snapshot store unreachable",
		Detail:   "The snapshot backend could not be reached. Check credentials and network access.",
		DocURL:   "https://rendertree.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategorySnapshot,
		Message:  "Snapshot too large",
		Detail:   "The snapshot exceeds the maximum stored size.",
		DocURL:   "https://rendertree.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategorySnapshot,
		Message:  "Invalid snapshot ID",
		Detail:   "Snapshot IDs must not be empty or contain path separators.",
		DocURL:   "https://rendertree.dev/docs/errors/E004",
	},

	// ============================================
	// Protocol Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryProtocol,
		Message:  "Not a snapshot file",
		Detail:   "The file does not start with the snapshot magic bytes.",
		DocURL:   "https://rendertree.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryProtocol,
		Message:  "Unsupported snapshot version",
		Detail:   "The snapshot was written by a newer tool version. Upgrade to read it.",
		DocURL:   "https://rendertree.dev/docs/errors/E021",
	},
	"E022": {
		Category: CategoryProtocol,
		Message:  "Snapshot corrupt",
		Detail:   "The snapshot ended unexpectedly or contains invalid frame records.",
		DocURL:   "https://rendertree.dev/docs/errors/E022",
	},
	"E023": {
		Category: CategoryProtocol,
		Message:  "Snapshot exceeds decode limits",
		Detail:   "A string or frame count in the snapshot exceeds the decoder's safety limits.",
		DocURL:   "https://rendertree.dev/docs/errors/E023",
	},

	// ============================================
	// Inspector Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryInspect,
		Message:  "Inspector failed to start",
		Detail:   "The inspector could not bind its listen address. The port may be in use.",
		DocURL:   "https://rendertree.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryInspect,
		Message:  "Watch path not found",
		Detail:   "The snapshot file to watch does not exist.",
		DocURL:   "https://rendertree.dev/docs/errors/E041",
	},

	// ============================================
	// Configuration Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file is malformed.",
		DocURL:   "https://rendertree.dev/docs/errors/E060",
	},
	"E061": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://rendertree.dev/docs/errors/E061",
	},
	"E062": {
		Category: CategoryConfig,
		Message:  "Invalid S3 store configuration",
		Detail:   "S3 snapshot stores require a bucket name.",
		DocURL:   "https://rendertree.dev/docs/errors/E062",
	},

	// ============================================
	// CLI Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryCLI,
		Message:  "Snapshot file not found",
		Detail:   "The snapshot file passed on the command line does not exist.",
		DocURL:   "https://rendertree.dev/docs/errors/E080",
	},
	"E081": {
		Category: CategoryCLI,
		Message:  "Output path not writable",
		Detail:   "The output file could not be created or written.",
		DocURL:   "https://rendertree.dev/docs/errors/E081",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
