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
	// Relation Errors (G001-G009)
	// ============================================

	"G001": {
		Category: CategoryRelation,
		Message:  "Missing relation",
		Detail:   "An entity references a related entity that is not present in the relational index. The derived field that needed it has failed.",
		DocURL:   "https://vango.dev/signalgraph/errors/G001",
	},
	"G002": {
		Category: CategoryRelation,
		Message:  "Ambiguous relation",
		Detail:   "A lookup expected exactly one entity but the relational index holds several entities with the same id.",
		DocURL:   "https://vango.dev/signalgraph/errors/G002",
	},
	"G003": {
		Category: CategoryGraph,
		Message:  "Graph root released",
		Detail:   "The entity outlived the root it was created in. Keep a reference to the root for as long as its entities are observed.",
		DocURL:   "https://vango.dev/signalgraph/errors/G003",
	},
	"G004": {
		Category: CategoryGraph,
		Message:  "Field builder failed",
		Detail:   "The function composing a derived field panicked or returned no signal. The field stays failed for the lifetime of its entity.",
		DocURL:   "https://vango.dev/signalgraph/errors/G004",
	},

	// ============================================
	// Config Errors (G010-G019)
	// ============================================

	"G010": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "signalgraph.json could not be read or parsed.",
		DocURL:   "https://vango.dev/signalgraph/errors/G010",
	},
	"G011": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No signalgraph.json was found in the given directory.",
		DocURL:   "https://vango.dev/signalgraph/errors/G011",
	},
	"G012": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or inconsistent with the rest of the file.",
		DocURL:   "https://vango.dev/signalgraph/errors/G012",
	},

	// ============================================
	// Request Errors (G020-G029)
	// ============================================

	"G020": {
		Category: CategoryRequest,
		Message:  "Unknown entity",
		Detail:   "No entity of the requested kind has this id.",
		DocURL:   "https://vango.dev/signalgraph/errors/G020",
	},
	"G021": {
		Category: CategoryRequest,
		Message:  "Unknown field",
		Detail:   "The entity kind has no field with this name.",
		DocURL:   "https://vango.dev/signalgraph/errors/G021",
	},
	"G022": {
		Category: CategoryRequest,
		Message:  "Invalid request",
		Detail:   "The request body or parameters could not be used.",
		DocURL:   "https://vango.dev/signalgraph/errors/G022",
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
