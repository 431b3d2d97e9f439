package log

import "sort"

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldBackend    = "backend"
	FieldFilter     = "filter"
	FieldSearch     = "search"
	FieldDateFrom   = "date_from"
	FieldDateTo     = "date_to"
	FieldMatched    = "matched"
	FieldCacheHit   = "cache_hit"
	FieldTemplate   = "template"
)

const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentSummary  = "summary"
	ComponentStorage  = "storage"
	ComponentCache    = "cache"
	ComponentTemplate = "template"
)

const (
	OpRender   = "render"
	OpLoad     = "load"
	OpSeed     = "seed"
	OpMigrate  = "migrate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder for structured log fields.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithRequestID(requestID string) LogFields {
	f[FieldRequestID] = requestID
	return f
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithSummaryFilter records the filter a summary was rendered for.
func (f LogFields) WithSummaryFilter(filter, search, from, to string) LogFields {
	f[FieldFilter] = filter
	if search != "" {
		f[FieldSearch] = search
	}
	if from != "" {
		f[FieldDateFrom] = from
	}
	if to != "" {
		f[FieldDateTo] = to
	}
	return f
}

func (f LogFields) WithHTTPRequest(method, path, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	if userAgent != "" {
		f[FieldUserAgent] = userAgent
	}
	return f
}

func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	return f
}

// ToSlice converts the fields to slog key/value pairs in key order.
func (f LogFields) ToSlice() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	slice := make([]any, 0, len(f)*2)
	for _, k := range keys {
		slice = append(slice, k, f[k])
	}
	return slice
}
