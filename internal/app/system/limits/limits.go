// internal/app/system/limits/limits.go
package limits

// Request body size limits. Handlers wrap r.Body in
// http.MaxBytesReader with these before decoding.
const (
	// MaxJSONBodySize caps ordinary JSON request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxIssueBodySize caps issue reports, which carry sanitized
	// rich-text descriptions.
	MaxIssueBodySize = 256 << 10 // 256 KB
)
