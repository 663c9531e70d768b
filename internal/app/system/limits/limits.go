// internal/app/system/limits/limits.go
package limits

// Request body size limits for the JSON write endpoints.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxCellBody is the maximum size of a single schedule cell edit.
	MaxCellBody = 8 << 10 // 8 KB

	// MaxSheetBody is the maximum size of a full duty sheet overwrite.
	MaxSheetBody = 1 << 20 // 1 MB

	// MaxDocumentBody is the maximum size of a roster or shift catalog.
	MaxDocumentBody = 1 << 20 // 1 MB
)
