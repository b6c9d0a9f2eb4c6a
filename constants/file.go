package constants

import "strings"

// AllowedExtensions holds the file extensions considered certificate documents.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsCertificateFile reports whether the filename looks like a certificate
// document by extension.
func IsCertificateFile(name string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return false
	}
	_, ok := AllowedExtensions[NormalizeExt(name[idx:])]
	return ok
}
