package tachyon

import "strings"

// FullPath joins a master URI and a file path with exactly one slash
// between them. A path that already starts with masterURI is returned as
// is. It reports false when either input is empty.
func FullPath(masterURI, filePath string) (string, bool) {
	if masterURI == "" || filePath == "" {
		return "", false
	}
	if strings.HasPrefix(filePath, masterURI) {
		return filePath, true
	}
	base := strings.HasSuffix(masterURI, "/")
	rel := strings.HasPrefix(filePath, "/")
	switch {
	case base && rel:
		return masterURI + filePath[1:], true
	case base || rel:
		return masterURI + filePath, true
	}
	return masterURI + "/" + filePath, true
}
