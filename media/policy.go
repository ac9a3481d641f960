package media

import "strings"

// UploadPolicy bounds what one multipart request may upload for an entity
// type. One table replaces the per-entity copies the admin panel used to
// carry, so limits stay consistent.
type UploadPolicy struct {
	MaxFileSize  int64    // bytes, per file
	MaxFiles     int      // per request
	AllowedMIMEs []string // exact types or "image/" style prefixes
}

// Allows reports whether the policy accepts the given MIME type.
func (p UploadPolicy) Allows(mimeType string) bool {
	for _, allowed := range p.AllowedMIMEs {
		if strings.HasSuffix(allowed, "/") {
			if strings.HasPrefix(mimeType, allowed) {
				return true
			}
		} else if mimeType == allowed {
			return true
		}
	}
	return false
}

const maxUploadFileSize = 2 << 30 // 2GiB per file

var imageAndVideo = []string{"image/", "video/"}

var uploadPolicies = map[string]UploadPolicy{
	"branch":    {MaxFileSize: maxUploadFileSize, MaxFiles: 100, AllowedMIMEs: imageAndVideo},
	"doctor":    {MaxFileSize: maxUploadFileSize, MaxFiles: 45, AllowedMIMEs: imageAndVideo},
	"gallery":   {MaxFileSize: maxUploadFileSize, MaxFiles: 20, AllowedMIMEs: imageAndVideo},
	"news":      {MaxFileSize: maxUploadFileSize, MaxFiles: 20, AllowedMIMEs: imageAndVideo},
	"patient":   {MaxFileSize: maxUploadFileSize, MaxFiles: 15, AllowedMIMEs: imageAndVideo},
	"reception": {MaxFileSize: maxUploadFileSize, MaxFiles: 15, AllowedMIMEs: imageAndVideo},
}

var defaultUploadPolicy = UploadPolicy{
	MaxFileSize:  maxUploadFileSize,
	MaxFiles:     10,
	AllowedMIMEs: imageAndVideo,
}

// PolicyFor returns the upload policy for an entity type. Unknown entity
// types get the default policy.
func PolicyFor(entity string) UploadPolicy {
	if p, ok := uploadPolicies[entity]; ok {
		return p
	}
	return defaultUploadPolicy
}
