package media

import (
	"log"
	"path"
	"strings"
)

// Kind is the coarse media classification stored on each media row.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindFile  Kind = "file"
)

// Storage buckets. Each is a subdirectory of the uploads tree (or an object
// key prefix on the minio driver).
const (
	BucketBranches   = "branches"
	BucketServices   = "services"
	BucketTechs      = "techs"
	BucketDoctors    = "doctors"
	BucketAwards     = "awards"
	BucketGallery    = "gallery"
	BucketNews       = "news"
	BucketPatients   = "patients"
	BucketReceptions = "receptions"
	BucketThumbnails = "thumbnails"
	BucketMisc       = "misc"
)

// AllBuckets lists every bucket EnsureBuckets must create at startup.
func AllBuckets() []string {
	return []string{
		BucketBranches, BucketServices, BucketTechs, BucketDoctors,
		BucketAwards, BucketGallery, BucketNews, BucketPatients,
		BucketReceptions, BucketThumbnails, BucketMisc,
	}
}

type prefixRule struct {
	prefix string
	bucket string
}

// Classifier decides which bucket an uploaded form field belongs to. The
// lookup is total: unknown field names fall into the misc bucket instead of
// erroring.
type Classifier struct {
	exact    map[string]string
	prefixes []prefixRule
}

// NewClassifier returns the classifier for the clinic's form-field naming
// convention.
func NewClassifier() *Classifier {
	return &Classifier{
		exact: map[string]string{
			"branch_media":    BucketBranches,
			"doctor_media":    BucketDoctors,
			"gallery_media":   BucketGallery,
			"news_media":      BucketNews,
			"patient_media":   BucketPatients,
			"reception_media": BucketReceptions,
			"service_media":   BucketServices,
			"tech_media":      BucketTechs,
			"award_media":     BucketAwards,
		},
		prefixes: []prefixRule{
			{"service_media__", BucketServices},
			{"tech_media__", BucketTechs},
			{"award_media__", BucketAwards},
		},
	}
}

// Bucket resolves a form field name to a storage bucket.
func (c *Classifier) Bucket(fieldName string) string {
	if bucket, ok := c.exact[fieldName]; ok {
		return bucket
	}
	for _, rule := range c.prefixes {
		if strings.HasPrefix(fieldName, rule.prefix) {
			return rule.bucket
		}
	}
	return BucketMisc
}

// KindOf classifies a MIME type. Empty or unrecognised types degrade to
// KindFile.
func KindOf(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	default:
		return KindFile
	}
}

// PublicURL derives the served URL from a stored path: everything from the
// last "/uploads/" marker onward, slash-normalized. A stored path without
// the marker means the store is misconfigured; fall back to the misc bucket
// rather than failing the request.
func PublicURL(storedPath string) string {
	normalized := strings.ReplaceAll(storedPath, "\\", "/")
	idx := strings.LastIndex(normalized, "/uploads/")
	if idx == -1 {
		log.Printf("media: WARNING stored path %q has no /uploads/ marker, serving from misc", storedPath)
		return "/uploads/" + BucketMisc + "/" + path.Base(normalized)
	}
	return normalized[idx:]
}
