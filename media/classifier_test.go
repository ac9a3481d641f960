package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierBucket(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, BucketBranches, c.Bucket("branch_media"))
	assert.Equal(t, BucketDoctors, c.Bucket("doctor_media"))
	assert.Equal(t, BucketGallery, c.Bucket("gallery_media"))
	assert.Equal(t, BucketNews, c.Bucket("news_media"))
	assert.Equal(t, BucketPatients, c.Bucket("patient_media"))
	assert.Equal(t, BucketReceptions, c.Bucket("reception_media"))

	assert.Equal(t, BucketServices, c.Bucket("service_media__12"))
	assert.Equal(t, BucketServices, c.Bucket("service_media__new__0"))
	assert.Equal(t, BucketTechs, c.Bucket("tech_media__mri"))
	assert.Equal(t, BucketAwards, c.Bucket("award_media__phd"))
}

func TestClassifierBucketIsTotal(t *testing.T) {
	c := NewClassifier()

	// unknown fields never error, they land in misc
	assert.Equal(t, BucketMisc, c.Bucket("unknown_field"))
	assert.Equal(t, BucketMisc, c.Bucket(""))
	assert.Equal(t, BucketMisc, c.Bucket("service_photo"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindImage, KindOf("image/jpeg"))
	assert.Equal(t, KindImage, KindOf("image/png"))
	assert.Equal(t, KindVideo, KindOf("video/mp4"))
	assert.Equal(t, KindFile, KindOf("application/pdf"))
	assert.Equal(t, KindFile, KindOf(""))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "/uploads/branches/a.jpg", PublicURL("/srv/storage/uploads/branches/a.jpg"))
	assert.Equal(t, "/uploads/services/b.png", PublicURL(`C:\data\uploads\services\b.png`))
	assert.Equal(t, "/uploads/thumbnails/c.jpg", PublicURL("/uploads/thumbnails/c.jpg"))

	// nested markers: the last one wins
	assert.Equal(t, "/uploads/news/d.jpg", PublicURL("/srv/uploads/backup/uploads/news/d.jpg"))

	// no marker degrades to the misc bucket instead of failing
	assert.Equal(t, "/uploads/misc/e.jpg", PublicURL("/srv/elsewhere/e.jpg"))
}

func TestUploadPolicyAllows(t *testing.T) {
	p := UploadPolicy{AllowedMIMEs: []string{"image/", "video/mp4"}}

	assert.True(t, p.Allows("image/jpeg"))
	assert.True(t, p.Allows("image/png"))
	assert.True(t, p.Allows("video/mp4"))
	assert.False(t, p.Allows("video/webm"))
	assert.False(t, p.Allows("application/zip"))
}

func TestPolicyFor(t *testing.T) {
	branch := PolicyFor("branch")
	assert.Equal(t, 100, branch.MaxFiles)

	patient := PolicyFor("patient")
	assert.Equal(t, 15, patient.MaxFiles)

	unknown := PolicyFor("nope")
	assert.Equal(t, defaultUploadPolicy.MaxFiles, unknown.MaxFiles)
}
