package workers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shifo-uz/clinicbackend/media"
	"github.com/shifo-uz/clinicbackend/models"
	"github.com/shifo-uz/clinicbackend/utils"
)

// ThumbnailJob asks the pool to generate a thumbnail for one media row.
type ThumbnailJob struct {
	MediaID  uint
	URL      string
	MimeType string
}

// ThumbnailGenerator is a fixed pool of workers that downscale uploaded
// images in the background and record the result on the media row. Uploads
// never wait on it; a full queue just skips the job.
type ThumbnailGenerator struct {
	JobQueue chan ThumbnailJob
	DB       *gorm.DB
	Store    media.Store
	MaxSize  int
	Wg       sync.WaitGroup
	StopChan chan struct{}
	Pending  map[uint]bool
	Mutex    sync.Mutex
}

// NewThumbnailGenerator starts the worker pool.
func NewThumbnailGenerator(db *gorm.DB, store media.Store, maxSize, queueSize, numWorkers int) *ThumbnailGenerator {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	if maxSize <= 0 {
		maxSize = 512
	}

	gen := &ThumbnailGenerator{
		JobQueue: make(chan ThumbnailJob, queueSize),
		DB:       db,
		Store:    store,
		MaxSize:  maxSize,
		StopChan: make(chan struct{}),
		Pending:  make(map[uint]bool),
	}

	gen.Wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go gen.worker(i)
	}
	log.Printf("started %d thumbnail worker(s) with queue size %d", numWorkers, queueSize)

	return gen
}

func (tg *ThumbnailGenerator) worker(id int) {
	defer tg.Wg.Done()
	for {
		select {
		case job, ok := <-tg.JobQueue:
			if !ok {
				log.Printf("thumbnail worker %d stopping: job queue closed", id)
				return
			}
			if err := tg.processJob(job); err != nil {
				log.Printf("ERROR generating thumbnail for media %d (%s): %v", job.MediaID, job.URL, err)
			}
			tg.Mutex.Lock()
			delete(tg.Pending, job.MediaID)
			tg.Mutex.Unlock()

		case <-tg.StopChan:
			log.Printf("thumbnail worker %d stopping: stop signal received", id)
			return
		}
	}
}

func (tg *ThumbnailGenerator) processJob(job ThumbnailJob) error {
	if !strings.HasPrefix(job.MimeType, "image/") {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	src, err := tg.Store.Open(ctx, job.URL)
	if err != nil {
		return fmt.Errorf("failed to open original: %w", err)
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return fmt.Errorf("failed to read original: %w", err)
	}

	meta := utils.ExtractImageMeta(data)

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	thumb := imaging.Fit(img, tg.MaxSize, tg.MaxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbName := uuid.NewString() + ".jpg"
	storedPath, err := tg.Store.Save(ctx, media.BucketThumbnails, thumbName, &buf, int64(buf.Len()), "image/jpeg")
	if err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	thumbURL := media.PublicURL(storedPath)

	updates := map[string]any{"thumb_path": thumbURL}
	if meta.Width != nil {
		updates["width"] = *meta.Width
	}
	if meta.Height != nil {
		updates["height"] = *meta.Height
	}
	err = tg.DB.Model(&models.Media{}).Where("id = ?", job.MediaID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to record thumbnail: %w", err)
	}
	return nil
}

// QueueJob enqueues a job unless one is already pending for the same media
// row. Returns false when skipped or the queue is full.
func (tg *ThumbnailGenerator) QueueJob(job ThumbnailJob) bool {
	tg.Mutex.Lock()
	if tg.Pending[job.MediaID] {
		tg.Mutex.Unlock()
		return false
	}
	tg.Pending[job.MediaID] = true
	tg.Mutex.Unlock()

	select {
	case tg.JobQueue <- job:
		return true
	default:
		log.Printf("WARNING: thumbnail job queue full, dropping job for media %d", job.MediaID)
		tg.Mutex.Lock()
		delete(tg.Pending, job.MediaID)
		tg.Mutex.Unlock()
		return false
	}
}

// QueueForMedia enqueues thumbnail jobs for every image in a freshly saved
// media list.
func (tg *ThumbnailGenerator) QueueForMedia(rows []models.Media) {
	for _, row := range rows {
		if row.Type != string(media.KindImage) || row.ThumbPath != nil {
			continue
		}
		tg.QueueJob(ThumbnailJob{MediaID: row.ID, URL: row.URL, MimeType: "image/"})
	}
}

// Stop signals all workers and waits for them to drain.
func (tg *ThumbnailGenerator) Stop() {
	log.Println("stopping thumbnail generator...")
	close(tg.StopChan)
	tg.Wg.Wait()
	log.Println("all thumbnail workers stopped")
}
