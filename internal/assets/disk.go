package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

var _ Uploader = (*DiskStore)(nil)

// DiskStore keeps uploaded images in a local directory that is served over
// HTTP under publicBaseURL.
type DiskStore struct {
	rootPath      string
	publicBaseURL string
	now           func() time.Time
	mutex         sync.Mutex
}

func NewDiskStore(rootPath, publicBaseURL string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}

	exists, err := pkg.PathExists(rootPath, true)
	if err != nil {
		return nil, fmt.Errorf("check root path: %w", err)
	}
	if !exists {
		log.Debugf("disk store: creating root dir %s", rootPath)
		if err := os.MkdirAll(rootPath, 0o755); err != nil {
			return nil, fmt.Errorf("create root path: %w", err)
		}
	}

	return &DiskStore{
		rootPath:      rootPath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		now:           time.Now,
	}, nil
}

func (ds *DiskStore) RootPath() string {
	return ds.rootPath
}

// FileSystem exposes the stored images for http.FileServer. Directories are
// reported as missing, so nothing gets listed.
func (ds *DiskStore) FileSystem() http.FileSystem {
	return filesOnlyFS{fs: http.Dir(ds.rootPath)}
}

type filesOnlyFS struct {
	fs http.FileSystem
}

func (f filesOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if stat.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

func (ds *DiskStore) Upload(ctx context.Context, params UploadParams) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diskStore.upload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("file.name", params.Filename))
	span.SetAttributes(attribute.Int64("file.size", params.Size))

	if params.File == nil {
		return "", ErrEmptyFile
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	newFileName := NewFileName(params.Filename, ds.now())
	newFilePath := filepath.Join(ds.rootPath, newFileName)
	if _, err := os.Stat(newFilePath); err == nil {
		return "", fmt.Errorf("%w: %s", ErrFileExists, newFileName)
	}

	dst, err := os.Create(newFilePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	written, err := io.Copy(dst, params.File)
	if err != nil {
		os.Remove(newFilePath)
		return "", fmt.Errorf("write %s: %w", newFileName, err)
	}
	if written == 0 {
		os.Remove(newFilePath)
		return "", ErrEmptyFile
	}

	log.Debugf("disk store: saved %s (%d bytes)", newFilePath, written)
	return ds.publicBaseURL + "/" + newFileName, nil
}
