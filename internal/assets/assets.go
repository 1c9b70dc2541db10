// Package assets stores exercise images and hands back their public URLs.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	ErrEmptyFile   = errors.New("empty file")
	ErrFileExists  = errors.New("file already exists")
	ErrNotLocalRef = errors.New("not a local file reference")
	ErrNotStaged   = errors.New("file is outside the staging dir")
)

const defaultExt = ".jpg"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

//go:generate mockgen -source=$GOFILE -destination=../store/uploader_mocks_test.go -package=store_test

type Uploader interface {
	Upload(ctx context.Context, params UploadParams) (publicURL string, err error)
}

type UploadParams struct {
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

// NewFileName builds a collision resistant object name from the original
// file name: sanitized base, millisecond timestamp, original extension.
func NewFileName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	ext = unsafeNameChars.ReplaceAllString(ext, "")
	if ext == "" || ext == "." {
		ext = defaultExt
	}

	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "-"), "-.")
	if base == "" || base == "." {
		base = "image"
	}

	return fmt.Sprintf("%s-%d%s", base, now.UnixMilli(), ext)
}

// ContentTypeFor guesses an image content type from the file extension.
func ContentTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "image/jpeg"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "image/" + strings.TrimPrefix(ext, ".")
}

// IsLocalReference reports whether an image reference points to a file on
// this machine rather than a remote URL.
func IsLocalReference(image string) bool {
	image = strings.TrimSpace(image)
	if image == "" {
		return false
	}
	lower := strings.ToLower(image)
	return !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://")
}

// StagedPath resolves a local image reference (a plain path or a file://
// URI) and checks that it names a file inside stagingDir. Symlinks are
// followed before the check.
func StagedPath(stagingDir, ref string) (string, error) {
	if !IsLocalReference(ref) {
		return "", fmt.Errorf("%w: %s", ErrNotLocalRef, ref)
	}
	if stagingDir == "" {
		return "", fmt.Errorf("%w: no staging dir configured", ErrNotStaged)
	}

	root, err := filepath.EvalSymlinks(stagingDir)
	if err != nil {
		return "", fmt.Errorf("resolve staging dir: %w", err)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve staging dir: %w", err)
	}

	path := filepath.Clean(strings.TrimPrefix(strings.TrimSpace(ref), "file://"))
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrNotStaged, ref)
	}
	return resolved, nil
}

// UploadLocalFile uploads the staged file behind a local image reference.
func UploadLocalFile(ctx context.Context, uploader Uploader, stagingDir, ref string) (string, error) {
	path, err := StagedPath(stagingDir, ref)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !stat.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrNotStaged, path)
	}

	return uploader.Upload(ctx, UploadParams{
		Filename:    filepath.Base(path),
		ContentType: ContentTypeFor(path),
		Size:        stat.Size(),
		File:        f,
	})
}
