package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"clinicsite-backend/pkg/utils"
	"clinicsite-backend/pkg/validator"
)

type UploadService struct {
	uploadDir    string
	maxSize      int64
	allowedTypes []string
}

type UploadInfo struct {
	URL      string    `json:"url"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"mod_time"`
}

var (
	ErrUploadMissing     = errors.New("no file uploaded")
	ErrUploadTooLarge    = errors.New("file size exceeds maximum allowed size")
	ErrUnsupportedUpload = errors.New("file type not allowed")
	ErrUploadNotFound    = errors.New("upload not found")
	ErrInvalidUploadName = errors.New("invalid image name")
)

func NewUploadService(uploadDir string, maxSize int64) *UploadService {
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}

	return &UploadService{
		uploadDir:    uploadDir,
		maxSize:      maxSize,
		allowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".ico"},
	}
}

// Upload stores an image and returns its public URL. Filenames derive from the
// preferred name (or the original name), slugified, with a numeric suffix on
// collision.
func (s *UploadService) Upload(file *multipart.FileHeader, preferredName string) (UploadInfo, error) {
	if file == nil {
		return UploadInfo{}, ErrUploadMissing
	}
	if file.Size > s.maxSize {
		return UploadInfo{}, ErrUploadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.isAllowedType(ext) {
		return UploadInfo{}, ErrUnsupportedUpload
	}

	filename := s.generateFilename(file.Filename, preferredName, ext)
	filePath := filepath.Join(s.uploadDir, filename)

	src, err := file.Open()
	if err != nil {
		return UploadInfo{}, err
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return UploadInfo{}, err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return UploadInfo{}, err
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return UploadInfo{}, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return UploadInfo{}, err
	}

	return UploadInfo{
		URL:      "/uploads/" + filename,
		Filename: filename,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, nil
}

func (s *UploadService) Delete(url string) error {
	filename := filepath.Base(url)
	filePath := filepath.Join(s.uploadDir, filename)

	uploadDirAbs, err := filepath.Abs(s.uploadDir)
	if err != nil {
		return err
	}

	filePathAbs, err := filepath.Abs(filePath)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(filePathAbs, uploadDirAbs) {
		return errors.New("invalid file path")
	}

	if err := os.Remove(filePathAbs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	return nil
}

func (s *UploadService) ValidateImage(file *multipart.FileHeader) error {
	if !validator.ValidateFileSize(file.Size, s.maxSize) {
		return ErrUploadTooLarge
	}
	if !validator.ValidateImageExtension(file.Filename) {
		return ErrUnsupportedUpload
	}
	return nil
}

func (s *UploadService) IsManagedURL(url string) bool {
	if url == "" {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(url), "/uploads/")
}

func (s *UploadService) ListUploads() ([]UploadInfo, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return nil, err
	}

	uploads := make([]UploadInfo, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !s.isAllowedType(ext) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		uploads = append(uploads, UploadInfo{
			URL:      "/uploads/" + name,
			Filename: name,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	sort.Slice(uploads, func(i, j int) bool {
		return uploads[i].ModTime.After(uploads[j].ModTime)
	})

	return uploads, nil
}

func (s *UploadService) isAllowedType(ext string) bool {
	for _, allowedExt := range s.allowedTypes {
		if ext == allowedExt {
			return true
		}
	}
	return false
}

func (s *UploadService) generateFilename(originalName, preferredName, ext string) string {
	baseName := strings.TrimSpace(preferredName)
	if baseName == "" {
		baseName = strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	}

	cleaned := utils.NormalizeSlug(baseName)
	if cleaned == "" {
		cleaned = uuid.New().String()
	}

	candidate := fmt.Sprintf("%s%s", cleaned, ext)
	if !s.fileExists(candidate) {
		return candidate
	}

	for i := 1; i < 1000; i++ {
		candidate = fmt.Sprintf("%s-%d%s", cleaned, i, ext)
		if !s.fileExists(candidate) {
			return candidate
		}
	}

	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}

func (s *UploadService) fileExists(name string) bool {
	path := filepath.Join(s.uploadDir, name)
	_, err := os.Stat(path)
	return err == nil
}
