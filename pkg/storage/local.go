package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// metaSuffix marks the sidecar file that keeps content type and metadata next to an object.
const metaSuffix = ".meta.json"

// LocalStorage implements Storage on the local filesystem. It backs the API when running
// outside AWS. All operations are confined to baseDir to prevent path traversal attacks.
type LocalStorage struct {
	baseDir string // Absolute path - all objects stored within this directory
	baseURL string // URL prefix under which baseDir is served (e.g. "/files/")
}

type localMeta struct {
	ContentType string            `json:"contentType"`
	ETag        string            `json:"etag"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewLocalStorage creates a new local filesystem storage.
// baseDir is resolved to absolute path and created if it doesn't exist.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &LocalStorage{
		baseDir: absBaseDir,
		baseURL: baseURL,
	}, nil
}

// Dir returns the absolute directory objects are stored in.
func (s *LocalStorage) Dir() string { return s.baseDir }

// Put writes body to baseDir/key and the metadata sidecar next to it.
func (s *LocalStorage) Put(ctx context.Context, key string, body []byte, opts ...PutOption) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	o := newPutOptions(opts)
	sum := md5.Sum(body)
	meta := localMeta{
		ContentType: o.contentType,
		ETag:        `"` + hex.EncodeToString(sum[:]) + `"`,
		Metadata:    o.metadata,
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToEncodeMetadata, err)
	}

	if err := os.WriteFile(absPath, body, 0644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.WriteFile(absPath+metaSuffix, metaBytes, 0644); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return &Object{
		Key:          key,
		Size:         int64(len(body)),
		ContentType:  meta.ContentType,
		ETag:         meta.ETag,
		LastModified: time.Now().UTC(),
		Metadata:     meta.Metadata,
	}, nil
}

// Get reads an object and its sidecar.
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, *Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	key, err := cleanKey(key)
	if err != nil {
		return nil, nil, err
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}

	body, err := os.ReadFile(absPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	obj := s.object(key, absPath, info)
	return body, &obj, nil
}

// List walks baseDir/prefix recursively and returns every object in it.
// Unlike S3, prefix is matched on whole path segments up to its last "/".
func (s *LocalStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	prefix, err := cleanPrefix(prefix)
	if err != nil {
		return nil, err
	}

	root := s.baseDir
	if dir := prefix[:strings.LastIndex(prefix, "/")+1]; dir != "" {
		if root, err = s.resolvePath(dir); err != nil {
			return nil, err
		}
	}

	var objects []Object
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, metaSuffix) {
			return nil
		}

		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return nil
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // Removed while walking
		}
		objects = append(objects, s.object(key, path, info))
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	return objects, nil
}

// Exists checks if an object file exists.
func (s *LocalStorage) Exists(ctx context.Context, key string) bool {
	if ctx.Err() != nil {
		return false
	}

	key, err := cleanKey(key)
	if err != nil {
		return false
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return false
	}

	info, err := os.Stat(absPath)
	return err == nil && !info.IsDir()
}

// URL returns the public URL of key under baseURL. Local URLs do not expire.
func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return s.baseURL + key, nil
}

// Location returns the file:// URI of key.
func (s *LocalStorage) Location(key string) string {
	key, _ = cleanKey(key)
	return "file://" + filepath.ToSlash(filepath.Join(s.baseDir, key))
}

func (s *LocalStorage) object(key, absPath string, info fs.FileInfo) Object {
	obj := Object{
		Key:          key,
		Size:         info.Size(),
		ContentType:  "application/octet-stream",
		LastModified: info.ModTime().UTC(),
	}

	raw, err := os.ReadFile(absPath + metaSuffix)
	if err != nil {
		return obj
	}
	var meta localMeta
	if json.Unmarshal(raw, &meta) != nil {
		return obj
	}
	if meta.ContentType != "" {
		obj.ContentType = meta.ContentType
	}
	obj.ETag = meta.ETag
	obj.Metadata = meta.Metadata
	return obj
}

// resolvePath validates and resolves a path within the base directory.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(filepath.FromSlash(path))
	absPath := filepath.Join(s.baseDir, path)

	absPath, err := filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, path)
	}

	return absPath, nil
}

var _ Storage = (*LocalStorage)(nil)
