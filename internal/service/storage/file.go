// Package storage 애플리케이션 상태를 JSON 파일로 영속화합니다.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/darkkaiser/stock-notifier/internal/service/contract"
	"github.com/darkkaiser/stock-notifier/pkg/concurrency"
	applog "github.com/darkkaiser/stock-notifier/pkg/log"
)

const component = "storage.file"

const (
	defaultDataDirectory = "data"

	tempFilePattern = "state-*.tmp"

	// staleTempFileAge 이보다 오래된 임시 파일은 이전 실행이 비정상 종료하며 남긴 것으로 보고 삭제합니다.
	staleTempFileAge = time.Hour
)

// FileStore 이름마다 하나의 JSON 파일에 값을 저장합니다.
// 쓰기는 임시 파일 작성, fsync, rename 순서로 진행되어 중간에 중단되어도 기존 파일이 깨지지 않습니다.
type FileStore struct {
	baseDir string
	locks   *concurrency.KeyedMutex
}

var _ contract.StateStore = (*FileStore)(nil)

// NewFileStore dir가 비어 있으면 "data" 디렉토리를 사용합니다.
//
// 디렉토리를 만들 수 없어도 실패하지 않습니다. 경고를 남기고 저장소를 반환하며,
// 이후 Load/Save 호출이 각각 에러를 반환합니다. Save는 호출할 때마다 디렉토리 생성을 다시 시도합니다.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = defaultDataDirectory
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{"dir": dir}).
			WithError(err).
			Warn("저장 디렉토리의 절대 경로를 구할 수 없어 지정된 경로를 그대로 사용합니다")
		absDir = filepath.Clean(dir)
	}

	s := &FileStore{
		baseDir: absDir,
		locks:   concurrency.NewKeyedMutex(),
	}

	if err := os.MkdirAll(absDir, 0755); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{"dir": absDir}).
			WithError(err).
			Warn("저장 디렉토리를 만들 수 없습니다. 상태가 저장되지 않을 수 있습니다")
		return s
	}

	s.cleanupStaleTempFiles(time.Now().Add(-staleTempFileAge))

	return s
}

// Dir 저장 디렉토리의 절대 경로를 반환합니다.
func (s *FileStore) Dir() string {
	return s.baseDir
}

func (s *FileStore) Load(name string, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrLoadRequiresPointer
	}

	path, err := s.resolvePath(generateFilename(name), name)
	if err != nil {
		return err
	}

	data, err := s.read(path)
	if errors.Is(err, contract.ErrStateNotFound) {
		// 변환 전 이름의 파일("lastStockMessages.json")이 남아 있으면 그것을 읽습니다.
		if legacy := legacyFilename(name); legacy != "" && legacy != filepath.Base(path) {
			if legacyPath, lerr := s.resolvePath(legacy, name); lerr == nil {
				if data, err = s.read(legacyPath); err == nil {
					path = legacyPath
					applog.WithComponentAndFields(component, applog.Fields{"file": legacyPath}).
						Info("이전 형식의 상태 파일을 읽었습니다. 다음 저장부터는 새 파일명을 사용합니다")
				}
			}
		}
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return NewErrCorrupted(err, path)
	}
	return nil
}

func (s *FileStore) read(path string) ([]byte, error) {
	return concurrency.WithLock(s.locks, path, func() ([]byte, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, contract.ErrStateNotFound
			}
			return nil, NewErrReadFailed(err, path)
		}
		return b, nil
	})
}

func (s *FileStore) Save(name string, v any) error {
	path, err := s.resolvePath(generateFilename(name), name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return NewErrMarshalFailed(err)
	}

	_, err = concurrency.WithLock(s.locks, path, func() (struct{}, error) {
		return struct{}{}, s.writeAtomic(path, data)
	})
	return err
}

// resolvePath 파일명을 저장 디렉토리 기준 경로로 바꾸고, 결과가 저장 디렉토리를 벗어나지 않는지 확인합니다.
func (s *FileStore) resolvePath(filename, name string) (string, error) {
	if filename == "" {
		return "", ErrEmptyName
	}

	path := filepath.Clean(filepath.Join(s.baseDir, filename))
	rel, err := filepath.Rel(s.baseDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		applog.WithComponentAndFields(component, applog.Fields{
			"name": name,
			"path": path,
		}).Error("저장 경로가 저장 디렉토리를 벗어납니다")
		return "", ErrPathTraversalDetected
	}
	return path, nil
}

func (s *FileStore) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewErrDirectoryAccessFailed(err, dir)
	}

	tmp, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return NewErrWriteFailed(err, path)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return NewErrWriteFailed(err, path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return NewErrWriteFailed(err, path)
	}
	if err := tmp.Close(); err != nil {
		return NewErrWriteFailed(err, path)
	}

	if err := renameWithRetry(tmpPath, path); err != nil {
		return NewErrWriteFailed(err, path)
	}

	// rename 결과가 디스크에 반영되도록 디렉토리도 동기화한다. 일부 플랫폼에서는 실패할 수 있어 무시한다.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		d.Close()
	}
	return nil
}

// renameWithRetry Windows에서 대상 파일을 다른 프로세스가 잠시 열고 있으면 rename이 실패하므로 몇 번 재시도합니다.
func renameWithRetry(oldPath, newPath string) error {
	const (
		maxAttempts = 5
		retryDelay  = 10 * time.Millisecond
	)

	var err error
	for range maxAttempts {
		if err = os.Rename(oldPath, newPath); err == nil {
			return nil
		}
		time.Sleep(retryDelay)
	}
	return err
}

func (s *FileStore) cleanupStaleTempFiles(threshold time.Time) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{"dir": s.baseDir}).
			WithError(err).
			Warn("임시 파일 정리 중단: 디렉토리 조회 실패")
		return
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if matched, _ := filepath.Match(tempFilePattern, e.Name()); !matched {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		p := filepath.Join(s.baseDir, e.Name())
		if err := os.Remove(p); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{"file": p}).
				WithError(err).
				Warn("임시 파일 삭제 실패")
			continue
		}
		applog.WithComponentAndFields(component, applog.Fields{"file": p}).Info("이전 실행이 남긴 임시 파일 삭제")
	}
}
