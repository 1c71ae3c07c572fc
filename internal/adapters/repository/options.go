package repository

import "os"

// FileOption applies a configuration option to the FileStore.
type FileOption func(*FileStore)

// WithFileMode sets the permission bits of newly written cache files.
func WithFileMode(mode os.FileMode) FileOption {
	return func(s *FileStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

// RedisOption applies a configuration option to the RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to every identifier.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}
