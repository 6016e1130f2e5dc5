package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var (
	bucketGroups = []byte("groups")
	bucketArrays = []byte("arrays")
	bucketChunks = []byte("chunks")
)

// FileSystemBackend is a read+write Backend backed by a single BoltDB
// file: one transactional, single-writer file playing the role the
// store's concrete chunked-array library would play in production,
// generalized here from per-triple-index buckets to per-group/array/
// chunk buckets.
type FileSystemBackend struct {
	db   *bolt.DB
	path string
}

// OpenFileSystemBackend opens (creating if needed) the BoltDB file at
// path. create selects Serialize semantics (path must not already
// exist, else PathExists) vs Load semantics (path must already exist,
// else PathDoesNotExist).
func OpenFileSystemBackend(path string, create bool) (*FileSystemBackend, error) {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	if create && existed {
		return nil, PathExists
	}
	if !create && !existed {
		return nil, PathDoesNotExist
	}

	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, errors.Wrap(err, "store: opening filesystem backend")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketGroups, bucketArrays, bucketChunks} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: initializing buckets")
	}

	return &FileSystemBackend{db: db, path: path}, nil
}

func (fs *FileSystemBackend) ReadOnly() bool { return false }

func (fs *FileSystemBackend) Exists(path string) (bool, error) {
	var found bool
	err := fs.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketGroups).Get([]byte(path)) != nil {
			found = true
			return nil
		}
		found = tx.Bucket(bucketArrays).Get([]byte(path)) != nil
		return nil
	})
	return found, err
}

func (fs *FileSystemBackend) CreateGroup(path string, meta GroupMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return errors.Wrap(err, "store: marshaling group metadata")
	}
	return fs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketGroups).Put([]byte(path), data)
	})
}

func (fs *FileSystemBackend) OpenGroup(path string) (GroupMeta, error) {
	var meta GroupMeta
	err := fs.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketGroups).Get([]byte(path))
		if data == nil {
			return PathDoesNotExist
		}
		return json.Unmarshal(data, &meta)
	})
	return meta, err
}

func (fs *FileSystemBackend) CreateArray(path string, meta ArrayMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return errors.Wrap(err, "store: marshaling array metadata")
	}
	return fs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketArrays).Put([]byte(path), data)
	})
}

func (fs *FileSystemBackend) OpenArray(path string) (ArrayMeta, error) {
	var meta ArrayMeta
	err := fs.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketArrays).Get([]byte(path))
		if data == nil {
			return PathDoesNotExist
		}
		return json.Unmarshal(data, &meta)
	})
	return meta, err
}

func (fs *FileSystemBackend) StoreChunk(arrayPath string, chunkIndex int, data []byte) error {
	key := chunkKey(arrayPath, chunkIndex)
	return fs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChunks).Put(key, data)
	})
}

func (fs *FileSystemBackend) RetrieveChunk(arrayPath string, chunkIndex int) ([]byte, error) {
	key := chunkKey(arrayPath, chunkIndex)
	var out []byte
	err := fs.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketChunks).Get(key)
		if data == nil {
			return PathDoesNotExist
		}
		out = append([]byte(nil), data...)
		return nil
	})
	return out, err
}

func (fs *FileSystemBackend) StoreSubset(arrayPath string, rowOffset int, data []byte) error {
	key := subsetKey(arrayPath, rowOffset)
	return fs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChunks).Put(key, data)
	})
}

func (fs *FileSystemBackend) RetrieveSubset(arrayPath string, rowOffset int) ([]byte, error) {
	key := subsetKey(arrayPath, rowOffset)
	var out []byte
	err := fs.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketChunks).Get(key)
		if data == nil {
			return PathDoesNotExist
		}
		out = append([]byte(nil), data...)
		return nil
	})
	return out, err
}

func (fs *FileSystemBackend) Close() error { return fs.db.Close() }

func chunkKey(arrayPath string, chunkIndex int) []byte {
	return []byte(fmt.Sprintf("%s#chunk#%010d", arrayPath, chunkIndex))
}

func subsetKey(arrayPath string, rowOffset int) []byte {
	return []byte(fmt.Sprintf("%s#subset#%010d", arrayPath, rowOffset))
}
