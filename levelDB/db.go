package levelDB

import (
	"errors"

	"github.com/cloudflare/cfssl/log"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

type DB struct {
	db *leveldb.DB
}

func InitDB(path string) (*DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		log.Error("db init err:", err)
		return nil, err
	}
	return &DB{db: db}, nil
}

// InitMemDB 内存数据库，用于测试
func InitMemDB() (*DB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		log.Error("db init err:", err)
		return nil, err
	}
	return &DB{db: db}, nil
}

// DBGet key不存在时返回 nil, nil
func (d *DB) DBGet(key string) ([]byte, error) {
	data, err := d.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Error("db get err:", err)
		return nil, err
	}
	return data, nil
}

func (d *DB) DBPut(key string, value []byte) error {
	err := d.db.Put([]byte(key), value, nil)
	if err != nil {
		log.Error("db put err:", err)
	}
	return err
}

func (d *DB) Has(key string) (bool, error) {
	return d.db.Has([]byte(key), nil)
}

// WriteBatch 原子写入多个key
func (d *DB) WriteBatch(kvs map[string][]byte) error {
	batch := new(leveldb.Batch)
	for k, v := range kvs {
		batch.Put([]byte(k), v)
	}
	err := d.db.Write(batch, nil)
	if err != nil {
		log.Error("db batch write err:", err)
	}
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}
