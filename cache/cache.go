package cache

import (
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const BUCKET_NAME = "pages"

// PageCache is a persistent URL -> HTML cache on BoltDB. Entries never
// expire; delete the database file to start fresh.
type PageCache struct {
	db *bolt.DB
}

// NewPageCache opens or creates the cache database at the given path.
// It is up to the caller to close the database when it is no longer needed.
func NewPageCache(path string) (*PageCache, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cache database")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BUCKET_NAME))
		return err
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to create pages bucket")
	}

	return &PageCache{
		db: db,
	}, nil
}

func (c *PageCache) Get(url string) (html string, exists bool) {
	c.db.View(func(tx *bolt.Tx) error {
		val := tx.Bucket([]byte(BUCKET_NAME)).Get([]byte(url))
		if val != nil {
			html = string(val)
			exists = true
		}

		return nil
	})

	return
}

func (c *PageCache) Put(url, html string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BUCKET_NAME)).Put([]byte(url), []byte(html))
	})
}

func (c *PageCache) Contains(url string) bool {
	_, exists := c.Get(url)
	return exists
}

func (c *PageCache) Len() int {
	var count int
	c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BUCKET_NAME))
		count = b.Stats().KeyN
		return nil
	})

	return count
}

// Close closes the database.
func (c *PageCache) Close() error {
	return c.db.Close()
}
