package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/crudboard/internal/models"
)

func someUsers() []models.User {
	return []models.User{
		{ID: 1, Name: "Ann", Username: "ann", Email: "a@a.com"},
		{ID: 4, Name: "Bo", Username: "bo", Email: "b@b.com"},
		{ID: 2, Name: "Cy", Username: "cy", Email: "c@c.com"},
	}
}

func TestNextID(t *testing.T) {
	t.Run("empty collection starts at 1", func(t *testing.T) {
		assert.Equal(t, 1, NextID([]models.User{}))
	})

	t.Run("non-empty collection allocates max plus one", func(t *testing.T) {
		records := someUsers()
		next := NextID(records)

		assert.Equal(t, 5, next)

		ids := funk.Map(records, func(u models.User) int { return u.ID }).([]int)
		assert.False(t, funk.ContainsInt(ids, next), "allocated id should not be present yet")
	})

	t.Run("deleting below the maximum does not free an id", func(t *testing.T) {
		collection := New[models.User]()
		collection.Replace(someUsers())

		collection.Delete(2)

		assert.Equal(t, 5, NextID(collection.Snapshot()))
	})

	t.Run("deleting the maximum frees its slot", func(t *testing.T) {
		collection := New[models.User]()
		collection.Replace(someUsers())

		collection.Delete(4)

		assert.Equal(t, 3, NextID(collection.Snapshot()))
	})
}

func TestAdd(t *testing.T) {
	t.Run("assigns id and appends", func(t *testing.T) {
		collection := New[models.User]()
		collection.Replace([]models.User{{ID: 1, Name: "Ann", Username: "ann", Email: "a@a.com"}})

		created := collection.Add(models.User{Name: "Bo", Username: "bo", Email: "b@b.com"})

		assert.Equal(t, 2, created.ID)
		require.Equal(t, 2, collection.Len())
		assert.Equal(t, created, collection.Snapshot()[1])
	})

	t.Run("add then delete restores the previous content and order", func(t *testing.T) {
		collection := New[models.User]()
		collection.Replace(someUsers())
		before := collection.Snapshot()

		created := collection.Add(models.User{Name: "Didi", Username: "didi", Email: "d@d.com"})
		collection.Delete(created.ID)

		assert.Equal(t, before, collection.Snapshot())
	})
}

func TestUpdate(t *testing.T) {
	t.Run("replaces only the matching record and keeps order", func(t *testing.T) {
		collection := New[models.User]()
		collection.Replace(someUsers())

		collection.Update(models.User{ID: 4, Name: "Bob", Username: "bob", Email: "bob@b.com"})

		records := collection.Snapshot()
		require.Len(t, records, 3)
		assert.Equal(t, someUsers()[0], records[0])
		assert.Equal(t, "Bob", records[1].Name)
		assert.Equal(t, someUsers()[2], records[2])
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		collection := New[models.User]()
		collection.Replace(someUsers())

		collection.Update(models.User{ID: 42, Name: "Nobody", Username: "nobody", Email: "n@n.com"})

		assert.Equal(t, someUsers(), collection.Snapshot())
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes the record with the given id", func(t *testing.T) {
		collection := New[models.Post]()
		collection.Replace([]models.Post{
			{ID: 1, UserID: 1, Title: "first"},
			{ID: 2, UserID: 1, Title: "second"},
		})

		collection.Delete(1)

		records := collection.Snapshot()
		require.Len(t, records, 1)
		assert.Equal(t, 2, records[0].ID)
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		collection := New[models.Post]()
		collection.Replace([]models.Post{{ID: 1, UserID: 1, Title: "first"}})

		collection.Delete(42)

		assert.Equal(t, 1, collection.Len())
	})
}

func TestFind(t *testing.T) {
	collection := New[models.User]()
	collection.Replace(someUsers())

	found, ok := collection.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Cy", found.Name)

	_, ok = collection.Find(42)
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	collection := New[models.User]()
	collection.Replace(someUsers())

	records := collection.Snapshot()
	records[0].Name = "mutated"

	assert.Equal(t, "Ann", collection.Snapshot()[0].Name)
}
