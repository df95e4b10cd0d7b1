package dbtest

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	"github.com/bnb-chain/merkle-distributor/database"
)

var errAbort = errors.New("abort")

func set(t *testing.T, db database.Store, kvs ...string) {
	t.Helper()
	err := db.Update(nil, func(txn database.Txn) error {
		for i := 0; i+1 < len(kvs); i += 2 {
			txn.Set([]byte(kvs[i]), []byte(kvs[i+1]))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func expect(t *testing.T, db database.Reader, key string, want []byte) {
	t.Helper()
	got, err := db.Get([]byte(key))
	if want == nil {
		if !errors.Is(err, database.ErrDatabaseNotFound) {
			t.Errorf("%s: got %q, %v, want %v", key, got, err, database.ErrDatabaseNotFound)
		}
		return
	}
	if err != nil {
		t.Errorf("%s: %v", key, err)
	} else if !bytes.Equal(got, want) {
		t.Errorf("%s: got %q, want %q", key, got, want)
	}
}

// TestDatabaseSuite runs a suite of tests against a database.Store
// implementation.
func TestDatabaseSuite(t *testing.T, New func() database.Store) {
	t.Run("GetSet", func(t *testing.T) {
		db := New()
		defer db.Close()

		expect(t, db, "foo", nil)
		set(t, db, "foo", "hello world")
		expect(t, db, "foo", []byte("hello world"))

		for _, v := range []string{"1", "12", "3"} {
			set(t, db, "foo", v)
			expect(t, db, "foo", []byte(v))
		}
	})

	t.Run("ReadYourWrites", func(t *testing.T) {
		db := New()
		defer db.Close()
		set(t, db, "a", "1")

		err := db.Update([][]byte{[]byte("a"), []byte("b")}, func(txn database.Txn) error {
			expect(t, txn, "a", []byte("1"))
			expect(t, txn, "b", nil)

			txn.Set([]byte("a"), []byte("2"))
			txn.Set([]byte("b"), []byte("x"))
			txn.Set([]byte("a"), []byte("3"))
			expect(t, txn, "a", []byte("3"))
			expect(t, txn, "b", []byte("x"))
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		expect(t, db, "a", []byte("3"))
		expect(t, db, "b", []byte("x"))
	})

	t.Run("AbortDiscardsWrites", func(t *testing.T) {
		db := New()
		defer db.Close()
		set(t, db, "a", "1")

		err := db.Update([][]byte{[]byte("a")}, func(txn database.Txn) error {
			txn.Set([]byte("a"), []byte("2"))
			txn.Set([]byte("c"), []byte("3"))
			return errors.Wrap(errAbort, "callback")
		})
		if !errors.Is(err, errAbort) {
			t.Fatalf("got %v, want %v", err, errAbort)
		}
		expect(t, db, "a", []byte("1"))
		expect(t, db, "c", nil)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		db := New()
		defer db.Close()

		set(t, db, "empty", "")
		got, err := db.Get([]byte("empty"))
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("wrong value: %q", got)
		}
	})

	t.Run("BinaryKeys", func(t *testing.T) {
		db := New()
		defer db.Close()

		key := string([]byte{'b', 0, 0, 0, 1, 0, 0, 0, 0})
		set(t, db, key, "\x00\x00\x00\x02")
		expect(t, db, key, []byte{0, 0, 0, 2})
		expect(t, db, string([]byte{'b', 0, 0, 0, 1, 0, 0, 0, 1}), nil)
	})
}
