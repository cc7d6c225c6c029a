package sql

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/lguimbarda/min-seq/seq/core"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// Every pooled connection to :memory: gets its own database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			age INTEGER NOT NULL,
			email TEXT
		)
	`)
	if err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	_, err = db.Exec(`INSERT INTO users (name, age, email) VALUES
		('Alice', 30, 'alice@example.com'), ('Bob', 25, NULL), ('Charlie', 35, 'charlie@example.com')`)
	if err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
	return db
}

type User struct {
	ID   int
	Name string
	Age  int
}

func scanUser(rows *sql.Rows) (User, error) {
	var u User
	err := rows.Scan(&u.ID, &u.Name, &u.Age)
	return u, err
}

func TestQuery(t *testing.T) {
	db := setupTestDB(t)

	users, err := Query(db, "SELECT id, name, age FROM users ORDER BY id", scanUser).ToSlice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i, want := range []string{"Alice", "Bob", "Charlie"} {
		if users[i].Name != want {
			t.Errorf("user %d = %q, want %q", i, users[i].Name, want)
		}
	}
}

func TestQueryWithArgs(t *testing.T) {
	db := setupTestDB(t)

	n, err := Query(db, "SELECT id, name, age FROM users WHERE age > ?", scanUser, 26).Count()
	if err != nil || n != 2 {
		t.Fatalf("expected 2 users, got %d (%v)", n, err)
	}
}

func TestQueryIsLazy(t *testing.T) {
	db := setupTestDB(t)

	users := Query(db, "SELECT id, name, age FROM users ORDER BY id", scanUser)
	if _, err := db.Exec("INSERT INTO users (name, age) VALUES ('Dora', 41)"); err != nil {
		t.Fatal(err)
	}
	n, err := users.Count()
	if err != nil || n != 4 {
		t.Errorf("count = %d (%v), want 4: the query should run on first pull", n, err)
	}
}

func TestQueryStatementEarlyStop(t *testing.T) {
	db := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())

	first, err := QueryStatement(db, Statement{Query: "SELECT id, name, age FROM users ORDER BY id"}, scanUser,
		WithContext(ctx),
	).FindFirst()
	if err != nil {
		t.Fatal(err)
	}
	if u, _ := first.Get(); u.Name != "Alice" {
		t.Errorf("first = %v", first)
	}

	// Cancelling releases the abandoned cursor so the single connection is
	// free again.
	cancel()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil || count != 3 {
		t.Errorf("count = %d (%v)", count, err)
	}
}

func TestQueryLogging(t *testing.T) {
	db := setupTestDB(t)
	var buf bytes.Buffer

	stmt := Statement{Query: "SELECT id, name, age FROM users WHERE age > ?", Args: []any{30}}
	if _, err := QueryStatement(db, stmt, scanUser, WithLogger(zerolog.New(&buf))).ToSlice(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"message":"executing query"`) || !strings.Contains(buf.String(), `"args":1`) {
		t.Errorf("log = %s", buf.String())
	}
}

func TestFromRows(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.Query("SELECT id, name, age FROM users ORDER BY age")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	oldest, err := FromRows(rows, scanUser).Reduce(func(a, b User) (User, error) {
		if b.Age > a.Age {
			return b, nil
		}
		return a, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if u, _ := oldest.Get(); u.Name != "Charlie" {
		t.Errorf("oldest = %v", oldest)
	}
	if rows.Next() {
		t.Error("cursor still open after exhaustion")
	}
}

func TestFromRowsScanError(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.Query("SELECT name FROM users")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := FromRows(rows, scanUser).ToSlice(); err == nil {
		t.Error("expected a scan error for mismatched columns")
	}
}

func TestQueryRow(t *testing.T) {
	db := setupTestDB(t)
	scanRow := func(row *sql.Row) (User, error) {
		var u User
		err := row.Scan(&u.ID, &u.Name, &u.Age)
		return u, err
	}

	users, err := QueryRow(db, "SELECT id, name, age FROM users WHERE name = ?", scanRow, "Alice").ToSlice()
	if err != nil || len(users) != 1 {
		t.Fatalf("got %v, %v", users, err)
	}
	if users[0].Name != "Alice" || users[0].Age != 30 {
		t.Errorf("expected Alice(30), got %s(%d)", users[0].Name, users[0].Age)
	}

	_, err = QueryRow(db, "SELECT id, name, age FROM users WHERE name = ?", scanRow, "Nobody").ToSlice()
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v, want sql.ErrNoRows", err)
	}
}

func TestExec(t *testing.T) {
	db := setupTestDB(t)

	results, err := Exec(db, "INSERT INTO users (name, age) VALUES (?, ?)", "David", 40).ToSlice()
	if err != nil || len(results) != 1 {
		t.Fatalf("got %v, %v", results, err)
	}
	if results[0].RowsAffected != 1 {
		t.Errorf("expected 1 row affected, got %d", results[0].RowsAffected)
	}
	if results[0].LastInsertId != 4 {
		t.Errorf("expected last insert id 4, got %d", results[0].LastInsertId)
	}
}

func TestExecStatementOptions(t *testing.T) {
	db := setupTestDB(t)
	stmt := Statement{Query: "INSERT INTO users (name, age) VALUES (?, ?)", Args: []any{"Eve", 28}}

	var buf bytes.Buffer
	results, err := ExecStatement(db, stmt, WithLogger(zerolog.New(&buf))).ToSlice()
	if err != nil || len(results) != 1 || results[0].RowsAffected != 1 {
		t.Fatalf("got %v, %v", results, err)
	}
	if !strings.Contains(buf.String(), "executing statement") {
		t.Errorf("expected a debug log entry, got %q", buf.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExecStatement(db, stmt, WithContext(ctx)).ToSlice(); !errors.Is(err, context.Canceled) {
		t.Errorf("ExecStatement with cancelled context error = %v, want context.Canceled", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE name = 'Eve'").Scan(&count); err != nil || count != 1 {
		t.Errorf("expected one inserted row, got %d, %v", count, err)
	}
}

func TestExecMany(t *testing.T) {
	db := setupTestDB(t)

	type person struct {
		name string
		age  int
	}
	newcomers := core.FromSlice([]person{{"Eve", 28}, {"Finn", 19}})
	insert := ExecMany(db, "INSERT INTO users (name, age) VALUES (?, ?)", func(p person) []any {
		return []any{p.name, p.age}
	})

	results, err := insert.Apply(newcomers).ToSlice()
	if err != nil || len(results) != 2 || results[1].LastInsertId != 5 {
		t.Fatalf("got %v, %v", results, err)
	}

	failing := ExecMany(db, "INSERT INTO missing (x) VALUES (?)", func(p person) []any { return []any{p.name} })
	latecomers := core.FromSlice([]person{{"Gus", 40}})
	if _, err := failing.Apply(latecomers).ToSlice(); err == nil {
		t.Error("expected an error for a missing table")
	}
}

func TestTransaction(t *testing.T) {
	db := setupTestDB(t)

	results, err := Transaction(db, func(tx *sql.Tx) (int64, error) {
		result, err := tx.Exec("INSERT INTO users (name, age) VALUES (?, ?)", "Eve", 28)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}).ToSlice()
	if err != nil || len(results) != 1 || results[0] != 4 {
		t.Fatalf("got %v, %v", results, err)
	}

	errRollback := errors.New("abort")
	_, err = Transaction(db, func(tx *sql.Tx) (int64, error) {
		if _, err := tx.Exec("INSERT INTO users (name, age) VALUES ('Ghost', 1)"); err != nil {
			return 0, err
		}
		return 0, errRollback
	}).ToSlice()
	if !errors.Is(err, errRollback) {
		t.Errorf("error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil || count != 4 {
		t.Errorf("expected 4 users after commit and rollback, got %d (%v)", count, err)
	}
}

func TestQueryStrings(t *testing.T) {
	db := setupTestDB(t)

	rows, err := QueryStrings(db, "SELECT name, age, email FROM users ORDER BY id LIMIT 2").ToSlice()
	if err != nil || len(rows) != 2 {
		t.Fatalf("got %v, %v", rows, err)
	}
	if rows[0][0] != "Alice" || rows[0][1] != "30" || rows[0][2] != "alice@example.com" {
		t.Errorf("first row = %q", rows[0])
	}
	if rows[1][2] != "" {
		t.Errorf("NULL email = %q, want empty", rows[1][2])
	}
}

func TestQueryMaps(t *testing.T) {
	db := setupTestDB(t)

	rows, err := QueryMaps(db, "SELECT name, age FROM users WHERE name = ?", "Bob").ToSlice()
	if err != nil || len(rows) != 1 {
		t.Fatalf("got %v, %v", rows, err)
	}
	if rows[0]["age"] != int64(25) {
		t.Errorf("age = %#v", rows[0]["age"])
	}
}

func TestQueryError(t *testing.T) {
	db := setupTestDB(t)

	_, err := Query(db, "SELECT * FROM nonexistent_table", scanUser).ToSlice()
	if err == nil {
		t.Error("expected error for nonexistent table")
	}
}
