package adapter

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapquery/internal/testutil"
	"github.com/leapstack-labs/leapquery/pkg/core"
	"github.com/leapstack-labs/leapquery/pkg/dialect"
	"github.com/leapstack-labs/leapquery/pkg/format"
)

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		expectErr bool
	}{
		{
			name:      "close with nil DB",
			setupDB:   false,
			expectErr: false,
		},
		{
			name:      "close with open DB",
			setupDB:   true,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			err := base.Close()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		expectErr bool
		errMsg    string
	}{
		{
			name:      "exec without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "exec success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE users").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			sql:       "CREATE TABLE users (id INT)",
			expectErr: false,
		},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.DB = db
			}

			err := base.Exec(ctx, tt.sql)
			if tt.expectErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		expectErr bool
		errMsg    string
	}{
		{
			name:      "query without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "query success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name"}).
					AddRow(1, "alice").
					AddRow(2, "bob")
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			},
			sql:       "SELECT id, name FROM users",
			expectErr: false,
		},
		{
			name:    "query with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INVALID").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.DB = db
			}

			rows, err := base.Query(ctx, tt.sql)
			if tt.expectErr {
				require.Error(t, err)
				assert.Nil(t, rows)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
				assert.NotNil(t, rows)
				defer func() { _ = rows.Close() }()
			}
		})
	}
}

func TestBaseSQLAdapter_IsConnected(t *testing.T) {
	tests := []struct {
		name     string
		setupDB  bool
		expected bool
	}{
		{
			name:     "not connected",
			setupDB:  false,
			expected: false,
		},
		{
			name:     "connected",
			setupDB:  true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, _, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				base.DB = db
			}

			assert.Equal(t, tt.expected, base.IsConnected())
		})
	}
}

func TestBaseSQLAdapter_ExecPassesArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM book WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	base := &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}
	require.NoError(t, base.Exec(context.Background(), "DELETE FROM book WHERE id = ?", int64(7)))
	assert.Same(t, db, base.Handle())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_NotConnected(t *testing.T) {
	base := &BaseSQLAdapter{}
	ctx := context.Background()

	assert.ErrorIs(t, base.Exec(ctx, "SELECT 1"), ErrNotConnected)
	_, err := base.GetTableMetadataCommon(ctx, "users", dialect.Postgres)
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, base.LoadCSVCommon(ctx, dialect.SQLite, "t", "missing.csv"), ErrNotConnected)
	assert.Nil(t, base.Handle())
}

func TestParseQualifiedName(t *testing.T) {
	tests := []struct {
		table      string
		wantSchema string
		wantName   string
	}{
		{"users", "public", "users"},
		{"sales.orders", "sales", "orders"},
		{"a.b.c", "public", "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			schema, name := ParseQualifiedName(tt.table, dialect.Postgres)
			assert.Equal(t, tt.wantSchema, schema)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestColumnsQuery(t *testing.T) {
	sqlStr, args := format.Compile(ColumnsQuery("public", "users"), dialect.Postgres)
	assert.Equal(t,
		`SELECT "column_name", "data_type", "is_nullable", "ordinal_position" `+
			`FROM "information_schema"."columns" `+
			`WHERE "table_schema" = $1 AND "table_name" = $2 ORDER BY "ordinal_position"`,
		sqlStr)
	assert.Equal(t, []core.Value{core.Text("public"), core.Text("users")}, args)

	assert.Equal(t, "SELECT count(1) FROM `shop`.`orders`",
		format.Inline(CountQuery(TableRef("shop.orders")), dialect.MySQL))
}

func TestBaseSQLAdapter_GetTableMetadataCommon(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   string
		wantRows  int64
	}{
		{
			name: "columns and count",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("information_schema").
					WithArgs("public", "users").
					WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
						AddRow("id", "integer", "NO", 1).
						AddRow("email", "text", "YES", 2))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(1) FROM "public"."users"`)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
			},
			wantRows: 42,
		},
		{
			name: "count failure is not fatal",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("information_schema").
					WithArgs("public", "users").
					WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
						AddRow("id", "integer", "NO", 1).
						AddRow("email", "text", "YES", 2))
				mock.ExpectQuery("count").WillReturnError(assert.AnError)
			},
			wantRows: 0,
		},
		{
			name: "missing table",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("information_schema").
					WithArgs("public", "users").
					WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}))
			},
			wantErr: "table users not found",
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("information_schema").WillReturnError(assert.AnError)
			},
			wantErr: "failed to query column metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setupMock(mock)

			base := &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}
			meta, err := base.GetTableMetadataCommon(context.Background(), "users", dialect.Postgres)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "public", meta.Schema)
			assert.Equal(t, "users", meta.Name)
			assert.Equal(t, tt.wantRows, meta.RowCount)
			assert.Equal(t, []core.Column{
				{Name: "id", Type: "integer", Nullable: false, Position: 1},
				{Name: "email", Type: "text", Nullable: true, Position: 2},
			}, meta.Columns)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBaseSQLAdapter_LoadCSVCommon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,title\n1,Dune\n2,Emma\n"), 0o600))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "books" ("id" TEXT, "title" TEXT)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "books"("id", "title") VALUES (?, ?), (?, ?)`)).
		WithArgs("1", "Dune", "2", "Emma").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	base := &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}
	require.NoError(t, base.LoadCSVCommon(context.Background(), dialect.SQLite, "books", path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_LoadCSVCommonRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\n1\n"), 0o600))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	base := &BaseSQLAdapter{DB: db}
	err = base.LoadCSVCommon(context.Background(), dialect.SQLite, "books", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
