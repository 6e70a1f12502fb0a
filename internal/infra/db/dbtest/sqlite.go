// Package dbtest はテスト用のインメモリDBを用意する。
package dbtest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"canteen/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenSQLite はテストごとに別のインメモリDBを作り、マイグレーション済みで返す。
// 接続は1本に絞る（インメモリDBは接続ごとに別物になるため）。
// そのためgoroutineからの書き込みもこの1本で順番に実行される。
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), db.NewGormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gormDB))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return gormDB
}

// OpenSQLiteFile は一時ディレクトリのファイルDBを複数接続で開く。
// WAL + busy_timeout、トランザクションは BEGIN IMMEDIATE で書き込みロックを先に取る。
// 同時書き込みを実際に別接続から流したいテスト用。
func OpenSQLiteFile(t *testing.T, maxConns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "canteen.db")
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=10000&_txlock=immediate", path)
	gormDB, err := gorm.Open(sqlite.Open(dsn), db.NewGormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)

	require.NoError(t, db.Migrate(gormDB))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return gormDB
}
