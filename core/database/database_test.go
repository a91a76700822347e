package database

import (
	"testing"

	"autocomplete/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorByDriver(t *testing.T) {
	for _, driver := range []string{"sqlite", "mysql", "postgres"} {
		cfg := &config.Config{DBDriver: driver, DBPath: ":memory:", DBURL: "dsn"}
		d, err := Dialector(cfg)
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}
}

func TestDialectorErrors(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)

	_, err = Dialector(&config.Config{DBDriver: "postgres"})
	assert.Error(t, err)
}

func TestInitDBSqliteMemory(t *testing.T) {
	db, err := InitDB(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
