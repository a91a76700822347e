package autocomplete

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autocomplete/core/logger"
	"autocomplete/core/module"
	"autocomplete/core/router"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type post struct {
	Id        uint `gorm:"primarykey"`
	CreatedAt time.Time
	Title     string
	Body      string
}

type department struct {
	Id   uint `gorm:"primarykey"`
	Name string
}

type employee struct {
	Id           uint `gorm:"primarykey"`
	FirstName    string
	LastName     string
	Active       bool
	DepartmentId *uint
	Department   *department
}

// ghost is registered in the catalog but never migrated
type ghost struct {
	Id   uint `gorm:"primarykey"`
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&post{}, &department{}, &employee{}))

	for _, title := range []string{"Alpha", "alphabet", "Beta"} {
		require.NoError(t, db.Create(&post{Title: title, Body: "body of " + title}).Error)
	}

	sales := department{Name: "Sales"}
	support := department{Name: "Support"}
	require.NoError(t, db.Create(&sales).Error)
	require.NoError(t, db.Create(&support).Error)

	employees := []employee{
		{FirstName: "José", LastName: "Alvarez", Active: true, DepartmentId: &sales.Id},
		{FirstName: "Joseph", LastName: "Smith", Active: true},
		{FirstName: "Maria", LastName: "Lopez", Active: false, DepartmentId: &support.Id},
	}
	for i := range employees {
		require.NoError(t, db.Create(&employees[i]).Error)
	}

	return db
}

func newTestCatalog() *Catalog {
	catalog := NewCatalog()
	catalog.Add("post", &post{})
	catalog.Add("employee", &employee{})
	catalog.Add("department", &department{})
	catalog.Add("ghost", &ghost{})
	return catalog
}

// newTestServer mounts the registry on /api the way main.go does
func newTestServer(t *testing.T, db *gorm.DB, registry *Registry) *router.Router {
	t.Helper()

	r := router.New()
	deps := module.Dependencies{
		DB:     db,
		Router: r.Group("/api"),
		Logger: logger.NewNop(),
	}
	mod := Init(deps, registry).(*Module)
	mod.Routes(deps.Router)
	return r
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func lines(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}
