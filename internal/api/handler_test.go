package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gym-admin-backend/config"
	"gym-admin-backend/internal/db"
	"gym-admin-backend/internal/membership"
	"gym-admin-backend/internal/store"
)

// Reference "now" for every handler test.
var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Branches: []config.Branch{
			{
				ID:         "centro",
				Name:       "Gym Centro",
				Address:    "Calle Principal 100",
				TermPolicy: membership.TermPolicyDays,
				Prices: map[membership.Plan]float64{
					membership.PlanDaily:     35,
					membership.PlanWeekly:    150,
					membership.PlanFortnight: 250,
					membership.PlanMonthly:   420,
				},
			},
			{
				ID:         "norte",
				Name:       "Gym Norte",
				TermPolicy: membership.TermPolicyMonths,
				Prices: map[membership.Plan]float64{
					membership.PlanMonthly:   400,
					membership.PlanQuarterly: 1100,
					membership.PlanHalfYear:  2000,
					membership.PlanAnnual:    3600,
				},
			},
		},
	}
}

// setupTestAPI wires a handler against an in-memory SQLite database with a
// pinned clock, and returns a router exercising the real route table.
func setupTestAPI(t *testing.T) (*gin.Engine, *Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(testDB))

	// The store clock ticks forward on every write so creation order is
	// reflected in created_at and check-in timestamps; classification still
	// sees the pinned testNow through the handler clock.
	var tick time.Duration
	appStore := store.NewGormStoreWithClock(testDB, func() time.Time {
		tick += time.Second
		return testNow.Add(tick)
	})

	handler := NewHandler(testConfig(), appStore, nil)
	handler.now = func() time.Time { return testNow }

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/branches", handler.GetBranches)
		api.GET("/branches/:branch_id/clients", handler.GetClients)
		api.POST("/branches/:branch_id/clients", handler.CreateClient)
		api.PATCH("/clients/:client_id", handler.UpdateClient)
		api.POST("/clients/:client_id/renew", handler.RenewClient)
		api.POST("/branches/:branch_id/checkins", handler.CreateCheckin)
		api.GET("/branches/:branch_id/checkins", handler.GetCheckins)
		api.GET("/branches/:branch_id/report", handler.GetReport)
	}

	return r, handler, testDB
}
