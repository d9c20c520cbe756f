package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-admin-backend/internal/membership"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
server:
  port: 8080
database:
  dsn: "host=localhost"
branches:
  - id: centro
    name: "Gym Centro"
    address: "Calle Principal 100"
    term_policy: days
    prices:
      diaria: 35
      semanal: 150
      quincenal: 250
      mensual: 420
  - id: norte
    name: "Gym Norte"
    term_policy: months
    prices:
      mensual: 400
      trimestral: 1100
      semestral: 2000
      anual: 3600
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	require.Len(t, cfg.Branches, 2)
	assert.Equal(t, membership.TermPolicyDays, cfg.Branches[0].TermPolicy)
	assert.Equal(t, membership.TermPolicyMonths, cfg.Branches[1].TermPolicy)

	// Defaults applied on load.
	assert.Equal(t, time.Hour, cfg.Notifier.Interval)
	assert.Equal(t, 3600, cfg.Push.TTL)
	assert.Equal(t, 1, cfg.WorkerPool.Size)

	branch, ok := cfg.Branch("norte")
	require.True(t, ok)
	price, err := branch.PriceFor(membership.PlanQuarterly)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, price)

	_, ok = cfg.Branch("sur")
	assert.False(t, ok)
}

func TestLoadRejectsBadBranchConfig(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{
			name:    "no branches",
			content: "server:\n  port: 8080\n",
		},
		{
			name: "duplicate branch id",
			content: `
branches:
  - id: centro
    prices: {diaria: 35, semanal: 150, quincenal: 250, mensual: 420}
  - id: centro
    prices: {diaria: 35, semanal: 150, quincenal: 250, mensual: 420}
`,
		},
		{
			name: "unknown term policy",
			content: `
branches:
  - id: centro
    term_policy: weeks
    prices: {diaria: 35}
`,
		},
		{
			name: "price table missing a sold plan",
			content: `
branches:
  - id: centro
    term_policy: days
    prices: {diaria: 35, semanal: 150}
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaultsTermPolicyToDays(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
branches:
  - id: centro
    prices: {diaria: 35, semanal: 150, quincenal: 250, mensual: 420}
`))
	require.NoError(t, err)
	assert.Equal(t, membership.TermPolicyDays, cfg.Branches[0].TermPolicy)
}

func TestPriceForUnknownPlan(t *testing.T) {
	b := Branch{ID: "centro", Prices: map[membership.Plan]float64{membership.PlanDaily: 35}}
	_, err := b.PriceFor(membership.PlanAnnual)
	assert.Error(t, err)
}
