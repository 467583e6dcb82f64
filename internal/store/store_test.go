package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"asset-management-api/internal/models"
	"asset-management-api/internal/store"
	"asset-management-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreCurrent())
}

func seedAsset(t *testing.T, st *store.Store, code string) *models.Asset {
	t.Helper()
	ctx := context.Background()
	cat, _, err := st.ResolveCategory(ctx, "Laptops", nil)
	require.NoError(t, err)
	loc, _, err := st.ResolveLocation(ctx, "HQ", nil)
	require.NoError(t, err)

	a := &models.Asset{
		AssetCode:    code,
		SerialNumber: "SN-" + code,
		CategoryID:   cat.ID,
		LocationID:   loc.ID,
		Status:       models.StringPtr(models.DefaultAssetStatus),
	}
	require.NoError(t, st.CreateAsset(ctx, a))
	require.NotZero(t, a.ID)
	return a
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "assets.db?_foreign_keys=1&_busy_timeout=5000", store.SQLiteDSN("assets.db"))
	assert.Equal(t, "assets.db?mode=rwc&_foreign_keys=1&_busy_timeout=5000", store.SQLiteDSN("assets.db?mode=rwc"))
	assert.Equal(t, "assets.db?_foreign_keys=0&_busy_timeout=5000", store.SQLiteDSN("assets.db?_foreign_keys=0"))
}

func TestCategoryCRUD(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	c := &models.Category{Name: "Monitors", Description: models.StringPtr("Displays")}
	require.NoError(t, st.CreateCategory(ctx, c))
	require.NotZero(t, c.ID)

	got, err := st.GetCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monitors", got.Name)
	assert.Equal(t, "Displays", *got.Description)

	got.Name = "Screens"
	got.Description = nil
	require.NoError(t, st.SaveCategory(ctx, got))

	byName, err := st.FindCategoryByName(ctx, "Screens")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byName.ID)
	assert.Nil(t, byName.Description)

	list, err := st.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, st.DeleteCategory(ctx, c.ID))
	_, err = st.GetCategory(ctx, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, st.DeleteCategory(ctx, c.ID), store.ErrNotFound)
}

func TestListEmpty(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)

	assets, err := st.ListAssets(ctx)
	require.NoError(t, err)
	assert.NotNil(t, assets)
	assert.Empty(t, assets)
}

func TestDuplicateNameIsConstraintError(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateLocation(ctx, &models.Location{Name: "Warehouse"}))
	err := st.CreateLocation(ctx, &models.Location{Name: "Warehouse"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrConstraint)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestDeleteReferencedCategoryIsRefused(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	a := seedAsset(t, st, "A-1")

	err := st.DeleteCategory(ctx, a.CategoryID)
	assert.ErrorIs(t, err, store.ErrInUse)
	err = st.DeleteLocation(ctx, a.LocationID)
	assert.ErrorIs(t, err, store.ErrInUse)

	_, err = st.GetCategory(ctx, a.CategoryID)
	assert.NoError(t, err)
}

func TestResolveCreatesOnce(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	c, created, err := st.ResolveCategory(ctx, "Phones", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Auto-created category: Phones", *c.Description)

	again, created, err := st.ResolveCategory(ctx, "Phones", models.StringPtr("ignored"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, c.ID, again.ID)

	l, created, err := st.ResolveLocation(ctx, "Branch", models.StringPtr("12 Main St"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "12 Main St", *l.Address)

	_, created, err = st.ResolveLocation(ctx, "branch", nil)
	require.NoError(t, err)
	assert.True(t, created, "lookup is case sensitive")
}

func TestResolveConcurrent(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	const workers = 4
	ids := make([]int64, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, _, err := st.ResolveCategory(ctx, "Tablets", nil)
			errs[i] = err
			if err == nil {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	list, err := st.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAssetRelationsLoaded(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	u := &models.User{EmpID: "E1", EmpCode: "C1", Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, st.CreateUser(ctx, u))

	a := seedAsset(t, st, "A-2")
	a.UserID = &u.ID
	expiry := models.NewDate(2030, 1, 31)
	a.ExpiryDate = &expiry
	require.NoError(t, st.SaveAsset(ctx, a))

	got, err := st.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	require.NotNil(t, got.Location)
	require.NotNil(t, got.User)
	assert.Equal(t, "Laptops", got.Category.Name)
	assert.Equal(t, "HQ", got.Location.Name)
	assert.Equal(t, "Ada", got.User.Name)
	require.NotNil(t, got.ExpiryDate)
	assert.Equal(t, "2030-01-31", got.ExpiryDate.String())

	list, err := st.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ada", list[0].User.Name)
}

func TestSaveAssetDoesNotWriteRelations(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	a := seedAsset(t, st, "A-3")

	got, err := st.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	got.Category.Name = "Renamed"
	got.Model = models.StringPtr("T14")
	require.NoError(t, st.SaveAsset(ctx, got))

	cat, err := st.GetCategory(ctx, a.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, "Laptops", cat.Name)

	reloaded, err := st.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "T14", *reloaded.Model)
}

func TestAssetForeignKeysEnforced(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	err := st.CreateAsset(ctx, &models.Asset{
		AssetCode:    "A-4",
		SerialNumber: "SN-4",
		CategoryID:   999,
		LocationID:   999,
	})
	assert.ErrorIs(t, err, store.ErrConstraint)
}

func TestDuplicateAssetCode(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	a := seedAsset(t, st, "A-5")

	dup := &models.Asset{
		AssetCode:    "A-5",
		SerialNumber: "other",
		CategoryID:   a.CategoryID,
		LocationID:   a.LocationID,
	}
	assert.ErrorIs(t, st.CreateAsset(ctx, dup), store.ErrConstraint)
	assert.ErrorIs(t, st.DeleteAsset(ctx, 12345), store.ErrNotFound)
	require.NoError(t, st.DeleteAsset(ctx, a.ID))
}

func TestDeleteUserUnassignsAssets(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()

	u := &models.User{EmpID: "E2", EmpCode: "C2", Name: "Grace", Email: "grace@example.com"}
	require.NoError(t, st.CreateUser(ctx, u))
	a := seedAsset(t, st, "A-6")
	a.UserID = &u.ID
	require.NoError(t, st.SaveAsset(ctx, a))

	err := st.WithTx(ctx, func(tx *store.Store) error {
		return tx.DeleteUser(ctx, u.ID)
	})
	require.NoError(t, err)

	got, err := st.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.Nil(t, got.User)
	_, err = st.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	st := testutil.NewTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.CreateCategory(ctx, &models.Category{Name: "Temp"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = st.FindCategoryByName(ctx, "Temp")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
