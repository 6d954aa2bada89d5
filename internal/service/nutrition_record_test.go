package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/testhelpers"
	"github.com/nutrilens/backend/internal/types"
)

func recordRequest(carbs float64) types.NutritionRecordRequest {
	return types.NutritionRecordRequest{
		Carbohydrates: ptr(carbs),
		Fibers:        ptr(25.0),
		Sugar:         ptr(40.0),
		Fat:           ptr(70.0),
		SaturatedFat:  ptr(20.0),
		Cholesterol:   ptr(300.0),
		Sodium:        ptr(2300.0),
	}
}

func TestNutritionRecordCRUD(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateTestUser(t, db)
	svc := service.NewNutritionRecordService(db)
	ctx := context.Background()

	record, err := svc.Create(ctx, user.ID, recordRequest(250))
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, 250.0, record.Carbohydrates)
	assert.Equal(t, 300.0, record.CholesterolMg)
	assert.Equal(t, 2300.0, record.SodiumMg)

	other := testhelpers.CreateTestUser(t, db)
	_, err = svc.Create(ctx, other.ID, recordRequest(100))
	require.NoError(t, err)

	records, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 20.0, records[0].SaturatedFat)

	updated, err := svc.Update(ctx, user.ID, record.ID, recordRequest(180))
	require.NoError(t, err)
	assert.Equal(t, 180.0, updated.Carbohydrates)
	assert.Equal(t, record.ID, updated.ID)

	_, err = svc.Update(ctx, other.ID, record.ID, recordRequest(1))
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, other.ID, record.ID), service.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, user.ID, record.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID, record.ID), service.ErrNotFound)
}

func TestNutritionRecordValidation(t *testing.T) {
	svc := service.NewNutritionRecordService(testhelpers.SetupSQLite(t))

	missing := recordRequest(100)
	missing.SaturatedFat = nil
	_, err := svc.Create(context.Background(), uuid.New(), missing)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "saturated_fat", verr.Field)

	negative := recordRequest(100)
	negative.Sodium = ptr(-1.0)
	_, err = svc.Create(context.Background(), uuid.New(), negative)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sodium", verr.Field)
}
