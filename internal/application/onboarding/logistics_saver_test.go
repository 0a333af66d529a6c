package onboarding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrunx/Gasable-sub001/internal/application/onboarding"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

func logisticsFixture() (*onboarding.LogisticsSaver, *fakeZoneRepo, *fakeVehicleRepo, *fakeDriverRepo) {
	zones := &fakeZoneRepo{}
	vehicles := &fakeVehicleRepo{}
	drivers := &fakeDriverRepo{}
	return onboarding.NewLogisticsSaver(zones, vehicles, drivers, logger.Nop()), zones, vehicles, drivers
}

func ownFleetDraft() onboarding.LogisticsDraft {
	return onboarding.LogisticsDraft{
		ShipmentMode: "own_fleet",
		Zones: []onboarding.ZoneDraft{
			{Name: "North Riyadh", ZoneType: "urban", DeliveryFee: decimal.RequireFromString("15")},
			{Name: "Outskirts", ZoneType: "rural", DeliveryFee: decimal.RequireFromString("40")},
		},
		Vehicles: []onboarding.VehicleDraft{
			{TempID: "tmp-v1", PlateNumber: "ABC-123", Model: "Isuzu NPR"},
			{TempID: "tmp-v2", PlateNumber: "XYZ-987", Model: "Hino 300"},
		},
		Drivers: []onboarding.DriverDraft{
			{TempID: "tmp-d1", VehicleTempID: "tmp-v1", Name: "Ahmed", Phone: "+966501111111"},
			{TempID: "tmp-d2", VehicleTempID: "tmp-v2", Name: "Khalid", Phone: "+966502222222"},
		},
	}
}

func TestLogisticsSaver_OwnFleetCreatesAllGroups(t *testing.T) {
	saver, zones, vehicles, drivers := logisticsFixture()
	ref := &onboarding.StoreRef{StoreID: "store-1"}

	res, err := saver.Execute(context.Background(), testCompany, ref, ownFleetDraft())

	require.NoError(t, err)
	assert.Len(t, res.ZoneIDs, 2)
	assert.Len(t, res.VehicleIDs, 2)
	assert.Len(t, res.DriverIDs, 2)
	assert.Len(t, zones.zones, 2)
	assert.Len(t, vehicles.vehicles, 2)
	require.Len(t, drivers.drivers, 2)

	// Drivers reference the persisted vehicle ids, not the temp ids.
	byName := map[string]string{}
	for _, d := range drivers.drivers {
		byName[d.Name] = d.VehicleID
	}
	assert.Equal(t, res.VehicleIDs["tmp-v1"], byName["Ahmed"])
	assert.Equal(t, res.VehicleIDs["tmp-v2"], byName["Khalid"])
}

func TestLogisticsSaver_ThirdPartySkipsFleetGroups(t *testing.T) {
	saver, zones, vehicles, drivers := logisticsFixture()
	ref := &onboarding.StoreRef{StoreID: "store-1"}

	// Stale vehicle/driver lists from a previous own-fleet selection stay in
	// the draft; the mode gates the writes anyway.
	draft := ownFleetDraft()
	draft.ShipmentMode = "third_party"

	res, err := saver.Execute(context.Background(), testCompany, ref, draft)

	require.NoError(t, err)
	assert.Len(t, zones.zones, 2, "zones are created for every mode")
	assert.Empty(t, vehicles.vehicles)
	assert.Empty(t, drivers.drivers)
	assert.Empty(t, res.VehicleIDs)
}

func TestLogisticsSaver_ZoneFailureFailsBatchButAwaitsAll(t *testing.T) {
	saver, zones, vehicles, _ := logisticsFixture()
	zones.failCreate = errors.New("unique violation")
	ref := &onboarding.StoreRef{StoreID: "store-1"}

	_, err := saver.Execute(context.Background(), testCompany, ref, ownFleetDraft())

	require.Error(t, err)
	var se *onboarding.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, onboarding.StageLogistics, se.Stage)
	assert.Equal(t, 2, zones.created, "every zone attempt is awaited, not cancelled on first failure")
	assert.Empty(t, vehicles.vehicles, "later groups never start after a failed group")
}

func TestLogisticsSaver_NoStoreRefFails(t *testing.T) {
	saver, _, _, _ := logisticsFixture()

	_, err := saver.Execute(context.Background(), testCompany, nil, ownFleetDraft())

	require.Error(t, err)
	var se *onboarding.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, onboarding.StageLogistics, se.Stage)
}

func TestLogisticsSaver_EmptyDraftIsFine(t *testing.T) {
	saver, zones, _, _ := logisticsFixture()
	ref := &onboarding.StoreRef{StoreID: "store-1"}

	res, err := saver.Execute(context.Background(), testCompany, ref, onboarding.LogisticsDraft{ShipmentMode: "logistics_partner"})

	require.NoError(t, err)
	assert.Empty(t, res.ZoneIDs)
	assert.Empty(t, zones.zones)
}
