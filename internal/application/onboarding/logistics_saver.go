package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrunx/Gasable-sub001/internal/domain/entity"
	"github.com/hrunx/Gasable-sub001/internal/domain/repository"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

// LogisticsSaver persists the logistics stage: delivery zones, and, for
// own-fleet shipment, vehicles then drivers. Each group fans out in parallel;
// the groups themselves run strictly in sequence because drivers reference
// vehicle ids produced by the previous group. Every attempt in a group is
// awaited even after the first failure, but one failure fails the batch.
type LogisticsSaver struct {
	zones    repository.ZoneRepository
	vehicles repository.VehicleRepository
	drivers  repository.DriverRepository
	log      *logger.Logger
}

// NewLogisticsSaver builds the executor.
func NewLogisticsSaver(zones repository.ZoneRepository, vehicles repository.VehicleRepository, drivers repository.DriverRepository, log *logger.Logger) *LogisticsSaver {
	return &LogisticsSaver{zones: zones, vehicles: vehicles, drivers: drivers, log: log}
}

// LogisticsResult carries the ids created by a successful logistics save.
type LogisticsResult struct {
	ZoneIDs    []string
	VehicleIDs map[string]string // temp id -> persisted id
	DriverIDs  []string
}

// Execute runs the three creation groups.
func (s *LogisticsSaver) Execute(ctx context.Context, companyID string, ref *StoreRef, draft LogisticsDraft) (*LogisticsResult, error) {
	if ref == nil || ref.StoreID == "" {
		return nil, &StageError{Stage: StageLogistics, Message: "no created store for logistics", Err: nil}
	}

	res := &LogisticsResult{VehicleIDs: map[string]string{}}

	zoneIDs, err := s.createZones(ctx, companyID, draft.Zones)
	if err != nil {
		return nil, &StageError{Stage: StageLogistics, Message: "create delivery zones", Err: err}
	}
	res.ZoneIDs = zoneIDs

	// Fleet groups only exist for own-fleet shipment; the mode gates the
	// sub-writes even when the draft still carries stale lists.
	if draft.ShipmentMode != entity.ShipmentOwnFleet {
		return res, nil
	}

	vehicleIDs, err := s.createVehicles(ctx, companyID, ref.StoreID, draft.Vehicles)
	if err != nil {
		return nil, &StageError{Stage: StageLogistics, Message: "create fleet vehicles", Err: err}
	}
	res.VehicleIDs = vehicleIDs

	driverIDs, err := s.createDrivers(ctx, companyID, ref.StoreID, draft.Drivers, vehicleIDs)
	if err != nil {
		return nil, &StageError{Stage: StageLogistics, Message: "create fleet drivers", Err: err}
	}
	res.DriverIDs = driverIDs

	return res, nil
}

// runParallel fans out one goroutine per item, awaits all of them, and
// returns the first error in item order.
func runParallel(n int, fn func(i int) error) error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(i)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *LogisticsSaver) createZones(ctx context.Context, companyID string, drafts []ZoneDraft) ([]string, error) {
	ids := make([]string, len(drafts))
	now := time.Now().UTC()
	err := runParallel(len(drafts), func(i int) error {
		d := drafts[i]
		z := &entity.DeliveryZone{
			ID:                 uuid.New().String(),
			CompanyID:          companyID,
			Name:               d.Name,
			ZoneType:           d.ZoneType,
			DeliveryFee:        d.DeliveryFee,
			DefaultB2BPrice:    d.DefaultB2BPrice,
			DefaultB2CPrice:    d.DefaultB2CPrice,
			DiscountPercentage: d.DiscountPercentage,
			CoverageAreas:      d.CoverageAreas,
			Active:             true,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.zones.Create(ctx, z); err != nil {
			return err
		}
		ids[i] = z.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *LogisticsSaver) createVehicles(ctx context.Context, companyID, storeID string, drafts []VehicleDraft) (map[string]string, error) {
	byTemp := make(map[string]string, len(drafts))
	var mu sync.Mutex
	now := time.Now().UTC()
	err := runParallel(len(drafts), func(i int) error {
		d := drafts[i]
		v := &entity.Vehicle{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			StoreID:     storeID,
			PlateNumber: d.PlateNumber,
			Model:       d.Model,
			FuelType:    d.FuelType,
			CapacityKg:  d.CapacityKg,
			CreatedAt:   now,
		}
		if err := s.vehicles.Create(ctx, v); err != nil {
			return err
		}
		mu.Lock()
		byTemp[d.TempID] = v.ID
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return byTemp, nil
}

func (s *LogisticsSaver) createDrivers(ctx context.Context, companyID, storeID string, drafts []DriverDraft, vehicleIDs map[string]string) ([]string, error) {
	ids := make([]string, len(drafts))
	now := time.Now().UTC()
	err := runParallel(len(drafts), func(i int) error {
		d := drafts[i]
		dr := &entity.Driver{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			StoreID:       storeID,
			VehicleID:     vehicleIDs[d.VehicleTempID],
			Name:          d.Name,
			Phone:         d.Phone,
			LicenseNumber: d.LicenseNumber,
			CreatedAt:     now,
		}
		if err := s.drivers.Create(ctx, dr); err != nil {
			return err
		}
		ids[i] = dr.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
