package common

import (
	"context"
	"encoding/json"
	"log"
	"mrs/src/lib"
	"mrs/src/models"
	"mrs/src/types"
	"time"
)

const reportCacheTTL = 5 * time.Minute

type AdmissionsReport struct {
	From  time.Time      `json:"from"`
	To    time.Time      `json:"to"`
	Total int            `json:"total"`
	ByDay map[string]int `json:"by_day"`
}

type ReleasesReport struct {
	From   time.Time      `json:"from"`
	To     time.Time      `json:"to"`
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

type AverageDurationReport struct {
	ReleasedCount int     `json:"released_count"`
	AverageDays   float64 `json:"average_days"`
}

type UnitUsage struct {
	UnitID   uint    `json:"unit_id"`
	Code     string  `json:"code"`
	Capacity uint    `json:"capacity"`
	Occupied int     `json:"occupied"`
	Usage    float64 `json:"usage"`
}

type CapacityUsageReport struct {
	Units []UnitUsage `json:"units"`
}

type OccupancyReport struct {
	TotalCapacity int `json:"total_capacity"`
	Occupied      int `json:"occupied"`
	Free          int `json:"free"`
	Overdue       int `json:"overdue"`
}

type TrendsReport struct {
	From       time.Time      `json:"from"`
	To         time.Time      `json:"to"`
	Admissions map[string]int `json:"admissions"`
	Exits      map[string]int `json:"exits"`
}

type MovementsReport struct {
	From  time.Time      `json:"from"`
	To    time.Time      `json:"to"`
	Total int            `json:"total"`
	ByDay map[string]int `json:"by_day"`
}

type PendingExitsReport struct {
	Count  int           `json:"count"`
	Bodies []models.Body `json:"bodies"`
}

type DepartmentsReport struct {
	BySource map[string]int `json:"by_source"`
}

func reportWindow(filters *types.ReportQueryFilters) (time.Time, time.Time) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if filters != nil {
		if filters.From != "" {
			if t, err := time.Parse("2006-01-02", filters.From); err == nil {
				from = t
			}
		}
		if filters.To != "" {
			if t, err := time.Parse("2006-01-02", filters.To); err == nil {
				to = t.AddDate(0, 0, 1)
			}
		}
	}
	return from, to
}

func inWindow(t time.Time, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// Admissions counts bodies registered in the window, bucketed per day.
func (s *Service) Admissions(filters *types.ReportQueryFilters) (*AdmissionsReport, error) {
	from, to := reportWindow(filters)
	bodies, err := s.store.ListBodies()
	if err != nil {
		return nil, &PersistenceError{Op: "list bodies", Err: err}
	}
	report := &AdmissionsReport{From: from, To: to, ByDay: map[string]int{}}
	for _, body := range bodies {
		if inWindow(body.CreatedAt, from, to) {
			report.Total++
			report.ByDay[body.CreatedAt.Format("2006-01-02")]++
		}
	}
	return report, nil
}

// Releases counts exits in the window, bucketed by exit type.
func (s *Service) Releases(filters *types.ReportQueryFilters) (*ReleasesReport, error) {
	from, to := reportWindow(filters)
	exits, err := s.store.ListExits()
	if err != nil {
		return nil, &PersistenceError{Op: "list exits", Err: err}
	}
	report := &ReleasesReport{From: from, To: to, ByType: map[string]int{}}
	for _, exit := range exits {
		if inWindow(exit.ExitDate, from, to) {
			report.Total++
			report.ByType[string(exit.ExitType)]++
		}
	}
	return report, nil
}

// AverageDuration averages actual storage days over released allocations.
func (s *Service) AverageDuration() (*AverageDurationReport, error) {
	allocations, err := s.store.ListAllocations()
	if err != nil {
		return nil, &PersistenceError{Op: "list allocations", Err: err}
	}
	report := &AverageDurationReport{}
	sum := 0
	for _, a := range allocations {
		if a.Status == types.ALLOCATION_RELEASED && a.ActualDurationDays != nil {
			report.ReleasedCount++
			sum += *a.ActualDurationDays
		}
	}
	if report.ReleasedCount > 0 {
		report.AverageDays = float64(sum) / float64(report.ReleasedCount)
	}
	return report, nil
}

// CapacityUsage derives per-unit occupancy by counting active allocations;
// nothing is stored redundantly. Served from cache when fresh.
func (s *Service) CapacityUsage() (*CapacityUsageReport, error) {
	var cached CapacityUsageReport
	if readReportCache("reports:capacity-usage", &cached) {
		return &cached, nil
	}
	units, err := s.store.ListStorageUnits()
	if err != nil {
		return nil, &PersistenceError{Op: "list storage units", Err: err}
	}
	allocations, err := s.store.ListAllocations()
	if err != nil {
		return nil, &PersistenceError{Op: "list allocations", Err: err}
	}
	occupied := map[uint]int{}
	for _, a := range allocations {
		if a.Status == types.ALLOCATION_ACTIVE {
			occupied[a.StorageUnitID]++
		}
	}
	report := &CapacityUsageReport{Units: make([]UnitUsage, 0, len(units))}
	for _, unit := range units {
		usage := UnitUsage{UnitID: unit.ID, Code: unit.Code, Capacity: unit.Capacity, Occupied: occupied[unit.ID]}
		if unit.Capacity > 0 {
			usage.Usage = float64(usage.Occupied) / float64(unit.Capacity)
		}
		report.Units = append(report.Units, usage)
	}
	writeReportCache("reports:capacity-usage", report)
	return report, nil
}

// Occupancy summarizes the whole facility, including the overdue count.
func (s *Service) Occupancy() (*OccupancyReport, error) {
	var cached OccupancyReport
	if readReportCache("reports:occupancy", &cached) {
		return &cached, nil
	}
	units, err := s.store.ListStorageUnits()
	if err != nil {
		return nil, &PersistenceError{Op: "list storage units", Err: err}
	}
	allocations, err := s.store.ListAllocations()
	if err != nil {
		return nil, &PersistenceError{Op: "list allocations", Err: err}
	}
	report := &OccupancyReport{}
	for _, unit := range units {
		report.TotalCapacity += int(unit.Capacity)
	}
	for _, a := range allocations {
		if a.Status == types.ALLOCATION_ACTIVE {
			report.Occupied++
			if a.IsOverdue() {
				report.Overdue++
			}
		}
	}
	report.Free = report.TotalCapacity - report.Occupied
	writeReportCache("reports:occupancy", report)
	return report, nil
}

// Trends buckets admissions and exits per day over the window.
func (s *Service) Trends(filters *types.ReportQueryFilters) (*TrendsReport, error) {
	from, to := reportWindow(filters)
	bodies, err := s.store.ListBodies()
	if err != nil {
		return nil, &PersistenceError{Op: "list bodies", Err: err}
	}
	exits, err := s.store.ListExits()
	if err != nil {
		return nil, &PersistenceError{Op: "list exits", Err: err}
	}
	report := &TrendsReport{From: from, To: to, Admissions: map[string]int{}, Exits: map[string]int{}}
	for _, body := range bodies {
		if inWindow(body.CreatedAt, from, to) {
			report.Admissions[body.CreatedAt.Format("2006-01-02")]++
		}
	}
	for _, exit := range exits {
		if inWindow(exit.ExitDate, from, to) {
			report.Exits[exit.ExitDate.Format("2006-01-02")]++
		}
	}
	return report, nil
}

// Movements counts recorded transfers in the window, bucketed per day.
func (s *Service) Movements(filters *types.ReportQueryFilters) (*MovementsReport, error) {
	from, to := reportWindow(filters)
	movements, err := s.store.ListMovements()
	if err != nil {
		return nil, &PersistenceError{Op: "list movements", Err: err}
	}
	report := &MovementsReport{From: from, To: to, ByDay: map[string]int{}}
	for _, movement := range movements {
		if inWindow(movement.MovedAt, from, to) {
			report.Total++
			report.ByDay[movement.MovedAt.Format("2006-01-02")]++
		}
	}
	return report, nil
}

// PendingExits lists bodies still in the facility.
func (s *Service) PendingExits() (*PendingExitsReport, error) {
	bodies, err := s.store.ListBodies()
	if err != nil {
		return nil, &PersistenceError{Op: "list bodies", Err: err}
	}
	report := &PendingExitsReport{Bodies: []models.Body{}}
	for _, body := range bodies {
		if body.Status != types.BODY_RELEASED {
			report.Count++
			report.Bodies = append(report.Bodies, body)
		}
	}
	return report, nil
}

// Departments breaks admissions down by source ward/facility.
func (s *Service) Departments() (*DepartmentsReport, error) {
	bodies, err := s.store.ListBodies()
	if err != nil {
		return nil, &PersistenceError{Op: "list bodies", Err: err}
	}
	report := &DepartmentsReport{BySource: map[string]int{}}
	for _, body := range bodies {
		source := body.Source
		if source == "" {
			source = "unknown"
		}
		report.BySource[source]++
	}
	return report, nil
}

// OverdueAllocations backs both the report endpoint and the scheduled scan.
func (s *Service) OverdueAllocations() ([]models.StorageAllocation, error) {
	allocations, err := s.store.ListAllocations()
	if err != nil {
		return nil, &PersistenceError{Op: "list allocations", Err: err}
	}
	var overdue []models.StorageAllocation
	for _, a := range allocations {
		if a.Status == types.ALLOCATION_ACTIVE && a.IsOverdue() {
			overdue = append(overdue, a)
		}
	}
	return overdue, nil
}

func readReportCache(key string, out any) bool {
	rd := lib.GetRedisClient()
	if rd == nil {
		return false
	}
	val := rd.JSONGet(context.Background(), key).Val()
	if val == "" {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		log.Printf("[redis] Error decoding cached report [%s]: %s\n", key, err.Error())
		return false
	}
	return true
}

func writeReportCache(key string, report any) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if _, err := rd.JSONSet(context.Background(), key, "$", report).Result(); err != nil {
		log.Printf("[redis] Error caching report [%s]: %s\n", key, err.Error())
		return
	}
	rd.Expire(context.Background(), key, reportCacheTTL)
}

// InvalidateReportCaches drops the occupancy caches after a write.
func InvalidateReportCaches() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	keys := []string{"reports:capacity-usage", "reports:occupancy"}
	for _, key := range keys {
		if err := rd.Del(context.Background(), key).Err(); err != nil {
			log.Printf("[redis] Error invalidating [%s]: %s\n", key, err.Error())
		}
	}
}
