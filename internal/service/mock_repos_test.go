package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raja-digital/config"
	"raja-digital/internal/model"
	"raja-digital/internal/repository"
	"raja-digital/pkg/redis"
)

// mockStore in-memory tables shared by the mock repositories, so that
// cross-table effects (audit → mismatch_count) behave like the database.
type mockStore struct {
	mu       sync.Mutex
	users    map[string]*model.User
	drivers  map[string]*model.Driver
	sij      map[string]*model.SIJTransaction
	ritase   map[int64]*model.Ritase
	audit    map[repositoryKey]*model.AuditLog
	absences map[repositoryKey]string
	nextID   int64

	failWith error // returned by every read when set
}

type repositoryKey struct{ driverID, date string }

func newMockStore() *mockStore {
	return &mockStore{
		users:    make(map[string]*model.User),
		drivers:  make(map[string]*model.Driver),
		sij:      make(map[string]*model.SIJTransaction),
		ritase:   make(map[int64]*model.Ritase),
		audit:    make(map[repositoryKey]*model.AuditLog),
		absences: make(map[repositoryKey]string),
	}
}

// repo wires every mock repository into the aggregate.
func (s *mockStore) repo() *repository.Repository {
	return &repository.Repository{
		User:    &mockUserRepo{s},
		Driver:  &mockDriverRepo{s},
		SIJ:     &mockSIJRepo{s},
		Ritase:  &mockRitaseRepo{s},
		Audit:   &mockAuditRepo{s},
		Absence: &mockAbsenceRepo{s},
		Report:  &mockReportRepo{s},
	}
}

func (s *mockStore) addDriver(id, name, category, status string) *model.Driver {
	d := &model.Driver{DriverID: id, Name: name, Plate: "B " + id, Category: category, Status: status}
	s.drivers[id] = d
	return d
}

func inRange(date, from, to string) bool {
	return (from == "" || date >= from) && (to == "" || date <= to)
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *mockStore }

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[u.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.s.users[u.UserID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByIDOrEmail(_ context.Context, id, email string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.UserID == id || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[u.UserID] = u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []model.User
	for _, u := range m.s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role < out[j].Role
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return int64(len(m.s.users)), nil
}

// ── Mock DriverRepository ──

type mockDriverRepo struct{ s *mockStore }

func (m *mockDriverRepo) Create(_ context.Context, d *model.Driver) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.drivers[d.DriverID]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.s.drivers[d.DriverID] = d
	return nil
}

func (m *mockDriverRepo) CreateBatch(ctx context.Context, drivers []model.Driver) error {
	for i := range drivers {
		if err := m.Create(ctx, &drivers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockDriverRepo) GetByID(_ context.Context, id string) (*model.Driver, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWith != nil {
		return nil, m.s.failWith
	}
	if d, ok := m.s.drivers[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriverRepo) sorted(keep func(*model.Driver) bool) []model.Driver {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []model.Driver{}
	for _, d := range m.s.drivers {
		if keep(d) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *mockDriverRepo) List(_ context.Context, f repository.DriverFilter) ([]model.Driver, error) {
	q := strings.ToLower(f.Search)
	return m.sorted(func(d *model.Driver) bool {
		if f.Status != "" && d.Status != f.Status {
			return false
		}
		return q == "" || strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.DriverID), q)
	}), nil
}

func (m *mockDriverRepo) ListByStatus(_ context.Context, status string) ([]model.Driver, error) {
	return m.sorted(func(d *model.Driver) bool { return d.Status == status }), nil
}

func (m *mockDriverRepo) ListAll(_ context.Context) ([]model.Driver, error) {
	if m.s.failWith != nil {
		return nil, m.s.failWith
	}
	return m.sorted(func(*model.Driver) bool { return true }), nil
}

func (m *mockDriverRepo) ListMismatch(_ context.Context, limit int) ([]model.Driver, error) {
	out := m.sorted(func(d *model.Driver) bool { return d.MismatchCount > 0 })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockDriverRepo) Update(_ context.Context, d *model.Driver) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.drivers[d.DriverID] = d
	return nil
}

func (m *mockDriverRepo) UpdateStatus(_ context.Context, id, status string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if d, ok := m.s.drivers[id]; ok {
		d.Status = status
	}
	return nil
}

func (m *mockDriverRepo) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.drivers, id)
	return nil
}

func (m *mockDriverRepo) IncrementSIJMonth(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if d, ok := m.s.drivers[id]; ok {
		d.TotalSIJMonth++
	}
	return nil
}

func (m *mockDriverRepo) RefreshMismatchCount(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	d, ok := m.s.drivers[id]
	if !ok {
		return nil
	}
	n := 0
	for k, a := range m.s.audit {
		if k.driverID == id && a.Mismatch {
			n++
		}
	}
	d.MismatchCount = n
	return nil
}

func (m *mockDriverRepo) CountByStatus(_ context.Context) (*repository.DriverStatusCounts, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWith != nil {
		return nil, m.s.failWith
	}
	c := &repository.DriverStatusCounts{Total: int64(len(m.s.drivers))}
	for _, d := range m.s.drivers {
		switch d.Status {
		case model.DriverActive:
			c.Active++
		case model.DriverSuspend:
			c.Suspended++
		}
	}
	return c, nil
}

// ── Mock SIJRepository ──

type mockSIJRepo struct{ s *mockStore }

func (m *mockSIJRepo) Create(_ context.Context, tx *model.SIJTransaction) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.sij[tx.TransactionID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, t := range m.s.sij {
		if t.Status == model.SIJActive && tx.Status == model.SIJActive &&
			t.DriverID == tx.DriverID && t.Date == tx.Date {
			return gorm.ErrDuplicatedKey
		}
	}
	m.s.sij[tx.TransactionID] = tx
	return nil
}

func (m *mockSIJRepo) GetByID(_ context.Context, id string) (*model.SIJTransaction, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if t, ok := m.s.sij[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSIJRepo) GetWithPlate(ctx context.Context, id string) (*model.SIJTransaction, error) {
	t, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if d, ok := m.s.drivers[t.DriverID]; ok {
		t.Plate = d.Plate
	}
	return t, nil
}

func (m *mockSIJRepo) List(_ context.Context, f repository.SIJFilter) ([]model.SIJTransaction, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []model.SIJTransaction{}
	for _, t := range m.s.sij {
		if !f.IncludeVoid && t.Status != model.SIJActive {
			continue
		}
		if f.Date != "" && t.Date != f.Date {
			continue
		}
		if !inRange(t.Date, f.DateFrom, f.DateTo) {
			continue
		}
		if f.Shift != "" && t.Shift != f.Shift {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *mockSIJRepo) ExistsActive(_ context.Context, driverID, date string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, t := range m.s.sij {
		if t.DriverID == driverID && t.Date == date && t.Status == model.SIJActive {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSIJRepo) Update(_ context.Context, tx *model.SIJTransaction) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.sij[tx.TransactionID] = tx
	return nil
}

func (m *mockSIJRepo) UpdateStatus(_ context.Context, id, status string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if t, ok := m.s.sij[id]; ok {
		t.Status = status
	}
	return nil
}

func (m *mockSIJRepo) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.sij, id)
	return nil
}

func (m *mockSIJRepo) CountActiveByDriverDate(_ context.Context, from, to string) ([]repository.DayCount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	seen := make(map[repositoryKey]bool)
	var out []repository.DayCount
	for _, t := range m.s.sij {
		k := repositoryKey{t.DriverID, t.Date}
		if t.Status != model.SIJActive || !inRange(t.Date, from, to) || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, repository.DayCount{DriverID: t.DriverID, Date: t.Date, Count: 1})
	}
	return out, nil
}

func (m *mockSIJRepo) Totals(_ context.Context, from, to, shift string) (*repository.SIJTotals, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failWith != nil {
		return nil, m.s.failWith
	}
	tot := &repository.SIJTotals{}
	for _, t := range m.s.sij {
		if t.Status != model.SIJActive || !inRange(t.Date, from, to) {
			continue
		}
		if shift != "" && t.Shift != shift {
			continue
		}
		tot.Count++
		tot.Revenue += t.Amount
	}
	return tot, nil
}

// ── Mock RitaseRepository ──

type mockRitaseRepo struct{ s *mockStore }

func (m *mockRitaseRepo) Create(_ context.Context, rt *model.Ritase) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.nextID++
	rt.ID = m.s.nextID
	m.s.ritase[rt.ID] = rt
	return nil
}

func (m *mockRitaseRepo) GetByID(_ context.Context, id int64) (*model.Ritase, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if r, ok := m.s.ritase[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRitaseRepo) List(_ context.Context, f repository.RitaseFilter) ([]model.Ritase, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []model.Ritase{}
	for _, r := range m.s.ritase {
		if inRange(r.Date, f.DateFrom, f.DateTo) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRitaseRepo) Update(_ context.Context, rt *model.Ritase) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.ritase[rt.ID] = rt
	return nil
}

func (m *mockRitaseRepo) Delete(_ context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.ritase, id)
	return nil
}

func (m *mockRitaseRepo) CountByDriverDate(_ context.Context, from, to string) ([]repository.DayCount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	counts := make(map[repositoryKey]int)
	for _, r := range m.s.ritase {
		if inRange(r.Date, from, to) {
			counts[repositoryKey{r.DriverID, r.Date}]++
		}
	}
	var out []repository.DayCount
	for k, n := range counts {
		out = append(out, repository.DayCount{DriverID: k.driverID, Date: k.date, Count: n})
	}
	return out, nil
}

func (m *mockRitaseRepo) CountOnDate(_ context.Context, date string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for _, r := range m.s.ritase {
		if r.Date == date {
			n++
		}
	}
	return n, nil
}

func (m *mockRitaseRepo) Ranking(_ context.Context, from, to string, limit int) ([]repository.TripRank, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	byDriver := make(map[string]*repository.TripRank)
	for _, r := range m.s.ritase {
		if !inRange(r.Date, from, to) {
			continue
		}
		tr, ok := byDriver[r.DriverID]
		if !ok {
			tr = &repository.TripRank{DriverID: r.DriverID, DriverName: r.DriverName}
			byDriver[r.DriverID] = tr
		}
		tr.TripCount++
	}
	out := []repository.TripRank{}
	for _, tr := range byDriver {
		out = append(out, *tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TripCount > out[j].TripCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── Mock AuditRepository ──

type mockAuditRepo struct{ s *mockStore }

func (m *mockAuditRepo) row(date, driverID string) *model.AuditLog {
	k := repositoryKey{driverID, date}
	a, ok := m.s.audit[k]
	if !ok {
		a = &model.AuditLog{Date: date, DriverID: driverID}
		m.s.audit[k] = a
	}
	return a
}

func (m *mockAuditRepo) MarkSIJ(_ context.Context, date, driverID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a := m.row(date, driverID)
	a.HasSIJ = true
	a.ComputeMismatch()
	return nil
}

func (m *mockAuditRepo) MarkTrip(_ context.Context, date, driverID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a := m.row(date, driverID)
	a.HasTrip = true
	a.ComputeMismatch()
	return nil
}

func (m *mockAuditRepo) ClearSIJ(_ context.Context, date, driverID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if a, ok := m.s.audit[repositoryKey{driverID, date}]; ok {
		a.HasSIJ = false
		a.ComputeMismatch()
	}
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, f repository.AuditFilter) ([]model.AuditLog, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []model.AuditLog{}
	for _, a := range m.s.audit {
		if f.Date != "" && a.Date != f.Date {
			continue
		}
		if f.Search != "" && !strings.Contains(a.DriverID, f.Search) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].DriverID < out[j].DriverID
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// ── Mock AbsenceRepository ──

type mockAbsenceRepo struct{ s *mockStore }

func (m *mockAbsenceRepo) ListRange(_ context.Context, from, to string) ([]model.DriverAbsence, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []model.DriverAbsence
	for k, reason := range m.s.absences {
		if inRange(k.date, from, to) {
			out = append(out, model.DriverAbsence{DriverID: k.driverID, Date: k.date, Reason: reason})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].DriverID < out[j].DriverID
	})
	return out, nil
}

func (m *mockAbsenceRepo) Upsert(_ context.Context, driverID, date, reason string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.absences[repositoryKey{driverID, date}] = reason
	return nil
}

func (m *mockAbsenceRepo) Delete(_ context.Context, driverID, date string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.absences, repositoryKey{driverID, date})
	return nil
}

// ── Mock ReportRepository ──

type mockReportRepo struct{ s *mockStore }

func (m *mockReportRepo) group(keep func(*model.SIJTransaction) bool, label func(*model.SIJTransaction) string) []repository.RevenueRow {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	rows := make(map[string]*repository.RevenueRow)
	for _, t := range m.s.sij {
		if t.Status != model.SIJActive || !keep(t) {
			continue
		}
		l := label(t)
		r, ok := rows[l]
		if !ok {
			r = &repository.RevenueRow{PeriodLabel: l}
			rows[l] = r
		}
		if t.Category == model.CategoryPremium {
			r.QtyPremium++
			r.RevenuePremium += t.Amount
		} else {
			r.QtyStandar++
			r.RevenueStandar += t.Amount
		}
		r.TotalRevenue += t.Amount
	}
	var out []repository.RevenueRow
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodLabel < out[j].PeriodLabel })
	return out
}

func (m *mockReportRepo) RevenueByHour(_ context.Context, date string) ([]repository.RevenueRow, error) {
	return m.group(
		func(t *model.SIJTransaction) bool { return t.Date == date },
		func(t *model.SIJTransaction) string { return t.Time[:2] + ":00" },
	), nil
}

func (m *mockReportRepo) RevenueByDate(_ context.Context, from, to string) ([]repository.RevenueRow, error) {
	return m.group(
		func(t *model.SIJTransaction) bool { return inRange(t.Date, from, to) },
		func(t *model.SIJTransaction) string { return t.Date },
	), nil
}

func (m *mockReportRepo) DailyTotals(_ context.Context, from, to string) ([]repository.DailyTotal, error) {
	rows, _ := m.RevenueByDate(context.Background(), from, to)
	var out []repository.DailyTotal
	for _, r := range rows {
		out = append(out, repository.DailyTotal{
			Date:    r.PeriodLabel,
			Count:   r.QtyStandar + r.QtyPremium,
			Revenue: r.TotalRevenue,
		})
	}
	return out, nil
}

// ── Mock cache ──

type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
	failGet error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dst interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet != nil {
		return c.failGet
	}
	b, ok := c.data[key]
	if !ok {
		return redis.ErrCacheMiss
	}
	return json.Unmarshal(b, dst)
}

func (c *mockCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mockCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type mockBlacklist struct {
	jti string
	ttl time.Duration
}

func (b *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	b.jti, b.ttl = jti, ttl
	return nil
}

// ── fixtures ──

var errBoom = errors.New("boom")

var jakarta = mustLoad("Asia/Jakarta")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// freezeClock pins nowFunc for the duration of a test.
func freezeClock(t interface{ Cleanup(func()) }, at time.Time) {
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

func testBusinessConfig() *config.BusinessConfig {
	return &config.BusinessConfig{
		Timezone:       "Asia/Jakarta",
		VoidWindow:     24 * time.Hour,
		SIJAdvanceDays: 7,
		DefaultSheets:  5,
		WeeklyCacheTTL: 30 * time.Second,
	}
}

func testClock() Clock { return NewClock(jakarta) }

func nopLogger() *zap.Logger { return zap.NewNop() }
