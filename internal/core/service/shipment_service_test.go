package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/ports"
)

type stubShipmentRepo struct {
	mu    sync.Mutex
	order []string
	byID  map[string]*domain.Shipment
}

func newStubShipmentRepo() *stubShipmentRepo {
	return &stubShipmentRepo{byID: make(map[string]*domain.Shipment)}
}

func cloneShipment(s *domain.Shipment) *domain.Shipment {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Events = append([]domain.ShipmentEvent(nil), s.Events...)
	return &clone
}

func (r *stubShipmentRepo) Insert(_ context.Context, s *domain.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[s.ShipmentID]; exists {
		return &domain.ConflictError{Field: "shipment_id"}
	}
	r.order = append(r.order, s.ShipmentID)
	r.byID[s.ShipmentID] = cloneShipment(s)
	return nil
}

func (r *stubShipmentRepo) FindByShipmentID(_ context.Context, shipmentID string) (*domain.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[shipmentID]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	return cloneShipment(s), nil
}

func (r *stubShipmentRepo) ApplyStatus(_ context.Context, shipmentID string, status domain.ShipmentStatus, event *domain.ShipmentEvent) (*domain.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[shipmentID]
	if !ok {
		return nil, domain.ErrShipmentNotFound
	}
	s.Status = status
	if event != nil {
		s.Events = append(s.Events, *event)
	}
	return cloneShipment(s), nil
}

func (r *stubShipmentRepo) AppendEvent(_ context.Context, shipmentID string, event *domain.ShipmentEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[shipmentID]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	s.Events = append(s.Events, *event)
	return nil
}

func (r *stubShipmentRepo) List(_ context.Context, page, limit int) ([]domain.Shipment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.order))
	start := (page - 1) * limit
	if start >= len(r.order) {
		return []domain.Shipment{}, total, nil
	}
	end := start + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	items := make([]domain.Shipment, 0, end-start)
	for _, id := range r.order[start:end] {
		items = append(items, *cloneShipment(r.byID[id]))
	}
	return items, total, nil
}

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) addUser(id string, companyID string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := &domain.User{ID: id, Username: id, Role: domain.RoleCompanyUser, CompanyID: companyID}
	r.byID[id] = u
	return cloneUser(u)
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, &domain.ConflictError{Field: "username"}
		}
		if u.Email != "" && existing.Email == u.Email {
			return nil, &domain.ConflictError{Field: "email"}
		}
	}
	r.nextID++
	copy := cloneUser(u)
	copy.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, *cloneUser(u))
	}
	return users, int64(len(users)), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.CompanyID != nil {
		u.CompanyID = *patch.CompanyID
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubIdemStore struct {
	mu   sync.Mutex
	seen map[string]string
}

func newStubIdemStore() *stubIdemStore {
	return &stubIdemStore{seen: make(map[string]string)}
}

func (s *stubIdemStore) Lookup(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], nil
}

func (s *stubIdemStore) Remember(_ context.Context, key, shipmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[key] = shipmentID
	return nil
}

func newShipmentService(shipments *stubShipmentRepo, users *stubUserRepo, idem IdempotencyStore) *ShipmentService {
	return NewShipmentService(shipments, users, idem, zerolog.Nop())
}

func TestShipmentService_Create_StartsPending(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	svc := newShipmentService(repo, users, nil)

	res, err := svc.Create(context.Background(), ports.CreateShipmentInput{
		TrackingNumber:  "TRK-1",
		SenderAddress:   "1 Origin St",
		ReceiverAddress: "2 Destination Ave",
		Weight:          12.5,
		CreatedByID:     "user_1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	s := res.Shipment
	if s.Status != domain.StatusPending {
		t.Fatalf("expected status PENDING, got %s", s.Status)
	}
	if s.Events == nil || len(s.Events) != 0 {
		t.Fatalf("expected empty event list, got %v", s.Events)
	}
	if s.ShipmentID == "" {
		t.Fatalf("expected generated shipment id")
	}
	if res.AlreadyExisted {
		t.Fatalf("fresh creation must not report replay")
	}
}

func TestShipmentService_Create_UniqueIDsUnderConcurrency(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	svc := newShipmentService(repo, users, nil)

	const n = 1000
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "user_1"})
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			ids <- res.Shipment.ShipmentID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate shipment id generated: %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestShipmentService_Create_IdempotentReplay(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	idem := newStubIdemStore()
	svc := newShipmentService(repo, users, idem)

	first, err := svc.Create(context.Background(), ports.CreateShipmentInput{
		CreatedByID:    "user_1",
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second, err := svc.Create(context.Background(), ports.CreateShipmentInput{
		CreatedByID:    "user_1",
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("replayed create failed: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatalf("expected replay to be flagged")
	}
	if second.Shipment.ShipmentID != first.Shipment.ShipmentID {
		t.Fatalf("replay returned a different shipment: %s vs %s",
			second.Shipment.ShipmentID, first.Shipment.ShipmentID)
	}
	if len(repo.order) != 1 {
		t.Fatalf("replay must not create a second shipment, repo has %d", len(repo.order))
	}
}

func TestShipmentService_UpdateStatus_AppendsMatchingEvent(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	users.addUser("creator", "acme")
	users.addUser("actor", "acme")
	svc := newShipmentService(repo, users, nil)

	created, err := svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "creator"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	id := created.Shipment.ShipmentID

	transitions := []struct {
		status domain.ShipmentStatus
		event  domain.ShipmentEventType
	}{
		{domain.StatusPickedUp, domain.EventPickedUp},
		{domain.StatusInTransit, domain.EventInTransit},
		{domain.StatusArrivedAtPort, domain.EventArrivedAtPort},
		{domain.StatusDelivered, domain.EventDelivered},
	}

	for i, tr := range transitions {
		updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
			ShipmentID:   id,
			Status:       tr.status,
			ActingUserID: "actor",
		})
		if err != nil {
			t.Fatalf("transition to %s failed: %v", tr.status, err)
		}
		if updated.Status != tr.status {
			t.Fatalf("expected status %s, got %s", tr.status, updated.Status)
		}
		if len(updated.Events) != i+1 {
			t.Fatalf("expected exactly %d events after %d transitions, got %d",
				i+1, i+1, len(updated.Events))
		}
		last := updated.Events[len(updated.Events)-1]
		if last.Event != tr.event {
			t.Fatalf("expected event %s, got %s", tr.event, last.Event)
		}
		if last.ID == "" || last.Timestamp.IsZero() {
			t.Fatalf("event missing id or timestamp: %+v", last)
		}
	}
}

func TestShipmentService_UpdateStatus_PendingProducesNoEvent(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	users.addUser("creator", "acme")
	svc := newShipmentService(repo, users, nil)

	created, _ := svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "creator"})
	id := created.Shipment.ShipmentID

	if _, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ShipmentID: id, Status: domain.StatusDelivered, ActingUserID: "creator",
	}); err != nil {
		t.Fatalf("forward transition failed: %v", err)
	}

	// Rolling back to PENDING is allowed but records no event.
	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ShipmentID: id, Status: domain.StatusPending, ActingUserID: "creator",
	})
	if err != nil {
		t.Fatalf("rollback to PENDING failed: %v", err)
	}
	if updated.Status != domain.StatusPending {
		t.Fatalf("expected PENDING, got %s", updated.Status)
	}
	if len(updated.Events) != 1 {
		t.Fatalf("PENDING must not add an event, got %d events", len(updated.Events))
	}
}

func TestShipmentService_UpdateStatus_CrossCompanyForbidden(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	users.addUser("creator", "acme")
	users.addUser("outsider", "globex")
	svc := newShipmentService(repo, users, nil)

	created, _ := svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "creator"})
	id := created.Shipment.ShipmentID

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ShipmentID: id, Status: domain.StatusPickedUp, ActingUserID: "outsider",
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The shipment must be untouched by the rejected attempt.
	after, _ := svc.GetDetails(context.Background(), id)
	if after.Status != domain.StatusPending {
		t.Fatalf("rejected update changed status to %s", after.Status)
	}
	if len(after.Events) != 0 {
		t.Fatalf("rejected update appended events: %v", after.Events)
	}
}

func TestShipmentService_UpdateStatus_MissingCreatorForbidden(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	users.addUser("actor", "acme")
	svc := newShipmentService(repo, users, nil)

	created, _ := svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "ghost"})
	id := created.Shipment.ShipmentID

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ShipmentID: id, Status: domain.StatusPickedUp, ActingUserID: "actor",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden when creator cannot be resolved, got %v", err)
	}
}

func TestShipmentService_UpdateStatus_UnknownShipment(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	users.addUser("actor", "acme")
	svc := newShipmentService(repo, users, nil)

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{
		ShipmentID: "SHP-missing", Status: domain.StatusPickedUp, ActingUserID: "actor",
	})
	if err != domain.ErrShipmentNotFound {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestShipmentService_AddEvent_PreservesOrder(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	svc := newShipmentService(repo, users, nil)

	created, _ := svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "creator"})
	id := created.Shipment.ShipmentID

	locations := []string{"Shenzhen", "Singapore", "Rotterdam"}
	for _, loc := range locations {
		if _, err := svc.AddEvent(context.Background(), ports.AddEventInput{
			ShipmentID: id,
			Event:      domain.EventInTransit,
			Location:   loc,
		}); err != nil {
			t.Fatalf("AddEvent(%s) failed: %v", loc, err)
		}
	}

	s, err := svc.GetDetails(context.Background(), id)
	if err != nil {
		t.Fatalf("GetDetails failed: %v", err)
	}
	if len(s.Events) != len(locations) {
		t.Fatalf("expected %d events, got %d", len(locations), len(s.Events))
	}
	for i, loc := range locations {
		if s.Events[i].Location != loc {
			t.Fatalf("event %d out of order: expected %s, got %s", i, loc, s.Events[i].Location)
		}
	}
}

func TestShipmentService_AddEvent_UnknownShipment(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	svc := newShipmentService(repo, users, nil)

	_, err := svc.AddEvent(context.Background(), ports.AddEventInput{
		ShipmentID: "SHP-missing", Event: domain.EventPickedUp,
	})
	if err != domain.ErrShipmentNotFound {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestShipmentService_List_Pagination(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	svc := newShipmentService(repo, users, nil)

	for i := 0; i < 15; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "creator"}); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	res, err := svc.List(context.Background(), ports.ListShipmentsInput{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(res.Items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(res.Items))
	}
	if res.Total != 15 {
		t.Fatalf("expected total 15, got %d", res.Total)
	}
	if res.TotalPages != 2 {
		t.Fatalf("expected 2 total pages, got %d", res.TotalPages)
	}
}

func TestShipmentService_List_Defaults(t *testing.T) {
	repo := newStubShipmentRepo()
	users := newStubUserRepo()
	svc := newShipmentService(repo, users, nil)

	for i := 0; i < 12; i++ {
		_, _ = svc.Create(context.Background(), ports.CreateShipmentInput{CreatedByID: "creator"})
	}

	res, err := svc.List(context.Background(), ports.ListShipmentsInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if res.Page != 1 || res.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got page=%d limit=%d", res.Page, res.Limit)
	}
	if len(res.Items) != 10 {
		t.Fatalf("expected 10 items with default limit, got %d", len(res.Items))
	}
}
