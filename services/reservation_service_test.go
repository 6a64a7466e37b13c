package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"natura-salon-backend/models"
	"natura-salon-backend/repository"
)

type recordingNotifier struct {
	created chan models.Reservation
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, res models.Reservation) error {
	n.created <- res
	return nil
}

// racingRepository simulates a competing request that books the slot between
// FindBySlot and Create.
type racingRepository struct {
	repository.ReservationRepository
	createErr error
}

func (r *racingRepository) FindBySlot(context.Context, models.Slot) (*models.Reservation, error) {
	return nil, repository.ErrNotFound
}

func (r *racingRepository) Create(context.Context, *models.Reservation) error {
	return r.createErr
}

func newTestService(repo repository.ReservationRepository, opts ...Option) *ReservationService {
	opts = append([]Option{WithClock(func() time.Time { return today })}, opts...)
	return NewReservationService(repo, defaultRules, jst, opts...)
}

func TestCreateThenDuplicateConflicts(t *testing.T) {
	svc := newTestService(repository.NewMemoryReservationRepository())
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("id not assigned")
	}

	_, err = svc.Create(ctx, validInput())
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second create: err = %v, want ConflictError", err)
	}
	if conflict.Slot != (models.Slot{Date: "2030-01-01", Time: "10:00"}) {
		t.Fatalf("conflict slot = %+v", conflict.Slot)
	}

	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("first reservation lost: %v", err)
	}
	if got.Name != "Taro" {
		t.Fatalf("got %+v", got)
	}
}

func TestCreateConflictNormalizesTime(t *testing.T) {
	svc := newTestService(repository.NewMemoryReservationRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatal(err)
	}

	in := validInput()
	in.PreferredTime = "10:00:00"
	var conflict *ConflictError
	if _, err := svc.Create(ctx, in); !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCreateInvalidReturnsValidationError(t *testing.T) {
	repo := repository.NewMemoryReservationRepository()
	svc := newTestService(repo)

	in := validInput()
	in.Phone = "abc"
	_, err := svc.Create(context.Background(), in)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields["phone"]; !ok {
		t.Fatalf("fields = %v", verr.Fields)
	}

	all, _ := repo.List(context.Background(), repository.ListFilter{})
	if len(all) != 0 {
		t.Fatalf("invalid reservation persisted: %+v", all)
	}
}

func TestCreateConstraintViolationIsConflict(t *testing.T) {
	svc := newTestService(&racingRepository{createErr: repository.ErrSlotTaken})

	_, err := svc.Create(context.Background(), validInput())
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCreateStorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&racingRepository{createErr: boom})

	_, err := svc.Create(context.Background(), validInput())
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want StorageError", err)
	}
	if !errors.Is(err, boom) {
		t.Fatal("storage error does not wrap cause")
	}
}

func TestCreateConcurrentSameSlot(t *testing.T) {
	svc := newTestService(repository.NewMemoryReservationRepository())
	ctx := context.Background()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, validInput())
			var conflict *ConflictError
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.As(err, &conflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || conflicts != workers-1 {
		t.Fatalf("created = %d, conflicts = %d", created, conflicts)
	}
}

func TestCreateNotifies(t *testing.T) {
	notifier := &recordingNotifier{created: make(chan models.Reservation, 1)}
	svc := newTestService(repository.NewMemoryReservationRepository(), WithNotifier(notifier))

	res, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-notifier.created:
		if got.ID != res.ID {
			t.Fatalf("notified %d, want %d", got.ID, res.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier not called")
	}
}

func TestListValidatesDate(t *testing.T) {
	svc := newTestService(repository.NewMemoryReservationRepository())

	_, err := svc.List(context.Background(), "01/01/2030")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestDeleteRemovesReservation(t *testing.T) {
	svc := newTestService(repository.NewMemoryReservationRepository())
	ctx := context.Background()

	if err := svc.Delete(ctx, 42); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("delete missing: err = %v", err)
	}

	res, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, res.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, res.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("get after delete: err = %v", err)
	}
	list, err := svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("list after delete: %+v", list)
	}
}
