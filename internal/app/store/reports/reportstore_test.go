package reportstore_test

import (
	"errors"
	"testing"

	reportstore "github.com/MGumpen/aor/internal/app/store/reports"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/MGumpen/aor/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reportstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep, err := store.Create(ctx, models.Report{
		UserID:     primitive.NewObjectID(),
		ObstacleID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if rep.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if rep.StatusID != models.StatusPending {
		t.Errorf("StatusID = %d, want Pending (%d)", rep.StatusID, models.StatusPending)
	}
	if rep.Version != 1 {
		t.Errorf("Version = %d, want 1", rep.Version)
	}
	if rep.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_ApproveAndReject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reportstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep, err := store.Create(ctx, models.Report{
		UserID:     primitive.NewObjectID(),
		ObstacleID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Approve(ctx, rep.ID, rep.Version); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	got, err := store.GetByID(ctx, rep.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.StatusID != models.StatusApproved {
		t.Errorf("StatusID = %d, want Approved (%d)", got.StatusID, models.StatusApproved)
	}
	if got.Version != 2 {
		t.Errorf("Version = %d, want 2 after transition", got.Version)
	}

	if err := store.Reject(ctx, rep.ID, got.Version); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	got, _ = store.GetByID(ctx, rep.ID)
	if got.StatusID != models.StatusRejected {
		t.Errorf("StatusID = %d, want Rejected (%d)", got.StatusID, models.StatusRejected)
	}
}

func TestStore_StaleVersionConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reportstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep, err := store.Create(ctx, models.Report{
		UserID:     primitive.NewObjectID(),
		ObstacleID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Two reviewers both read version 1; the first approves.
	if err := store.Approve(ctx, rep.ID, rep.Version); err != nil {
		t.Fatalf("first Approve failed: %v", err)
	}

	// The second acts on the stale version and must lose.
	err = store.Reject(ctx, rep.ID, rep.Version)
	if !errors.Is(err, reportstore.ErrVersionConflict) {
		t.Fatalf("stale update: got %v, want ErrVersionConflict", err)
	}

	// The first transition stands.
	got, _ := store.GetByID(ctx, rep.ID)
	if got.StatusID != models.StatusApproved {
		t.Errorf("StatusID = %d, want Approved to stand", got.StatusID)
	}
}

func TestStore_SetStatusMissingReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reportstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Approve(ctx, primitive.NewObjectID(), 1)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing report: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestStore_AssignAndUnassign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reportstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rep, err := store.Create(ctx, models.Report{
		UserID:     primitive.NewObjectID(),
		ObstacleID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	registrar := primitive.NewObjectID()
	if err := store.Assign(ctx, rep.ID, rep.Version, &registrar); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, _ := store.GetByID(ctx, rep.ID)
	if got.AssignedToID == nil || *got.AssignedToID != registrar {
		t.Fatalf("AssignedToID = %v, want %v", got.AssignedToID, registrar)
	}

	n, err := store.AssignedPendingCount(ctx, registrar)
	if err != nil || n != 1 {
		t.Errorf("AssignedPendingCount = %d (%v), want 1", n, err)
	}
	n, err = store.UnassignedPendingCount(ctx)
	if err != nil || n != 0 {
		t.Errorf("UnassignedPendingCount = %d (%v), want 0", n, err)
	}

	if err := store.Assign(ctx, rep.ID, got.Version, nil); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	got, _ = store.GetByID(ctx, rep.ID)
	if got.AssignedToID != nil {
		t.Errorf("AssignedToID = %v, want cleared", got.AssignedToID)
	}
	n, _ = store.UnassignedPendingCount(ctx)
	if n != 1 {
		t.Errorf("UnassignedPendingCount = %d, want 1 after unassign", n)
	}
}

func TestStore_SoftDeletedHiddenFromListings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := reportstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := primitive.NewObjectID()
	fx.CreateReport(ctx, user, primitive.NewObjectID(), models.StatusPending)
	deleted := fx.CreateReport(ctx, user, primitive.NewObjectID(), models.StatusDeleted)

	all, err := store.AllVisible(ctx)
	if err != nil {
		t.Fatalf("AllVisible failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("AllVisible returned %d reports, want 1", len(all))
	}
	if all[0].ID == deleted.ID {
		t.Error("deleted report leaked into listing")
	}

	mine, err := store.ByUser(ctx, user)
	if err != nil {
		t.Fatalf("ByUser failed: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("ByUser returned %d reports, want 1", len(mine))
	}
}
