package donor

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/bayanihan-ph/relief-backend/internal/data/repos/testutil"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

func TestDonorRepoExists(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDonorRepo(db, testutil.Logger(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, tx, []*types.Donor{{
		ID:            uuid.New(),
		FirstName:     "Carlos",
		LastName:      "Tan",
		Email:         "carlos@example.com",
		DonationTypes: types.TagsJSON([]string{"Relief Goods", "Monetary Donations"}),
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := repo.Exists(ctx, tx, "carlos@example.com", "Carlos", "Tan")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatalf("Exists: expected true for matching triple")
	}

	exists, err = repo.Exists(ctx, tx, "carlos@example.com", "Carlos", "Uy")
	if err != nil {
		t.Fatalf("Exists (different last): %v", err)
	}
	if exists {
		t.Fatalf("Exists: all three fields must match")
	}
}
