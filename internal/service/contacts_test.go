package service

import (
	"context"
	"errors"
	"testing"

	"messenger/internal/dto"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, svc *Service, phone, name string) dto.UserView {
	t.Helper()
	user, err := svc.SignIn(context.Background(), phone, name)
	if err != nil {
		t.Fatalf("seed user %s: %v", phone, err)
	}
	return user
}

func TestAddContactIsIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, svc, "+15550000001", "Alice")
	bob := seedUser(t, svc, "+15550000002", "Bob")
	aliceID := uuid.MustParse(alice.ID)

	if err := svc.AddContact(ctx, aliceID, bob.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.AddContact(ctx, aliceID, bob.ID); err != nil {
		t.Fatalf("duplicate add must be a silent success: %v", err)
	}

	contacts, err := svc.ListContacts(ctx, aliceID)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0].ID != bob.ID {
		t.Fatalf("expected exactly one edge to bob, got %+v", contacts)
	}
}

func TestContactEdgesAreDirected(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, svc, "+15550000001", "Alice")
	bob := seedUser(t, svc, "+15550000002", "Bob")

	if err := svc.AddContact(ctx, uuid.MustParse(alice.ID), bob.ID); err != nil {
		t.Fatalf("add: %v", err)
	}

	aContacts, err := svc.ListContacts(ctx, uuid.MustParse(alice.ID))
	if err != nil {
		t.Fatalf("list for alice: %v", err)
	}
	if len(aContacts) != 1 || aContacts[0].ID != bob.ID {
		t.Fatalf("expected alice to see bob, got %+v", aContacts)
	}

	bContacts, err := svc.ListContacts(ctx, uuid.MustParse(bob.ID))
	if err != nil {
		t.Fatalf("list for bob: %v", err)
	}
	if len(bContacts) != 0 {
		t.Fatalf("bob never added alice, expected empty list, got %+v", bContacts)
	}
}

func TestListContactsOrdersByName(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	owner := seedUser(t, svc, "+15550000001", "Owner")
	carol := seedUser(t, svc, "+15550000003", "Carol")
	bob := seedUser(t, svc, "+15550000002", "Bob")
	ownerID := uuid.MustParse(owner.ID)

	if err := svc.AddContact(ctx, ownerID, carol.ID); err != nil {
		t.Fatalf("add carol: %v", err)
	}
	if err := svc.AddContact(ctx, ownerID, bob.ID); err != nil {
		t.Fatalf("add bob: %v", err)
	}

	contacts, err := svc.ListContacts(ctx, ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(contacts) != 2 || contacts[0].Name != "Bob" || contacts[1].Name != "Carol" {
		t.Fatalf("expected name-ascending order, got %+v", contacts)
	}
}

func TestRemoveContactIsIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, svc, "+15550000001", "Alice")
	bob := seedUser(t, svc, "+15550000002", "Bob")
	aliceID := uuid.MustParse(alice.ID)

	if err := svc.AddContact(ctx, aliceID, bob.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.RemoveContact(ctx, aliceID, bob.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Removing an absent edge is a zero-row delete, not an error.
	if err := svc.RemoveContact(ctx, aliceID, bob.ID); err != nil {
		t.Fatalf("second remove must succeed: %v", err)
	}

	contacts, err := svc.ListContacts(ctx, aliceID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("expected no contacts, got %+v", contacts)
	}
}

func TestAddContactValidations(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	alice := seedUser(t, svc, "+15550000001", "Alice")
	aliceID := uuid.MustParse(alice.ID)

	if err := svc.AddContact(ctx, aliceID, ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty id, got %v", err)
	}
	if err := svc.AddContact(ctx, aliceID, "not-a-uuid"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for bad id, got %v", err)
	}
	if err := svc.AddContact(ctx, aliceID, alice.ID); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected self-add rejection, got %v", err)
	}
	if err := svc.AddContact(ctx, aliceID, uuid.NewString()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown contact, got %v", err)
	}
}
