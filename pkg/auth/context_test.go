package auth

import (
	"context"
	"errors"
	"testing"
)

func TestWithActor_ActorFromCtx(t *testing.T) {
	actor := Actor{Username: "campus_guard", Role: RoleGuard}
	ctx := WithActor(context.Background(), actor)

	got, err := ActorFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != actor {
		t.Fatalf("expected %v, got %v", actor, got)
	}
}

func TestActorFromCtx_EmptyContext(t *testing.T) {
	_, err := ActorFromCtx(context.Background())
	if !errors.Is(err, ErrActorNotFound) {
		t.Fatalf("expected ErrActorNotFound, got %v", err)
	}
}

func TestActorFromCtx_EmptyUsername(t *testing.T) {
	ctx := WithActor(context.Background(), Actor{Role: RoleGuard})
	_, err := ActorFromCtx(ctx)
	if !errors.Is(err, ErrActorNotFound) {
		t.Fatalf("expected ErrActorNotFound for empty username, got %v", err)
	}
}

func TestActorFromCtx_Isolation(t *testing.T) {
	actor1 := Actor{Username: "guard-day", Role: RoleGuard}
	actor2 := Actor{Username: "guard-night", Role: RoleGuard}

	ctx1 := WithActor(context.Background(), actor1)
	ctx2 := WithActor(context.Background(), actor2)

	got1, _ := ActorFromCtx(ctx1)
	got2, _ := ActorFromCtx(ctx2)

	if got1 != actor1 {
		t.Fatalf("ctx1: expected %v, got %v", actor1, got1)
	}
	if got2 != actor2 {
		t.Fatalf("ctx2: expected %v, got %v", actor2, got2)
	}
	if got1 == got2 {
		t.Fatal("expected different actors in isolated contexts")
	}
}

func TestActor_IsGuard(t *testing.T) {
	if !(Actor{Username: "g", Role: RoleGuard}).IsGuard() {
		t.Fatal("guard role must report IsGuard")
	}
	if (Actor{Username: "g", Role: "student"}).IsGuard() {
		t.Fatal("non-guard role must not report IsGuard")
	}
}
