// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"portalpress/internal/models"
	"portalpress/internal/session"
	"portalpress/internal/store"
)

func createTestUser(t *testing.T, userStore *store.UserStore, displayName string) *models.User {
	t.Helper()
	email := "test-" + uuid.NewString()[:8] + "@test.local"
	user, err := userStore.Create(context.Background(), email, "changeme-123", displayName, models.RoleAuthor)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { userStore.Delete(context.Background(), user.ID) })
	return user
}

func deleteUserRequest(target *models.User, confirm string, sess *session.Data) *http.Request {
	body, _ := json.Marshal(map[string]string{"confirm_name": confirm})
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+target.ID.String(),
		bytes.NewReader(body))
	return withSessionAndParam(req, "id", target.ID.String(), sess)
}

func TestUsersDeleteConfirm(t *testing.T) {
	db := testDB(t)
	userStore := store.NewUserStore(db)
	h := NewUsers(userStore)
	sess := testSession(uuid.New(), "admin@test.local", "admin")

	user := createTestUser(t, userStore, "Ana Souza")

	// Wrong case must not delete.
	rec := httptest.NewRecorder()
	h.Delete(rec, deleteUserRequest(user, "ana souza", sess))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatched confirmation: got %d, want 422", rec.Code)
	}
	if found, _ := userStore.FindByID(context.Background(), user.ID); found == nil {
		t.Fatal("user deleted despite mismatched confirmation")
	}

	// Exact display name deletes.
	rec = httptest.NewRecorder()
	h.Delete(rec, deleteUserRequest(user, "Ana Souza", sess))
	if rec.Code != http.StatusOK {
		t.Fatalf("confirmed delete: got %d, body %s", rec.Code, rec.Body.String())
	}
	if found, _ := userStore.FindByID(context.Background(), user.ID); found != nil {
		t.Fatal("user still present after confirmed delete")
	}
}

func TestUsersDeleteOwnerConflict(t *testing.T) {
	db := testDB(t)
	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	h := NewUsers(userStore)
	sess := testSession(uuid.New(), "admin@test.local", "admin")

	user := createTestUser(t, userStore, "Bruno Lima")
	slug := "test-h-owner-" + uuid.NewString()[:8]
	if _, err := articleStore.Create(context.Background(), &models.Article{
		Title:    "Artigo do Bruno",
		Slug:     slug,
		Body:     "Corpo do artigo.",
		Status:   models.ArticleStatusDraft,
		AuthorID: user.ID,
	}); err != nil {
		t.Fatalf("create article: %v", err)
	}
	t.Cleanup(func() { cleanArticles(t, db, slug) })

	rec := httptest.NewRecorder()
	h.Delete(rec, deleteUserRequest(user, "Bruno Lima", sess))
	if rec.Code != http.StatusConflict {
		t.Fatalf("owner delete: got %d, want 409, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "owns articles") {
		t.Errorf("conflict body should name the article ownership, got %s", rec.Body.String())
	}
	if found, _ := userStore.FindByID(context.Background(), user.ID); found == nil {
		t.Fatal("user deleted despite owning articles")
	}
}

func TestUsersDeleteSelf(t *testing.T) {
	db := testDB(t)
	userStore := store.NewUserStore(db)
	h := NewUsers(userStore)

	user := createTestUser(t, userStore, "Clara Dias")
	sess := testSession(user.ID, "clara@test.local", "admin")

	rec := httptest.NewRecorder()
	h.Delete(rec, deleteUserRequest(user, "Clara Dias", sess))
	if rec.Code != http.StatusConflict {
		t.Fatalf("self delete: got %d, want 409", rec.Code)
	}
}
