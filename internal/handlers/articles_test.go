package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"portalpress/internal/models"
)

func createTestArticle(t *testing.T, env *testEnv, title, slug string, authorID uuid.UUID) *models.Article {
	t.Helper()
	article, err := env.ArticleStore.Create(context.Background(), &models.Article{
		Title:    title,
		Slug:     slug,
		Body:     "Corpo do artigo.",
		Status:   models.ArticleStatusPending,
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("create test article: %v", err)
	}
	t.Cleanup(func() { cleanArticles(t, env.DB, slug) })
	return article
}

func TestArticlesPublishEndpoint(t *testing.T) {
	env := newTestEnv(t)
	authorID := testAuthorID(t, env.DB)
	sess := testSession(authorID, "editor@test.local", "editor")

	slug := "test-h-publish-" + uuid.NewString()[:8]
	article := createTestArticle(t, env, "Publish via API", slug, authorID)

	portalName := "API Portal " + uuid.NewString()[:8]
	portal, err := env.PortalStore.Create(context.Background(), &models.Portal{Name: portalName, Active: true})
	if err != nil {
		t.Fatalf("create portal: %v", err)
	}
	t.Cleanup(func() { cleanPortals(t, env.DB, portalName) })

	body, _ := json.Marshal(map[string]any{
		"portals": []map[string]any{
			{"portal_id": portal.ID, "name": portal.Name, "highlight": true, "highlight_position": 1},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/"+article.ID.String()+"/publish",
		bytes.NewReader(body))
	req = withSessionAndParam(req, "id", article.ID.String(), sess)
	rec := httptest.NewRecorder()
	env.Articles.Publish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("publish status: got %d, body %s", rec.Code, rec.Body.String())
	}

	found, err := env.ArticleStore.FindByID(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.ArticleStatusPublished {
		t.Errorf("status: got %q, want published", found.Status)
	}
	if len(found.Portals) != 1 {
		t.Fatalf("portal rows: got %d, want 1", len(found.Portals))
	}
}

func TestArticlesPublishMissingPosition(t *testing.T) {
	env := newTestEnv(t)
	authorID := testAuthorID(t, env.DB)
	sess := testSession(authorID, "editor@test.local", "editor")

	slug := "test-h-badpub-" + uuid.NewString()[:8]
	article := createTestArticle(t, env, "Half Configured", slug, authorID)

	portalName := "Strict Portal " + uuid.NewString()[:8]
	portal, err := env.PortalStore.Create(context.Background(), &models.Portal{Name: portalName, Active: true})
	if err != nil {
		t.Fatalf("create portal: %v", err)
	}
	t.Cleanup(func() { cleanPortals(t, env.DB, portalName) })

	// Highlighted but no position: the request must fail naming the portal
	// and the article must be untouched.
	body, _ := json.Marshal(map[string]any{
		"portals": []map[string]any{
			{"portal_id": portal.ID, "name": portal.Name, "highlight": true},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/"+article.ID.String()+"/publish",
		bytes.NewReader(body))
	req = withSessionAndParam(req, "id", article.ID.String(), sess)
	rec := httptest.NewRecorder()
	env.Articles.Publish(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422; body %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(portalName)) {
		t.Errorf("error does not name the offending portal: %s", rec.Body.String())
	}

	found, _ := env.ArticleStore.FindByID(context.Background(), article.ID)
	if found.Status != models.ArticleStatusPending {
		t.Errorf("status after failed publish: got %q, want pending", found.Status)
	}
	if len(found.Portals) != 0 {
		t.Errorf("portal rows after failed publish: got %d, want 0", len(found.Portals))
	}
}

func TestArticlesDeleteConfirm(t *testing.T) {
	env := newTestEnv(t)
	authorID := testAuthorID(t, env.DB)
	sess := testSession(authorID, "editor@test.local", "editor")

	slug := "test-h-delete-" + uuid.NewString()[:8]
	article := createTestArticle(t, env, "My Article", slug, authorID)

	do := func(confirm string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"confirm_title": confirm})
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/articles/"+article.ID.String(),
			bytes.NewReader(body))
		req = withSessionAndParam(req, "id", article.ID.String(), sess)
		rec := httptest.NewRecorder()
		env.Articles.Delete(rec, req)
		return rec
	}

	// Case must match exactly.
	if rec := do("my Article"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatched confirm: got %d, want 422", rec.Code)
	}
	if found, _ := env.ArticleStore.FindByID(context.Background(), article.ID); found == nil {
		t.Fatal("article deleted despite failed confirmation")
	}

	if rec := do("My Article"); rec.Code != http.StatusOK {
		t.Fatalf("exact confirm: got %d, body %s", rec.Code, rec.Body.String())
	}
	if found, _ := env.ArticleStore.FindByID(context.Background(), article.ID); found != nil {
		t.Fatal("article still present after confirmed delete")
	}
}

func TestArticlesRejectionEndpoint(t *testing.T) {
	env := newTestEnv(t)
	authorID := testAuthorID(t, env.DB)
	sess := testSession(authorID, "author@test.local", "author")

	slug := "test-h-rejection-" + uuid.NewString()[:8]
	article := createTestArticle(t, env, "Needs Work", slug, authorID)

	get := func() map[string]*models.Rejection {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/"+article.ID.String()+"/rejection", nil)
		req = withSessionAndParam(req, "id", article.ID.String(), sess)
		rec := httptest.NewRecorder()
		env.Articles.Rejection(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("rejection status: got %d, body %s", rec.Code, rec.Body.String())
		}
		var out map[string]*models.Rejection
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode rejection response: %v", err)
		}
		return out
	}

	// No rejection yet: a normal empty answer, not an error.
	if out := get(); out["rejection"] != nil {
		t.Errorf("expected no rejection, got %+v", out["rejection"])
	}

	if err := env.ArticleStore.SetStatus(context.Background(), article.ID,
		models.ArticleStatusRejected, "incomplete draft", authorID); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	out := get()
	if out["rejection"] == nil || out["rejection"].Reason != "incomplete draft" {
		t.Errorf("rejection: got %+v, want reason %q", out["rejection"], "incomplete draft")
	}
}

func TestArticlesPublishDuplicatePortal(t *testing.T) {
	env := newTestEnv(t)
	authorID := testAuthorID(t, env.DB)
	sess := testSession(authorID, "editor@test.local", "editor")

	slug := "test-h-dup-portal-" + uuid.NewString()[:8]
	article := createTestArticle(t, env, "Duplicate Portal Target", slug, authorID)

	portalName := "Dup Portal " + uuid.NewString()[:8]
	portal, err := env.PortalStore.Create(context.Background(), &models.Portal{Name: portalName, Active: true})
	if err != nil {
		t.Fatalf("create portal: %v", err)
	}
	t.Cleanup(func() { cleanPortals(t, env.DB, portalName) })

	body, _ := json.Marshal(map[string]any{
		"portals": []map[string]any{
			{"portal_id": portal.ID, "name": portal.Name, "highlight": false},
			{"portal_id": portal.ID, "name": portal.Name, "highlight": true, "highlight_position": 1},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/"+article.ID.String()+"/publish",
		bytes.NewReader(body))
	req = withSessionAndParam(req, "id", article.ID.String(), sess)
	rec := httptest.NewRecorder()
	env.Articles.Publish(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate portal: got %d, want 422, body %s", rec.Code, rec.Body.String())
	}

	var count int
	env.DB.QueryRow("SELECT COUNT(*) FROM article_portals WHERE article_id = $1", article.ID).Scan(&count)
	if count != 0 {
		t.Errorf("portal rows after rejected publish: got %d, want 0", count)
	}
}

func TestArticlesUpdateReturnsStoredState(t *testing.T) {
	env := newTestEnv(t)
	authorID := testAuthorID(t, env.DB)
	sess := testSession(authorID, "editor@test.local", "editor")

	slug := "test-h-update-" + uuid.NewString()[:8]
	article := createTestArticle(t, env, "Before Update", slug, authorID)

	body, _ := json.Marshal(map[string]any{
		"title": "After Update",
		"slug":  slug,
		"body":  "Corpo revisado.",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/articles/"+article.ID.String(),
		bytes.NewReader(body))
	req = withSessionAndParam(req, "id", article.ID.String(), sess)
	rec := httptest.NewRecorder()
	env.Articles.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.Article
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if got.Title != "After Update" {
		t.Errorf("title: got %q, want %q", got.Title, "After Update")
	}

	// The response must carry the row as stored, not the handler's local
	// copy: updated_at is stamped by the database.
	stored, err := env.ArticleStore.FindByID(context.Background(), article.ID)
	if err != nil || stored == nil {
		t.Fatalf("reload article: %v", err)
	}
	if !got.UpdatedAt.Equal(stored.UpdatedAt) {
		t.Errorf("updated_at: response %v, stored %v", got.UpdatedAt, stored.UpdatedAt)
	}
	if !got.UpdatedAt.After(article.UpdatedAt) {
		t.Errorf("updated_at not advanced: before %v, after %v", article.UpdatedAt, got.UpdatedAt)
	}
}
