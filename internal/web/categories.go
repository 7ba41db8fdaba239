package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/model"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/store"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/validate"
)

// categoryFormData feeds category_form.html for both create and update.
type categoryFormData struct {
	PageData
	Action string
	Form   url.Values
	Errors validate.Errors
}

// CategoryListPage handles GET /catalog/categories.
func (s *Server) CategoryListPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "category_list.html", &struct {
		PageData
		Categories []model.Category
	}{
		PageData:   PageData{Title: "Category List", User: claims},
		Categories: categories,
	})
}

// CategoryDetailPage handles GET /catalog/category/{id}. The category and
// its items are independent reads, fetched in parallel.
func (s *Server) CategoryDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var category *model.Category
	var items []model.Item
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		category, err = store.GetCategory(ctx, s.DB, id)
		return err
	})
	g.Go(func() (err error) {
		items, err = store.ListItemsByCategory(ctx, s.DB, id)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to get category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "category_detail.html", &struct {
		PageData
		Category *model.Category
		Items    []model.Item
	}{
		PageData: PageData{Title: "Category Detail", User: claims},
		Category: category,
		Items:    items,
	})
}

// CategoryCreatePage handles GET /catalog/category/create.
func (s *Server) CategoryCreatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "category_form.html", &categoryFormData{
		PageData: PageData{Title: "Create Category", User: claims},
		Action:   "/catalog/category/create",
		Form:     url.Values{},
	})
}

// CategoryCreateSubmit handles POST /catalog/category/create. A name that
// already exists redirects to the existing record instead of creating a
// duplicate.
func (s *Server) CategoryCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in, errs := validate.Category(r.PostForm)
	if len(errs) > 0 {
		s.Templates.Render(w, "category_form.html", &categoryFormData{
			PageData: PageData{Title: "Create Category", User: claims},
			Action:   "/catalog/category/create",
			Form:     r.PostForm,
			Errors:   errs,
		})
		return
	}

	existing, err := store.GetCategoryByName(r.Context(), s.DB, in.Name)
	if err != nil {
		slog.Error("failed to check category name", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}

	category, err := store.CreateCategory(r.Context(), s.DB, in.Name)
	if errors.Is(err, store.ErrDuplicateName) {
		// Lost a race with a concurrent create; treat it the same way.
		if existing, lookupErr := store.GetCategoryByName(r.Context(), s.DB, in.Name); lookupErr == nil && existing != nil {
			http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
			return
		}
	}
	if err != nil {
		slog.Error("failed to create category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("category created", "user", claims.Username, "category", category.Name)
	http.Redirect(w, r, category.URL(), http.StatusSeeOther)
}

// CategoryUpdatePage handles GET /catalog/category/{id}/update.
func (s *Server) CategoryUpdatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	category, err := store.GetCategory(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "category_form.html", &categoryFormData{
		PageData: PageData{Title: "Update Category", User: claims},
		Action:   fmt.Sprintf("/catalog/category/%d/update", id),
		Form:     url.Values{"name": {category.Name}},
	})
}

// CategoryUpdateSubmit handles POST /catalog/category/{id}/update. Renaming
// to another record's name redirects there; renaming to the record's own
// name proceeds as a normal update.
func (s *Server) CategoryUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in, errs := validate.Category(r.PostForm)
	if len(errs) > 0 {
		s.Templates.Render(w, "category_form.html", &categoryFormData{
			PageData: PageData{Title: "Update Category", User: claims},
			Action:   fmt.Sprintf("/catalog/category/%d/update", id),
			Form:     r.PostForm,
			Errors:   errs,
		})
		return
	}

	existing, err := store.GetCategoryByName(r.Context(), s.DB, in.Name)
	if err != nil {
		slog.Error("failed to check category name", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if existing != nil && existing.ID != id {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}

	if err := store.UpdateCategory(r.Context(), s.DB, id, in.Name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to update category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("category updated", "user", claims.Username, "category", in.Name)
	http.Redirect(w, r, fmt.Sprintf("/catalog/category/%d", id), http.StatusSeeOther)
}

// CategoryDeletePage handles GET /catalog/category/{id}/delete: the
// confirmation page listing any blocking items.
func (s *Server) CategoryDeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.renderCategoryDelete(w, r, id)
}

// CategoryDeleteSubmit handles POST /catalog/category/{id}/delete. The
// dependent check and delete are one conditional statement in the store; if
// items appeared since the confirmation page, the page is shown again.
func (s *Server) CategoryDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := store.DeleteCategory(r.Context(), s.DB, id)
	switch {
	case err == nil:
		slog.Info("category deleted", "user", claims.Username, "id", id)
		http.Redirect(w, r, "/catalog/categories", http.StatusSeeOther)
	case errors.Is(err, store.ErrHasDependents):
		s.renderCategoryDelete(w, r, id)
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/catalog/categories", http.StatusSeeOther)
	default:
		slog.Error("failed to delete category", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) renderCategoryDelete(w http.ResponseWriter, r *http.Request, id int64) {
	claims := GetWebClaims(r.Context())

	var category *model.Category
	var items []model.Item
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		category, err = store.GetCategory(ctx, s.DB, id)
		return err
	})
	g.Go(func() (err error) {
		items, err = store.ListItemsByCategory(ctx, s.DB, id)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to load category delete page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.Redirect(w, r, "/catalog/categories", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "category_delete.html", &struct {
		PageData
		Category *model.Category
		Items    []model.Item
	}{
		PageData: PageData{Title: "Delete Category", User: claims},
		Category: category,
		Items:    items,
	})
}
