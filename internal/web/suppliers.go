package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/model"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/store"
	"github.com/WongYC-66/odin-InventoryApplication-PostgreSQL/internal/validate"
)

type supplierFormData struct {
	PageData
	Action string
	Form   url.Values
	Errors validate.Errors
}

// SupplierListPage handles GET /catalog/suppliers.
func (s *Server) SupplierListPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	suppliers, err := store.ListSuppliers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list suppliers", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "supplier_list.html", &struct {
		PageData
		Suppliers []model.Supplier
	}{
		PageData:  PageData{Title: "Supplier List", User: claims},
		Suppliers: suppliers,
	})
}

// SupplierDetailPage handles GET /catalog/supplier/{id}.
func (s *Server) SupplierDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var supplier *model.Supplier
	var items []model.Item
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		supplier, err = store.GetSupplier(ctx, s.DB, id)
		return err
	})
	g.Go(func() (err error) {
		items, err = store.ListItemsBySupplier(ctx, s.DB, id)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to get supplier", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if supplier == nil {
		http.Error(w, "supplier not found", http.StatusNotFound)
		return
	}

	s.Templates.Render(w, "supplier_detail.html", &struct {
		PageData
		Supplier *model.Supplier
		Items    []model.Item
	}{
		PageData: PageData{Title: "Supplier Detail", User: claims},
		Supplier: supplier,
		Items:    items,
	})
}

// SupplierCreatePage handles GET /catalog/supplier/create.
func (s *Server) SupplierCreatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "supplier_form.html", &supplierFormData{
		PageData: PageData{Title: "Create Supplier", User: claims},
		Action:   "/catalog/supplier/create",
		Form:     url.Values{},
	})
}

// SupplierCreateSubmit handles POST /catalog/supplier/create. A name that
// already exists redirects to the existing record.
func (s *Server) SupplierCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in, errs := validate.Supplier(r.PostForm)
	if len(errs) > 0 {
		s.Templates.Render(w, "supplier_form.html", &supplierFormData{
			PageData: PageData{Title: "Create Supplier", User: claims},
			Action:   "/catalog/supplier/create",
			Form:     r.PostForm,
			Errors:   errs,
		})
		return
	}

	existing, err := store.GetSupplierByName(r.Context(), s.DB, in.Name)
	if err != nil {
		slog.Error("failed to check supplier name", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}

	supplier, err := store.CreateSupplier(r.Context(), s.DB, in.Name, in.Address, in.ContactNumber, in.RegistrationNumber)
	if errors.Is(err, store.ErrDuplicateName) {
		if existing, lookupErr := store.GetSupplierByName(r.Context(), s.DB, in.Name); lookupErr == nil && existing != nil {
			http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
			return
		}
	}
	if err != nil {
		slog.Error("failed to create supplier", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("supplier created", "user", claims.Username, "supplier", supplier.Name)
	http.Redirect(w, r, supplier.URL(), http.StatusSeeOther)
}

// SupplierUpdatePage handles GET /catalog/supplier/{id}/update.
func (s *Server) SupplierUpdatePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	supplier, err := store.GetSupplier(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get supplier", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if supplier == nil {
		http.Error(w, "supplier not found", http.StatusNotFound)
		return
	}

	form := url.Values{
		"name":           {supplier.Name},
		"address":        {supplier.Address},
		"contact_number": {supplier.ContactNumber},
	}
	if supplier.RegistrationNumber != nil {
		form.Set("registration_number", strconv.FormatInt(*supplier.RegistrationNumber, 10))
	}

	s.Templates.Render(w, "supplier_form.html", &supplierFormData{
		PageData: PageData{Title: "Update Supplier", User: claims},
		Action:   fmt.Sprintf("/catalog/supplier/%d/update", id),
		Form:     form,
	})
}

// SupplierUpdateSubmit handles POST /catalog/supplier/{id}/update.
func (s *Server) SupplierUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	in, errs := validate.Supplier(r.PostForm)
	if len(errs) > 0 {
		s.Templates.Render(w, "supplier_form.html", &supplierFormData{
			PageData: PageData{Title: "Update Supplier", User: claims},
			Action:   fmt.Sprintf("/catalog/supplier/%d/update", id),
			Form:     r.PostForm,
			Errors:   errs,
		})
		return
	}

	existing, err := store.GetSupplierByName(r.Context(), s.DB, in.Name)
	if err != nil {
		slog.Error("failed to check supplier name", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if existing != nil && existing.ID != id {
		http.Redirect(w, r, existing.URL(), http.StatusSeeOther)
		return
	}

	if err := store.UpdateSupplier(r.Context(), s.DB, id, in.Name, in.Address, in.ContactNumber, in.RegistrationNumber); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to update supplier", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	slog.Info("supplier updated", "user", claims.Username, "supplier", in.Name)
	http.Redirect(w, r, fmt.Sprintf("/catalog/supplier/%d", id), http.StatusSeeOther)
}

// SupplierDeletePage handles GET /catalog/supplier/{id}/delete.
func (s *Server) SupplierDeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.renderSupplierDelete(w, r, id)
}

// SupplierDeleteSubmit handles POST /catalog/supplier/{id}/delete.
func (s *Server) SupplierDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := store.DeleteSupplier(r.Context(), s.DB, id)
	switch {
	case err == nil:
		slog.Info("supplier deleted", "user", claims.Username, "id", id)
		http.Redirect(w, r, "/catalog/suppliers", http.StatusSeeOther)
	case errors.Is(err, store.ErrHasDependents):
		s.renderSupplierDelete(w, r, id)
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/catalog/suppliers", http.StatusSeeOther)
	default:
		slog.Error("failed to delete supplier", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) renderSupplierDelete(w http.ResponseWriter, r *http.Request, id int64) {
	claims := GetWebClaims(r.Context())

	var supplier *model.Supplier
	var items []model.Item
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		supplier, err = store.GetSupplier(ctx, s.DB, id)
		return err
	})
	g.Go(func() (err error) {
		items, err = store.ListItemsBySupplier(ctx, s.DB, id)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to load supplier delete page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if supplier == nil {
		http.Redirect(w, r, "/catalog/suppliers", http.StatusSeeOther)
		return
	}

	s.Templates.Render(w, "supplier_delete.html", &struct {
		PageData
		Supplier *model.Supplier
		Items    []model.Item
	}{
		PageData: PageData{Title: "Delete Supplier", User: claims},
		Supplier: supplier,
		Items:    items,
	})
}
